// Package tui is an interactive terminal frontend for the generator. Inputs
// are edited in place and the password table updates as results arrive.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/passgen/passgen-frontend/internal/fetcher"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/render"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
)

const noticeTimeout = 2 * time.Second

const (
	fieldCount = iota
	fieldMin
	fieldMax
	fieldTotal
)

var fieldLabels = [fieldTotal]string{"Passwords", "Min length", "Max length"}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(12)
	invalidStyle = lipgloss.NewStyle().Width(12).Foreground(lipgloss.Color("196"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

type limitsMsg struct {
	limits model.Limits
	err    error
}

type resultMsg struct {
	res fetcher.Result
}

type clearNoticeMsg struct {
	id int
}

// Model is the bubbletea model of the generator.
type Model struct {
	ctx     context.Context
	shell   *shell.Shell
	history *settings.History
	limits  settings.LimitsSource

	inputs []textinput.Model
	focus  int

	notice   string
	noticeID int

	// pending is the most recent call handed to the runtime.
	pending *fetcher.Call

	copy func(string) error
}

// New creates the model. sh must use history as its store.
func New(ctx context.Context, sh *shell.Shell, history *settings.History, limits settings.LimitsSource) Model {
	m := Model{
		ctx:     ctx,
		shell:   sh,
		history: history,
		limits:  limits,
		inputs:  make([]textinput.Model, fieldTotal),
		copy:    clipboard.WriteAll,
	}

	for i := range m.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 6
		ti.Width = 10
		m.inputs[i] = ti
	}
	m.inputs[fieldCount].Placeholder = fmt.Sprintf("%d - %d", model.MinCount, model.MaxCount)
	m.inputs[fieldCount].Focus()
	m.syncInputs()

	m.pending = sh.Refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink, m.run(m.pending)}
	if m.shell.Panel().BeginLoad() {
		cmds = append(cmds, m.loadLimits())
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case limitsMsg:
		m.shell.Panel().ApplyLimits(msg.limits, msg.err)
		m.syncInputs()
		m.pending = m.shell.Refresh()
		return m, m.run(m.pending)

	case resultMsg:
		m.shell.Apply(msg.res)
		return m, nil

	case clearNoticeMsg:
		if msg.id == m.noticeID {
			m.notice = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "down":
		cmd := m.setFocus((m.focus + 1) % fieldTotal)
		return m, cmd
	case "shift+tab", "up":
		cmd := m.setFocus((m.focus + fieldTotal - 1) % fieldTotal)
		return m, cmd
	case "alt+left":
		if !m.history.Back() {
			return m, nil
		}
		return m.navigate()
	case "alt+right":
		if !m.history.Forward() {
			return m, nil
		}
		return m.navigate()
	case "ctrl+y":
		return m.copyColumn(render.ColumnGenerated)
	case "ctrl+o":
		return m.copyColumn(render.ColumnOriginal)
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var inputCmd tea.Cmd
	m.inputs[m.focus], inputCmd = m.inputs[m.focus].Update(msg)

	after := m.inputs[m.focus].Value()
	if after == before {
		return m, inputCmd
	}

	m, cmd := m.edit(m.focus, after)
	return m, tea.Batch(inputCmd, cmd)
}

// edit applies a changed field to the shell.
func (m Model) edit(field int, value string) (Model, tea.Cmd) {
	var call *fetcher.Call

	switch field {
	case fieldCount:
		call = m.shell.SetCount(value)
	case fieldMin:
		call = m.shell.EditMin(value)
	case fieldMax:
		var err error
		call, err = m.shell.EditMax(value)
		if err != nil {
			_, max := m.shell.Panel().Values()
			m.inputs[fieldMax].SetValue(max)
			return m.flash("Max length must not be below min length")
		}
	}

	if call != nil {
		m.pending = call
	}
	return m, m.run(call)
}

func (m Model) navigate() (tea.Model, tea.Cmd) {
	call := m.shell.Navigate()
	m.syncInputs()
	if call != nil {
		m.pending = call
	}
	return m, m.run(call)
}

func (m Model) copyColumn(column string) (tea.Model, tea.Cmd) {
	passwords := m.shell.State().Passwords
	if len(passwords) == 0 {
		return m.flash("Nothing to copy")
	}

	text, err := render.ColumnText(passwords, column)
	if err == nil {
		err = m.copy(text)
	}
	if err != nil {
		return m.flash(fmt.Sprintf("Error copying text to clipboard: %v", err))
	}
	return m.flash("Text copied to clipboard!")
}

func (m Model) flash(notice string) (Model, tea.Cmd) {
	m.noticeID++
	m.notice = notice
	id := m.noticeID
	return m, tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (m *Model) setFocus(field int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = field
	return m.inputs[m.focus].Focus()
}

// syncInputs copies the shell values into the text inputs.
func (m *Model) syncInputs() {
	min, max := m.shell.Panel().Values()
	limits := m.shell.Panel().Limits()

	m.inputs[fieldCount].SetValue(m.shell.State().Count)
	m.inputs[fieldMin].SetValue(min)
	m.inputs[fieldMax].SetValue(max)
	m.inputs[fieldMin].Placeholder = fmt.Sprintf("%d - %d", limits.Min, limits.Max)
	m.inputs[fieldMax].Placeholder = fmt.Sprintf("%d - %d", limits.Min, limits.Max)
}

func (m Model) loadLimits() tea.Cmd {
	ctx, src := m.ctx, m.limits
	return func() tea.Msg {
		limits, err := src.Limits(ctx)
		return limitsMsg{limits: limits, err: err}
	}
}

func (m Model) run(call *fetcher.Call) tea.Cmd {
	if call == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return resultMsg{res: call.Run(ctx)}
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Password Generator"))
	b.WriteString("\n")

	state := m.shell.State()
	panel := m.shell.Panel()
	valid := [fieldTotal]bool{state.Valid(), panel.MinValid(), panel.MaxValid()}

	for i, input := range m.inputs {
		style := labelStyle
		if !valid[i] {
			style = invalidStyle
		}
		b.WriteString(style.Render(fieldLabels[i]))
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch state.Status {
	case shell.StatusInvalid:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Please enter a number between %d and %d.", model.MinCount, model.MaxCount)))
	case shell.StatusLoading:
		b.WriteString("Loading...")
	case shell.StatusFailed:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", state.Err)))
	case shell.StatusReady:
		b.WriteString(render.Table(state.Passwords))
	}
	b.WriteString("\n")

	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("tab: next field • alt+←/→: back/forward • ctrl+y: copy passwords • ctrl+o: copy originals • esc: quit"))
	return b.String()
}

// Run starts the terminal UI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, m Model) error {
	_, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
