// Package render displays password records in a terminal.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/passgen/passgen-frontend/internal/model"
)

// Column names, matching the JSON field names.
const (
	ColumnGenerated = "generated"
	ColumnOriginal  = "original"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Column returns the values of one column, in row order.
func Column(records []model.Password, name string) ([]string, error) {
	out := make([]string, 0, len(records))
	for _, r := range records {
		switch name {
		case ColumnGenerated:
			out = append(out, r.Generated)
		case ColumnOriginal:
			out = append(out, r.Original)
		default:
			return nil, fmt.Errorf("unknown column %q", name)
		}
	}
	return out, nil
}

// ColumnText joins a column with newlines, ready for the clipboard.
func ColumnText(records []model.Password, name string) (string, error) {
	values, err := Column(records, name)
	if err != nil {
		return "", err
	}
	return strings.Join(values, "\n"), nil
}

// Table renders records as a bordered table with a Password and an Original column.
func Table(records []model.Password) string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Generated, r.Original})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers("Password", "Original").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	return t.String()
}

// Plain writes one generated password per line.
func Plain(w io.Writer, records []model.Password) error {
	for _, r := range records {
		if _, err := fmt.Fprintln(w, r.Generated); err != nil {
			return err
		}
	}
	return nil
}

// JSON writes records as an indented JSON array. A nil slice is written as [].
func JSON(w io.Writer, records []model.Password) error {
	if records == nil {
		records = []model.Password{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}
