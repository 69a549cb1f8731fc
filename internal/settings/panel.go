package settings

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"sync"

	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/validation"
)

// ErrMaxBelowMin is returned when an edit would put the maximum length below the minimum.
var ErrMaxBelowMin = errors.New("max password length must be greater than or equal to min password length")

// LimitState tracks whether the server-side length limits are known yet.
type LimitState int

const (
	LimitUninitialized LimitState = iota
	LimitAwaiting
	LimitKnown
)

func (s LimitState) String() string {
	switch s {
	case LimitUninitialized:
		return "uninitialized"
	case LimitAwaiting:
		return "awaiting"
	case LimitKnown:
		return "known"
	default:
		return "unknown"
	}
}

// LimitsSource provides the server-side length limits.
type LimitsSource interface {
	Limits(ctx context.Context) (model.Limits, error)
}

// Panel owns the min/max password length bounds. Values are kept as the raw
// strings the user typed so invalid input can be displayed back.
type Panel struct {
	mu     sync.Mutex
	store  Store
	state  LimitState
	limits model.Limits
	min    string
	max    string
}

// NewPanel reads the initial bounds from the store, falling back to the
// hardcoded defaults until the server limits are known.
func NewPanel(store Store) *Panel {
	p := &Panel{
		store:  store,
		limits: model.FallbackLimits,
	}
	p.readStore()
	return p
}

// BeginLoad moves the panel to LimitAwaiting. It returns false if limits
// were already requested, so the config endpoint is asked only once.
func (p *Panel) BeginLoad() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != LimitUninitialized {
		return false
	}
	p.state = LimitAwaiting
	return true
}

// ApplyLimits records the outcome of the limits request. A failed request
// leaves the panel usable with the fallback limits.
func (p *Panel) ApplyLimits(limits model.Limits, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err != nil {
		slog.Warn("failed to fetch password length limits, using defaults",
			"error", err, "min", model.FallbackLimits.Min, "max", model.FallbackLimits.Max)
		limits = model.FallbackLimits
	}

	p.limits = limits
	p.state = LimitKnown
	p.readStore()
}

// LoadLimits requests the limits from src and applies them.
func (p *Panel) LoadLimits(ctx context.Context, src LimitsSource) {
	if !p.BeginLoad() {
		return
	}
	limits, err := src.Limits(ctx)
	p.ApplyLimits(limits, err)
}

// EditMin stores and applies a new minimum length. It is never rejected;
// invalid values are only flagged by MinValid.
func (p *Panel) EditMin(value string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.store.Set(ParamMinLength, value)
	p.min = value
}

// EditMax stores and applies a new maximum length unless it is below the
// current minimum, in which case nothing changes and ErrMaxBelowMin is returned.
func (p *Panel) EditMax(value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if MaxBelowMin(p.min, value) {
		slog.Warn("rejected max password length edit", "max", value, "min", p.min)
		return ErrMaxBelowMin
	}

	p.store.Set(ParamMaxLength, value)
	p.max = value
	return nil
}

// MaxBelowMin reports whether both bounds are numeric and max is below min.
// Edits that would produce such a pair are rejected.
func MaxBelowMin(min, max string) bool {
	lo, minErr := parseLength(min)
	hi, maxErr := parseLength(max)
	return minErr == nil && maxErr == nil && hi < lo
}

func parseLength(value string) (int, error) {
	return validation.ParseBounded(value, 0, math.MaxInt)
}

// Restore re-reads both bounds from the store against the limits known now.
// Used on back/forward navigation; limits are not fetched again.
func (p *Panel) Restore() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readStore()
}

func (p *Panel) readStore() {
	p.min = p.store.Get(ParamMinLength, strconv.Itoa(p.limits.Min))
	p.max = p.store.Get(ParamMaxLength, strconv.Itoa(p.limits.Max))
}

// Values returns the raw min and max values.
func (p *Panel) Values() (string, string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.min, p.max
}

func (p *Panel) Limits() model.Limits {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.limits
}

func (p *Panel) State() LimitState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// MinValid reports whether the minimum lies within the server limits.
func (p *Panel) MinValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.minValid()
}

// MaxValid reports whether the maximum lies between the minimum and the server ceiling.
func (p *Panel) MaxValid() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.maxValid()
}

func (p *Panel) minValid() bool {
	return validation.IsValid(p.min, p.limits.Min, p.limits.Max)
}

// maxValid uses the typed minimum as the floor even when it is outside the
// limits. A non-numeric minimum falls back to the lower limit.
func (p *Panel) maxValid() bool {
	floor, err := parseLength(p.min)
	if err != nil {
		floor = p.limits.Min
	}
	return validation.IsValid(p.max, floor, p.limits.Max)
}

// Settings returns the bounds to send with a request. Invalid bounds are
// left zero so the backend applies its own defaults.
func (p *Panel) Settings() model.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()

	var s model.Settings
	if p.minValid() {
		s.MinLength, _ = strconv.Atoi(p.min)
	}
	if p.maxValid() {
		s.MaxLength, _ = strconv.Atoi(p.max)
	}
	return s
}
