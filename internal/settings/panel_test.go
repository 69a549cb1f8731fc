package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passgen/passgen-frontend/internal/model"
)

type stubSource struct {
	limits model.Limits
	err    error
	calls  int
}

func (s *stubSource) Limits(context.Context) (model.Limits, error) {
	s.calls++
	return s.limits, s.err
}

func TestPanel_Defaults(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))

	min, max := p.Values()
	assert.Equal(t, "15", min)
	assert.Equal(t, "1000", max)
	assert.Equal(t, LimitUninitialized, p.State())
}

func TestPanel_LoadLimits(t *testing.T) {
	src := &stubSource{limits: model.Limits{Min: 10, Max: 64}}
	p := NewPanel(NewMemoryStore(nil))

	p.LoadLimits(context.Background(), src)
	p.LoadLimits(context.Background(), src)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, LimitKnown, p.State())
	assert.Equal(t, model.Limits{Min: 10, Max: 64}, p.Limits())

	min, max := p.Values()
	assert.Equal(t, "10", min)
	assert.Equal(t, "64", max)
}

func TestPanel_LoadLimitsKeepsStoredValues(t *testing.T) {
	store := NewMemoryStore(map[string]string{ParamMinLength: "20", ParamMaxLength: "40"})
	p := NewPanel(store)

	p.LoadLimits(context.Background(), &stubSource{limits: model.Limits{Min: 10, Max: 64}})

	min, max := p.Values()
	assert.Equal(t, "20", min)
	assert.Equal(t, "40", max)
	assert.Equal(t, model.Settings{MinLength: 20, MaxLength: 40}, p.Settings())
}

func TestPanel_LoadLimitsFailureFallsBack(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))

	p.LoadLimits(context.Background(), &stubSource{err: errors.New("connection refused")})

	assert.Equal(t, LimitKnown, p.State())
	assert.Equal(t, model.Limits{Min: 15, Max: 1000}, p.Limits())
}

func TestPanel_BeginLoadOnce(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))

	require.True(t, p.BeginLoad())
	assert.Equal(t, LimitAwaiting, p.State())
	assert.False(t, p.BeginLoad())
}

func TestPanel_EditMinWritesStore(t *testing.T) {
	store := NewMemoryStore(nil)
	p := NewPanel(store)

	p.EditMin("25")

	min, _ := p.Values()
	assert.Equal(t, "25", min)
	assert.Equal(t, "25", store.Get(ParamMinLength, ""))
}

func TestPanel_EditMaxBelowMinRejected(t *testing.T) {
	store := NewMemoryStore(map[string]string{ParamMinLength: "20", ParamMaxLength: "40"})
	p := NewPanel(store)

	err := p.EditMax("19")
	assert.ErrorIs(t, err, ErrMaxBelowMin)

	min, max := p.Values()
	assert.Equal(t, "20", min)
	assert.Equal(t, "40", max)
	assert.Equal(t, "40", store.Get(ParamMaxLength, ""))
}

func TestPanel_EditMaxComparesNumerically(t *testing.T) {
	store := NewMemoryStore(map[string]string{ParamMinLength: "9"})
	p := NewPanel(store)

	// "100" sorts before "9" as a string but is larger as a number
	require.NoError(t, p.EditMax("100"))

	_, max := p.Values()
	assert.Equal(t, "100", max)
	assert.Equal(t, "100", store.Get(ParamMaxLength, ""))
}

func TestPanel_EditMaxNonNumericAppliedButInvalid(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))

	require.NoError(t, p.EditMax("abc"))
	assert.False(t, p.MaxValid())
	assert.Equal(t, model.Settings{MinLength: 15}, p.Settings())
}

func TestPanel_Validity(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))
	p.ApplyLimits(model.Limits{Min: 10, Max: 64}, nil)

	p.EditMin("5")
	assert.False(t, p.MinValid())

	p.EditMin("12")
	assert.True(t, p.MinValid())

	require.NoError(t, p.EditMax("65"))
	assert.False(t, p.MaxValid())

	require.NoError(t, p.EditMax("12"))
	assert.True(t, p.MaxValid())
	assert.Equal(t, model.Settings{MinLength: 12, MaxLength: 12}, p.Settings())
}

func TestPanel_RestoreFromHistory(t *testing.T) {
	h, err := NewHistory("/")
	require.NoError(t, err)

	src := &stubSource{limits: model.Limits{Min: 10, Max: 64}}
	p := NewPanel(h)
	p.LoadLimits(context.Background(), src)

	p.EditMin("20")
	require.NoError(t, p.EditMax("30"))

	require.True(t, h.Back())
	p.Restore()

	min, max := p.Values()
	assert.Equal(t, "20", min)
	assert.Equal(t, "64", max)

	require.True(t, h.Back())
	p.Restore()

	min, _ = p.Values()
	assert.Equal(t, "10", min)
	assert.Equal(t, 1, src.calls)
}

func TestLimitState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", LimitUninitialized.String())
	assert.Equal(t, "awaiting", LimitAwaiting.String())
	assert.Equal(t, "known", LimitKnown.String())
}

func TestPanel_MaxFloorIsTypedMin(t *testing.T) {
	p := NewPanel(NewMemoryStore(nil))
	p.ApplyLimits(model.Limits{Min: 10, Max: 64}, nil)

	// a numeric minimum below the limits is still the floor for max
	p.EditMin("5")
	require.NoError(t, p.EditMax("8"))
	assert.False(t, p.MinValid())
	assert.True(t, p.MaxValid())
	assert.Equal(t, model.Settings{MaxLength: 8}, p.Settings())

	// without a numeric minimum the lower limit is the floor
	p.EditMin("abc")
	assert.False(t, p.MaxValid())
	require.NoError(t, p.EditMax("10"))
	assert.True(t, p.MaxValid())
}

func TestMaxBelowMin(t *testing.T) {
	tests := []struct {
		min, max string
		want     bool
	}{
		{"20", "19", true},
		{"9", "100", false},
		{"20", "20", false},
		{"", "5", false},
		{"20", "", false},
		{"abc", "5", false},
		{"20", "-5", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxBelowMin(tt.min, tt.max), "min=%q max=%q", tt.min, tt.max)
	}
}
