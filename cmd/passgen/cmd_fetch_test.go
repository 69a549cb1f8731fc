package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/passgen/passgen-frontend/internal/fetcher"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
)

func newFlagShell(store settings.Store) *shell.Shell {
	panel := settings.NewPanel(store)
	panel.ApplyLimits(model.Limits{Min: 15, Max: 1000}, nil)
	return shell.New(store, panel, fetcher.New(nil))
}

func ptr(s string) *string { return &s }

func TestApplyFlags(t *testing.T) {
	store := settings.NewMemoryStore(nil)
	sh := newFlagShell(store)

	require.NoError(t, applyFlags(sh, fetchFlags{num: ptr("3"), min: ptr("20"), max: ptr("30")}))

	assert.Equal(t, "3", store.Get(settings.ParamCount, ""))
	assert.Equal(t, "20", store.Get(settings.ParamMinLength, ""))
	assert.Equal(t, "30", store.Get(settings.ParamMaxLength, ""))
	assert.Equal(t, "3", sh.State().Count)
}

func TestApplyFlags_MaxBelowNewMinChangesNothing(t *testing.T) {
	store := settings.NewMemoryStore(map[string]string{
		settings.ParamCount:     "2",
		settings.ParamMinLength: "15",
		settings.ParamMaxLength: "40",
	})
	sh := newFlagShell(store)

	err := applyFlags(sh, fetchFlags{num: ptr("5"), min: ptr("40"), max: ptr("20")})
	assert.ErrorIs(t, err, settings.ErrMaxBelowMin)

	assert.Equal(t, "2", store.Get(settings.ParamCount, ""))
	assert.Equal(t, "15", store.Get(settings.ParamMinLength, ""))
	assert.Equal(t, "40", store.Get(settings.ParamMaxLength, ""))
}

func TestApplyFlags_MaxBelowStoredMin(t *testing.T) {
	store := settings.NewMemoryStore(map[string]string{settings.ParamMinLength: "30"})
	sh := newFlagShell(store)

	err := applyFlags(sh, fetchFlags{num: ptr("5"), max: ptr("20")})
	assert.ErrorIs(t, err, settings.ErrMaxBelowMin)
	assert.Equal(t, "fallback", store.Get(settings.ParamCount, "fallback"))
}

func TestApplyFlags_NoneGiven(t *testing.T) {
	store := settings.NewMemoryStore(nil)
	require.NoError(t, applyFlags(newFlagShell(store), fetchFlags{}))
	assert.Equal(t, "fallback", store.Get(settings.ParamMinLength, "fallback"))
}
