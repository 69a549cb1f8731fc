package service

import (
	"context"

	"github.com/passgen/passgen-frontend/internal/fetcher"
	"github.com/passgen/passgen-frontend/internal/metrics"
	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
)

// View is everything a page needs to render one generator request.
type View struct {
	State    shell.State
	Min      string
	Max      string
	MinValid bool
	MaxValid bool
	Limits   model.Limits
}

// GeneratorService runs one complete generator cycle for a settings store:
// load limits, validate, fetch and collect the result.
type GeneratorService struct {
	limits    settings.LimitsSource
	transport fetcher.Transport
	metrics   *metrics.Metrics
}

// NewGeneratorService creates a new GeneratorService.
func NewGeneratorService(limits settings.LimitsSource, transport fetcher.Transport, m *metrics.Metrics) *GeneratorService {
	return &GeneratorService{limits: limits, transport: transport, metrics: m}
}

// Limits fetches the server limits and counts failures. It satisfies settings.LimitsSource.
func (s *GeneratorService) Limits(ctx context.Context) (model.Limits, error) {
	limits, err := s.limits.Limits(ctx)
	if err != nil {
		s.metrics.LimitsFallback()
	}
	return limits, err
}

// NewShell builds a shell over store with limits already loaded.
func (s *GeneratorService) NewShell(ctx context.Context, store settings.Store) *shell.Shell {
	panel := settings.NewPanel(store)
	panel.LoadLimits(ctx, s)
	return shell.New(store, panel, fetcher.New(s.transport, fetcher.WithMetrics(s.metrics)))
}

// Generate fetches passwords for the values in store. Invalid input and
// backend failures are reported through the returned view, not as errors.
func (s *GeneratorService) Generate(ctx context.Context, store settings.Store) View {
	sh := s.NewShell(ctx, store)
	if call := sh.Refresh(); call != nil {
		sh.Apply(call.Run(ctx))
	}
	return ViewOf(sh)
}

// ViewOf snapshots a shell and its panel.
func ViewOf(sh *shell.Shell) View {
	panel := sh.Panel()
	min, max := panel.Values()
	return View{
		State:    sh.State(),
		Min:      min,
		Max:      max,
		MinValid: panel.MinValid(),
		MaxValid: panel.MaxValid(),
		Limits:   panel.Limits(),
	}
}
