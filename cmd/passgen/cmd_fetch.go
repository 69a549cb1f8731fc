package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/passgen/passgen-frontend/internal/model"
	"github.com/passgen/passgen-frontend/internal/render"
	"github.com/passgen/passgen-frontend/internal/repository"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
)

var (
	fetchNum   string
	fetchMin   string
	fetchMax   string
	fetchJSON  bool
	fetchPlain bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch passwords once and print them",
	Long: `Fetch a batch of passwords from the backend.

Flags that are not given fall back to the remembered settings, then to the
backend limits.`,
	Example: `  passgen fetch --num 5
  passgen fetch --num 3 --min 20 --max 40 --json`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVarP(&fetchNum, "num", "n", "", fmt.Sprintf("Number of passwords (%d-%d)", model.MinCount, model.MaxCount))
	fetchCmd.Flags().StringVar(&fetchMin, "min", "", "Minimum password length")
	fetchCmd.Flags().StringVar(&fetchMax, "max", "", "Maximum password length")
	fetchCmd.Flags().BoolVar(&fetchJSON, "json", false, "Print JSON")
	fetchCmd.Flags().BoolVar(&fetchPlain, "plain", false, "Print tab separated values")
	fetchCmd.MarkFlagsMutuallyExclusive("json", "plain")
}

func runFetch(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	store, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	svc, err := newService()
	if err != nil {
		return err
	}

	sh := svc.NewShell(ctx, store)
	if err := applyFlags(sh, givenFlags(cmd)); err != nil {
		return err
	}

	call := sh.Refresh()
	if call == nil {
		return fmt.Errorf("invalid number of passwords %q: must be between %d and %d",
			sh.State().Count, model.MinCount, model.MaxCount)
	}
	sh.Apply(call.Run(ctx))

	state := sh.State()
	if state.Failed() {
		return fmt.Errorf("fetch passwords: %w", state.Err)
	}

	out := cmd.OutOrStdout()
	switch {
	case fetchJSON:
		return render.JSON(out, state.Passwords)
	case fetchPlain:
		return render.Plain(out, state.Passwords)
	default:
		_, err := fmt.Fprintln(out, render.Table(state.Passwords))
		return err
	}
}

// fetchFlags holds the flags given on the command line. Nil means not given.
type fetchFlags struct {
	num, min, max *string
}

func givenFlags(cmd *cobra.Command) fetchFlags {
	var f fetchFlags
	flags := cmd.Flags()
	if flags.Changed("num") {
		f.num = &fetchNum
	}
	if flags.Changed("min") {
		f.min = &fetchMin
	}
	if flags.Changed("max") {
		f.max = &fetchMax
	}
	return f
}

// applyFlags routes explicit flags through the shell so they are validated
// and remembered like edits in the interactive generator. A max below the
// resulting min is rejected before anything is remembered.
func applyFlags(sh *shell.Shell, f fetchFlags) error {
	if f.max != nil {
		min, _ := sh.Panel().Values()
		if f.min != nil {
			min = *f.min
		}
		if settings.MaxBelowMin(min, *f.max) {
			return settings.ErrMaxBelowMin
		}
	}

	if f.num != nil {
		sh.SetCount(*f.num)
	}
	if f.min != nil {
		sh.EditMin(*f.min)
	}
	if f.max != nil {
		if _, err := sh.EditMax(*f.max); err != nil {
			return err
		}
	}
	return nil
}

// openStore returns the persistent settings store, or an in-memory one when
// persistence is disabled.
func openStore() (settings.Store, func(), error) {
	if cfg.StatePath == "" {
		return settings.NewMemoryStore(nil), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o700); err != nil {
		return nil, nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := repository.NewDB(cfg.StatePath)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewSettingsRepository(db), func() { db.Close() }, nil
}
