package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/passgen/passgen-frontend/internal/backend"
	"github.com/passgen/passgen-frontend/internal/fetcher"
	"github.com/passgen/passgen-frontend/internal/logging"
	"github.com/passgen/passgen-frontend/internal/settings"
	"github.com/passgen/passgen-frontend/internal/shell"
	"github.com/passgen/passgen-frontend/internal/tui"
)

var (
	tuiLocation string
	tuiLogFile  string
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive generator",
	Long: `Start the interactive generator.

Settings live in a location such as "/?num=5&minPasswordLength=20". Every
edit adds a history entry; alt+left and alt+right move back and forward.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiLocation, "url", "/", "Initial location with query parameters")
	tuiCmd.Flags().StringVar(&tuiLogFile, "log-file", "", "Write logs to this file instead of discarding them")
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the terminal belongs to the UI
	var logOut io.Writer = io.Discard
	if tuiLogFile != "" {
		f, err := os.OpenFile(tuiLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(logging.NewHandler(logOut, cfg.LogLevel, cfg.LogJSON)))

	hist, err := settings.NewHistory(tuiLocation)
	if err != nil {
		return err
	}

	client, err := backend.NewClient(cfg.BackendURL, backend.WithTimeout(cfg.BackendTimeout))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	sh := shell.New(hist, settings.NewPanel(hist), fetcher.New(client))
	return tui.Run(ctx, tui.New(ctx, sh, hist, client))
}
