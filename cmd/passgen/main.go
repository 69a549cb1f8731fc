package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/passgen/passgen-frontend/internal/backend"
	"github.com/passgen/passgen-frontend/internal/config"
	"github.com/passgen/passgen-frontend/internal/logging"
	"github.com/passgen/passgen-frontend/internal/service"
)

var (
	cfg config.Config

	backendURL string
	statePath  string
	logLevel   string
	noState    bool
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "passgen",
	Short: "Generate memorable passwords from the terminal",
	Long: `passgen talks to a password generator backend and prints the results.

Settings given as flags are remembered between runs unless --no-state is set.
Run "passgen tui" for the interactive generator.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("backend") {
			cfg.BackendURL = backendURL
		}
		if cmd.Flags().Changed("state") {
			cfg.StatePath = statePath
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if noState {
			cfg.StatePath = ""
		}

		logging.Setup(cfg.LogLevel, cfg.LogJSON)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "Backend base URL (or set BACKEND_URL)")
	rootCmd.PersistentFlags().StringVar(&statePath, "state", "", "Settings database path (or set PASSGEN_STATE)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&noState, "no-state", false, "Do not read or remember settings")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Overall timeout for one-shot commands")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(limitsCmd)
	rootCmd.AddCommand(tuiCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newService wires the backend client for the current configuration.
func newService() (*service.GeneratorService, error) {
	client, err := backend.NewClient(cfg.BackendURL, backend.WithTimeout(cfg.BackendTimeout))
	if err != nil {
		return nil, err
	}
	return service.NewGeneratorService(client, client, nil), nil
}
