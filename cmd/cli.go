package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/luminox/luminox/auth"
	"github.com/luminox/luminox/client"
	"github.com/luminox/luminox/config"
	"github.com/luminox/luminox/db"
	"github.com/luminox/luminox/pkg/clierr"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// app carries what every command needs. It is filled in by setup before a
// command runs, unless a test already did.
type app struct {
	configPath string
	cfg        *config.Config
	client     *client.Client
	session    *auth.Service
	progress   io.Writer // spinners and progress bars
	ownsDB     bool
}

// Execute runs the root command with ctx and exits with the code of the error, if any.
func Execute(ctx context.Context) {
	a := &app{progress: os.Stderr}
	rootCmd := createRootCmd(a)
	rootCmd.PersistentFlags().BoolP("help", "h", false, "Show help for a command")

	flushTraces := func() {}
	if zerolog.GlobalLevel() <= zerolog.DebugLevel {
		shutdown, err := setupTracing(os.Stderr)
		if err != nil {
			log.Warn().Err(err).Msg("Tracing disabled")
		} else {
			flushTraces = func() {
				if err := shutdown(context.WithoutCancel(ctx)); err != nil {
					log.Warn().Err(err).Msg("Failed to flush traces")
				}
			}
		}
	}

	err := rootCmd.ExecuteContext(ctx)
	a.pushMetrics(ctx)
	a.close()
	flushTraces()
	if err != nil {
		log.Error().Err(err).Msg("Command execution failed.")
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(clierr.ExitCode(err))
	}
}

func createRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "luminox",
		Short:         "Command-line client for the Luminox quoting API",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		loginCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		orcamentoCmd(a),
		clienteCmd(a),
		versionCmd(),
	)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:    "no-help",
		Hidden: true,
	})

	return rootCmd
}

// setup loads the configuration, opens the token database and builds the API
// client and the session on top of it.
func (a *app) setup() error {
	if a.client != nil {
		return nil
	}

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return clierr.New(clierr.Validation, fmt.Sprintf("invalid configuration: %v", err), err)
	}
	a.cfg = cfg

	db.Path = cfg.DBPath
	if err := db.InitDB(); err != nil {
		return clierr.New(clierr.Internal, "failed to open the token database", err)
	}
	a.ownsDB = true

	store := db.NewTokenStore(db.NewTokenRepository(db.GetDB()))
	a.client = client.New(cfg.APIURL, store,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		client.WithSessionExpiredHook(func() {
			fmt.Fprintln(os.Stderr, "Session expired, run 'luminox login' to sign in again.")
		}),
	)
	a.session = auth.NewService(a.client)
	a.session.Init()
	return nil
}

// pushMetrics pushes the client counters when a Pushgateway is configured.
// A failed push is logged and does not change the outcome of the command.
func (a *app) pushMetrics(ctx context.Context) {
	if a.cfg == nil || a.cfg.PushgatewayURL == "" {
		return
	}
	if err := pushMetrics(ctx, a.cfg.PushgatewayURL, client.Metrics()); err != nil {
		log.Warn().Err(err).Msg("Metrics were not pushed")
	}
}

func (a *app) close() {
	if !a.ownsDB {
		return
	}
	if err := db.CloseDB(); err != nil {
		log.Error().Err(err).Msg("Failed to close the database.")
	}
}

func (a *app) workers() int {
	if a.cfg == nil {
		return 4
	}
	return a.cfg.Workers
}
