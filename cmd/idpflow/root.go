package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"idpflow/internal/config"
	apperrors "idpflow/internal/errors"
	"idpflow/internal/infrastructure"
	"idpflow/internal/operations"
)

// rootOptions holds the flags shared by every subcommand
type rootOptions struct {
	cfgFile  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "idpflow",
		Short: "Prepare displacement and conflict datasets for analysis",
		Long: `idpflow turns published displacement and conflict exports into
analysis-ready CSV files: it projects settlement columns, drops incomplete
demographic rows, dates monthly conflict counts, aggregates IDP movements
per province and joins the monthly series together.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is ./idpflow.yaml)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level override (debug, info, warn, error)")

	cmd.AddCommand(
		newSelectColumnsCmd(opts),
		newCleanDemographicsCmd(opts),
		newNormalizeConflictCmd(opts),
		newAggregateIDPCmd(opts),
		newMergeCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// app is everything a procedure command needs after flags are parsed
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	env       *operations.Env
	runner    *operations.Runner
}

func (o *rootOptions) setup(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()

	cfg, err := config.Load(o.cfgFile)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to load configuration", err)
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
		if err := cfg.Validate(); err != nil {
			return nil, apperrors.NewConfigError("invalid --log-level", err).
				WithContext("level", o.logLevel)
		}
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize logger", err)
	}

	telemetry, err := infrastructure.InitializeTelemetry(ctx, cfg.Observability, logger, cmd.ErrOrStderr())
	if err != nil {
		return nil, apperrors.NewConfigError("failed to initialize telemetry", err)
	}

	env, err := operations.NewEnv(cfg, logger)
	if err != nil {
		_ = telemetry.Shutdown(ctx)
		return nil, apperrors.NewConfigError("failed to resolve data directories", err)
	}
	env.Paths.LogPathResolution(logger)
	if err := env.Paths.EnsureDirectories(); err != nil {
		_ = telemetry.Shutdown(ctx)
		return nil, apperrors.NewStorageError("failed to prepare output directory", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		telemetry: telemetry,
		env:       env,
		runner:    operations.NewRunner(logger, telemetry.Metrics, telemetry.Tracer),
	}, nil
}

func (a *app) close(ctx context.Context) {
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.WarnContext(ctx, "Telemetry shutdown failed", slog.String("error", err.Error()))
	}
	_ = infrastructure.CloseLogFile()
}

// runProcedure sets up the environment, builds the procedure and runs it
func (o *rootOptions) runProcedure(cmd *cobra.Command, build func(a *app) operations.Procedure) error {
	a, err := o.setup(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	defer a.close(ctx)

	_, err = a.runner.Run(ctx, build(a))
	return err
}
