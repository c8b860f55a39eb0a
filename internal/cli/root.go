// Package cli implements the symgeo command line.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/njchilds90/symgeo"
	"github.com/njchilds90/symgeo/internal/config"
	"github.com/njchilds90/symgeo/internal/logging"
)

// app is the state shared by every subcommand once the root pre-run has
// loaded the configuration.
type app struct {
	cfgPath string
	format  string

	cfg     *config.Config
	logger  *zap.Logger
	session *symgeo.Session
}

func Execute() {
	cmd := newRootCmd()
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "symgeo",
		Short: "symgeo - exact symbolic geometry",
		Long: `symgeo derives exact attributes of points, lines and conic sections.

Coordinates and eccentricities may be rationals (3, -1/2, 0.25), infinity (oo)
or variable names. Facts about variables are declared with --assume.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgPath, "config", "", "Path to a YAML configuration file")
	cmd.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: text, latex or json (overrides config)")

	cmd.AddCommand(conicCmd(a))
	cmd.AddCommand(lineCmd(a))
	cmd.AddCommand(serveCmd(a))
	cmd.AddCommand(configCmd(a))
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = a.format
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.session = a.newSession()
	logger.Debug("configuration loaded",
		zap.String("config", a.cfgPath),
		zap.String("session", cfg.Session.Name),
		zap.String("format", cfg.Output.Format))
	return nil
}

func (a *app) newSession() *symgeo.Session {
	return symgeo.NewSession(
		symgeo.WithSessionName(a.cfg.Session.Name),
		symgeo.WithLogger(a.logger),
	)
}
