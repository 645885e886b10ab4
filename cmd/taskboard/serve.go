package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dori/taskboard/internal/app"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task service",
		Long: `Run the task service the board talks to.

Examples:
  taskboard serve
  taskboard serve --addr :8080 --db ./tasks.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Listen.Addr = addr
			}
			if dbPath != "" {
				cfg.Database.Path = dbPath
			}

			logger, closeLog, err := newLogger(cmd.ErrOrStderr(), cfg.Logging)
			if err != nil {
				return err
			}
			defer closeLog()

			a, err := app.New(cfg, logger)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return a.Server.ListenAndServe(ctx, cfg.Listen.Addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides listen.addr)")
	cmd.Flags().StringVar(&dbPath, "db", "", "sqlite database path (overrides database.path)")
	return cmd
}
