package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dori/taskboard/internal/board"
	"github.com/dori/taskboard/internal/client"
	"github.com/dori/taskboard/internal/config"
	"github.com/dori/taskboard/internal/db"
	"github.com/dori/taskboard/internal/notify"
	"github.com/dori/taskboard/internal/ui"
	"github.com/dori/taskboard/internal/ui/theme"
)

var version = "0.1.0"

// rootOptions are the flags shared by every command
type rootOptions struct {
	configPath string
	serverURL  string
	view       string
	theme      string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "taskboard",
		Short: "A task board with table and kanban views",
		Long: `taskboard - keep a task list in a table or on a kanban board.

Run without a command to open the board. The board talks to a task service;
start one with "taskboard serve".`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), opts)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath(), "config file")
	cmd.PersistentFlags().StringVar(&opts.serverURL, "server", "", "task service URL (overrides server.url)")
	cmd.Flags().StringVar(&opts.view, "view", "", "starting view (table, kanban)")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme ("+strings.Join(themeNames(), ", ")+")")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newAddCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskboard v%s\n", version)
		},
	}
}

// loadConfig reads the config file and applies the shared flag overrides
func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.Load(opts.configPath, config.Default(db.DefaultDBPath()))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config %s: %w", opts.configPath, err)
	}
	if opts.serverURL != "" {
		cfg.Server.URL = opts.serverURL
	}
	if opts.view != "" {
		cfg.UI.DefaultView = opts.view
	}
	if opts.theme != "" {
		cfg.UI.Theme = opts.theme
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func newClient(cfg config.Config, opts ...client.Option) (*client.Client, error) {
	opts = append([]client.Option{client.WithTimeout(cfg.Server.Timeout.Std())}, opts...)
	return client.New(cfg.Server.URL, opts...)
}

func runTUI(ctx context.Context, opts *rootOptions) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	// The terminal belongs to the board; logs only go to a file.
	logger, closeLog, err := newLogger(io.Discard, cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	view := board.ViewTable
	if cfg.UI.DefaultView != "" {
		if view, err = board.ParseViewName(cfg.UI.DefaultView); err != nil {
			return err
		}
	}
	th := theme.Current.Theme
	if cfg.UI.Theme != "" {
		var ok bool
		if th, ok = theme.ByName(cfg.UI.Theme); !ok {
			return fmt.Errorf("unknown theme %q (available: %s)", cfg.UI.Theme, strings.Join(themeNames(), ", "))
		}
	}
	theme.SetTheme(th)

	c, err := newClient(cfg, client.WithLogger(logger))
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	b := board.New(c,
		board.WithLogger(logger),
		board.WithContext(ctx),
		board.WithView(view),
		board.WithDueSoonDays(cfg.UI.DueSoonDays),
		board.WithAlertHook(func(msg string) {
			logger.Warn("alert shown", "message", msg)
		}),
	)
	model := ui.NewRootModel(b,
		ui.WithLogger(logger),
		ui.WithNotifier(notify.NewNotifier(cfg.Notify.Enabled)),
	)

	logger.Info("starting board", "server", c.BaseURL(), "view", view, "theme", th.Name)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logger.Error("board terminated", "err", err)
		return err
	}
	return nil
}

func themeNames() []string {
	var names []string
	for _, t := range theme.Available() {
		names = append(names, t.Name)
	}
	return names
}
