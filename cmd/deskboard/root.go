package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jask/deskboard/internal/config"
	"github.com/jask/deskboard/internal/dashboard"
	"github.com/jask/deskboard/internal/database/repository"
	"github.com/jask/deskboard/internal/layout"
	"github.com/jask/deskboard/internal/logging"
	"github.com/jask/deskboard/internal/tui"
	"github.com/jask/deskboard/internal/widgets"
)

// env is what every command starts from: config, logger and the opened
// layout slot.
type env struct {
	cfg     config.Config
	logger  *logging.Logger
	storage layout.Storage
	closer  io.Closer
}

func (e *env) Close() {
	_ = e.closer.Close()
	_ = e.logger.Close()
}

func setup(configPath string) (*env, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	storage, closer, err := openStorage(cfg.Storage)
	if err != nil {
		_ = logger.Close()
		return nil, err
	}
	logger.Debug("storage ready", "driver", cfg.Storage.Driver, "path", cfg.Storage.Path)
	return &env{cfg: cfg, logger: logger, storage: storage, closer: closer}, nil
}

func (e *env) store(ctx context.Context) *layout.Store {
	return layout.Load(ctx, e.storage, e.cfg.Storage.LayoutKey, e.logger.Logger)
}

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:   "deskboard",
		Short: "Terminal dashboard of rearrangeable widgets",
		Long: `Deskboard shows a grid of widgets (clock, weather, todo list, notes).
Toggle edit mode and drag a widget onto the left or right half of another one
to move it there. The order is saved and restored on the next start.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd.Context(), configPath)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $HOME/.config/deskboard/config.toml)")
	root.AddCommand(newLayoutCmd(&configPath), newStoreCmd(&configPath), newConfigCmd(&configPath))
	return root
}

func runDashboard(ctx context.Context, configPath string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := setup(configPath)
	if err != nil {
		return err
	}
	defer e.Close()

	loc, err := e.cfg.Location()
	if err != nil {
		e.logger.Warn("using local timezone", "err", err)
	}
	wenv := widgets.DefaultEnv()
	wenv.Location = loc
	wenv.TimeFormat = e.cfg.UI.TimeFormat
	wenv.DateFormat = e.cfg.UI.DateFormat
	wenv.ClockInterval = e.cfg.Clock.Interval
	wenv.WeatherLocation = e.cfg.Weather.Location
	wenv.WeatherInterval = e.cfg.Weather.Interval
	wenv.MinTemp = e.cfg.Weather.MinTemp
	wenv.MaxTemp = e.cfg.Weather.MaxTemp
	wenv.MarkdownStyle = e.cfg.UI.MarkdownStyle
	wenv.Logger = e.logger.Logger

	board := dashboard.NewBoard(e.store(ctx), e.cfg.UI.EditGate, e.logger.Logger)
	app := tui.New(ctx, board, widgets.NewRegistry(), wenv, tui.Options{
		Columns:       e.cfg.UI.Columns,
		LeaveDebounce: e.cfg.Drag.LeaveDebounce,
	}, e.logger.Logger)

	e.logger.Info("dashboard started", "order", board.Layout().IDs())
	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run dashboard: %w", err)
	}
	return nil
}

func newLayoutCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or change the saved widget order",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the layout the dashboard would start with",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(cmd, *configPath, func(ctx context.Context, e *env) error {
					l := e.store(ctx).Layout()
					out, err := json.MarshalIndent(l, "", "  ")
					if err != nil {
						return err
					}
					if _, err := fmt.Fprintln(cmd.OutOrStdout(), string(out)); err != nil {
						return err
					}
					warnUnknown(cmd.ErrOrStderr(), widgets.NewRegistry(), l)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Save the default layout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(cmd, *configPath, func(ctx context.Context, e *env) error {
					if err := e.store(ctx).Reset(ctx); err != nil {
						return err
					}
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "layout reset to default")
					return err
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the saved layout",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withEnv(cmd, *configPath, func(ctx context.Context, e *env) error {
					if err := e.storage.Delete(ctx, e.cfg.Storage.LayoutKey); err != nil {
						return fmt.Errorf("clear layout: %w", err)
					}
					e.logger.Info("layout cleared", "key", e.cfg.Storage.LayoutKey)
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "saved layout removed")
					return err
				})
			},
		},
	)
	return cmd
}

// warnUnknown lists descriptors the dashboard will leave blank.
func warnUnknown(w io.Writer, r *widgets.Registry, l layout.Layout) {
	for _, d := range l {
		if r.Known(d.Type) {
			continue
		}
		msg := fmt.Sprintf("warning: %s has unknown type %q and renders empty", d.ID, d.Type)
		if s, ok := widgets.Suggest(d.Type); ok {
			msg += fmt.Sprintf(" (did you mean %q?)", s)
		}
		fmt.Fprintln(w, msg)
	}
}

func withEnv(cmd *cobra.Command, configPath string, fn func(context.Context, *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := setup(configPath)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(ctx, e)
}

func newConfigCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			path := *configPath
			if path == "" {
				path = config.DefaultPath()
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "wrote", path)
			return err
		},
	})
	return cmd
}

// entryLister is implemented by backends that can enumerate their slots.
type entryLister interface {
	List(ctx context.Context) ([]repository.Entry, error)
}

func newStoreCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Inspect the key/value store behind the layout",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List stored keys with their last update time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, *configPath, func(ctx context.Context, e *env) error {
				lister, ok := e.storage.(entryLister)
				if !ok {
					return fmt.Errorf("storage driver %q cannot list entries", e.cfg.Storage.Driver)
				}
				entries, err := lister.List(ctx)
				if err != nil {
					return fmt.Errorf("list entries: %w", err)
				}
				out := cmd.OutOrStdout()
				for _, en := range entries {
					fmt.Fprintf(out, "%s\t%s\t%d bytes\n", en.Key, en.UpdatedAt.Format(time.RFC3339), len(en.Value))
				}
				return nil
			})
		},
	})
	return cmd
}
