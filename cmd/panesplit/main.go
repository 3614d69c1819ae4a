package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"panesplit/internal/config"
	"panesplit/internal/logging"
	"panesplit/internal/pty"
	"panesplit/internal/telemetry"
	"panesplit/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:   "panesplit [first-file] [second-file]",
		Short: "Show two files or command outputs side by side with a draggable divider",
		Long: `panesplit splits the terminal into two regions. Drag the divider with the
mouse to resize them; tab moves keyboard focus, SPC o switches between a
horizontal and a vertical split, q quits.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			v := config.New(configFile)
			if err := bindFlags(v.BindPFlag, cmd.Flags()); err != nil {
				return err
			}
			if len(args) > 0 {
				v.Set("first.file", args[0])
			}
			if len(args) > 1 {
				v.Set("second.file", args[1])
			}
			cfg, err := config.Load(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "config file (default $XDG_CONFIG_HOME/panesplit/panesplit.toml)")
	f.String("axis", "horizontal", "split axis: horizontal or vertical")
	f.Int("first-min", ui.DefaultMinSize, "minimum size of the first region")
	f.Int("second-min", ui.DefaultMinSize, "minimum size of the second region")
	f.String("divider-color", "", "divider line color (ANSI number or #hex)")
	f.String("cursor", "", "pointer shape reported while dragging")
	f.String("first-cmd", "", "command whose output fills the first region")
	f.String("second-cmd", "", "command whose output fills the second region")
	f.String("log-file", "", "write logs to this file")
	f.String("log-level", "info", "log level: trace, debug, info, warn, error")
	return cmd
}

// flagKeys maps flags to config keys.
var flagKeys = map[string]string{
	"axis":          "axis",
	"first-min":     "first_min",
	"second-min":    "second_min",
	"divider-color": "divider.color",
	"cursor":        "divider.cursor",
	"first-cmd":     "first.command",
	"second-cmd":    "second.command",
	"log-file":      "log.file",
	"log-level":     "log.level",
}

func bindFlags(bind func(string, *pflag.Flag) error, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		if err := bind(key, flags.Lookup(name)); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config) error {
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Format = cfg.Log.Format
	logCfg.File = cfg.Log.File
	log, closeLog, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer closeLog()

	shutdown, err := telemetry.Setup(ctx, telemetry.Config{
		Endpoint:    cfg.Telemetry.Endpoint,
		ServiceName: cfg.Telemetry.ServiceName,
		Insecure:    cfg.Telemetry.Insecure,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Warn().Err(err).Msg("telemetry shutdown")
		}
	}()

	axis, err := ui.ParseAxis(cfg.Axis)
	if err != nil {
		return err
	}
	runner := pty.CreackPTY{}
	first, err := newRegion(cfg.First, runner, "first", placeholderFirst)
	if err != nil {
		return err
	}
	second, err := newRegion(cfg.Second, runner, "second", placeholderSecond)
	if err != nil {
		closeRegion(first)
		return err
	}

	splitter := ui.NewSplitter(first, second, ui.Options{
		Axis:         axis,
		FirstMin:     cfg.FirstMin,
		SecondMin:    cfg.SecondMin,
		Cursor:       cfg.Divider.Cursor,
		DividerColor: cfg.Divider.Color,
		FirstStyle:   paddedRegion,
		SecondStyle:  paddedRegion,
		Logger:       &log,
	})
	app := ui.NewAppModel(splitter)
	defer func() {
		if err := app.Close(); err != nil {
			log.Warn().Err(err).Msg("close regions")
		}
	}()

	log.Info().Str("axis", axis.String()).Msg("starting")
	p := tea.NewProgram(app.AsTeaModel(), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}

func paddedRegion(s lipgloss.Style) lipgloss.Style {
	return s.PaddingLeft(1)
}

func newRegion(rc config.RegionConfig, runner pty.Runner, title, placeholder string) (ui.View, error) {
	switch {
	case rc.Command != "":
		return ui.NewCommandView(runner, rc.Command), nil
	case rc.File != "":
		v, err := ui.NewFileView(rc.File)
		if err != nil {
			return nil, fmt.Errorf("%s region: %w", title, err)
		}
		return v, nil
	}
	return ui.NewTextView(title, placeholder), nil
}

func closeRegion(v ui.View) {
	if c, ok := v.(io.Closer); ok {
		_ = c.Close()
	}
}

const placeholderFirst = `Drag the divider with the mouse to resize.

Pass files as arguments or use --first-cmd / --second-cmd
to fill the regions.`

const placeholderSecond = `tab      focus the other region
SPC o    toggle horizontal / vertical
q        quit`
