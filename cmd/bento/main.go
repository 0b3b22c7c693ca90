package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/bentokit/bento"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
		showFPS    bool
	)
	cfg := bento.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "bento",
		Short: "bento renders an animated bento-box grid",
		Long: `bento procedurally subdivides a window into a bento-box grid of panels
and animates them with a spring physics simulation: hovering a panel expands
it while its neighbors compress and ripple.

Click to regenerate the layout, press F to toggle the FPS overlay. Physics
tuning knobs can be loaded from a TOML file with --config; explicit flags
override file values.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := charmlog.NewWithOptions(os.Stderr, charmlog.Options{
				ReportTimestamp: true,
				TimeFormat:      "15:04:05.00",
				Level:           level,
			})

			// Apply in order: defaults, config file, explicit flags.
			flagCfg := cfg
			if configPath != "" {
				data, err := os.ReadFile(configPath)
				if err != nil {
					return fmt.Errorf("read config: %w", err)
				}
				cfg = bento.DefaultConfig()
				if err := toml.Unmarshal(data, &cfg); err != nil {
					return fmt.Errorf("parse config %s: %w", configPath, err)
				}
				logger.Debug("loaded config file", "path", configPath)
			}
			overrideChanged(cmd, &cfg, &flagCfg)

			app, err := bento.NewApp(cfg)
			if err != nil {
				return err
			}
			g := app.Grid()
			logger.Info("generated layout",
				"cells", len(g.Cells),
				"edges", len(g.Edges),
				"diagonals", len(g.Diagonals),
				"size", fmt.Sprintf("%gx%g", cfg.Width, cfg.Height))

			return bento.Run(app, bento.RunConfig{
				Title:   "bento",
				Width:   int(cfg.Width),
				Height:  int(cfg.Height),
				ShowFPS: showFPS,
			})
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "path to a bento.toml tuning file")
	f.BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	f.BoolVar(&showFPS, "fps", false, "show the FPS overlay")
	f.Float64Var(&cfg.Width, "width", cfg.Width, "container width in pixels")
	f.Float64Var(&cfg.Height, "height", cfg.Height, "container height in pixels")
	f.IntVar(&cfg.Depth, "depth", cfg.Depth, "maximum subdivision depth")
	f.Float64Var(&cfg.MinCellSize, "min-cell", cfg.MinCellSize, "minimum rest cell dimension in pixels")
	f.Float64Var(&cfg.Gap, "gap", cfg.Gap, "visual gap inset per cell side in pixels")
	f.IntVar(&cfg.DiagonalCount, "diagonals", cfg.DiagonalCount, "number of diagonally-clipped cell pairs")
	f.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "layout seed (0 = random each regeneration)")
	f.Float64Var(&cfg.HoverScale, "hover-scale", cfg.HoverScale, "expansion factor for the hovered cell")
	return cmd
}

// overrideChanged copies every flag-bound field the user set explicitly from
// flagCfg into cfg, so flags win over the config file.
func overrideChanged(cmd *cobra.Command, cfg, flagCfg *bento.Config) {
	set := map[string]func(){
		"width":       func() { cfg.Width = flagCfg.Width },
		"height":      func() { cfg.Height = flagCfg.Height },
		"depth":       func() { cfg.Depth = flagCfg.Depth },
		"min-cell":    func() { cfg.MinCellSize = flagCfg.MinCellSize },
		"gap":         func() { cfg.Gap = flagCfg.Gap },
		"diagonals":   func() { cfg.DiagonalCount = flagCfg.DiagonalCount },
		"seed":        func() { cfg.Seed = flagCfg.Seed },
		"hover-scale": func() { cfg.HoverScale = flagCfg.HoverScale },
	}
	for name, apply := range set {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
}
