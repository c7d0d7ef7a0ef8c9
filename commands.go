package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/milk9111/railgate/ecs"
	"github.com/milk9111/railgate/ecs/system"
	"github.com/milk9111/railgate/levels"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open the game window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame()
	},
}

var inspectProgress float32

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print which gates are active at a given lap progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(cmd.OutOrStdout(), settings.Level, inspectProgress)
	},
}

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Load the level and write its gate records back out as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		if exportOut != "" {
			f, err := os.Create(exportOut)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}
		return export(out, settings.Level)
	},
}

func init() {
	inspectCmd.Flags().Float32Var(&inspectProgress, "progress", 0, "lap progress to evaluate, in laps")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "write to file instead of stdout")
}

func runGame() error {
	ebiten.SetWindowSize(settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowTitle(settings.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game, err := NewGame(settings, logger)
	if err != nil {
		return err
	}
	defer game.Close()
	return ebiten.RunGame(game)
}

// headless builds a level with a gate system that has no render or physics
// sinks attached.
func headless(path string) (*levels.Level, map[string]ecs.Entity, *system.LapGateSystem, error) {
	lvl, err := levels.Load(path)
	if err != nil {
		return nil, nil, nil, err
	}
	w := ecs.NewWorld()
	gates := system.NewLapGateSystem(system.WithLogger(logger))
	named, err := levels.Build(w, lvl, gates)
	if err != nil {
		return nil, nil, nil, err
	}
	return lvl, named, gates, nil
}

func inspect(out io.Writer, path string, progress float32) error {
	_, named, gates, err := headless(path)
	if err != nil {
		return err
	}
	gates.Tick(progress)

	names := make([]string, 0, len(named))
	for name, e := range named {
		if _, ok := gates.ExportConfig(e); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "GATE\tMIN\tMAX\tACTIVE\n")
	for _, name := range names {
		cfg, _ := gates.ExportConfig(named[name])
		fmt.Fprintf(tw, "%s\t%g\t%g\t%t\n", name, cfg.MinProgress, cfg.MaxProgress, gates.Active(named[name]))
	}
	return tw.Flush()
}

func export(out io.Writer, path string) error {
	lvl, named, gates, err := headless(path)
	if err != nil {
		return err
	}
	data, err := levels.Marshal(levels.Export(lvl, named, gates))
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
