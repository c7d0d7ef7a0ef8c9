package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milk9111/railgate/config"
)

var (
	configPath string
	levelPath  string
	debug      bool

	settings config.Settings
	logger   *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "railgate",
	Short: "Rail-driven lap gates: entities that appear only during part of each lap",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("level") {
			settings.Level = levelPath
		}
		if cmd.Flags().Changed("debug") {
			settings.Debug = debug
		}
		logger, err = settings.Logger()
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGame()
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "railgate.toml", "settings file (missing file uses defaults)")
	rootCmd.PersistentFlags().StringVar(&levelPath, "level", "", "level file; overrides the settings file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging and overlay")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
