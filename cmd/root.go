package cmd

import (
	"context"

	"github.com/jsphweid/miditok/config"
	"github.com/jsphweid/miditok/constants"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg        = config.NewDefaultConfig()
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "miditok",
	Short: "MIDI <-> text token codec",
	Long: `Converts MIDI files into a flat stream of text tokens (TEMPO, TIMEBASE,
TIME_SHIFT, NOTE_ON, NOTE_START, NOTE_END, NOTE_OFF) and back.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", constants.GetConfigPath(), "path to a yaml config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "overrides log_level from the config")
}

func setup() error {
	if err := config.LoadOptional(configPath, cfg); err != nil {
		return err
	}
	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(parsed)
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.ExecuteContext(context.Background()))
}
