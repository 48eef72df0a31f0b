package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jsphweid/miditok/encoder"
	"github.com/jsphweid/miditok/util"
	"github.com/jsphweid/miditok/watch"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var watchTimebase int

func init() {
	watchCmd.Flags().IntVarP(&watchTimebase, "timebase", "t", 0, "ticks per beat (defaults to the config)")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Encodes midi files as they appear",
	Long:  `Watches a directory and writes name.tokens whenever name.mid is created or changed.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := cfg.Watch.Dir
		if len(args) == 1 {
			dir = args[0]
		}
		timebase := timebaseOrDefault(watchTimebase)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		log := logrus.WithField("cmd", "watch")
		return watch.Watch(ctx, dir, cfg.Watch.Debounce, func(path string) {
			out := util.TokensPath(path)
			lines, err := encoder.EncodeFileTo(path, out, timebase)
			if err != nil {
				log.WithField("path", path).WithError(err).Warn("Skipping")
				return
			}
			log.WithFields(logrus.Fields{"midi": path, "tokens": out, "lines": lines}).Info("Created tokens")
		}, log)
	},
}
