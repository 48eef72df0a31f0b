package cmd

import (
	"strconv"
	"sync/atomic"

	"github.com/jsphweid/miditok/encoder"
	"github.com/jsphweid/miditok/util"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var encodeDirTimebase int

func init() {
	encodeDirCmd.Flags().IntVarP(&encodeDirTimebase, "timebase", "t", 0, "ticks per beat (defaults to the config)")
	rootCmd.AddCommand(encodeDirCmd)
}

var encodeDirCmd = &cobra.Command{
	Use:   "encode-dir <dir> [maxNum]",
	Short: "Encodes every midi file under a directory",
	Long:  `Encodes every midi file under a directory, writing name.tokens next to each name.mid.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			arg1, err := strconv.Atoi(args[1])
			if err != nil {
				return errors.Wrap(err, "maxNum must be a number")
			}
			maxNum = arg1
		}
		_, err := encodeDir(args[0], maxNum, timebaseOrDefault(encodeDirTimebase), cfg.Codec.Concurrency)
		return err
	},
}

// encodeDir returns how many files were encoded. Files that fail are logged and skipped.
func encodeDir(dir string, maxNum int, timebase int, concurrency int) (int, error) {
	paths, err := util.GatherAllMidiPaths(dir, maxNum)
	if err != nil {
		return 0, err
	}

	var processed, encoded int64
	var g errgroup.Group
	g.SetLimit(util.Max(concurrency, 1))
	for _, path := range paths {
		path := path
		g.Go(func() error {
			n := atomic.AddInt64(&processed, 1)
			log := logrus.WithField("path", path)
			log.Infof("Processing %v of %v midi files", n, len(paths))

			lines, err := encoder.EncodeFileTo(path, util.TokensPath(path), timebase)
			if err != nil {
				log.WithError(err).Warn("Skipping")
				return nil
			}
			atomic.AddInt64(&encoded, 1)
			log.WithField("lines", lines).Debug("encoded")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}

	logrus.WithFields(logrus.Fields{"found": len(paths), "encoded": encoded}).Info("done")
	return int(encoded), nil
}
