package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jsphweid/miditok/encoder"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	encodeTimebase int
	encodeOut      string
)

func init() {
	encodeCmd.Flags().IntVarP(&encodeTimebase, "timebase", "t", 0, "ticks per beat (defaults to the config)")
	encodeCmd.Flags().StringVarP(&encodeOut, "out", "o", "", "write tokens to this file instead of stdout")
	rootCmd.AddCommand(encodeCmd)
}

var encodeCmd = &cobra.Command{
	Use:   "encode <file.mid>",
	Short: "Converts a midi file to tokens",
	Long:  `Converts a midi file to tokens. All tracks are merged into one stream.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return encode(args[0], timebaseOrDefault(encodeTimebase), encodeOut)
	},
}

func timebaseOrDefault(flag int) int {
	if flag > 0 {
		return flag
	}
	return cfg.Codec.Timebase
}

func encode(path string, timebase int, out string) error {
	resolved, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrap(err, "could not resolve path")
	}

	tokens, err := encoder.EncodeFile(resolved, timebase)
	if err != nil {
		logrus.WithField("path", resolved).WithError(err).Error("could not encode")
		return err
	}

	if out == "" {
		fmt.Println(tokens)
		return nil
	}
	if err := os.WriteFile(out, []byte(tokens), 0644); err != nil {
		return errors.Wrapf(err, "Write failed for tokens file: %v", out)
	}
	logrus.WithFields(logrus.Fields{"midi": resolved, "tokens": out}).Info("Created tokens")
	return nil
}
