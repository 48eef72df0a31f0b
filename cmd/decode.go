package cmd

import (
	"io"
	"os"

	"github.com/jsphweid/miditok/apperr"
	"github.com/jsphweid/miditok/decoder"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const decodeUsage = "Usage: miditok decode <tokens.txt> [output.mid]"

func init() {
	rootCmd.AddCommand(decodeCmd)
}

var decodeCmd = &cobra.Command{
	Use:   "decode <tokens.txt|-> [output.mid]",
	Short: "Converts tokens to a midi file",
	Long:  `Converts tokens to a midi file. Reads stdin when the token path is "-".`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cfg.Codec.Output
		if len(args) == 2 {
			out = args[1]
		}
		return decode(args[0], out)
	},
}

func readTokens(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), errors.Wrap(err, "could not read stdin")
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", errors.Wrap(apperr.ErrFileNotFound, path)
	}
	return string(data), errors.Wrapf(err, "could not read %v", path)
}

func decode(tokensPath string, out string) error {
	tokens, err := readTokens(tokensPath)
	if err != nil {
		return err
	}

	if err := decoder.DecodeToFile(tokens, out); err != nil {
		if errors.Is(err, apperr.ErrEmptyInput) {
			logrus.Error(decodeUsage)
		}
		return err
	}

	logrus.WithField("path", out).Info("Created MIDI")
	return nil
}
