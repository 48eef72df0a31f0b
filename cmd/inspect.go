package cmd

import (
	"fmt"

	"github.com/jsphweid/miditok/encoder"
	"github.com/jsphweid/miditok/midi"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/smf"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.mid>",
	Short: "Inspects a midi file",
	Long:  `Prints the tempo and the merged, time-sorted note list the encoder would see.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(args[0])
	},
}

func inspect(path string) error {
	s, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	fmt.Printf("tracks: %v\n", len(s.Tracks))
	if tf, ok := s.TimeFormat.(smf.MetricTicks); ok {
		fmt.Printf("ticks per quarter: %v\n", uint16(tf))
	}
	fmt.Printf("tempo: %v\n", encoder.ExtractTempo(s))

	notes := encoder.ExtractNotes(s)
	fmt.Printf("notes: %v\n", len(notes))
	for _, n := range notes {
		fmt.Printf("%-4v start: %.4f end: %.4f velocity: %v\n", n.Name, n.StartSec, n.EndSec, n.Velocity)
	}
	return nil
}
