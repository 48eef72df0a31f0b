package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jsphweid/miditok/decoder"
	"github.com/spf13/cobra"
)

var reportJSON bool

func init() {
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "print the report as json")
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <tokens.txt|->",
	Short: "Creates a report",
	Long:  `Creates a report on a token stream: header, note counts and anything decode would drop.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return report(args[0])
	},
}

func report(path string) error {
	tokens, err := readTokens(path)
	if err != nil {
		return err
	}
	r, err := decoder.Report(tokens)
	if err != nil {
		return err
	}

	if reportJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}

	fmt.Printf("tempo: %v\n", r.BPM)
	fmt.Printf("timebase: %v\n", r.Timebase)
	fmt.Printf("lines: %v\n", r.NumLines)
	fmt.Printf("note on / note off: %v / %v\n", r.NumOn, r.NumOff)
	fmt.Printf("notes decoded: %v\n", r.NumNotes)
	fmt.Printf("ticks to last event: %v\n", r.TotalTicks)
	fmt.Printf("notes without NOTE_START/NOTE_END: %v\n", r.MissingPrecise)
	fmt.Printf("unmatched NOTE_OFF (dropped): %v\n", r.UnmatchedOffs)
	return nil
}
