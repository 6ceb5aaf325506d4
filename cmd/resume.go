package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/grovetools/rallylog/pkg/rallylog"
	"github.com/spf13/cobra"
)

func newResumeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Show where an interrupted rally should continue",
		Long: `Read a rally log (meta, seed and turn entries) and print the round and
speaker the rally should continue with, along with the text to send next.

The last turn with output and no error decides the state. A rally is
completed once the next round is past the configured number of rounds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResume(cmd, opts)
		},
	}
}

func runResume(cmd *cobra.Command, opts *options) error {
	out := cmd.OutOrStdout()

	log, err := opts.load()
	if err != nil {
		if handled, rerr := rallylog.Report(out, err); handled || rerr != nil {
			return rerr
		}
		return err
	}

	state, err := rallylog.ComputeResume(log.Records)
	if errors.Is(err, rallylog.ErrMissingMeta) || errors.Is(err, rallylog.ErrMissingSeed) {
		_, werr := fmt.Fprintf(out, "Error: %v\n", err)
		return werr
	}
	if err != nil {
		return err
	}

	return printResumeState(out, state)
}

func printResumeState(w io.Writer, s *rallylog.ResumeState) error {
	_, err := fmt.Fprintf(w, `status: %s
next_round: %d
next_who: %s
a: %s
b: %s
first: %s
rounds: %d
current_text:
%s
`, s.Status, s.NextRound, s.NextWho, s.Meta.A, s.Meta.B, s.Meta.First, s.Meta.Rounds, s.CurrentText)
	return err
}
