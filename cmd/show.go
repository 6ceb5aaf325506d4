package cmd

import (
	"io"

	"github.com/grovetools/rallylog/pkg/rallylog"
	"github.com/spf13/cobra"
)

func newShowCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print every log entry",
		Long: `Print every entry of the log as a block:

  === Round <round>: [<who>] ===
  Prompt:
  <prompt>
  Output:
  <output>
  --------------------------------------------------

Entries without "round" show their zero-based position, entries without
"who" show "user", and empty prompts or outputs are left out. A missing or
malformed log prints a single error line and nothing else.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, opts)
		},
	}
}

func runShow(cmd *cobra.Command, opts *options) error {
	return showLog(cmd.OutOrStdout(), opts)
}

// showLog loads the log and renders it to out. Recognised load failures are
// printed to out and are not errors.
func showLog(out io.Writer, opts *options) error {
	log, err := opts.load()
	if err != nil {
		if handled, rerr := rallylog.Report(out, err); handled || rerr != nil {
			return rerr
		}
		return err
	}
	return rallylog.Render(out, log.Entries(), opts.renderOptions(out))
}
