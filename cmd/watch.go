package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/grovetools/rallylog/pkg/watch"
	"github.com/spf13/cobra"
)

const clearScreen = "\033[H\033[2J"

func newWatchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Re-render the log whenever it changes",
		Long: `Render the log once, then render it again every time the file is written
or replaced. On a terminal the screen is cleared before each render.

If the directory holding the log does not exist there is nothing to watch:
the missing file is reported the same way 'rallylog show' reports it and the
command exits successfully.

Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, opts)
		},
	}
}

func runWatch(cmd *cobra.Command, opts *options) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	clearFirst := isTerminal(out)
	render := func() error {
		if clearFirst {
			fmt.Fprint(out, clearScreen)
		}
		return showLog(out, opts)
	}

	if err := render(); err != nil {
		return err
	}
	err := watch.File(ctx, opts.cfg.LogFile, render, watch.Options{Logger: opts.logger})
	if errors.Is(err, fs.ErrNotExist) {
		// The first render already printed the not-found message.
		opts.logger.WithError(err).Debug("Nothing to watch")
		return nil
	}
	return err
}
