package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/grovetools/core/cli"
	"github.com/grovetools/rallylog/pkg/config"
	"github.com/grovetools/rallylog/pkg/logger"
	"github.com/grovetools/rallylog/pkg/rallylog"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// options carries the persistent flags and everything resolved from them
// before a subcommand runs. --verbose, --json and --config come from the
// standard command and are read through cli.GetOptions.
type options struct {
	file           string
	color          colorFlag
	separatorWidth int

	cfg    *config.Config
	logger *logrus.Logger
}

// NewRootCmd builds the rallylog command tree. Running it without a
// subcommand renders the log, same as `rallylog show`.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := cli.NewStandardCommand("rallylog", "Render conversation logs as readable text")
	cmd.Long = `Reads a JSON conversation log and prints every entry as a readable block.

The log is a JSON array of entries with optional "round", "who", "prompt" and
"output" keys. The path comes from --file, then log_file in the config, then
log.json. The config is the file named by --config, or else rallylog.yml or
rallylog.toml from the project directory layered over ~/.config/rallylog.`
	cmd.Args = cobra.NoArgs
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return opts.resolve(cmd)
	}
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runShow(cmd, opts)
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.file, "file", "f", "", "Path of the JSON log (default: log_file from config, else log.json)")
	flags.Var(&opts.color, "color", "When to style output: auto, always or never")
	flags.IntVar(&opts.separatorWidth, "separator-width", 0, "Number of dashes printed after each entry")

	cmd.AddCommand(newShowCmd(opts))
	cmd.AddCommand(newWatchCmd(opts))
	cmd.AddCommand(newBrowseCmd(opts))
	cmd.AddCommand(newResumeCmd(opts))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// Execute runs the root command. Errors are printed by cli.Execute.
func Execute() error {
	return cli.Execute(NewRootCmd())
}

// resolve layers flags over the config files.
func (o *options) resolve(cmd *cobra.Command) error {
	std := cli.GetOptions(cmd)
	o.logger = logger.New(cmd.ErrOrStderr(), std.Verbose, std.JSONOutput)

	cfg, err := o.loadConfig(std.ConfigFile)
	if err != nil {
		return err
	}

	if o.file != "" {
		cfg.LogFile = o.file
	}
	if o.color != "" {
		cfg.Color = config.ColorMode(o.color)
	}
	if cmd.Flags().Changed("separator-width") {
		if o.separatorWidth <= 0 {
			return fmt.Errorf("--separator-width must be positive, got %d", o.separatorWidth)
		}
		cfg.SeparatorWidth = o.separatorWidth
	}

	o.cfg = cfg
	o.logger.WithFields(logrus.Fields{
		"log_file":        cfg.LogFile,
		"color":           cfg.Color,
		"separator_width": cfg.SeparatorWidth,
	}).Debug("Resolved configuration")
	return nil
}

// loadConfig reads the file named by --config, or discovers the user and
// project files when it is empty.
func (o *options) loadConfig(path string) (*config.Config, error) {
	if path != "" {
		cfg, err := config.LoadPath(path)
		if err != nil {
			return nil, err
		}
		o.logger.WithField("path", path).Debug("Applied config file")
		return cfg, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	cfg, sources, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	for _, src := range sources {
		o.logger.WithField("path", src).Debug("Applied config file")
	}
	return cfg, nil
}

// load reads the configured log.
func (o *options) load() (*rallylog.Log, error) {
	log, err := rallylog.Load(o.cfg.LogFile)
	if err != nil {
		o.logger.WithError(err).Debug("Failed to load log")
		return nil, err
	}
	o.logger.WithFields(logrus.Fields{
		"path":    log.Path,
		"entries": len(log.Records),
	}).Debug("Loaded log")
	return log, nil
}

// renderOptions returns the layout for output written to w.
func (o *options) renderOptions(w io.Writer) rallylog.RenderOptions {
	ro := rallylog.RenderOptions{SeparatorWidth: o.cfg.SeparatorWidth}
	if o.useColor(w) {
		ro.Styles = rallylog.NewStyles(w)
	}
	return ro
}

func (o *options) useColor(w io.Writer) bool {
	switch o.cfg.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		return isTerminal(w)
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
