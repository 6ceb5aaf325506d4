package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/grovetools/rallylog/pkg/rallylog"
	"github.com/spf13/cobra"
)

// newSchemaCmd creates the `schema` command.
func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of a log file",
		Long: `Print the JSON schema describing the keys rallylog reads from a log.

Every key is optional. Rally runs also write "type", "input", "error" and the
meta/seed keys used by 'rallylog resume'.`,
		Args: cobra.NoArgs,
		// The schema does not depend on config or flags.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(rallylog.Schema(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal schema: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
