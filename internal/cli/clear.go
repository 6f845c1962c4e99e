package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// NewClearCommand creates the clear command.
func NewClearCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear <namespace>",
		Short: "Remove every done marker in a namespace",
		Long: `Remove every done marker in a namespace.

The backing table or file is deleted; it is recreated automatically the
next time a key is marked.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := args[0]
			d, err := rootOpts.registry.Get(ns)
			if err != nil {
				return err
			}
			if err := d.Clear(cmd.Context()); err != nil {
				return err
			}
			slog.Debug("cleared", "namespace", ns)
			return writeSuccess(cmd.OutOrStdout(), rootOpts.Format,
				fmt.Sprintf("cleared %s", ns),
				map[string]any{"namespace": ns, "cleared": true})
		},
	}

	return cmd
}
