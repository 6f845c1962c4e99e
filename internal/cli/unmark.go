package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// UnmarkOptions holds flags for the unmark command.
type UnmarkOptions struct {
	*RootOptions
	JSONKeys bool
}

// NewUnmarkCommand creates the unmark command.
func NewUnmarkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &UnmarkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "unmark <namespace> <key>...",
		Short: "Mark keys as not done",
		Long: `Mark one or more keys as not done in a namespace.

Unmarking a key that was never marked is a no-op.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ns := args[0]
			keys, err := parseKeys(args[1:], opts.JSONKeys)
			if err != nil {
				return err
			}

			d, err := opts.registry.Get(ns)
			if err != nil {
				return err
			}
			for _, k := range keys {
				if err := d.Unmark(cmd.Context(), k); err != nil {
					return err
				}
				slog.Debug("unmarked", "namespace", ns, "key", k)
			}
			return writeSuccess(cmd.OutOrStdout(), opts.Format,
				fmt.Sprintf("unmarked %d key(s) in %s", len(keys), ns),
				map[string]any{"namespace": ns, "unmarked": len(keys)})
		},
	}

	cmd.Flags().BoolVar(&opts.JSONKeys, "json", false, "parse key arguments as JSON")

	return cmd
}
