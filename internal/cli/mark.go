package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

// MarkOptions holds flags for the mark command.
type MarkOptions struct {
	*RootOptions
	JSONKeys bool
}

// NewMarkCommand creates the mark command.
func NewMarkCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MarkOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "mark <namespace> <key>...",
		Short: "Mark keys as done",
		Long: `Mark one or more keys as done in a namespace.

Marking an already-marked key is a no-op.

Example:
  dones mark imports batch-2026-08-30
  dones mark imports --json '{"shard":3,"day":"2026-08-30"}'`,
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
				if err := d.Mark(cmd.Context(), k); err != nil {
					return err
				}
				slog.Debug("marked", "namespace", ns, "key", k)
			}
			return writeSuccess(cmd.OutOrStdout(), opts.Format,
				fmt.Sprintf("marked %d key(s) in %s", len(keys), ns),
				map[string]any{"namespace": ns, "marked": len(keys)})
		},
	}

	cmd.Flags().BoolVar(&opts.JSONKeys, "json", false, "parse key arguments as JSON")

	return cmd
}
