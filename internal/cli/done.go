package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// DoneOptions holds flags for the done command.
type DoneOptions struct {
	*RootOptions
	JSONKeys bool
	All      bool
	Any      bool
}

// NewDoneCommand creates the done command.
func NewDoneCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DoneOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "done <namespace> <key>...",
		Short: "Check whether keys are done",
		Long: `Check whether keys are marked done in a namespace.

By default each key's status is reported. With --all or --any a single
aggregate answer is reported instead; the command exits non-zero when the
aggregate is false, so it composes in shell pipelines.`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.All && opts.Any {
				return fmt.Errorf("--all and --any are mutually exclusive")
			}

			ns := args[0]
			keys, err := parseKeys(args[1:], opts.JSONKeys)
			if err != nil {
				return err
			}

			d, err := opts.registry.Get(ns)
			if err != nil {
				return err
			}

			switch {
			case opts.All:
				all, err := d.AllDone(cmd.Context(), keys)
				if err != nil {
					return err
				}
				if err := writeSuccess(cmd.OutOrStdout(), opts.Format,
					fmt.Sprintf("%t", all),
					map[string]any{"namespace": ns, "all_done": all}); err != nil {
					return err
				}
				if !all {
					return ErrNotDone
				}
				return nil
			case opts.Any:
				anyDone, err := d.AnyDone(cmd.Context(), keys)
				if err != nil {
					return err
				}
				if err := writeSuccess(cmd.OutOrStdout(), opts.Format,
					fmt.Sprintf("%t", anyDone),
					map[string]any{"namespace": ns, "any_done": anyDone}); err != nil {
					return err
				}
				if !anyDone {
					return ErrNotDone
				}
				return nil
			default:
				var lines []string
				status := make([]bool, len(keys))
				for i, k := range keys {
					done, err := d.Done(cmd.Context(), k)
					if err != nil {
						return err
					}
					status[i] = done
					lines = append(lines, fmt.Sprintf("%s\t%t", args[1+i], done))
				}
				return writeSuccess(cmd.OutOrStdout(), opts.Format,
					strings.Join(lines, "\n"),
					map[string]any{"namespace": ns, "done": status})
			}
		},
	}

	cmd.Flags().BoolVar(&opts.JSONKeys, "json", false, "parse key arguments as JSON")
	cmd.Flags().BoolVar(&opts.All, "all", false, "report whether every key is done")
	cmd.Flags().BoolVar(&opts.Any, "any", false, "report whether any key is done")

	return cmd
}

// ErrNotDone is returned when --all/--any answers false, so callers exit
// non-zero without printing an error line. The status itself was already
// written to stdout.
var ErrNotDone = fmt.Errorf("not done")
