package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/agenthands/dtmkey/pkg/dtmkey"
	"github.com/spf13/cobra"
)

func newIndexCmd(opts *options) *cobra.Command {
	c := &cobra.Command{
		Use:   "index",
		Short: "Maintain the local index of cross-model references",
	}

	// withIndex opens the index for the duration of one command.
	withIndex := func(cmd *cobra.Command, fn func(ctx context.Context, ix dtmkey.Index) error) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ix, err := dtmkey.OpenIndex(ctx, *opts.cfg)
		if err != nil {
			return err
		}
		defer ix.Close()
		return fn(ctx, ix)
	}

	var label string
	var tags map[string]string
	add := &cobra.Command{
		Use:   "add <xref>...",
		Short: "Index cross-model references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				for _, arg := range args {
					e, err := ix.Add(ctx, arg, dtmkey.AddMeta{Label: label, Tags: tags})
					if err != nil {
						return fmt.Errorf("%s: %w", arg, err)
					}
					printEntry(cmd.OutOrStdout(), e)
				}
				return nil
			})
		},
	}
	add.Flags().StringVar(&label, "label", "", "Label stored with each reference")
	add.Flags().StringToStringVar(&tags, "tag", nil, "Tag stored with each reference (key=value, repeatable)")

	var importLabel string
	importCmd := &cobra.Command{
		Use:   "import <xref-blob>",
		Short: "Index every record of an xref array blob",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				n, err := ix.AddBatch(ctx, args[0], dtmkey.AddMeta{Label: importLabel})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "indexed %d references\n", n)
				return nil
			})
		},
	}
	importCmd.Flags().StringVar(&importLabel, "label", "", "Label stored with each reference")

	ls := &cobra.Command{
		Use:   "ls <model-urn>",
		Short: "List indexed references into a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				entries, err := ix.Elements(ctx, args[0])
				if err != nil {
					return err
				}
				for _, e := range entries {
					printEntry(cmd.OutOrStdout(), e)
				}
				return nil
			})
		},
	}

	get := &cobra.Command{
		Use:   "get <xref>",
		Short: "Show one indexed reference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				e, err := ix.Lookup(ctx, args[0])
				if err != nil {
					return err
				}
				printEntry(cmd.OutOrStdout(), e)
				return nil
			})
		},
	}

	rm := &cobra.Command{
		Use:   "rm <xref>...",
		Short: "Remove indexed references",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				for _, arg := range args {
					if err := ix.Remove(ctx, arg); err != nil {
						return fmt.Errorf("%s: %w", arg, err)
					}
				}
				return nil
			})
		},
	}

	resolve := &cobra.Command{
		Use:   "resolve <model-urn> <system-id>",
		Short: "Find the element key behind a system id",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withIndex(cmd, func(ctx context.Context, ix dtmkey.Index) error {
				element, err := ix.ResolveSystemID(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), element)
				return nil
			})
		},
	}

	c.AddCommand(add, importCmd, ls, get, rm, resolve)
	return c
}

func printEntry(w io.Writer, e dtmkey.Entry) {
	kind := "physical"
	if e.Logical {
		kind = "logical"
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", e.ModelURN, e.ElementKey, e.SystemID, kind, e.Label)
}
