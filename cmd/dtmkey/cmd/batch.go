package cmd

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/batch"
	"github.com/spf13/cobra"
)

func newBatchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "batch",
		Short: "Split encoded blobs of concatenated keys",
	}

	var full, logical bool
	short := &cobra.Command{
		Use:   "short <blob>",
		Short: "Split a blob of 20-byte short keys, one key per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			keys, err := batch.FromShortKeyArray(args[0], full, logical)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), k)
			}
			return nil
		},
	}
	short.Flags().BoolVar(&full, "full", false, "Emit full keys with a flag word")
	short.Flags().BoolVarP(&logical, "logical", "l", false, "Use the logical flag word with --full")

	xrefs := &cobra.Command{
		Use:   "xref <blob>",
		Short: "Split a blob of 40-byte xref records into model and element keys",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			models, elements, err := batch.FromXrefKeyArray(args[0])
			if err != nil {
				return err
			}
			for i := range models {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", models[i], elements[i])
			}
			return nil
		},
	}

	c.AddCommand(short, xrefs)
	return c
}
