package cmd

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/xref"
	"github.com/spf13/cobra"
)

func newXrefCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "xref",
		Short: "Build and parse cross-model reference keys",
	}

	c.AddCommand(&cobra.Command{
		Use:   "decode <xref>",
		Short: "Print the model URN and element key of an xref",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := xref.Parse(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", x.ModelURN, x.ElementKey)
			return nil
		},
	})

	c.AddCommand(&cobra.Command{
		Use:   "make <model-urn> <element-key>",
		Short: "Build the xref of an element inside a model",
		Example: `  dtmkey xref make urn:adsk.dtm:AAAAAAAAAAAAAAAAAAAAAA AQAAAAECAwQFBgcICQoLDA0ODxAREhMU`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := xref.Make(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	})

	return c
}
