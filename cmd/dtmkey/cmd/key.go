package cmd

import (
	"fmt"

	"github.com/agenthands/dtmkey/pkg/elemkey"
	"github.com/agenthands/dtmkey/pkg/sysid"
	"github.com/spf13/cobra"
)

func newShortCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "short <full-key>...",
		Short: "Strip the flag word from full element keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				short, err := elemkey.ToShortKey(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), short)
			}
			return nil
		},
	}
}

func newFullCmd() *cobra.Command {
	var logical bool

	c := &cobra.Command{
		Use:   "full <short-key>...",
		Short: "Prefix short element keys with the physical or logical flag word",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				full, err := elemkey.ToFullKey(arg, logical)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), full)
			}
			return nil
		},
	}
	c.Flags().BoolVarP(&logical, "logical", "l", false, "Use the logical flag word")
	return c
}

func newSysIDCmd() *cobra.Command {
	var strict bool

	c := &cobra.Command{
		Use:   "sysid <full-key>...",
		Short: "Derive system ids from full element keys",
		Long: `Derive the compact system id of each full element key.

Keys that cannot be decoded are echoed back unchanged unless --strict is set.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, arg := range args {
				if !strict {
					fmt.Fprintln(cmd.OutOrStdout(), sysid.ToSystemID(arg))
					continue
				}
				id, err := sysid.Derive(arg)
				if err != nil {
					return fmt.Errorf("%s: %w", arg, err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
			}
			return nil
		},
	}
	c.Flags().BoolVar(&strict, "strict", false, "Fail on keys that cannot be decoded")
	return c
}
