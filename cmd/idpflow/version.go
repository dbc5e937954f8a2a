package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"idpflow/pkg/contracts"
)

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(contracts.GetVersionInfo())
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print version information as JSON")
	return cmd
}
