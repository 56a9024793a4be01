package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

// Commodities Command
func newCommoditiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "commodities",
		Short: "List the known commodities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := out(cmd)
			for _, c := range storage.Commodities() {
				fmt.Fprintln(w, c)
			}
			return nil
		},
	}
}
