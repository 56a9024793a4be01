package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Walk through a short storage example",
		Long: `Create a storage from the configured capacities, print the amount of
BULGUR in the empty storage, store 7 PEAS and 9 BUCKWHEAT, then print the
storage contents.`,
		Args: cobra.NoArgs,
		RunE: runDemo,
	}
}

func runDemo(cmd *cobra.Command, _ []string) error {
	ctx := newAppContext(cmd)
	w := ctx.Output()

	s, err := storage.New(cfg.ContainerCapacity, cfg.StorageCapacity, cfg.StorageOptions()...)
	if err != nil {
		return err
	}
	ctx.Logf("Storage created: container capacity %v, storage capacity %v", s.ContainerCapacity(), s.StorageCapacity())

	fmt.Fprintln(w, storage.FormatQuantity(s.AmountOf(storage.Bulgur)))

	deposits := []struct {
		commodity storage.Commodity
		amount    float64
	}{
		{storage.Peas, 7},
		{storage.Buckwheat, 9},
	}
	for _, d := range deposits {
		overflow, err := s.Store(d.commodity, d.amount)
		if err != nil {
			return err
		}
		if overflow > 0 {
			fmt.Fprintf(w, "%s overflow: %s\n", d.commodity, storage.FormatQuantity(overflow))
		}
		ctx.Logf("Stored %v %s", d.amount, d.commodity)
	}

	fmt.Fprintln(w, s.String())
	return nil
}
