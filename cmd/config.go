package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/deploymenttheory/go-cerealstore/internal/config"
	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

// Config Command
func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		Long: `Print the configuration after merging defaults, the config file,
CEREALSTORE_* environment variables and command line flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return showConfig(cmd)
		},
	}
}

type configView struct {
	ConfigFile            string  `json:"config_file,omitempty" yaml:"config_file,omitempty"`
	ContainerCapacity     float64 `json:"container_capacity" yaml:"container_capacity"`
	StorageCapacity       float64 `json:"storage_capacity" yaml:"storage_capacity"`
	MaxContainers         int     `json:"max_containers" yaml:"max_containers"`
	StrictAllocationCheck bool    `json:"strict_allocation_check" yaml:"strict_allocation_check"`
	OutputFormat          string  `json:"output_format" yaml:"output_format"`
}

func showConfig(cmd *cobra.Command) error {
	s, err := storage.New(cfg.ContainerCapacity, cfg.StorageCapacity, cfg.StorageOptions()...)
	if err != nil {
		return err
	}

	view := configView{
		ConfigFile:            settings.ConfigFileUsed(),
		ContainerCapacity:     cfg.ContainerCapacity,
		StorageCapacity:       cfg.StorageCapacity,
		MaxContainers:         s.MaxContainers(),
		StrictAllocationCheck: cfg.StrictAllocationCheck,
		OutputFormat:          cfg.OutputFormat,
	}

	w := out(cmd)
	switch cfg.OutputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(view)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		defer encoder.Close()
		encoder.SetIndent(2)
		return encoder.Encode(view)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	defer tw.Flush()
	if view.ConfigFile != "" {
		fmt.Fprintf(tw, "config file\t%s\n", view.ConfigFile)
	}
	fmt.Fprintf(tw, "%s\t%v\n", config.KeyContainerCapacity, view.ContainerCapacity)
	fmt.Fprintf(tw, "%s\t%v\n", config.KeyStorageCapacity, view.StorageCapacity)
	fmt.Fprintf(tw, "max_containers\t%d\n", view.MaxContainers)
	fmt.Fprintf(tw, "%s\t%t\n", config.KeyStrictAllocationCheck, view.StrictAllocationCheck)
	fmt.Fprintf(tw, "%s\t%s\n", config.KeyOutputFormat, view.OutputFormat)
	return nil
}
