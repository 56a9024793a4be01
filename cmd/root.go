package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-cerealstore/internal/config"
	"github.com/deploymenttheory/go-cerealstore/pkg/app"
)

var (
	// Global output flags
	verbose    bool
	quiet      bool
	configPath string

	// Loaded in PersistentPreRunE
	settings *viper.Viper
	cfg      *config.Config
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cerealstore",
		Short: "Bounded multi-commodity storage simulator",
		Long: `cerealstore models a warehouse of fixed capacity that is split, on demand,
into fixed-capacity containers, one per commodity.

Each invocation works on a fresh, in-memory storage. Capacities come from
flags, a cerealstore-config.yaml file or CEREALSTORE_* environment variables.

Commands:
  exec         Run a plan of store/withdraw/remove steps
  demo         Walk through a short example
  commodities  List the known commodities
  config       Show the effective configuration`,
		Version:           "0.1.0-dev",
		SilenceUsage:      true,
		PersistentPreRunE: loadConfig,
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	flags.BoolVarP(&quiet, "quiet", "q", false, "suppress output except errors")
	flags.StringVar(&configPath, "config", "", "config file (default: search for cerealstore-config.yaml)")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.Float64("container-capacity", 10, "capacity of a single container")
	flags.Float64("storage-capacity", 20, "total capacity available for containers")
	flags.Bool("strict-allocation", false, "check for room for a new container on every store")

	root.AddCommand(
		newExecCmd(),
		newDemoCmd(),
		newCommoditiesCmd(),
		newConfigCmd(),
	)
	return root
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment, then lets explicitly set
// flags override both.
func loadConfig(cmd *cobra.Command, _ []string) error {
	settings = config.New(configPath)

	bindings := map[string]string{
		config.KeyOutputFormat:          "output",
		config.KeyContainerCapacity:     "container-capacity",
		config.KeyStorageCapacity:       "storage-capacity",
		config.KeyStrictAllocationCheck: "strict-allocation",
	}
	for key, flag := range bindings {
		f := cmd.Flags().Lookup(flag)
		if f == nil || !f.Changed {
			continue
		}
		if err := settings.BindPFlag(key, f); err != nil {
			return app.NewError(app.ErrCodeConfigLoad, "failed to bind --"+flag, err)
		}
	}

	loaded, err := config.Read(settings)
	if err != nil {
		return app.NewError(app.ErrCodeConfigLoad, "failed to load config", err)
	}
	cfg = loaded
	return nil
}

// newAppContext builds the application context from the global flags
func newAppContext(cmd *cobra.Command) *app.Context {
	ctx := app.NewContext()
	ctx.Context = cmd.Context()
	ctx.OutputFormat = cfg.OutputFormat
	ctx.Verbose = verbose
	ctx.Quiet = quiet
	ctx.SetOutput(cmd.OutOrStdout())
	ctx.SetLogOutput(cmd.ErrOrStderr())
	return ctx
}

// out returns where command results go; --quiet discards them
func out(cmd *cobra.Command) io.Writer {
	return newAppContext(cmd).Output()
}
