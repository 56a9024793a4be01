package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

const (
	// EnvPrefix is prepended to every environment override, e.g. CEREALSTORE_CONTAINER_CAPACITY
	EnvPrefix = "CEREALSTORE"

	configName = "cerealstore-config"
)

// Keys shared with the command line flag bindings
const (
	KeyContainerCapacity     = "container_capacity"
	KeyStorageCapacity       = "storage_capacity"
	KeyStrictAllocationCheck = "strict_allocation_check"
	KeyOutputFormat          = "output_format"
)

// OutputFormats lists the accepted values of output_format
var OutputFormats = []string{"table", "json", "yaml"}

// Config holds the warehouse layout and presentation settings
type Config struct {
	ContainerCapacity     float64 `mapstructure:"container_capacity"`
	StorageCapacity       float64 `mapstructure:"storage_capacity"`
	StrictAllocationCheck bool    `mapstructure:"strict_allocation_check"`
	OutputFormat          string  `mapstructure:"output_format"`
}

// New returns a viper instance with defaults, search paths and env overrides set.
// An explicit path replaces the search paths.
func New(path string) *viper.Viper {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.cerealstore")
		v.AddConfigPath("/etc/cerealstore")
	}

	v.SetDefault(KeyContainerCapacity, 10.0)
	v.SetDefault(KeyStorageCapacity, 20.0)
	v.SetDefault(KeyStrictAllocationCheck, false)
	v.SetDefault(KeyOutputFormat, "table")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

// Read loads the config file into v if one exists and decodes the result.
// A missing file is not an error; defaults and env overrides still apply.
func Read(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.OutputFormat = strings.ToLower(strings.TrimSpace(cfg.OutputFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load is New followed by Read
func Load(path string) (*Config, error) {
	return Read(New(path))
}

// Validate applies the storage construction rules and checks the output format.
// Capacities must also be finite so that every output format can encode them.
func (c *Config) Validate() error {
	if !(c.ContainerCapacity >= 0) || math.IsInf(c.ContainerCapacity, 1) {
		return fmt.Errorf("%w: container_capacity must be a finite non-negative number, got %v",
			storage.ErrInvalidConfiguration, c.ContainerCapacity)
	}
	if math.IsNaN(c.StorageCapacity) || math.IsInf(c.StorageCapacity, 0) {
		return fmt.Errorf("%w: storage_capacity must be a finite number, got %v",
			storage.ErrInvalidConfiguration, c.StorageCapacity)
	}
	if c.StorageCapacity < c.ContainerCapacity {
		return fmt.Errorf("%w: storage_capacity %v is less than container_capacity %v",
			storage.ErrInvalidConfiguration, c.StorageCapacity, c.ContainerCapacity)
	}

	for _, f := range OutputFormats {
		if c.OutputFormat == f {
			return nil
		}
	}
	return fmt.Errorf("unsupported output_format %q (valid: %s)", c.OutputFormat, strings.Join(OutputFormats, ", "))
}

// StorageOptions translates the config into storage construction options
func (c *Config) StorageOptions() []storage.Option {
	var opts []storage.Option
	if c.StrictAllocationCheck {
		opts = append(opts, storage.WithStrictAllocationCheck())
	}
	return opts
}
