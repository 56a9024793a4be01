package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-cerealstore/internal/storage"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cerealstore-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 10.0, cfg.ContainerCapacity)
	assert.Equal(t, 20.0, cfg.StorageCapacity)
	assert.False(t, cfg.StrictAllocationCheck)
	assert.Equal(t, "table", cfg.OutputFormat)
	assert.Empty(t, cfg.StorageOptions())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
container_capacity: 2.5
storage_capacity: 10
strict_allocation_check: true
output_format: JSON
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2.5, cfg.ContainerCapacity)
	assert.Equal(t, 10.0, cfg.StorageCapacity)
	assert.True(t, cfg.StrictAllocationCheck)
	assert.Equal(t, "json", cfg.OutputFormat)

	s, err := storage.New(cfg.ContainerCapacity, cfg.StorageCapacity, cfg.StorageOptions()...)
	require.NoError(t, err)
	assert.True(t, s.StrictAllocation())
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CEREALSTORE_CONTAINER_CAPACITY", "4")
	t.Setenv("CEREALSTORE_STORAGE_CAPACITY", "12")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 4.0, cfg.ContainerCapacity)
	assert.Equal(t, 12.0, cfg.StorageCapacity)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		errIs     error
		errString string
	}{
		{
			name:  "negative container capacity",
			body:  "container_capacity: -1\n",
			errIs: storage.ErrInvalidConfiguration,
		},
		{
			name:  "storage smaller than container",
			body:  "container_capacity: 10\nstorage_capacity: 5\n",
			errIs: storage.ErrInvalidConfiguration,
		},
		{
			name:  "NaN container capacity",
			body:  "container_capacity: .nan\n",
			errIs: storage.ErrInvalidConfiguration,
		},
		{
			name:  "NaN storage capacity",
			body:  "storage_capacity: .nan\n",
			errIs: storage.ErrInvalidConfiguration,
		},
		{
			name:  "infinite storage capacity",
			body:  "storage_capacity: .inf\n",
			errIs: storage.ErrInvalidConfiguration,
		},
		{
			name:      "unknown output format",
			body:      "output_format: xml\n",
			errString: "unsupported output_format",
		},
		{
			name:      "malformed yaml",
			body:      "container_capacity: [\n",
			errString: "error reading config file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errString != "" {
				assert.Contains(t, err.Error(), tt.errString)
			}
		})
	}
}

func TestLoad_NaNFromEnv(t *testing.T) {
	t.Setenv("CEREALSTORE_CONTAINER_CAPACITY", "NaN")

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, storage.ErrInvalidConfiguration)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}
