package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.AdminAddress = "admin-1"
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "journal.db", cfg.JournalFile)
	assert.Equal(t, uint64(800), cfg.APYBasisPoints)
	assert.Equal(t, uint64(31_557_600), cfg.SecondsPerYear)
	assert.Equal(t, time.Hour, cfg.FaucetCooldown.Duration)
	assert.Equal(t, filepath.Join(cfg.DataDir, "journal.db"), cfg.JournalPath())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, ErrEmptyDataDir},
		{"zero apy", func(c *Config) { c.APYBasisPoints = 0 }, ErrInvalidYield},
		{"apy above 100%", func(c *Config) { c.APYBasisPoints = 10_001 }, ErrInvalidYield},
		{"zero year", func(c *Config) { c.SecondsPerYear = 0 }, ErrInvalidYield},
		{"zero faucet min", func(c *Config) { c.FaucetMin = 0 }, ErrInvalidFaucet},
		{"inverted faucet range", func(c *Config) { c.FaucetMax = c.FaucetMin - 1 }, ErrInvalidFaucet},
		{"zero cooldown", func(c *Config) { c.FaucetCooldown = Duration{} }, ErrInvalidFaucet},
		{"empty admin", func(c *Config) { c.AdminAddress = "" }, ErrEmptyAdmin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "piestack.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir = "/var/lib/piestack"
apy_basis_points = 500
faucet_cooldown = "30m"
admin_address = "admin-file"
`), 0600))

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadFile(path))

	assert.Equal(t, "/var/lib/piestack", cfg.DataDir)
	assert.Equal(t, uint64(500), cfg.APYBasisPoints)
	assert.Equal(t, 30*time.Minute, cfg.FaucetCooldown.Duration)
	assert.Equal(t, "admin-file", cfg.AdminAddress)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, uint64(31_557_600), cfg.SecondsPerYear)
	assert.Equal(t, "journal.db", cfg.JournalFile)
}

func TestLoadFile_Missing(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("PIESTACK_APY_BASIS_POINTS", "1200")
	t.Setenv("PIESTACK_FAUCET_COOLDOWN", "2h")
	t.Setenv("PIESTACK_ADMIN_ADDRESS", "admin-env")

	cfg := DefaultConfig()
	require.NoError(t, cfg.LoadEnv())

	assert.Equal(t, uint64(1200), cfg.APYBasisPoints)
	assert.Equal(t, 2*time.Hour, cfg.FaucetCooldown.Duration)
	assert.Equal(t, "admin-env", cfg.AdminAddress)
	assert.Equal(t, uint64(50), cfg.FaucetMin, "unset variables keep their values")
}
