// Package config carries the tunable parameters of the competition ledger:
// where the journal lives, the staking yield, the faucet shape, and the
// admin identity. Values load from a TOML file, a .env file, or process
// environment, in that order of precedence (later wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Duration wraps time.Duration so TOML and environment values like "1h30m"
// parse through encoding.TextUnmarshaler.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a time.ParseDuration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is the full runtime configuration.
type Config struct {
	// DataDir is the root directory for durable state (the journal).
	DataDir string `toml:"data_dir" env:"PIESTACK_DATA_DIR"`

	// JournalFile is the journal database filename inside DataDir.
	JournalFile string `toml:"journal_file" env:"PIESTACK_JOURNAL_FILE"`

	// APYBasisPoints is the staking yield, e.g. 800 for 8%.
	APYBasisPoints uint64 `toml:"apy_basis_points" env:"PIESTACK_APY_BASIS_POINTS"`

	// SecondsPerYear is the accrual denominator.
	SecondsPerYear uint64 `toml:"seconds_per_year" env:"PIESTACK_SECONDS_PER_YEAR"`

	// FaucetMin and FaucetMax bound a single faucet drip, inclusive.
	FaucetMin uint64 `toml:"faucet_min" env:"PIESTACK_FAUCET_MIN"`
	FaucetMax uint64 `toml:"faucet_max" env:"PIESTACK_FAUCET_MAX"`

	// FaucetCooldown is the per-account wait between drips.
	FaucetCooldown Duration `toml:"faucet_cooldown" env:"PIESTACK_FAUCET_COOLDOWN"`

	// AdminAddress is the privileged oracle/admin account.
	AdminAddress string `toml:"admin_address" env:"PIESTACK_ADMIN_ADDRESS"`
}

// DefaultConfig returns the stock configuration: 8% APY over a 365.25-day
// year, 50-250 unit drips on a one-hour cooldown, data under ~/.piestack.
func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		DataDir:        filepath.Join(home, ".piestack"),
		JournalFile:    "journal.db",
		APYBasisPoints: 800,
		SecondsPerYear: 31_557_600,
		FaucetMin:      50,
		FaucetMax:      250,
		FaucetCooldown: Duration{time.Hour},
	}
}

// JournalPath returns the absolute journal database path.
func (c Config) JournalPath() string {
	return filepath.Join(c.DataDir, c.JournalFile)
}

// LoadFile overlays the TOML file at path onto c. Keys absent from the file
// keep their current values.
func (c *Config) LoadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

// LoadEnv overlays process environment variables onto c, after loading a
// .env file from the working directory when one exists. Unset variables
// keep their current values.
func (c *Config) LoadEnv() error {
	// A missing .env file is not an error; the process environment alone
	// is a complete source.
	_ = godotenv.Load()
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("config: parse environment: %w", err)
	}
	return nil
}

// Validate checks that all values are within acceptable ranges and returns
// the first error encountered, or nil if valid.
func (c Config) Validate() error {
	if c.DataDir == "" {
		return ErrEmptyDataDir
	}
	if c.APYBasisPoints == 0 || c.APYBasisPoints > 10_000 {
		return fmt.Errorf("%w: apy %d basis points", ErrInvalidYield, c.APYBasisPoints)
	}
	if c.SecondsPerYear == 0 {
		return fmt.Errorf("%w: zero seconds per year", ErrInvalidYield)
	}
	if c.FaucetMin == 0 || c.FaucetMax < c.FaucetMin {
		return fmt.Errorf("%w: range [%d, %d]", ErrInvalidFaucet, c.FaucetMin, c.FaucetMax)
	}
	if c.FaucetCooldown.Duration <= 0 {
		return fmt.Errorf("%w: cooldown %s", ErrInvalidFaucet, c.FaucetCooldown.Duration)
	}
	if c.AdminAddress == "" {
		return ErrEmptyAdmin
	}
	return nil
}
