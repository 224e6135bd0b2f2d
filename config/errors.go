package config

import "errors"

var (
	// ErrEmptyDataDir indicates the data directory path is empty.
	ErrEmptyDataDir = errors.New("config: data directory must not be empty")

	// ErrInvalidYield indicates the APY or accrual denominator is out of range.
	ErrInvalidYield = errors.New("config: invalid yield parameters")

	// ErrInvalidFaucet indicates the faucet range or cooldown is out of range.
	ErrInvalidFaucet = errors.New("config: invalid faucet parameters")

	// ErrEmptyAdmin indicates no admin address is configured.
	ErrEmptyAdmin = errors.New("config: admin address must not be empty")

	// ErrConfigNotFound indicates the configuration file does not exist.
	ErrConfigNotFound = errors.New("config: configuration file not found")
)
