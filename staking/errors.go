package staking

import "errors"

var (
	// ErrInvalidAmount indicates a zero-valued deposit, deduct, or credit.
	ErrInvalidAmount = errors.New("staking: invalid amount")

	// ErrNothingStaked indicates a withdraw with no principal on deposit.
	ErrNothingStaked = errors.New("staking: nothing staked")

	// ErrInsufficientRewards indicates a reward deduction larger than the
	// account's realized reward balance.
	ErrInsufficientRewards = errors.New("staking: insufficient rewards")

	// ErrNotAuthorized indicates a reward mutation from a caller other than
	// the registered reward mover.
	ErrNotAuthorized = errors.New("staking: caller not authorized")

	// ErrFaucetCooldown indicates a faucet drip inside the cooldown window.
	ErrFaucetCooldown = errors.New("staking: faucet on cooldown")

	// ErrInvalidParams indicates engine parameters outside acceptable ranges.
	ErrInvalidParams = errors.New("staking: invalid params")
)
