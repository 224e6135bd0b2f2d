package staking

import (
	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// Deposited records principal entering the vault.
type Deposited struct {
	Account ledger.Address
	Amount  ledger.Amount
}

// Withdrawn records a closed position paying out.
type Withdrawn struct {
	Account   ledger.Address
	Principal ledger.Amount
	Rewards   ledger.Amount
}

// RewardsDeducted records a privileged reward debit (a lobby buy-in).
type RewardsDeducted struct {
	Account ledger.Address
	Amount  ledger.Amount
}

// RewardsCredited records a privileged reward credit (a lobby prize or
// refund).
type RewardsCredited struct {
	Account ledger.Address
	Amount  ledger.Amount
}

// FaucetDripped records a test-token drip.
type FaucetDripped struct {
	Account ledger.Address
	Amount  ledger.Amount
}

func (Deposited) Kind() string       { return "staking.deposited" }
func (Withdrawn) Kind() string       { return "staking.withdrawn" }
func (RewardsDeducted) Kind() string { return "staking.rewards_deducted" }
func (RewardsCredited) Kind() string { return "staking.rewards_credited" }
func (FaucetDripped) Kind() string   { return "staking.faucet_dripped" }

func init() {
	journal.RegisterEvent(Deposited{})
	journal.RegisterEvent(Withdrawn{})
	journal.RegisterEvent(RewardsDeducted{})
	journal.RegisterEvent(RewardsCredited{})
	journal.RegisterEvent(FaucetDripped{})
}
