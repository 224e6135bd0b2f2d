package match

import (
	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// PlayerJoined records an enrollment with its paid entry fee.
type PlayerJoined struct {
	Match  ledger.Address
	Player ledger.Address
	Fee    ledger.Amount
}

// MatchStarted records the transition to InProgress on full enrollment.
type MatchStarted struct {
	Match   ledger.Address
	Players []ledger.Address
}

// MatchCompleted records the final ranking and the payout per rank.
type MatchCompleted struct {
	Match   ledger.Address
	Ranked  []ledger.Address
	Payouts []ledger.Amount
}

// MatchCancelled records a cancellation and the players refunded.
type MatchCancelled struct {
	Match    ledger.Address
	Refunded []ledger.Address
}

// Withdrawn records a single disbursement out of escrow, either a payout or
// a refund.
type Withdrawn struct {
	Match  ledger.Address
	Player ledger.Address
	Amount ledger.Amount
}

func (PlayerJoined) Kind() string   { return "match.player_joined" }
func (MatchStarted) Kind() string   { return "match.started" }
func (MatchCompleted) Kind() string { return "match.completed" }
func (MatchCancelled) Kind() string { return "match.cancelled" }
func (Withdrawn) Kind() string      { return "match.withdrawn" }

func init() {
	journal.RegisterEvent(PlayerJoined{})
	journal.RegisterEvent(MatchStarted{})
	journal.RegisterEvent(MatchCompleted{})
	journal.RegisterEvent(MatchCancelled{})
	journal.RegisterEvent(Withdrawn{})
}
