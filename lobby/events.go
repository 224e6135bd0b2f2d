package lobby

import (
	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// Created records a new lobby with its host auto-enrolled.
type Created struct {
	ID         uint64
	Host       ledger.Address
	BuyIn      ledger.Amount
	MaxPlayers int
}

// Joined records a member buying in.
type Joined struct {
	ID     uint64
	Player ledger.Address
}

// Resolved records the winner-take-all settlement.
type Resolved struct {
	ID     uint64
	Winner ledger.Address
	Prize  ledger.Amount
}

// Cancelled records a cancellation with every member refunded.
type Cancelled struct {
	ID       uint64
	Refunded []ledger.Address
}

func (Created) Kind() string   { return "lobby.created" }
func (Joined) Kind() string    { return "lobby.joined" }
func (Resolved) Kind() string  { return "lobby.resolved" }
func (Cancelled) Kind() string { return "lobby.cancelled" }

func init() {
	journal.RegisterEvent(Created{})
	journal.RegisterEvent(Joined{})
	journal.RegisterEvent(Resolved{})
	journal.RegisterEvent(Cancelled{})
}
