// Package lobby implements the second, simpler competition model: a single
// ledger owning a keyed collection of winner-take-all lobbies, settled by
// crediting and debiting reward balances in the staking engine rather than
// moving native coin.
package lobby

import (
	"fmt"
	"sync"

	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

const (
	minPlayers = 2
	maxPlayers = 16
)

// RewardLedger is the slice of the staking engine the lobby ledger settles
// against. Implemented by *staking.Engine.
type RewardLedger interface {
	DeductRewards(caller, account ledger.Address, amount ledger.Amount) error
	CreditRewards(caller, account ledger.Address, amount ledger.Amount) error
}

// Lobby is one competition's record. Distinct lobbies never share mutable
// fields; operations on different identifiers are logically independent.
type Lobby struct {
	ID         uint64
	Host       ledger.Address
	BuyIn      ledger.Amount
	MaxPlayers int
	Players    []ledger.Address // join order, host first
	PrizePool  ledger.Amount
	Resolved   bool
	Active     bool
}

// membershipKey indexes the per-(lobby, address) double-join guard.
type membershipKey struct {
	id   uint64
	addr ledger.Address
}

// Ledger owns every lobby, keyed by an incrementing identifier. It settles
// buy-ins and prizes through the reward ledger, acting under its own
// address, which must be registered with the staking engine as the reward
// mover.
type Ledger struct {
	mu      sync.Mutex
	addr    ledger.Address
	rewards RewardLedger
	admin   ledger.Policy
	rec     journal.Recorder

	nextID  uint64
	lobbies map[uint64]*Lobby
	members map[membershipKey]struct{}
}

// NewLedger returns an empty lobby ledger. admin authorizes ResolveGame and
// third-party cancellation. rec may be nil.
func NewLedger(rewards RewardLedger, admin ledger.Policy, rec journal.Recorder) *Ledger {
	return &Ledger{
		addr:    ledger.NewAddress(),
		rewards: rewards,
		admin:   admin,
		rec:     rec,
		lobbies: make(map[uint64]*Lobby),
		members: make(map[membershipKey]struct{}),
	}
}

// Addr returns the address under which the ledger calls the staking engine.
// Register it there as the reward mover.
func (l *Ledger) Addr() ledger.Address { return l.addr }

// CreateLobby opens a new lobby and auto-enrolls the caller as host,
// deducting the buy-in from their reward balance. Returns the new
// identifier. Fails without effect when the caller's rewards are short.
func (l *Ledger) CreateLobby(caller ledger.Address, buyIn ledger.Amount, size int) (uint64, error) {
	if buyIn == 0 {
		return 0, ErrInvalidBuyIn
	}
	if size < minPlayers || size > maxPlayers {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMaxPlayers, size)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rewards.DeductRewards(l.addr, caller, buyIn); err != nil {
		return 0, fmt.Errorf("lobby: collect host buy-in: %w", err)
	}

	l.nextID++
	id := l.nextID
	l.lobbies[id] = &Lobby{
		ID:         id,
		Host:       caller,
		BuyIn:      buyIn,
		MaxPlayers: size,
		Players:    []ledger.Address{caller},
		PrizePool:  buyIn,
		Active:     true,
	}
	l.members[membershipKey{id, caller}] = struct{}{}

	journal.Record(l.rec, Created{ID: id, Host: caller, BuyIn: buyIn, MaxPlayers: size})
	return id, nil
}

// JoinLobby enrolls the caller, deducting the buy-in from their reward
// balance. The prize pool invariant holds throughout: pool == buyIn × members.
func (l *Ledger) JoinLobby(caller ledger.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lb, err := l.openLobby(id)
	if err != nil {
		return err
	}
	if len(lb.Players) >= lb.MaxPlayers {
		return ErrFull
	}
	if _, ok := l.members[membershipKey{id, caller}]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyMember, caller)
	}

	if err := l.rewards.DeductRewards(l.addr, caller, lb.BuyIn); err != nil {
		return fmt.Errorf("lobby: collect buy-in: %w", err)
	}
	lb.Players = append(lb.Players, caller)
	lb.PrizePool += lb.BuyIn
	l.members[membershipKey{id, caller}] = struct{}{}

	journal.Record(l.rec, Joined{ID: id, Player: caller})
	return nil
}

// ResolveGame settles the lobby winner-take-all, crediting the whole prize
// pool to the winner's reward balance. Privileged: admin only. Terminal.
func (l *Ledger) ResolveGame(caller ledger.Address, id uint64, winner ledger.Address) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.admin.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	lb, err := l.openLobby(id)
	if err != nil {
		return err
	}
	if _, ok := l.members[membershipKey{id, winner}]; !ok {
		return fmt.Errorf("%w: %s", ErrNotMember, winner)
	}

	if err := l.rewards.CreditRewards(l.addr, winner, lb.PrizePool); err != nil {
		return fmt.Errorf("lobby: pay prize: %w", err)
	}
	lb.Resolved = true
	lb.Active = false

	journal.Record(l.rec, Resolved{ID: id, Winner: winner, Prize: lb.PrizePool})
	return nil
}

// CancelLobby refunds every member's buy-in to their reward balance and
// deactivates the lobby. Host and joiners are refunded identically.
// Privileged: the lobby's host or the admin.
func (l *Ledger) CancelLobby(caller ledger.Address, id uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lb, err := l.openLobby(id)
	if err != nil {
		return err
	}
	if caller != lb.Host && !l.admin.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}

	for i, p := range lb.Players {
		if err := l.rewards.CreditRewards(l.addr, p, lb.BuyIn); err != nil {
			// Unwind the refunds already issued so the cancellation has
			// zero effect. A member spending the freshly credited refund
			// before the deduct lands would make the unwind fail; surface
			// that alongside the original error rather than losing it.
			for _, prev := range lb.Players[:i] {
				if derr := l.rewards.DeductRewards(l.addr, prev, lb.BuyIn); derr != nil {
					return fmt.Errorf("lobby: refund buy-in: %w (unwind refund of %s: %v)", err, prev, derr)
				}
			}
			return fmt.Errorf("lobby: refund buy-in: %w", err)
		}
	}
	lb.Active = false

	journal.Record(l.rec, Cancelled{ID: id, Refunded: append([]ledger.Address(nil), lb.Players...)})
	return nil
}

// GetLobby returns a snapshot of the lobby.
func (l *Ledger) GetLobby(id uint64) (Lobby, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lb, ok := l.lobbies[id]
	if !ok {
		return Lobby{}, fmt.Errorf("%w: %d", ErrUnknownLobby, id)
	}
	out := *lb
	out.Players = append([]ledger.Address(nil), lb.Players...)
	return out, nil
}

// LobbyPlayerCount returns the number of members in the lobby.
func (l *Ledger) LobbyPlayerCount(id uint64) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lb, ok := l.lobbies[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownLobby, id)
	}
	return len(lb.Players), nil
}

// LobbyCount returns how many lobbies have ever been created.
func (l *Ledger) LobbyCount() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextID
}

// openLobby returns the lobby if it exists, is active, and is unresolved.
// Callers hold l.mu.
func (l *Ledger) openLobby(id uint64) (*Lobby, error) {
	lb, ok := l.lobbies[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLobby, id)
	}
	if lb.Resolved {
		return nil, fmt.Errorf("%w: %d", ErrResolved, id)
	}
	if !lb.Active {
		return nil, fmt.Errorf("%w: %d", ErrInactive, id)
	}
	return lb, nil
}
