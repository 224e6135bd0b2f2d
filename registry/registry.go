// Package registry deploys match instances and relays the oracle's
// privileged calls to them. It holds no invariant-bearing state of its own
// beyond knowing which handles it deployed; every handle's live state stays
// inside its match instance.
package registry

import (
	"fmt"
	"sync"

	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
	"github.com/jazibrq/PieStack/match"
)

// Deployed records a newly deployed match. Replaying these events rebuilds
// the catalog of handles.
type Deployed struct {
	Match      ledger.Address
	Creator    ledger.Address
	MaxPlayers int
	EntryFee   ledger.Amount
}

func (Deployed) Kind() string { return "registry.deployed" }

func init() {
	journal.RegisterEvent(Deployed{})
}

// Registry is the gateway in front of the match arena.
type Registry struct {
	mu    sync.Mutex
	book  *ledger.Book
	owner ledger.Address
	rec   journal.Recorder

	matches map[ledger.Address]*match.Match
	order   []ledger.Address // deployment order, for pagination
}

// New returns a registry whose deployed matches accept owner as their
// oracle. rec may be nil.
func New(book *ledger.Book, owner ledger.Address, rec journal.Recorder) *Registry {
	return &Registry{
		book:    book,
		owner:   owner,
		rec:     rec,
		matches: make(map[ledger.Address]*match.Match),
	}
}

// Owner returns the privileged oracle address.
func (r *Registry) Owner() ledger.Address { return r.owner }

// CreateMatch deploys a match with an immutable configuration and enrolls
// the creator in the same operation, forwarding their entry fee into the
// new escrow. paid must equal entryFee exactly. Nothing is registered when
// any step fails.
func (r *Registry) CreateMatch(caller ledger.Address, maxPlayers int, entryFee, paid ledger.Amount) (ledger.Address, error) {
	m, err := match.New(r.book, match.Config{
		Creator:    caller,
		MaxPlayers: maxPlayers,
		EntryFee:   entryFee,
		Oracle:     ledger.ExactAddress(r.owner),
	}, r.rec)
	if err != nil {
		return "", err
	}
	if err := m.Join(caller, paid); err != nil {
		return "", err
	}

	r.mu.Lock()
	r.matches[m.Addr()] = m
	r.order = append(r.order, m.Addr())
	r.mu.Unlock()

	journal.Record(r.rec, Deployed{
		Match:      m.Addr(),
		Creator:    caller,
		MaxPlayers: maxPlayers,
		EntryFee:   entryFee,
	})
	return m.Addr(), nil
}

// SubmitResults relays a result submission to the match at addr. The match
// enforces that caller is the oracle.
func (r *Registry) SubmitResults(caller, addr ledger.Address, players []ledger.Address, scores []int64) error {
	m, err := r.lookup(addr)
	if err != nil {
		return err
	}
	return m.SubmitResults(caller, players, scores)
}

// CancelMatch relays a cancellation to the match at addr.
func (r *Registry) CancelMatch(caller, addr ledger.Address) error {
	m, err := r.lookup(addr)
	if err != nil {
		return err
	}
	return m.Cancel(caller)
}

// JoinFor relays a privileged enrollment to the match at addr.
func (r *Registry) JoinFor(caller, addr, player ledger.Address, paid ledger.Amount) error {
	m, err := r.lookup(addr)
	if err != nil {
		return err
	}
	return m.JoinFor(caller, player, paid)
}

// Match returns the live instance at addr.
func (r *Registry) Match(addr ledger.Address) (*match.Match, error) {
	return r.lookup(addr)
}

// MatchInfo returns a snapshot of the match at addr.
func (r *Registry) MatchInfo(addr ledger.Address) (match.Info, error) {
	m, err := r.lookup(addr)
	if err != nil {
		return match.Info{}, err
	}
	return m.Info(), nil
}

// OpenMatches returns the handles of all deployed matches still accepting
// players, in deployment order.
func (r *Registry) OpenMatches() []ledger.Address {
	r.mu.Lock()
	defer r.mu.Unlock()

	var open []ledger.Address
	for _, addr := range r.order {
		if r.matches[addr].Status() == match.StatusOpen {
			open = append(open, addr)
		}
	}
	return open
}

// Matches returns up to limit handles starting at offset, in deployment
// order. An offset at or past the end yields an empty page.
func (r *Registry) Matches(offset, limit int) ([]ledger.Address, error) {
	if offset < 0 || limit < 0 {
		return nil, fmt.Errorf("%w: offset %d, limit %d", ErrInvalidPage, offset, limit)
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if offset >= len(r.order) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.order) {
		end = len(r.order)
	}
	page := make([]ledger.Address, end-offset)
	copy(page, r.order[offset:end])
	return page, nil
}

// MatchCount returns how many matches have been deployed.
func (r *Registry) MatchCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.order)
}

func (r *Registry) lookup(addr ledger.Address) (*match.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.matches[addr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMatch, addr)
	}
	return m, nil
}
