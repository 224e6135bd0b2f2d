// Package match implements one isolated escrow, ranking, and payout state
// machine per competition. Every match owns its own escrow address and
// shares no mutable state with any other match, so unrelated competitions
// never contend.
package match

import (
	"fmt"
	"sort"
	"sync"

	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// Status is the match lifecycle state. Transitions are monotonic:
// Open → InProgress → Completed/Cancelled, plus Open → Cancelled. A
// terminal status is never left.
type Status uint8

const (
	StatusOpen Status = iota
	StatusInProgress
	StatusCompleted
	StatusCancelled
)

func (s Status) String() string {
	switch s {
	case StatusOpen:
		return "open"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusCancelled:
		return "cancelled"
	default:
		return fmt.Sprintf("status(%d)", uint8(s))
	}
}

// Terminal reports whether s is a final status.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Config is a match's immutable configuration.
type Config struct {
	Creator    ledger.Address
	MaxPlayers int
	EntryFee   ledger.Amount
	// Oracle authorizes SubmitResults, JoinFor, and third-party Cancel.
	Oracle ledger.Policy
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if !c.Creator.Valid() {
		return fmt.Errorf("%w: empty creator", ErrInvalidConfig)
	}
	if !validSize(c.MaxPlayers) {
		return fmt.Errorf("%w: max players %d", ErrInvalidConfig, c.MaxPlayers)
	}
	if c.EntryFee == 0 {
		return fmt.Errorf("%w: zero entry fee", ErrInvalidConfig)
	}
	return nil
}

// Match is a single competition instance. Its address doubles as the escrow
// account holding the pooled entry fees, so the prize pool is always
// readable straight off the book.
type Match struct {
	mu   sync.Mutex
	addr ledger.Address
	cfg  Config
	book *ledger.Book
	rec  journal.Recorder

	status   Status
	players  []ledger.Address // enrollment order
	enrolled map[ledger.Address]struct{}
	scores   map[ledger.Address]int64
	pending  map[ledger.Address]ledger.Amount
}

// New creates an open match with an empty escrow. The creator is not
// enrolled; the registry enrolls them in the same operation that deploys
// the match.
func New(book *ledger.Book, cfg Config, rec journal.Recorder) (*Match, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Match{
		addr:     ledger.NewAddress(),
		cfg:      cfg,
		book:     book,
		rec:      rec,
		status:   StatusOpen,
		enrolled: make(map[ledger.Address]struct{}),
		scores:   make(map[ledger.Address]int64),
		pending:  make(map[ledger.Address]ledger.Amount),
	}, nil
}

// Addr returns the match's handle, which is also its escrow address.
func (m *Match) Addr() ledger.Address { return m.addr }

// Join enrolls the caller, moving exactly the entry fee into escrow. When
// the last seat fills, the match transitions to InProgress. All-or-nothing:
// a failed fee transfer leaves no trace of the join.
func (m *Match) Join(caller ledger.Address, paid ledger.Amount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.join(caller, paid)
}

// JoinFor enrolls player on their behalf. Privileged: caller must satisfy
// the oracle policy. The entry fee is drawn from player's own balance.
func (m *Match) JoinFor(caller, player ledger.Address, paid ledger.Amount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.cfg.Oracle.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	return m.join(player, paid)
}

// join holds m.mu.
func (m *Match) join(player ledger.Address, paid ledger.Amount) error {
	if m.status != StatusOpen {
		return fmt.Errorf("%w: join while %s", ErrWrongStatus, m.status)
	}
	if _, ok := m.enrolled[player]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyJoined, player)
	}
	if len(m.players) >= m.cfg.MaxPlayers {
		return ErrMatchFull
	}
	if paid != m.cfg.EntryFee {
		return fmt.Errorf("%w: paid %d, fee is %d", ErrEntryFeeMismatch, paid, m.cfg.EntryFee)
	}

	if err := m.book.Transfer(player, m.addr, m.cfg.EntryFee); err != nil {
		return fmt.Errorf("match: collect entry fee: %w", err)
	}
	m.players = append(m.players, player)
	m.enrolled[player] = struct{}{}

	journal.Record(m.rec, PlayerJoined{Match: m.addr, Player: player, Fee: paid})
	if len(m.players) == m.cfg.MaxPlayers {
		m.status = StatusInProgress
		journal.Record(m.rec, MatchStarted{Match: m.addr, Players: m.playersCopy()})
	}
	return nil
}

// SubmitResults records final scores, ranks players descending by score
// (ties keep submission order), and disburses the pool per the payout
// schedule in one atomic step. Privileged: oracle only.
//
// Pending payouts are zeroed before the escrow batch is issued and no
// recipient state is read afterwards — the checks-effects-interactions
// ordering the escrow discipline requires. If the batch fails, scores and
// status are untouched and the match stays InProgress.
func (m *Match) SubmitResults(caller ledger.Address, players []ledger.Address, scores []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.cfg.Oracle.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if m.status != StatusInProgress {
		return fmt.Errorf("%w: submit while %s", ErrWrongStatus, m.status)
	}
	if len(players) != len(scores) {
		return fmt.Errorf("%w: %d players, %d scores", ErrScoreCountMismatch, len(players), len(scores))
	}
	if len(players) != len(m.players) {
		return fmt.Errorf("%w: got %d, enrolled %d", ErrRosterMismatch, len(players), len(m.players))
	}
	seen := make(map[ledger.Address]struct{}, len(players))
	for _, p := range players {
		if _, ok := m.enrolled[p]; !ok {
			return fmt.Errorf("%w: %s not enrolled", ErrRosterMismatch, p)
		}
		if _, dup := seen[p]; dup {
			return fmt.Errorf("%w: %s listed twice", ErrRosterMismatch, p)
		}
		seen[p] = struct{}{}
	}

	// Rank descending by score; equal scores keep their submission order.
	ranked := make([]int, len(players))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	pool := m.book.Balance(m.addr)
	shares, err := payoutShares(pool, m.cfg.MaxPlayers, len(players))
	if err != nil {
		return err
	}

	order := make([]ledger.Address, len(players))
	payouts := make([]ledger.Amount, len(players))
	var entries []ledger.Entry
	for rank, idx := range ranked {
		order[rank] = players[idx]
		if rank < len(shares) {
			payouts[rank] = shares[rank]
		}
		m.pending[order[rank]] = payouts[rank]
	}
	for rank, p := range order {
		// Zero each pending amount before its transfer is issued.
		m.pending[p] = 0
		if payouts[rank] > 0 {
			entries = append(entries, ledger.Entry{From: m.addr, To: p, Amount: payouts[rank]})
		}
	}

	if err := m.book.Apply(entries); err != nil {
		return fmt.Errorf("match: disburse payouts: %w", err)
	}

	for i, p := range players {
		m.scores[p] = scores[i]
	}
	m.status = StatusCompleted

	journal.Record(m.rec, MatchCompleted{Match: m.addr, Ranked: order, Payouts: payouts})
	for rank, p := range order {
		if payouts[rank] > 0 {
			journal.Record(m.rec, Withdrawn{Match: m.addr, Player: p, Amount: payouts[rank]})
		}
	}
	return nil
}

// Cancel refunds the entry fee to every enrolled player and terminates the
// match. The creator may cancel any non-terminal match; so may the oracle.
// A failed refund aborts the whole cancellation.
func (m *Match) Cancel(caller ledger.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if caller != m.cfg.Creator && !m.cfg.Oracle.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	if m.status.Terminal() {
		return fmt.Errorf("%w: cancel while %s", ErrWrongStatus, m.status)
	}

	entries := make([]ledger.Entry, 0, len(m.players))
	for _, p := range m.players {
		entries = append(entries, ledger.Entry{From: m.addr, To: p, Amount: m.cfg.EntryFee})
	}
	if err := m.book.Apply(entries); err != nil {
		return fmt.Errorf("match: refund entry fees: %w", err)
	}
	m.status = StatusCancelled

	journal.Record(m.rec, MatchCancelled{Match: m.addr, Refunded: m.playersCopy()})
	for _, p := range m.players {
		journal.Record(m.rec, Withdrawn{Match: m.addr, Player: p, Amount: m.cfg.EntryFee})
	}
	return nil
}

// Status returns the current lifecycle status.
func (m *Match) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

// Players returns the enrolled players in enrollment order.
func (m *Match) Players() []ledger.Address {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersCopy()
}

// PlayerCount returns how many players are enrolled.
func (m *Match) PlayerCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.players)
}

// PrizePool returns the escrowed balance.
func (m *Match) PrizePool() ledger.Amount {
	return m.book.Balance(m.addr)
}

// Score returns player's recorded score; ok is false before results are in
// or for unknown players.
func (m *Match) Score(player ledger.Address) (score int64, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	score, ok = m.scores[player]
	return score, ok
}

// Info is a point-in-time snapshot of a match.
type Info struct {
	Addr        ledger.Address
	Creator     ledger.Address
	MaxPlayers  int
	EntryFee    ledger.Amount
	Status      Status
	PlayerCount int
	PrizePool   ledger.Amount
}

// Info returns a snapshot of the match.
func (m *Match) Info() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Info{
		Addr:        m.addr,
		Creator:     m.cfg.Creator,
		MaxPlayers:  m.cfg.MaxPlayers,
		EntryFee:    m.cfg.EntryFee,
		Status:      m.status,
		PlayerCount: len(m.players),
		PrizePool:   m.book.Balance(m.addr),
	}
}

// playersCopy holds m.mu.
func (m *Match) playersCopy() []ledger.Address {
	out := make([]ledger.Address, len(m.players))
	copy(out, m.players)
	return out
}
