// Package staking is the yield-bearing deposit vault. Accounts deposit
// native coin as principal; principal accrues time-weighted rewards which
// are the only currency lobbies may spend. Principal itself never settles a
// game.
package staking

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/jazibrq/PieStack/config"
	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// Params configures the accrual engine.
type Params struct {
	// APYBasisPoints is the fixed annual yield, e.g. 800 for 8%.
	APYBasisPoints uint64
	// SecondsPerYear is the accrual denominator; 365.25 days by default.
	SecondsPerYear uint64
	// FaucetMin and FaucetMax bound a single faucet drip, inclusive.
	FaucetMin ledger.Amount
	FaucetMax ledger.Amount
	// FaucetCooldown is the per-account wait between drips.
	FaucetCooldown time.Duration
}

// DefaultParams returns the production parameters: 8% APY, drips of 50-250
// units with a one-hour cooldown.
func DefaultParams() Params {
	return Params{
		APYBasisPoints: 800,
		SecondsPerYear: 31_557_600,
		FaucetMin:      50,
		FaucetMax:      250,
		FaucetCooldown: time.Hour,
	}
}

// ParamsFromConfig maps a loaded configuration onto engine parameters.
func ParamsFromConfig(cfg config.Config) Params {
	return Params{
		APYBasisPoints: cfg.APYBasisPoints,
		SecondsPerYear: cfg.SecondsPerYear,
		FaucetMin:      cfg.FaucetMin,
		FaucetMax:      cfg.FaucetMax,
		FaucetCooldown: cfg.FaucetCooldown.Duration,
	}
}

// Validate checks the parameters.
func (p Params) Validate() error {
	if p.APYBasisPoints == 0 || p.APYBasisPoints > basisPointDenominator {
		return fmt.Errorf("%w: apy %d basis points", ErrInvalidParams, p.APYBasisPoints)
	}
	// The accrual denominator is basisPointDenominator × SecondsPerYear in
	// int64, so the year length must leave that product representable.
	if p.SecondsPerYear == 0 || p.SecondsPerYear > math.MaxInt64/basisPointDenominator {
		return fmt.Errorf("%w: seconds per year %d", ErrInvalidParams, p.SecondsPerYear)
	}
	if p.FaucetMin == 0 || p.FaucetMax < p.FaucetMin {
		return fmt.Errorf("%w: faucet range [%d, %d]", ErrInvalidParams, p.FaucetMin, p.FaucetMax)
	}
	if p.FaucetCooldown <= 0 {
		return fmt.Errorf("%w: non-positive faucet cooldown", ErrInvalidParams)
	}
	return nil
}

// Position is one account's stake. RewardBalance holds realized rewards;
// interest accrued since LastAccrual is unrealized until the next snapshot.
type Position struct {
	Principal     ledger.Amount
	RewardBalance ledger.Amount
	LastAccrual   time.Time
}

// Engine holds every staking position plus the native-coin vault. All time
// is read from the injected clock, never the system clock, so accrual is
// deterministic under test.
type Engine struct {
	mu    sync.Mutex
	book  *ledger.Book
	vault ledger.Address
	clock clockwork.Clock
	prm   Params
	rec   journal.Recorder

	// rewardMover authorizes DeductRewards/CreditRewards. Nil until the
	// lobby ledger registers itself; nil denies everyone.
	rewardMover ledger.Policy

	positions   map[ledger.Address]*Position
	lastDrip    map[ledger.Address]time.Time
	dripCounter uint64
}

// NewEngine returns an engine escrowing principal at a fresh vault address
// in book. rec may be nil to discard events.
func NewEngine(book *ledger.Book, clock clockwork.Clock, prm Params, rec journal.Recorder) (*Engine, error) {
	if err := prm.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		book:      book,
		vault:     ledger.NewAddress(),
		clock:     clock,
		prm:       prm,
		rec:       rec,
		positions: make(map[ledger.Address]*Position),
		lastDrip:  make(map[ledger.Address]time.Time),
	}, nil
}

// Vault returns the address escrowing all deposited principal.
func (e *Engine) Vault() ledger.Address { return e.vault }

// RegisterRewardMover installs the policy that guards reward deductions and
// credits. Exactly one component — the lobby ledger — should hold this
// capability.
func (e *Engine) RegisterRewardMover(p ledger.Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rewardMover = p
}

// Deposit snapshots any unrealized accrual, then moves amount of native
// coin from caller into the vault and adds it to principal, resetting the
// accrual clock. All-or-nothing: a failed transfer leaves the position
// untouched.
func (e *Engine) Deposit(caller ledger.Address, amount ledger.Amount) error {
	if amount == 0 {
		return fmt.Errorf("%w: zero deposit", ErrInvalidAmount)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	pos := e.position(caller)
	accrued, err := e.snapshotValue(pos, now)
	if err != nil {
		return err
	}
	principal, err := ledger.AddAmount(pos.Principal, amount)
	if err != nil {
		return err
	}

	if err := e.book.Transfer(caller, e.vault, amount); err != nil {
		return fmt.Errorf("staking: deposit: %w", err)
	}
	pos.RewardBalance = accrued
	pos.Principal = principal
	pos.LastAccrual = now

	journal.Record(e.rec, Deposited{Account: caller, Amount: amount})
	return nil
}

// Withdraw pays out principal plus all realized and unrealized rewards in a
// single transfer and closes the position. The position is zeroed before
// the transfer is issued.
func (e *Engine) Withdraw(caller ledger.Address) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	pos := e.position(caller)
	if pos.Principal == 0 {
		return ErrNothingStaked
	}
	now := e.clock.Now()
	rewards, err := e.snapshotValue(pos, now)
	if err != nil {
		return err
	}
	principal := pos.Principal
	total, err := ledger.AddAmount(principal, rewards)
	if err != nil {
		return err
	}

	// Rewards are yield: they exist only as a claim until withdrawal, at
	// which point they are minted into the vault so one transfer covers
	// principal and rewards together.
	if rewards > 0 {
		if err := e.book.Issue(e.vault, rewards); err != nil {
			return fmt.Errorf("staking: mint rewards: %w", err)
		}
	}

	// Zero the position before the transfer leaves the vault.
	pos.Principal = 0
	pos.RewardBalance = 0
	pos.LastAccrual = time.Time{}

	if err := e.book.Transfer(e.vault, caller, total); err != nil {
		// The vault always holds every open position's principal, so this
		// is unreachable for a consistent book; restore on the off chance.
		pos.Principal = principal
		pos.RewardBalance = rewards
		pos.LastAccrual = now
		return fmt.Errorf("staking: withdraw: %w", err)
	}

	journal.Record(e.rec, Withdrawn{Account: caller, Principal: principal, Rewards: rewards})
	return nil
}

// DeductRewards removes amount from account's realized rewards. Privileged:
// caller must hold the reward-mover capability. Unrealized accrual is
// snapshotted first so pending interest is not silently discarded.
func (e *Engine) DeductRewards(caller, account ledger.Address, amount ledger.Amount) error {
	if amount == 0 {
		return fmt.Errorf("%w: zero deduction", ErrInvalidAmount)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rewardMover.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	now := e.clock.Now()
	pos := e.position(account)
	accrued, err := e.snapshotValue(pos, now)
	if err != nil {
		return err
	}
	if accrued < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientRewards, accrued, amount)
	}
	pos.RewardBalance = accrued - amount
	pos.LastAccrual = now

	journal.Record(e.rec, RewardsDeducted{Account: account, Amount: amount})
	return nil
}

// CreditRewards adds amount to account's realized rewards. Privileged:
// caller must hold the reward-mover capability.
func (e *Engine) CreditRewards(caller, account ledger.Address, amount ledger.Amount) error {
	if amount == 0 {
		return fmt.Errorf("%w: zero credit", ErrInvalidAmount)
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rewardMover.Allow(caller) {
		return fmt.Errorf("%w: %s", ErrNotAuthorized, caller)
	}
	pos := e.position(account)
	balance, err := ledger.AddAmount(pos.RewardBalance, amount)
	if err != nil {
		return err
	}
	pos.RewardBalance = balance

	journal.Record(e.rec, RewardsCredited{Account: account, Amount: amount})
	return nil
}

// Principal returns the deposited principal, zero for unknown accounts.
func (e *Engine) Principal(account ledger.Address) ledger.Amount {
	e.mu.Lock()
	defer e.mu.Unlock()
	if pos, ok := e.positions[account]; ok {
		return pos.Principal
	}
	return 0
}

// AccruedRewards returns realized plus unrealized rewards as of now. Pure
// read: the accrual clock is not advanced.
func (e *Engine) AccruedRewards(account ledger.Address) (ledger.Amount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos, ok := e.positions[account]
	if !ok {
		return 0, nil
	}
	return e.snapshotValue(pos, e.clock.Now())
}

// AvailableRewards is the balance a lobby buy-in may draw on: identical to
// AccruedRewards, named for the spending path.
func (e *Engine) AvailableRewards(account ledger.Address) (ledger.Amount, error) {
	return e.AccruedRewards(account)
}

// position returns the tracked position for addr, creating an empty one.
// Callers hold e.mu.
func (e *Engine) position(addr ledger.Address) *Position {
	pos, ok := e.positions[addr]
	if !ok {
		pos = &Position{}
		e.positions[addr] = pos
	}
	return pos
}

// snapshotValue returns RewardBalance plus interest accrued between
// pos.LastAccrual and now, without mutating the position. Callers hold e.mu.
func (e *Engine) snapshotValue(pos *Position, now time.Time) (ledger.Amount, error) {
	unrealized, err := accrue(pos.Principal, e.prm, pos.LastAccrual, now)
	if err != nil {
		return 0, err
	}
	return ledger.AddAmount(pos.RewardBalance, unrealized)
}
