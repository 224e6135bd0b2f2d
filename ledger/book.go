package ledger

import (
	"fmt"
	"sync"
)

// Book holds account balances and enforces that transfers never create,
// destroy, or double-spend value. All mutating calls are serialized; an
// operation either fully applies or leaves the book untouched.
type Book struct {
	mu       sync.Mutex
	balances map[Address]Amount
	issued   Amount
}

// NewBook returns an empty book.
func NewBook() *Book {
	return &Book{balances: make(map[Address]Amount)}
}

// Issue mints amount into addr. Only genesis-style seeding of test funds
// goes through here; domain operations move existing value.
func (b *Book) Issue(addr Address, amount Amount) error {
	if !addr.Valid() {
		return ErrEmptyAddress
	}
	if amount == 0 {
		return ErrZeroAmount
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	issued, err := AddAmount(b.issued, amount)
	if err != nil {
		return err
	}
	bal, err := AddAmount(b.balances[addr], amount)
	if err != nil {
		return err
	}
	b.issued = issued
	b.balances[addr] = bal
	return nil
}

// Balance returns the balance of addr, zero for unknown accounts.
func (b *Book) Balance(addr Address) Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.balances[addr]
}

// TotalIssued returns the total value ever minted. The sum of all balances
// equals this at all times.
func (b *Book) TotalIssued() Amount {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.issued
}

// Transfer moves amount from one account to another.
func (b *Book) Transfer(from, to Address, amount Amount) error {
	return b.Apply([]Entry{{From: from, To: to, Amount: amount}})
}

// Apply executes a batch of entries all-or-nothing. Each entry is validated
// against the balances produced by the entries before it, so a batch that
// would overdraw or overflow at any step leaves every account unchanged.
func (b *Book) Apply(entries []Entry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Validation pass over a scratch view; the live map is not touched
	// until every entry has cleared.
	scratch := make(map[Address]Amount, len(entries)*2)
	load := func(addr Address) Amount {
		if v, ok := scratch[addr]; ok {
			return v
		}
		return b.balances[addr]
	}
	for i, e := range entries {
		if err := checkEntry(e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		fromBal, err := SubAmount(load(e.From), e.Amount)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		scratch[e.From] = fromBal
		toBal, err := AddAmount(load(e.To), e.Amount)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		scratch[e.To] = toBal
	}

	for addr, bal := range scratch {
		b.balances[addr] = bal
	}
	return nil
}

func checkEntry(e Entry) error {
	if !e.From.Valid() || !e.To.Valid() {
		return ErrEmptyAddress
	}
	if e.From == e.To {
		return ErrSelfTransfer
	}
	if e.Amount == 0 {
		return ErrZeroAmount
	}
	return nil
}
