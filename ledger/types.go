package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// Amount is a quantity of currency in indivisible base units.
type Amount = uint64

// Address identifies an account in a Book. Addresses are opaque: the book
// does not care whether one names a player wallet, a match escrow, or the
// staking vault.
type Address string

// NewAddress returns a fresh opaque account address.
func NewAddress() Address {
	return Address(uuid.NewString())
}

// Valid reports whether the address has content.
func (a Address) Valid() bool { return a != "" }

// AddAmount returns a+b, or ErrAmountOverflow if the sum wraps.
func AddAmount(a, b Amount) (Amount, error) {
	sum := a + b
	if sum < a {
		return 0, fmt.Errorf("%w: %d + %d", ErrAmountOverflow, a, b)
	}
	return sum, nil
}

// SubAmount returns a-b, or ErrInsufficientBalance if b exceeds a.
func SubAmount(a, b Amount) (Amount, error) {
	if b > a {
		return 0, fmt.Errorf("%w: %d - %d", ErrInsufficientBalance, a, b)
	}
	return a - b, nil
}

// Entry is one guarded movement of value inside a batch.
type Entry struct {
	From   Address
	To     Address
	Amount Amount
}
