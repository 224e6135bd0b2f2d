package ledger

import "errors"

var (
	// ErrZeroAmount indicates a transfer or issue of zero units.
	ErrZeroAmount = errors.New("ledger: zero amount")

	// ErrAmountOverflow indicates checked addition exceeded the amount range.
	ErrAmountOverflow = errors.New("ledger: amount overflow")

	// ErrInsufficientBalance indicates a debit larger than the account balance.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrSelfTransfer indicates a transfer with identical endpoints.
	ErrSelfTransfer = errors.New("ledger: transfer to self")

	// ErrEmptyAddress indicates an account address with no content.
	ErrEmptyAddress = errors.New("ledger: empty address")
)
