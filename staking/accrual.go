package staking

import (
	"fmt"
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jazibrq/PieStack/ledger"
)

const basisPointDenominator = 10_000

// accrue computes simple time-weighted interest on principal between from
// and now:
//
//	principal × (APYBasisPoints / 10000) × elapsedSeconds / SecondsPerYear
//
// truncated to whole base units. A zero principal, a zero from time (no
// accrual clock started), or non-positive elapsed time yields zero. The
// multiplication runs in decimal so large principals cannot overflow before
// the division.
func accrue(principal ledger.Amount, prm Params, from, now time.Time) (ledger.Amount, error) {
	if principal == 0 || from.IsZero() {
		return 0, nil
	}
	elapsed := now.Unix() - from.Unix()
	if elapsed <= 0 {
		return 0, nil
	}

	p := decimal.NewFromBigInt(new(big.Int).SetUint64(principal), 0)
	num := p.
		Mul(decimal.New(int64(prm.APYBasisPoints), 0)).
		Mul(decimal.New(elapsed, 0))
	den := decimal.New(basisPointDenominator*int64(prm.SecondsPerYear), 0)

	quo, _ := num.QuoRem(den, 0) // exact truncating division, no rounding drift
	out := quo.BigInt()
	if !out.IsUint64() {
		return 0, fmt.Errorf("%w: accrual %s exceeds amount range", ledger.ErrAmountOverflow, out)
	}
	return out.Uint64(), nil
}
