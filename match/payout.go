package match

import (
	"fmt"
	"math"

	"github.com/jazibrq/PieStack/ledger"
)

// payoutSchedules maps a match size to the percentage of the pool paid per
// rank. Ranks past the schedule receive nothing.
var payoutSchedules = map[int][]uint64{
	2:  {100},
	4:  {60, 40},
	8:  {50, 30, 20},
	16: {40, 25, 20, 15},
}

// validSize reports whether n is an allowed match size.
func validSize(n int) bool {
	_, ok := payoutSchedules[n]
	return ok
}

// payoutShares splits pool across the first len(result) ranks of a match of
// the given size. ranked is the number of players actually ranked; when it
// is smaller than the schedule, the unused slots' percentages are swept into
// first place. The last paid slot is computed by subtraction from the total
// so the shares always sum exactly to pool.
func payoutShares(pool ledger.Amount, size, ranked int) ([]ledger.Amount, error) {
	schedule, ok := payoutSchedules[size]
	if !ok {
		return nil, fmt.Errorf("%w: size %d", ErrInvalidConfig, size)
	}
	if pool > math.MaxUint64/100 {
		return nil, fmt.Errorf("%w: pool %d", ledger.ErrAmountOverflow, pool)
	}
	slots := len(schedule)
	if ranked < slots {
		slots = ranked
	}
	if slots == 0 {
		return nil, nil
	}

	percents := make([]uint64, slots)
	copy(percents, schedule[:slots])
	for _, pct := range schedule[slots:] {
		percents[0] += pct
	}

	shares := make([]ledger.Amount, slots)
	var assigned ledger.Amount
	for i := 0; i < slots-1; i++ {
		shares[i] = pool * percents[i] / 100
		assigned += shares[i]
	}
	shares[slots-1] = pool - assigned
	return shares, nil
}
