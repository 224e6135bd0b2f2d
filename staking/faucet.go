package staking

import (
	"encoding/binary"
	"fmt"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/jazibrq/PieStack/journal"
	"github.com/jazibrq/PieStack/ledger"
)

// Faucet credits caller's reward balance with a pseudo-random amount in
// [FaucetMin, FaucetMax], at most once per cooldown window per account.
//
// The entropy is derived from the clock, the caller address, and a drip
// counter. That is NOT a secure RNG; it only dispenses valueless test
// tokens and must not be copied anywhere stakes are real.
func (e *Engine) Faucet(caller ledger.Address) (ledger.Amount, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.clock.Now()
	if remaining := e.cooldownRemaining(caller, now); remaining > 0 {
		return 0, fmt.Errorf("%w: %s remaining", ErrFaucetCooldown, remaining)
	}

	e.dripCounter++
	amount := e.prm.FaucetMin + dripEntropy(now, caller, e.dripCounter)%(e.prm.FaucetMax-e.prm.FaucetMin+1)

	pos := e.position(caller)
	balance, err := ledger.AddAmount(pos.RewardBalance, amount)
	if err != nil {
		return 0, err
	}
	pos.RewardBalance = balance
	e.lastDrip[caller] = now

	journal.Record(e.rec, FaucetDripped{Account: caller, Amount: amount})
	return amount, nil
}

// FaucetCooldownRemaining returns how long caller must wait before the next
// drip; zero when the faucet is ready.
func (e *Engine) FaucetCooldownRemaining(caller ledger.Address) time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cooldownRemaining(caller, e.clock.Now())
}

// cooldownRemaining computes the wait as of now. Callers hold e.mu.
func (e *Engine) cooldownRemaining(caller ledger.Address, now time.Time) time.Duration {
	last, ok := e.lastDrip[caller]
	if !ok {
		return 0
	}
	remaining := e.prm.FaucetCooldown - now.Sub(last)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// dripEntropy hashes (time, caller, counter) into a uint64.
func dripEntropy(now time.Time, caller ledger.Address, counter uint64) uint64 {
	h := sha3.New256()
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(now.UnixNano()))
	h.Write(buf[:])
	h.Write([]byte(caller))
	binary.BigEndian.PutUint64(buf[:], counter)
	h.Write(buf[:])
	return binary.BigEndian.Uint64(h.Sum(nil)[:8])
}
