package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Leg is one transfer of a settlement plan.
type Leg struct {
	To     solana.PublicKey
	Amount uint64
}

// Settle executes a settlement plan out of one escrow account, in order.
// Every leg authenticates with the same derived authority. Zero-amount legs
// are skipped; they are a no-op, not an error. The first failing transfer
// aborts the rest, and the caller must discard any bookkeeping mutations
// made for this plan.
func Settle(l Ledger, auth Authority, escrow solana.PublicKey, legs []Leg) error {
	for _, leg := range legs {
		if leg.Amount == 0 {
			continue
		}
		if err := l.Transfer(auth, escrow, leg.To, leg.Amount); err != nil {
			return fmt.Errorf("ledger: settle leg to %s: %w", leg.To, err)
		}
	}
	return nil
}
