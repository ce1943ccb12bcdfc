// Package ledger abstracts the external token ledger the streaming engine
// settles against: balances, transfers, and derived escrow authorities.
package ledger

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Authority authorizes outgoing transfers from an account. A wallet
// authority is just its address; a derived authority additionally carries
// the seeds that reproduce the address, which is what "signing" means for
// an account with no private key.
type Authority struct {
	Address solana.PublicKey
	Seeds   [][]byte
	Bump    uint8
}

// WalletAuthority returns the authority of an ordinary wallet. Signature
// verification for the calling identity is the host runtime's job, so the
// address alone identifies it here.
func WalletAuthority(addr solana.PublicKey) Authority {
	return Authority{Address: addr}
}

// DeriveAuthority computes the derived address controlled by programID for
// the given seeds, along with the bump that makes the derivation land
// off-curve. The same seeds always yield the same authority, so any future
// operation can re-derive it without stored secrets.
func DeriveAuthority(programID solana.PublicKey, seeds ...[]byte) (Authority, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return Authority{}, fmt.Errorf("ledger: derive authority: %w", err)
	}
	return Authority{Address: addr, Seeds: seeds, Bump: bump}, nil
}

// Ledger is the token ledger the engine moves funds on. Implementations must
// apply each Transfer atomically.
type Ledger interface {
	// BalanceOf returns the balance of a token account.
	BalanceOf(account solana.PublicKey) (uint64, error)

	// Transfer moves amount from one token account to another. The authority
	// must control the source account and both accounts must hold the same
	// mint.
	Transfer(auth Authority, from, to solana.PublicKey, amount uint64) error

	// IsRentExempt reports whether the account holds a rent-exempt balance.
	IsRentExempt(account solana.PublicKey) (bool, error)
}
