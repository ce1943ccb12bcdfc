package ledger

import (
	"fmt"
	"sync"

	"github.com/gagliardetto/solana-go"
)

// TokenAccount is one balance entry in the in-memory ledger.
type TokenAccount struct {
	Mint       solana.PublicKey
	Owner      solana.PublicKey
	Balance    uint64
	RentExempt bool
}

// InMemory is a Ledger backed by a map, used by tests and the simulator.
type InMemory struct {
	mu       sync.Mutex
	accounts map[solana.PublicKey]*TokenAccount
}

// Compile-time interface check.
var _ Ledger = (*InMemory)(nil)

// NewInMemory returns an empty in-memory ledger.
func NewInMemory() *InMemory {
	return &InMemory{accounts: make(map[solana.PublicKey]*TokenAccount)}
}

// CreateAccount registers a token account at key.
func (l *InMemory) CreateAccount(key, mint, owner solana.PublicKey, rentExempt bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.accounts[key]; ok {
		return fmt.Errorf("%w: %s", ErrAccountExists, key)
	}
	l.accounts[key] = &TokenAccount{Mint: mint, Owner: owner, RentExempt: rentExempt}
	return nil
}

// Deposit credits amount to an account, outside of any transfer. Test and
// simulator funding only.
func (l *InMemory) Deposit(key solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, key)
	}
	acc.Balance += amount
	return nil
}

// BalanceOf returns the balance of a token account.
func (l *InMemory) BalanceOf(account solana.PublicKey) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[account]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAccount, account)
	}
	return acc.Balance, nil
}

// Transfer moves amount between two accounts of the same mint.
func (l *InMemory) Transfer(auth Authority, from, to solana.PublicKey, amount uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	src, ok := l.accounts[from]
	if !ok {
		return fmt.Errorf("%w: source %s", ErrUnknownAccount, from)
	}
	dst, ok := l.accounts[to]
	if !ok {
		return fmt.Errorf("%w: destination %s", ErrUnknownAccount, to)
	}
	if src.Owner != auth.Address {
		return fmt.Errorf("%w: %s", ErrBadAuthority, auth.Address)
	}
	if src.Mint != dst.Mint {
		return fmt.Errorf("%w: %s vs %s", ErrWrongMint, src.Mint, dst.Mint)
	}
	if src.Balance < amount {
		return fmt.Errorf("%w: have %d, need %d", ErrInsufficientFunds, src.Balance, amount)
	}
	src.Balance -= amount
	dst.Balance += amount
	return nil
}

// IsRentExempt reports whether the account holds a rent-exempt balance.
func (l *InMemory) IsRentExempt(account solana.PublicKey) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	acc, ok := l.accounts[account]
	if !ok {
		return false, fmt.Errorf("%w: %s", ErrUnknownAccount, account)
	}
	return acc.RentExempt, nil
}
