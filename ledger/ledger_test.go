package ledger

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

var (
	mintA  = key(0x01)
	mintB  = key(0x02)
	alice  = key(0x10)
	bob    = key(0x20)
	tokenA = key(0x11)
	tokenB = key(0x21)
	tokenC = key(0x31)
)

func testLedger(t *testing.T) *InMemory {
	t.Helper()
	l := NewInMemory()
	require.NoError(t, l.CreateAccount(tokenA, mintA, alice, true))
	require.NoError(t, l.CreateAccount(tokenB, mintA, bob, false))
	require.NoError(t, l.CreateAccount(tokenC, mintB, bob, true))
	require.NoError(t, l.Deposit(tokenA, 1000))
	return l
}

func TestInMemory_CreateAccount(t *testing.T) {
	l := testLedger(t)
	err := l.CreateAccount(tokenA, mintA, alice, true)
	assert.ErrorIs(t, err, ErrAccountExists)
}

func TestInMemory_Transfer(t *testing.T) {
	l := testLedger(t)

	require.NoError(t, l.Transfer(WalletAuthority(alice), tokenA, tokenB, 400))
	balance, err := l.BalanceOf(tokenA)
	require.NoError(t, err)
	assert.Equal(t, uint64(600), balance)
	balance, err = l.BalanceOf(tokenB)
	require.NoError(t, err)
	assert.Equal(t, uint64(400), balance)

	err = l.Transfer(WalletAuthority(bob), tokenA, tokenB, 1)
	assert.ErrorIs(t, err, ErrBadAuthority)

	err = l.Transfer(WalletAuthority(alice), tokenA, tokenC, 1)
	assert.ErrorIs(t, err, ErrWrongMint)

	err = l.Transfer(WalletAuthority(alice), tokenA, tokenB, 601)
	assert.ErrorIs(t, err, ErrInsufficientFunds)

	err = l.Transfer(WalletAuthority(alice), key(0x99), tokenB, 1)
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestInMemory_IsRentExempt(t *testing.T) {
	l := testLedger(t)
	exempt, err := l.IsRentExempt(tokenA)
	require.NoError(t, err)
	assert.True(t, exempt)
	exempt, err = l.IsRentExempt(tokenB)
	require.NoError(t, err)
	assert.False(t, exempt)
	_, err = l.IsRentExempt(key(0x99))
	assert.ErrorIs(t, err, ErrUnknownAccount)
}

func TestDeriveAuthority_Deterministic(t *testing.T) {
	programID := key(0x77)
	a1, err := DeriveAuthority(programID, []byte("stream"), []byte("abc"))
	require.NoError(t, err)
	a2, err := DeriveAuthority(programID, []byte("stream"), []byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, a1.Address, a2.Address)
	assert.Equal(t, a1.Bump, a2.Bump)

	a3, err := DeriveAuthority(programID, []byte("stream"), []byte("abd"))
	require.NoError(t, err)
	assert.NotEqual(t, a1.Address, a3.Address)
}

func TestSettle(t *testing.T) {
	l := NewInMemory()
	programID := key(0x77)
	auth, err := DeriveAuthority(programID, []byte("escrow"), []byte("1"))
	require.NoError(t, err)

	escrow := key(0x50)
	require.NoError(t, l.CreateAccount(escrow, mintA, auth.Address, true))
	require.NoError(t, l.CreateAccount(tokenA, mintA, alice, true))
	require.NoError(t, l.CreateAccount(tokenB, mintA, bob, true))
	require.NoError(t, l.Deposit(escrow, 500))

	// Zero legs are skipped, including to accounts that do not exist.
	legs := []Leg{
		{To: tokenA, Amount: 300},
		{To: key(0x99), Amount: 0},
		{To: tokenB, Amount: 200},
	}
	require.NoError(t, Settle(l, auth, escrow, legs))

	balance, err := l.BalanceOf(escrow)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), balance)

	// A failing leg aborts the remainder of the plan.
	require.NoError(t, l.Deposit(escrow, 100))
	err = Settle(l, auth, escrow, []Leg{
		{To: tokenA, Amount: 500},
		{To: tokenB, Amount: 50},
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	balance, err = l.BalanceOf(escrow)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), balance)
}
