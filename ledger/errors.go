package ledger

import "errors"

var (
	// ErrUnknownAccount indicates the token account does not exist.
	ErrUnknownAccount = errors.New("ledger: unknown account")

	// ErrAccountExists indicates a token account already exists at the key.
	ErrAccountExists = errors.New("ledger: account already exists")

	// ErrInsufficientFunds indicates the source balance cannot cover the transfer.
	ErrInsufficientFunds = errors.New("ledger: insufficient funds")

	// ErrWrongMint indicates the source and destination hold different mints.
	ErrWrongMint = errors.New("ledger: mint mismatch")

	// ErrBadAuthority indicates the authority does not control the source account.
	ErrBadAuthority = errors.New("ledger: authority does not own source account")
)
