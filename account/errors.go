package account

import "errors"

var (
	// ErrNotFound indicates no record exists at the address.
	ErrNotFound = errors.New("account: record not found")

	// ErrRecordExists indicates a record already exists at the address.
	ErrRecordExists = errors.New("account: record already exists")

	// ErrStatusExists indicates a claim status already exists for the
	// (distributor, claimer) pair. This is the storage-level duplicate-claim
	// rejection.
	ErrStatusExists = errors.New("account: claim status already exists")
)
