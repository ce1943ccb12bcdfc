package stream

import "errors"

var (
	// ErrInvalidSchedule indicates the stream schedule is malformed (ends_at
	// not after starts_at, or a zero flow interval).
	ErrInvalidSchedule = errors.New("stream: invalid schedule")

	// ErrInvalidPermissionWindow indicates an enabled permission gate
	// activates after the stream has already ended.
	ErrInvalidPermissionWindow = errors.New("stream: invalid permission window")

	// ErrNameTooLong indicates the stream name exceeds MaxNameLen.
	ErrNameTooLong = errors.New("stream: name too long")

	// ErrDepositTooLow indicates the initial topup of a non-prepaid stream is
	// below the minimum deposit.
	ErrDepositTooLow = errors.New("stream: deposit below minimum")

	// ErrDepositTooHigh indicates the initial topup of a non-prepaid stream
	// exceeds the total lifetime amount.
	ErrDepositTooHigh = errors.New("stream: deposit above lifetime maximum")

	// ErrExceedsMaxTopup indicates a topup would fund the escrow past the
	// stream's total lifetime amount.
	ErrExceedsMaxTopup = errors.New("stream: topup exceeds maximum acceptable amount")

	// ErrUnauthorized indicates the caller does not satisfy the identity,
	// permission-gate, or timing conditions of the operation.
	ErrUnauthorized = errors.New("stream: unauthorized")

	// ErrPrepaidStream indicates a non-prepaid-only operation was invoked on
	// a prepaid stream.
	ErrPrepaidStream = errors.New("stream: operation not valid on prepaid stream")

	// ErrStreamCancelled indicates the stream has already been cancelled.
	ErrStreamCancelled = errors.New("stream: stream is cancelled")

	// ErrStreamEnded indicates the stream has already ended.
	ErrStreamEnded = errors.New("stream: stream has ended")

	// ErrStreamNotEnded indicates the stream has not ended yet.
	ErrStreamNotEnded = errors.New("stream: stream has not ended")

	// ErrAlreadyPaused indicates the stream is already paused.
	ErrAlreadyPaused = errors.New("stream: stream is already paused")

	// ErrNotPaused indicates the stream is not paused.
	ErrNotPaused = errors.New("stream: stream is not paused")

	// ErrEscrowNotRentExempt indicates the escrow account does not hold a
	// rent-exempt balance.
	ErrEscrowNotRentExempt = errors.New("stream: escrow account not rent exempt")

	// ErrArithmeticOverflow indicates an accrual computation cannot be
	// represented in 64 bits.
	ErrArithmeticOverflow = errors.New("stream: arithmetic overflow")

	// ErrInvalidParams indicates one or more arguments are invalid.
	ErrInvalidParams = errors.New("stream: invalid parameters")
)
