package rewards

import "errors"

var (
	// ErrInvalidWindow indicates the activity eligibility window is malformed.
	ErrInvalidWindow = errors.New("rewards: invalid eligibility window")

	// ErrWrongRewardMint indicates the funding mint matches neither the
	// activity's reward mint nor its optional reward mint.
	ErrWrongRewardMint = errors.New("rewards: wrong reward mint")

	// ErrInvalidMerkleProof indicates the proof does not verify against the
	// distributor's root.
	ErrInvalidMerkleProof = errors.New("rewards: invalid merkle proof")

	// ErrAlreadyClaimed indicates the claimer has already claimed from this
	// distributor.
	ErrAlreadyClaimed = errors.New("rewards: already claimed")

	// ErrMaxClaim indicates the claim (or recycle) would exceed the
	// distributor's remaining supply.
	ErrMaxClaim = errors.New("rewards: exceeds remaining supply")

	// ErrInvalidRecipient indicates the claim destination does not hold the
	// distributor's reward mint.
	ErrInvalidRecipient = errors.New("rewards: invalid claim recipient")

	// ErrTooManyRewarders indicates a reward board exceeds MaxRewarders entries.
	ErrTooManyRewarders = errors.New("rewards: too many rewarders")

	// ErrUnauthorized indicates the caller may not perform the operation.
	ErrUnauthorized = errors.New("rewards: unauthorized")

	// ErrInvalidParams indicates one or more arguments are invalid.
	ErrInvalidParams = errors.New("rewards: invalid parameters")
)
