package rewards

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Distributor is a Merkle-rooted reward pool for one (activity, mint) pair.
// The root commits to a set of (index, claimer, amount) leaves; the pool is
// escrowed in full at creation and drains through Claim until TotalClaimed
// reaches TotalSupply.
type Distributor struct {
	Activity   solana.PublicKey
	Mint       solana.PublicKey
	CreatorKey solana.PublicKey

	Root [32]byte

	TotalSupply  uint64
	TotalClaimed uint64

	Bump uint8
}

// Status is the per-(distributor, claimer) claim record. Its existence is
// the primary duplicate-claim guard: the record store refuses to create it
// twice, and IsClaimed is checked again here as a second line.
type Status struct {
	Distributor solana.PublicKey
	Claimer     solana.PublicKey
	Amount      uint64
	IsClaimed   bool
}

// NewDistributor validates the funding mint against the activity and returns
// the distributor. The caller escrows totalSupply alongside.
func NewDistributor(activity *Activity, activityKey, mint, creator solana.PublicKey, root [32]byte, totalSupply uint64, bump uint8) (*Distributor, error) {
	if !activity.AcceptsRewardMint(mint) {
		return nil, fmt.Errorf("%w: %s", ErrWrongRewardMint, mint)
	}
	return &Distributor{
		Activity:    activityKey,
		Mint:        mint,
		CreatorKey:  creator,
		Root:        root,
		TotalSupply: totalSupply,
		Bump:        bump,
	}, nil
}

// Remaining returns the unclaimed remainder of the pool.
func (d *Distributor) Remaining() uint64 {
	return d.TotalSupply - d.TotalClaimed
}

// Claim verifies the Merkle proof for (index, claimer, amount) and records
// the claim on both the distributor and the status record. The caller
// transfers amount out of the distributor's escrow on success.
func (d *Distributor) Claim(status *Status, index uint64, claimer solana.PublicKey, amount uint64, proof [][32]byte) error {
	if status.IsClaimed {
		return fmt.Errorf("%w: %s", ErrAlreadyClaimed, claimer)
	}
	if amount > d.Remaining() {
		return fmt.Errorf("%w: claim %d, remaining %d", ErrMaxClaim, amount, d.Remaining())
	}
	if !Verify(proof, d.Root, LeafHash(index, claimer, amount)) {
		return ErrInvalidMerkleProof
	}
	status.Claimer = claimer
	status.Amount = amount
	status.IsClaimed = true
	d.TotalClaimed += amount
	return nil
}

// Recycle pays the unclaimed remainder back to the creator and closes the
// pool by setting TotalClaimed to TotalSupply. Valid at most once; an
// exhausted pool fails ErrMaxClaim.
func (d *Distributor) Recycle() (uint64, error) {
	rest := d.Remaining()
	if rest == 0 {
		return 0, fmt.Errorf("%w: pool exhausted", ErrMaxClaim)
	}
	d.TotalClaimed = d.TotalSupply
	return rest, nil
}
