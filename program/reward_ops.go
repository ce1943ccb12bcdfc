package program

import (
	"errors"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/superstream-labs/superstream-go/account"
	"github.com/superstream-labs/superstream-go/ledger"
	"github.com/superstream-labs/superstream-go/rewards"
)

// CreateActivityArgs carries the parameters of a new activity.
type CreateActivityArgs struct {
	Seed    uint64
	Name    string
	Creator solana.PublicKey

	StakeMint     solana.PublicKey
	RewardMint    solana.PublicKey
	OptRewardMint solana.PublicKey

	StartsAt        uint64
	EndsAt          uint64
	RewardExpiresAt uint64

	MinAmount uint64
	Duration  uint64
	FlowRate  uint64
}

// CreateActivity publishes a reward campaign. Returns the activity address.
func (p *Program) CreateActivity(args CreateActivityArgs) (solana.PublicKey, error) {
	key, bump, err := p.derive(account.ActivitySeeds(args.Seed, args.StakeMint, args.Name))
	if err != nil {
		return solana.PublicKey{}, err
	}
	a, err := rewards.NewActivity(rewards.ActivityConfig{
		IsActive:        true,
		Creator:         args.Creator,
		StakeMint:       args.StakeMint,
		RewardMint:      args.RewardMint,
		OptRewardMint:   args.OptRewardMint,
		StartsAt:        args.StartsAt,
		EndsAt:          args.EndsAt,
		RewardExpiresAt: args.RewardExpiresAt,
		MinAmount:       args.MinAmount,
		Duration:        args.Duration,
		FlowRate:        args.FlowRate,
		Name:            args.Name,
		Seed:            args.Seed,
		Bump:            bump,
	})
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := p.store.CreateActivity(key, a); err != nil {
		return solana.PublicKey{}, err
	}
	p.log.Info("activity created", "activity", key, "creator", args.Creator)
	return key, nil
}

// CreateRewardsBoard publishes a bounded batch of per-rewarder payouts for
// an activity. Returns the board address.
func (p *Program) CreateRewardsBoard(seed uint64, name string, activityKey solana.PublicKey, entries []rewards.BoardEntry) (solana.PublicKey, error) {
	if _, err := p.store.GetActivity(activityKey); err != nil {
		return solana.PublicKey{}, err
	}
	key, bump, err := p.derive(account.BoardSeeds(seed, activityKey, name))
	if err != nil {
		return solana.PublicKey{}, err
	}
	b, err := rewards.NewRewardBoard(activityKey, entries, name, seed, bump)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := p.store.CreateBoard(key, b); err != nil {
		return solana.PublicKey{}, err
	}
	p.log.Info("rewards board created", "board", key, "activity", activityKey, "entries", len(entries))
	return key, nil
}

// CreateDistributorArgs carries the parameters of a new distributor.
type CreateDistributorArgs struct {
	ActivityKey solana.PublicKey
	Mint        solana.PublicKey
	Creator     solana.PublicKey
	Root        [32]byte
	TotalSupply uint64

	// CreatorToken funds the pool; EscrowToken receives it and must be owned
	// by the distributor address.
	CreatorToken solana.PublicKey
	EscrowToken  solana.PublicKey
}

// CreateDistributor escrows the reward pool and publishes the Merkle root.
// Returns the distributor address.
func (p *Program) CreateDistributor(args CreateDistributorArgs) (solana.PublicKey, error) {
	a, err := p.store.GetActivity(args.ActivityKey)
	if err != nil {
		return solana.PublicKey{}, err
	}
	key, bump, err := p.derive(account.DistributorSeeds(args.ActivityKey, args.Mint))
	if err != nil {
		return solana.PublicKey{}, err
	}
	_, err = p.store.GetDistributor(key)
	if err := requireAbsent(err, account.ErrRecordExists, key); err != nil {
		return solana.PublicKey{}, err
	}
	d, err := rewards.NewDistributor(a, args.ActivityKey, args.Mint, args.Creator, args.Root, args.TotalSupply, bump)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if err := p.ledger.Transfer(ledger.WalletAuthority(args.Creator), args.CreatorToken, args.EscrowToken, args.TotalSupply); err != nil {
		return solana.PublicKey{}, err
	}
	if err := p.store.CreateDistributor(key, d); err != nil {
		return solana.PublicKey{}, err
	}
	p.log.Info("distributor created", "distributor", key, "mint", args.Mint, "supply", args.TotalSupply)
	return key, nil
}

// ClaimArgs identifies one leaf of a distributor's Merkle tree and where to
// pay it.
type ClaimArgs struct {
	ActivityKey solana.PublicKey
	Mint        solana.PublicKey

	Index   uint64
	Claimer solana.PublicKey
	Amount  uint64
	Proof   [][32]byte

	ClaimerToken solana.PublicKey
	EscrowToken  solana.PublicKey
}

// Claim verifies the proof and pays args.Amount to the claimer, exactly
// once per (distributor, claimer).
func (p *Program) Claim(args ClaimArgs) error {
	dKey, _, err := p.derive(account.DistributorSeeds(args.ActivityKey, args.Mint))
	if err != nil {
		return err
	}
	d, err := p.store.GetDistributor(dKey)
	if err != nil {
		return err
	}
	statusKey, _, err := p.derive(account.StatusSeeds(dKey, args.Claimer))
	if err != nil {
		return err
	}
	if existing, err := p.store.GetStatus(statusKey); err == nil && existing.IsClaimed {
		return fmt.Errorf("%w: %s", rewards.ErrAlreadyClaimed, args.Claimer)
	}

	status := &rewards.Status{Distributor: dKey}
	if err := d.Claim(status, args.Index, args.Claimer, args.Amount, args.Proof); err != nil {
		return err
	}

	auth, err := p.authorityFor(account.DistributorSeeds(args.ActivityKey, args.Mint))
	if err != nil {
		return err
	}
	if err := ledger.Settle(p.ledger, auth, args.EscrowToken, []ledger.Leg{{To: args.ClaimerToken, Amount: args.Amount}}); err != nil {
		if errors.Is(err, ledger.ErrWrongMint) {
			return fmt.Errorf("%w: %s", rewards.ErrInvalidRecipient, args.ClaimerToken)
		}
		return err
	}

	if err := p.store.CreateStatus(statusKey, status); err != nil {
		return err
	}
	if err := p.store.PutDistributor(dKey, d); err != nil {
		return err
	}
	p.log.Info("reward claimed", "distributor", dKey, "claimer", args.Claimer, "amount", args.Amount)
	return nil
}

// RecycleReward pays the unclaimed remainder of a distributor back to its
// creator and closes the pool. Returns the recycled amount.
func (p *Program) RecycleReward(activityKey, mint, caller, creatorToken, escrowToken solana.PublicKey) (uint64, error) {
	dKey, _, err := p.derive(account.DistributorSeeds(activityKey, mint))
	if err != nil {
		return 0, err
	}
	d, err := p.store.GetDistributor(dKey)
	if err != nil {
		return 0, err
	}
	if caller != d.CreatorKey {
		return 0, fmt.Errorf("%w: only the creator may recycle", rewards.ErrUnauthorized)
	}
	amount, err := d.Recycle()
	if err != nil {
		return 0, err
	}
	auth, err := p.authorityFor(account.DistributorSeeds(activityKey, mint))
	if err != nil {
		return 0, err
	}
	if err := ledger.Settle(p.ledger, auth, escrowToken, []ledger.Leg{{To: creatorToken, Amount: amount}}); err != nil {
		return 0, err
	}
	if err := p.store.PutDistributor(dKey, d); err != nil {
		return 0, err
	}
	p.log.Info("reward pool recycled", "distributor", dKey, "amount", amount)
	return amount, nil
}
