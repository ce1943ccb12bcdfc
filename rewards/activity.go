// Package rewards implements reward campaigns: activity metadata, reward
// boards, and Merkle-proof reward distributors with claim deduplication.
package rewards

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MaxActivityNameLen is the maximum supported activity name length.
const MaxActivityNameLen = 100

// Activity describes a reward campaign: who staked what, over which window,
// and how rewards flow. Immutable after creation; distributors and reward
// boards reference it.
type Activity struct {
	IsActive bool
	Creator  solana.PublicKey

	StakeMint     solana.PublicKey
	RewardMint    solana.PublicKey
	OptRewardMint solana.PublicKey

	StartsAt        uint64
	EndsAt          uint64
	RewardExpiresAt uint64

	MinAmount uint64
	Duration  uint64
	FlowRate  uint64

	Name string
	Seed uint64
	Bump uint8
}

// ActivityConfig carries the parameters of a new activity.
type ActivityConfig struct {
	IsActive bool
	Creator  solana.PublicKey

	StakeMint     solana.PublicKey
	RewardMint    solana.PublicKey
	OptRewardMint solana.PublicKey

	StartsAt        uint64
	EndsAt          uint64
	RewardExpiresAt uint64

	MinAmount uint64
	Duration  uint64
	FlowRate  uint64

	Name string
	Seed uint64
	Bump uint8
}

// NewActivity validates the configuration and returns the activity record.
func NewActivity(cfg ActivityConfig) (*Activity, error) {
	if cfg.EndsAt <= cfg.StartsAt {
		return nil, fmt.Errorf("%w: ends_at %d not after starts_at %d", ErrInvalidWindow, cfg.EndsAt, cfg.StartsAt)
	}
	if cfg.RewardExpiresAt < cfg.EndsAt {
		return nil, fmt.Errorf("%w: reward_expires_at %d before ends_at %d", ErrInvalidWindow, cfg.RewardExpiresAt, cfg.EndsAt)
	}
	if len(cfg.Name) > MaxActivityNameLen {
		return nil, fmt.Errorf("%w: name too long", ErrInvalidParams)
	}
	if cfg.Creator.IsZero() {
		return nil, fmt.Errorf("%w: creator is required", ErrInvalidParams)
	}
	return &Activity{
		IsActive:        cfg.IsActive,
		Creator:         cfg.Creator,
		StakeMint:       cfg.StakeMint,
		RewardMint:      cfg.RewardMint,
		OptRewardMint:   cfg.OptRewardMint,
		StartsAt:        cfg.StartsAt,
		EndsAt:          cfg.EndsAt,
		RewardExpiresAt: cfg.RewardExpiresAt,
		MinAmount:       cfg.MinAmount,
		Duration:        cfg.Duration,
		FlowRate:        cfg.FlowRate,
		Name:            cfg.Name,
		Seed:            cfg.Seed,
		Bump:            cfg.Bump,
	}, nil
}

// AcceptsRewardMint reports whether mint can fund a distributor for this
// activity.
func (a *Activity) AcceptsRewardMint(mint solana.PublicKey) bool {
	return mint == a.RewardMint || mint == a.OptRewardMint
}
