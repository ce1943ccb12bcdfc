package rewards

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// MaxRewarders is the maximum number of entries a reward board can hold.
const MaxRewarders = 100

// BoardEntry is one rewarder's pair of payouts on a board.
type BoardEntry struct {
	Rewarder  solana.PublicKey
	Reward    uint64
	OptReward uint64
}

// RewardBoard is a bounded batch of per-rewarder payouts published for one
// activity.
type RewardBoard struct {
	Activity solana.PublicKey
	Entries  []BoardEntry

	Name string
	Seed uint64
	Bump uint8
}

// NewRewardBoard validates and returns a reward board for the activity.
func NewRewardBoard(activity solana.PublicKey, entries []BoardEntry, name string, seed uint64, bump uint8) (*RewardBoard, error) {
	if activity.IsZero() {
		return nil, fmt.Errorf("%w: activity is required", ErrInvalidParams)
	}
	if len(entries) > MaxRewarders {
		return nil, fmt.Errorf("%w: %d entries, max %d", ErrTooManyRewarders, len(entries), MaxRewarders)
	}
	board := &RewardBoard{
		Activity: activity,
		Entries:  make([]BoardEntry, len(entries)),
		Name:     name,
		Seed:     seed,
		Bump:     bump,
	}
	copy(board.Entries, entries)
	return board, nil
}

// EntryFor returns the board entry for a rewarder, or nil if absent.
func (b *RewardBoard) EntryFor(rewarder solana.PublicKey) *BoardEntry {
	for i := range b.Entries {
		if b.Entries[i].Rewarder == rewarder {
			return &b.Entries[i]
		}
	}
	return nil
}
