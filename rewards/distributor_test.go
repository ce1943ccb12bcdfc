package rewards

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testCreator     = claimerKey(0xA1)
	testStakeMint   = claimerKey(0xB1)
	testRewardMint  = claimerKey(0xB2)
	testOptMint     = claimerKey(0xB3)
	testActivityKey = claimerKey(0xC1)
)

func testActivity(t *testing.T) *Activity {
	t.Helper()
	a, err := NewActivity(ActivityConfig{
		IsActive:        true,
		Creator:         testCreator,
		StakeMint:       testStakeMint,
		RewardMint:      testRewardMint,
		OptRewardMint:   testOptMint,
		StartsAt:        1000,
		EndsAt:          2000,
		RewardExpiresAt: 3000,
		MinAmount:       10,
		Duration:        600,
		FlowRate:        5,
		Name:            "season-1",
	})
	require.NoError(t, err)
	return a
}

func TestNewActivity_Validation(t *testing.T) {
	cfg := ActivityConfig{
		Creator: testCreator, StartsAt: 1000, EndsAt: 2000, RewardExpiresAt: 3000, Name: "x",
	}

	bad := cfg
	bad.EndsAt = 1000
	_, err := NewActivity(bad)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	bad = cfg
	bad.RewardExpiresAt = 1500
	_, err = NewActivity(bad)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	bad = cfg
	bad.Creator = solana.PublicKey{}
	_, err = NewActivity(bad)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewActivity(cfg)
	assert.NoError(t, err)
}

func TestNewDistributor_MintCheck(t *testing.T) {
	a := testActivity(t)
	var root [32]byte

	_, err := NewDistributor(a, testActivityKey, claimerKey(0xFF), testCreator, root, 1000, 0)
	assert.ErrorIs(t, err, ErrWrongRewardMint)

	d, err := NewDistributor(a, testActivityKey, testRewardMint, testCreator, root, 1000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), d.Remaining())

	// The optional reward mint is accepted too.
	_, err = NewDistributor(a, testActivityKey, testOptMint, testCreator, root, 1000, 0)
	assert.NoError(t, err)
}

// testPool builds a distributor over n leaves of the given amounts.
func testPool(t *testing.T, totalSupply uint64, amounts ...uint64) (*Distributor, *Tree) {
	t.Helper()
	leaves := make([][32]byte, len(amounts))
	for i, amt := range amounts {
		leaves[i] = LeafHash(uint64(i), claimerKey(byte(i+1)), amt)
	}
	tree := NewTree(leaves)
	d, err := NewDistributor(testActivity(t), testActivityKey, testRewardMint, testCreator, tree.Root(), totalSupply, 0)
	require.NoError(t, err)
	return d, tree
}

func TestClaim(t *testing.T) {
	d, tree := testPool(t, 1000, 400, 300)

	status := &Status{}
	require.NoError(t, d.Claim(status, 0, claimerKey(1), 400, tree.Proof(0)))
	assert.True(t, status.IsClaimed)
	assert.Equal(t, uint64(400), status.Amount)
	assert.Equal(t, uint64(400), d.TotalClaimed)

	// The status record blocks a second claim regardless of proof.
	err := d.Claim(status, 0, claimerKey(1), 400, tree.Proof(0))
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, uint64(400), d.TotalClaimed)
}

func TestClaim_BadProof(t *testing.T) {
	d, tree := testPool(t, 1000, 400, 300)

	// Amount not matching the committed leaf.
	err := d.Claim(&Status{}, 0, claimerKey(1), 500, tree.Proof(0))
	assert.ErrorIs(t, err, ErrInvalidMerkleProof)

	// Proof for a different leaf.
	err = d.Claim(&Status{}, 0, claimerKey(1), 400, tree.Proof(1))
	assert.ErrorIs(t, err, ErrInvalidMerkleProof)

	assert.Equal(t, uint64(0), d.TotalClaimed)
}

func TestClaim_MaxClaim(t *testing.T) {
	// Pool funded below the sum of the committed leaves.
	d, tree := testPool(t, 500, 400, 300)

	require.NoError(t, d.Claim(&Status{}, 0, claimerKey(1), 400, tree.Proof(0)))
	err := d.Claim(&Status{}, 1, claimerKey(2), 300, tree.Proof(1))
	assert.ErrorIs(t, err, ErrMaxClaim)
}

func TestRecycle(t *testing.T) {
	d, tree := testPool(t, 1000, 400, 300)

	require.NoError(t, d.Claim(&Status{}, 0, claimerKey(1), 400, tree.Proof(0)))
	require.NoError(t, d.Claim(&Status{}, 1, claimerKey(2), 300, tree.Proof(1)))

	rest, err := d.Recycle()
	require.NoError(t, err)
	assert.Equal(t, uint64(300), rest)
	assert.Equal(t, d.TotalSupply, d.TotalClaimed)

	// The pool is closed: no second recycle, no further claims.
	_, err = d.Recycle()
	assert.ErrorIs(t, err, ErrMaxClaim)
	err = d.Claim(&Status{}, 1, claimerKey(2), 300, tree.Proof(1))
	assert.ErrorIs(t, err, ErrMaxClaim)
}

func TestNewRewardBoard(t *testing.T) {
	entries := []BoardEntry{
		{Rewarder: claimerKey(1), Reward: 100, OptReward: 10},
		{Rewarder: claimerKey(2), Reward: 200, OptReward: 20},
	}
	b, err := NewRewardBoard(testActivityKey, entries, "board-1", 7, 255)
	require.NoError(t, err)
	require.Len(t, b.Entries, 2)
	assert.Equal(t, uint64(200), b.EntryFor(claimerKey(2)).Reward)
	assert.Nil(t, b.EntryFor(claimerKey(9)))

	_, err = NewRewardBoard(solana.PublicKey{}, entries, "board-1", 7, 255)
	assert.ErrorIs(t, err, ErrInvalidParams)

	_, err = NewRewardBoard(testActivityKey, make([]BoardEntry, MaxRewarders+1), "board-1", 7, 255)
	assert.ErrorIs(t, err, ErrTooManyRewarders)
}
