package account

import (
	"path/filepath"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/superstream-labs/superstream-go/rewards"
	"github.com/superstream-labs/superstream-go/stream"
)

func testKey(b byte) solana.PublicKey {
	var k solana.PublicKey
	for i := range k {
		k[i] = b
	}
	return k
}

func openTestStore(t *testing.T) *BoltStore {
	t.Helper()
	s, err := OpenBoltStore(filepath.Join(t.TempDir(), "accounts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBoltStore_StreamRoundTrip(t *testing.T) {
	store := openTestStore(t)
	key := testKey(0x01)

	in := &stream.Stream{
		IsPrepaid:       true,
		Mint:            testKey(0x02),
		Sender:          testKey(0x03),
		Recipient:       testKey(0x04),
		Name:            "salary",
		Seed:            42,
		Bump:            254,
		StartsAt:        100,
		EndsAt:          1100,
		FlowInterval:    10,
		FlowRate:        5,
		SenderCanCancel: stream.Gate{Enabled: true, ActiveAt: 100},
		TotalTopup:      500,
	}
	require.NoError(t, store.CreateStream(key, in))

	out, err := store.GetStream(key)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	// Updates round-trip too.
	out.WithdrawnAmount = 50
	require.NoError(t, store.PutStream(key, out))
	again, err := store.GetStream(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(50), again.WithdrawnAmount)
}

func TestBoltStore_CreateIsFirstWriterWins(t *testing.T) {
	store := openTestStore(t)
	key := testKey(0x01)

	require.NoError(t, store.CreateStream(key, &stream.Stream{Name: "first"}))
	err := store.CreateStream(key, &stream.Stream{Name: "second"})
	assert.ErrorIs(t, err, ErrRecordExists)

	s, err := store.GetStream(key)
	require.NoError(t, err)
	assert.Equal(t, "first", s.Name)
}

func TestBoltStore_NotFound(t *testing.T) {
	store := openTestStore(t)
	_, err := store.GetStream(testKey(0x09))
	assert.ErrorIs(t, err, ErrNotFound)
	err = store.PutStream(testKey(0x09), &stream.Stream{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStore_StatusDedup(t *testing.T) {
	store := openTestStore(t)
	key := testKey(0x01)

	st := &rewards.Status{Distributor: testKey(0x02), Claimer: testKey(0x03), Amount: 100, IsClaimed: true}
	require.NoError(t, store.CreateStatus(key, st))

	// The second creation attempt is the duplicate-claim rejection.
	err := store.CreateStatus(key, &rewards.Status{Claimer: testKey(0x03), Amount: 999})
	assert.ErrorIs(t, err, ErrStatusExists)

	out, err := store.GetStatus(key)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), out.Amount)
	assert.True(t, out.IsClaimed)
}

func TestBoltStore_RewardRecords(t *testing.T) {
	store := openTestStore(t)

	a := &rewards.Activity{Creator: testKey(0x01), StartsAt: 1, EndsAt: 2, RewardExpiresAt: 3, Name: "season-1"}
	require.NoError(t, store.CreateActivity(testKey(0x0A), a))
	gotA, err := store.GetActivity(testKey(0x0A))
	require.NoError(t, err)
	assert.Equal(t, a, gotA)

	b := &rewards.RewardBoard{Activity: testKey(0x0A), Entries: []rewards.BoardEntry{{Rewarder: testKey(0x02), Reward: 5}}}
	require.NoError(t, store.CreateBoard(testKey(0x0B), b))
	gotB, err := store.GetBoard(testKey(0x0B))
	require.NoError(t, err)
	assert.Equal(t, b, gotB)

	d := &rewards.Distributor{Activity: testKey(0x0A), Mint: testKey(0x03), TotalSupply: 1000}
	require.NoError(t, store.CreateDistributor(testKey(0x0C), d))
	d.TotalClaimed = 400
	require.NoError(t, store.PutDistributor(testKey(0x0C), d))
	gotD, err := store.GetDistributor(testKey(0x0C))
	require.NoError(t, err)
	assert.Equal(t, uint64(400), gotD.TotalClaimed)
}

func TestDerive_Deterministic(t *testing.T) {
	programID := testKey(0x77)
	mint := testKey(0x05)

	a1, bump1, err := Derive(programID, StreamSeeds(1, mint, "salary"))
	require.NoError(t, err)
	a2, bump2, err := Derive(programID, StreamSeeds(1, mint, "salary"))
	require.NoError(t, err)
	assert.Equal(t, a1, a2)
	assert.Equal(t, bump1, bump2)

	// Any identifying field change moves the address.
	b, _, err := Derive(programID, StreamSeeds(2, mint, "salary"))
	require.NoError(t, err)
	assert.NotEqual(t, a1, b)
	c, _, err := Derive(programID, StreamSeeds(1, mint, "rent"))
	require.NoError(t, err)
	assert.NotEqual(t, a1, c)

	// Different record types with overlapping fields do not collide.
	d, _, err := Derive(programID, ActivitySeeds(1, mint, "salary"))
	require.NoError(t, err)
	assert.NotEqual(t, a1, d)
}
