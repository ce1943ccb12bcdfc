// Package account persists the protocol's records (streams, activities,
// reward boards, distributors, claim statuses) keyed by deterministic
// derived addresses.
package account

import (
	"encoding/binary"
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// Seed tags for record address derivation. Callers reconstruct record
// addresses from these plus the identifying fields, so the layouts are part
// of the external contract.
var (
	StreamSeed      = []byte("stream")
	ActivitySeed    = []byte("activity")
	BoardSeed       = []byte("rewards_board")
	DistributorSeed = []byte("distributor")
	StatusSeed      = []byte("status")
)

// seedLE encodes a numeric seed as 8 little-endian bytes.
func seedLE(seed uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, seed)
	return b
}

// StreamSeeds returns the derivation seeds of a stream record:
// "stream" || seed_le || mint || name.
func StreamSeeds(seed uint64, mint solana.PublicKey, name string) [][]byte {
	return [][]byte{StreamSeed, seedLE(seed), mint[:], []byte(name)}
}

// ActivitySeeds returns the derivation seeds of an activity record:
// "activity" || seed_le || stake_mint || name.
func ActivitySeeds(seed uint64, stakeMint solana.PublicKey, name string) [][]byte {
	return [][]byte{ActivitySeed, seedLE(seed), stakeMint[:], []byte(name)}
}

// BoardSeeds returns the derivation seeds of a reward board record:
// "rewards_board" || seed_le || activity || name.
func BoardSeeds(seed uint64, activity solana.PublicKey, name string) [][]byte {
	return [][]byte{BoardSeed, seedLE(seed), activity[:], []byte(name)}
}

// DistributorSeeds returns the derivation seeds of a distributor record:
// "distributor" || activity || mint. One distributor per (activity, mint).
func DistributorSeeds(activity, mint solana.PublicKey) [][]byte {
	return [][]byte{DistributorSeed, activity[:], mint[:]}
}

// StatusSeeds returns the derivation seeds of a claim status record:
// "status" || distributor || claimer. One status per (distributor, claimer).
func StatusSeeds(distributor, claimer solana.PublicKey) [][]byte {
	return [][]byte{StatusSeed, distributor[:], claimer[:]}
}

// Derive computes the record address and bump for the given seeds under
// programID.
func Derive(programID solana.PublicKey, seeds [][]byte) (solana.PublicKey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(seeds, programID)
	if err != nil {
		return solana.PublicKey{}, 0, fmt.Errorf("account: derive address: %w", err)
	}
	return addr, bump, nil
}
