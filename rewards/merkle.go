package rewards

import (
	"bytes"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"golang.org/x/crypto/sha3"
)

// keccak returns the legacy keccak256 digest of the concatenated inputs.
func keccak(parts ...[]byte) [32]byte {
	h := sha3.NewLegacyKeccak256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	h.Sum(out[:0])
	return out
}

// LeafHash computes the claim leaf for (index, claimer, amount). Integers
// are little-endian.
func LeafHash(index uint64, claimer solana.PublicKey, amount uint64) [32]byte {
	var idx, amt [8]byte
	binary.LittleEndian.PutUint64(idx[:], index)
	binary.LittleEndian.PutUint64(amt[:], amount)
	return keccak(idx[:], claimer[:], amt[:])
}

// hashPair combines two nodes with the smaller-or-equal operand first, so
// verification needs no left/right position bits.
func hashPair(a, b [32]byte) [32]byte {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return keccak(a[:], b[:])
	}
	return keccak(b[:], a[:])
}

// Verify walks the proof from leaf to root, combining with each element in
// ascending byte-lexicographic order, and reports whether the result equals
// root. Deterministic, no side effects.
func Verify(proof [][32]byte, root, leaf [32]byte) bool {
	computed := leaf
	for _, node := range proof {
		computed = hashPair(computed, node)
	}
	return computed == root
}

// Tree is a Merkle tree over claim leaves, used to publish roots and produce
// proofs. Level 0 is the leaves; an odd node is promoted to the next level
// unhashed.
type Tree struct {
	levels [][][32]byte
}

// NewTree builds a tree over the given leaves. Returns nil for no leaves.
func NewTree(leaves [][32]byte) *Tree {
	if len(leaves) == 0 {
		return nil
	}
	level := make([][32]byte, len(leaves))
	copy(level, leaves)

	t := &Tree{levels: [][][32]byte{level}}
	for len(level) > 1 {
		next := make([][32]byte, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, level[i])
				continue
			}
			next = append(next, hashPair(level[i], level[i+1]))
		}
		t.levels = append(t.levels, next)
		level = next
	}
	return t
}

// Root returns the tree root.
func (t *Tree) Root() [32]byte {
	top := t.levels[len(t.levels)-1]
	return top[0]
}

// Proof returns the sibling path for the leaf at index i, ordered bottom-up.
func (t *Tree) Proof(i int) [][32]byte {
	var proof [][32]byte
	for _, level := range t.levels[:len(t.levels)-1] {
		sibling := i ^ 1
		if sibling < len(level) {
			proof = append(proof, level[sibling])
		}
		i /= 2
	}
	return proof
}
