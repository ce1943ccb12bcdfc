package account

import (
	"github.com/gagliardetto/solana-go"

	"github.com/superstream-labs/superstream-go/rewards"
	"github.com/superstream-labs/superstream-go/stream"
)

// Store persists protocol records keyed by derived address. Create methods
// are first-writer-wins: creating a record at an occupied address fails with
// ErrRecordExists (ErrStatusExists for claim statuses), which is what makes
// claim deduplication hold at the storage layer.
type Store interface {
	CreateStream(key solana.PublicKey, s *stream.Stream) error
	GetStream(key solana.PublicKey) (*stream.Stream, error)
	PutStream(key solana.PublicKey, s *stream.Stream) error

	CreateActivity(key solana.PublicKey, a *rewards.Activity) error
	GetActivity(key solana.PublicKey) (*rewards.Activity, error)

	CreateBoard(key solana.PublicKey, b *rewards.RewardBoard) error
	GetBoard(key solana.PublicKey) (*rewards.RewardBoard, error)

	CreateDistributor(key solana.PublicKey, d *rewards.Distributor) error
	GetDistributor(key solana.PublicKey) (*rewards.Distributor, error)
	PutDistributor(key solana.PublicKey, d *rewards.Distributor) error

	CreateStatus(key solana.PublicKey, st *rewards.Status) error
	GetStatus(key solana.PublicKey) (*rewards.Status, error)
	PutStatus(key solana.PublicKey, st *rewards.Status) error

	Close() error
}
