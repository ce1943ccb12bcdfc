package account

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"go.etcd.io/bbolt"

	"github.com/superstream-labs/superstream-go/rewards"
	"github.com/superstream-labs/superstream-go/stream"
)

var (
	bucketStreams      = []byte("streams")
	bucketActivities   = []byte("activities")
	bucketBoards       = []byte("reward_boards")
	bucketDistributors = []byte("distributors")
	bucketStatuses     = []byte("claim_statuses")
)

// BoltStore is a Store backed by a bbolt database, one bucket per record
// type, gob-encoded values.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface check.
var _ Store = (*BoltStore)(nil)

// OpenBoltStore opens or creates the bbolt database at dbPath. The parent
// directory is created if it does not exist.
func OpenBoltStore(dbPath string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, fmt.Errorf("account: create directory: %w", err)
	}
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("account: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketStreams, bucketActivities, bucketBoards, bucketDistributors, bucketStatuses} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("account: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// encodeGob serializes a record using gob encoding.
func encodeGob(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeGob deserializes gob-encoded data into a record.
func decodeGob(data []byte, v interface{}) error {
	return gob.NewDecoder(bytes.NewReader(data)).Decode(v)
}

// create stores a record at key, failing with existsErr if the key is taken.
func (s *BoltStore) create(bucket []byte, key solana.PublicKey, v interface{}, existsErr error) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("account: encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get(key[:]) != nil {
			return fmt.Errorf("%w: %s", existsErr, key)
		}
		return b.Put(key[:], data)
	})
}

// put overwrites the record at key. The record must already exist.
func (s *BoltStore) put(bucket []byte, key solana.PublicKey, v interface{}) error {
	data, err := encodeGob(v)
	if err != nil {
		return fmt.Errorf("account: encode record: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucket)
		if b.Get(key[:]) == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return b.Put(key[:], data)
	})
}

// get loads the record at key into v.
func (s *BoltStore) get(bucket []byte, key solana.PublicKey, v interface{}) error {
	return s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get(key[:])
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return decodeGob(data, v)
	})
}

// CreateStream stores a new stream record.
func (s *BoltStore) CreateStream(key solana.PublicKey, st *stream.Stream) error {
	return s.create(bucketStreams, key, st, ErrRecordExists)
}

// GetStream loads a stream record.
func (s *BoltStore) GetStream(key solana.PublicKey) (*stream.Stream, error) {
	st := &stream.Stream{}
	if err := s.get(bucketStreams, key, st); err != nil {
		return nil, err
	}
	return st, nil
}

// PutStream overwrites an existing stream record.
func (s *BoltStore) PutStream(key solana.PublicKey, st *stream.Stream) error {
	return s.put(bucketStreams, key, st)
}

// CreateActivity stores a new activity record.
func (s *BoltStore) CreateActivity(key solana.PublicKey, a *rewards.Activity) error {
	return s.create(bucketActivities, key, a, ErrRecordExists)
}

// GetActivity loads an activity record.
func (s *BoltStore) GetActivity(key solana.PublicKey) (*rewards.Activity, error) {
	a := &rewards.Activity{}
	if err := s.get(bucketActivities, key, a); err != nil {
		return nil, err
	}
	return a, nil
}

// CreateBoard stores a new reward board record.
func (s *BoltStore) CreateBoard(key solana.PublicKey, b *rewards.RewardBoard) error {
	return s.create(bucketBoards, key, b, ErrRecordExists)
}

// GetBoard loads a reward board record.
func (s *BoltStore) GetBoard(key solana.PublicKey) (*rewards.RewardBoard, error) {
	b := &rewards.RewardBoard{}
	if err := s.get(bucketBoards, key, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CreateDistributor stores a new distributor record.
func (s *BoltStore) CreateDistributor(key solana.PublicKey, d *rewards.Distributor) error {
	return s.create(bucketDistributors, key, d, ErrRecordExists)
}

// GetDistributor loads a distributor record.
func (s *BoltStore) GetDistributor(key solana.PublicKey) (*rewards.Distributor, error) {
	d := &rewards.Distributor{}
	if err := s.get(bucketDistributors, key, d); err != nil {
		return nil, err
	}
	return d, nil
}

// PutDistributor overwrites an existing distributor record.
func (s *BoltStore) PutDistributor(key solana.PublicKey, d *rewards.Distributor) error {
	return s.put(bucketDistributors, key, d)
}

// CreateStatus stores a new claim status. Fails with ErrStatusExists if the
// (distributor, claimer) pair already claimed.
func (s *BoltStore) CreateStatus(key solana.PublicKey, st *rewards.Status) error {
	return s.create(bucketStatuses, key, st, ErrStatusExists)
}

// GetStatus loads a claim status record.
func (s *BoltStore) GetStatus(key solana.PublicKey) (*rewards.Status, error) {
	st := &rewards.Status{}
	if err := s.get(bucketStatuses, key, st); err != nil {
		return nil, err
	}
	return st, nil
}

// PutStatus overwrites an existing claim status record.
func (s *BoltStore) PutStatus(key solana.PublicKey, st *rewards.Status) error {
	return s.put(bucketStatuses, key, st)
}
