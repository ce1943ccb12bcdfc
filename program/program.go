// Package program wires the stream and rewards state machines to a record
// store and a token ledger, exposing the protocol's operation catalog. Every
// operation reads the clock once, computes all amounts from that snapshot,
// executes the transfers, and persists bookkeeping only after every transfer
// leg succeeded.
package program

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"

	"github.com/superstream-labs/superstream-go/account"
	"github.com/superstream-labs/superstream-go/ledger"
	"github.com/superstream-labs/superstream-go/stream"
)

// Params are the tunable protocol parameters.
type Params struct {
	// DepositPeriodSecs is the accrual window a non-prepaid creation deposit
	// must cover.
	DepositPeriodSecs uint64
	// CleanupRewardBps is the share of remaining escrow, in basis points,
	// paid to a third-party signer cancelling an insolvent stream.
	CleanupRewardBps uint64
}

// DefaultParams returns the standard protocol parameters.
func DefaultParams() Params {
	return Params{
		DepositPeriodSecs: stream.DefaultDepositPeriodSecs,
		CleanupRewardBps:  100,
	}
}

// Config configures a Program.
type Config struct {
	Logger    *slog.Logger
	Clock     clockwork.Clock
	Store     account.Store
	Ledger    ledger.Ledger
	ProgramID solana.PublicKey
	Params    Params
}

// Validate checks required fields and applies defaults.
func (cfg *Config) Validate() error {
	if cfg.Store == nil {
		return errors.New("program: store is required")
	}
	if cfg.Ledger == nil {
		return errors.New("program: ledger is required")
	}
	if cfg.ProgramID.IsZero() {
		return errors.New("program: program id is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Clock == nil {
		cfg.Clock = clockwork.NewRealClock()
	}
	if cfg.Params == (Params{}) {
		cfg.Params = DefaultParams()
	}
	return nil
}

// Program executes protocol operations against one store and ledger.
type Program struct {
	log       *slog.Logger
	clock     clockwork.Clock
	store     account.Store
	ledger    ledger.Ledger
	programID solana.PublicKey
	params    Params
}

// New returns a Program for the given configuration.
func New(cfg Config) (*Program, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Program{
		log:       cfg.Logger,
		clock:     cfg.Clock,
		store:     cfg.Store,
		ledger:    cfg.Ledger,
		programID: cfg.ProgramID,
		params:    cfg.Params,
	}, nil
}

// now returns the current ledger time in seconds since epoch.
func (p *Program) now() uint64 {
	return uint64(p.clock.Now().Unix())
}

// derive computes a record address under this program.
func (p *Program) derive(seeds [][]byte) (solana.PublicKey, uint8, error) {
	return account.Derive(p.programID, seeds)
}

// authorityFor re-derives the escrow authority for a record from its seeds.
// All settlement legs out of one escrow authenticate with this single
// authority.
func (p *Program) authorityFor(seeds [][]byte) (ledger.Authority, error) {
	return ledger.DeriveAuthority(p.programID, seeds...)
}

// requireAbsent fails with existsErr if a record is already stored at key.
func requireAbsent(err error, existsErr error, key solana.PublicKey) error {
	if err == nil {
		return fmt.Errorf("%w: %s", existsErr, key)
	}
	if errors.Is(err, account.ErrNotFound) {
		return nil
	}
	return err
}
