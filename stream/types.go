package stream

import (
	"github.com/gagliardetto/solana-go"
)

const (
	// DefaultDepositPeriodSecs is the default accrual window a non-prepaid
	// stream's initial deposit must cover (8 hours).
	DefaultDepositPeriodSecs = 8 * 60 * 60

	// MaxNameLen is the maximum supported stream name length. Record space
	// is sized for names up to this length.
	MaxNameLen = 100
)

// Gate is a permission flag paired with its activation time. The capability
// it guards is granted only while the flag is enabled and the current time
// has reached ActiveAt.
type Gate struct {
	Enabled  bool
	ActiveAt uint64
}

// ActiveNow reports whether the gate grants its capability at the given time.
func (g Gate) ActiveNow(now uint64) bool {
	return g.Enabled && now >= g.ActiveAt
}

// Stream is a single money stream between a sender and a recipient.
//
// All timestamps are seconds since epoch. Funds for the stream sit in an
// escrow account owned by the stream's derived address; the struct tracks
// claims against that escrow, never the escrow balance itself.
type Stream struct {
	// IsPrepaid selects the funding mode. Prepaid streams escrow the entire
	// lifetime amount at creation; non-prepaid streams are funded
	// incrementally and can become insolvent.
	IsPrepaid bool

	Mint      solana.PublicKey
	Sender    solana.PublicKey
	Recipient solana.PublicKey

	Name string
	Seed uint64
	Bump uint8

	CreatedAt uint64
	StartsAt  uint64
	EndsAt    uint64

	// InitialAmount is owed to the recipient in full as soon as the stream
	// starts, on top of the flowing amount.
	InitialAmount uint64
	// FlowInterval is the accrual tick in seconds. Always > 0.
	FlowInterval uint64
	// FlowRate is the amount accrued per full elapsed interval.
	FlowRate uint64

	SenderCanCancel                 Gate
	SenderCanChangeSender           Gate
	SenderCanPause                  Gate
	RecipientCanResumePauseBySender Gate
	AnyoneCanWithdrawForRecipient   Gate

	// TotalTopup is the cumulative amount deposited into escrow, including
	// the creation deposit. For prepaid streams it equals the full prepaid
	// amount.
	TotalTopup uint64
	// WithdrawnAmount is the cumulative amount already paid out to the
	// recipient. Monotonically non-decreasing.
	WithdrawnAmount uint64

	// PausedAt is the timestamp of the current pause, or 0 if not paused.
	PausedAt       uint64
	PausedBySender bool
	// TotalPausedSecs accumulates the duration of all completed pauses.
	TotalPausedSecs uint64

	Cancelled   bool
	CancelledAt uint64
	CancelledBy solana.PublicKey
}

// Settlement is the outcome of a cancel: the amounts to transfer out of
// escrow to the sender, the cancelling signer, and the recipient. Computed
// from a single clock reading; the three legs must all execute or none.
type Settlement struct {
	SenderAmount    uint64
	SignerAmount    uint64
	RecipientAmount uint64
}

// Total returns the sum of all settlement legs.
func (s Settlement) Total() uint64 {
	return s.SenderAmount + s.SignerAmount + s.RecipientAmount
}

// IsPaused reports whether the stream is currently paused.
func (s *Stream) IsPaused() bool { return s.PausedAt != 0 }

// Duration returns the scheduled streaming duration in seconds.
func (s *Stream) Duration() uint64 { return s.EndsAt - s.StartsAt }

// HasEnded reports whether accrual is complete at the given time. Completed
// pauses postpone the effective end by their total duration; an open pause
// means accrual is still frozen mid-flight, so the stream has not ended.
func (s *Stream) HasEnded(now uint64) bool {
	if s.IsPaused() {
		return false
	}
	end := s.EndsAt + s.TotalPausedSecs
	if end < s.EndsAt { // overflow clamp
		end = ^uint64(0)
	}
	return now >= end
}
