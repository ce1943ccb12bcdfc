package stream

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// CreateConfig carries the immutable configuration of a new stream.
type CreateConfig struct {
	IsPrepaid bool
	Mint      solana.PublicKey
	Sender    solana.PublicKey
	Recipient solana.PublicKey
	Name      string
	Seed      uint64
	Bump      uint8

	StartsAt      uint64
	EndsAt        uint64
	InitialAmount uint64
	FlowInterval  uint64
	FlowRate      uint64

	SenderCanCancel                 Gate
	SenderCanChangeSender           Gate
	SenderCanPause                  Gate
	RecipientCanResumePauseBySender Gate
	AnyoneCanWithdrawForRecipient   Gate
}

// New validates the configuration and returns an unfunded stream. The caller
// must follow up with InitializePrepaid or InitializeNonPrepaid to record the
// creation deposit.
func New(now uint64, cfg CreateConfig) (*Stream, error) {
	if cfg.EndsAt <= cfg.StartsAt {
		return nil, fmt.Errorf("%w: ends_at %d not after starts_at %d", ErrInvalidSchedule, cfg.EndsAt, cfg.StartsAt)
	}
	if cfg.FlowInterval == 0 {
		return nil, fmt.Errorf("%w: flow interval must be > 0", ErrInvalidSchedule)
	}
	if len(cfg.Name) > MaxNameLen {
		return nil, fmt.Errorf("%w: %d bytes, max %d", ErrNameTooLong, len(cfg.Name), MaxNameLen)
	}
	if cfg.Sender.IsZero() || cfg.Recipient.IsZero() {
		return nil, fmt.Errorf("%w: sender and recipient are required", ErrInvalidParams)
	}

	s := &Stream{
		IsPrepaid: cfg.IsPrepaid,
		Mint:      cfg.Mint,
		Sender:    cfg.Sender,
		Recipient: cfg.Recipient,
		Name:      cfg.Name,
		Seed:      cfg.Seed,
		Bump:      cfg.Bump,

		CreatedAt: now,
		StartsAt:  cfg.StartsAt,
		EndsAt:    cfg.EndsAt,

		InitialAmount: cfg.InitialAmount,
		FlowInterval:  cfg.FlowInterval,
		FlowRate:      cfg.FlowRate,

		SenderCanCancel:                 cfg.SenderCanCancel,
		SenderCanChangeSender:           cfg.SenderCanChangeSender,
		SenderCanPause:                  cfg.SenderCanPause,
		RecipientCanResumePauseBySender: cfg.RecipientCanResumePauseBySender,
		AnyoneCanWithdrawForRecipient:   cfg.AnyoneCanWithdrawForRecipient,
	}

	for _, g := range s.gates() {
		if g.Enabled && g.ActiveAt > s.EndsAt {
			return nil, fmt.Errorf("%w: gate activates at %d after ends_at %d", ErrInvalidPermissionWindow, g.ActiveAt, s.EndsAt)
		}
	}

	return s, nil
}

// InitializePrepaid records the full lifetime deposit and returns the exact
// amount the sender must escrow.
func (s *Stream) InitializePrepaid() (uint64, error) {
	if !s.IsPrepaid {
		return 0, fmt.Errorf("%w: stream is non-prepaid", ErrInvalidParams)
	}
	amount, err := s.LifetimeAmount()
	if err != nil {
		return 0, err
	}
	s.TotalTopup = amount
	return amount, nil
}

// InitializeNonPrepaid records the creation deposit of a non-prepaid stream.
// The deposit must cover at least periodSecs worth of accrual (or the whole
// stream, if shorter) and must not exceed the lifetime amount.
func (s *Stream) InitializeNonPrepaid(topupAmount, periodSecs uint64) error {
	if s.IsPrepaid {
		return ErrPrepaidStream
	}
	minAmount, err := s.minDeposit(periodSecs)
	if err != nil {
		return err
	}
	if topupAmount < minAmount {
		return fmt.Errorf("%w: %d < %d", ErrDepositTooLow, topupAmount, minAmount)
	}
	maxAmount, err := s.LifetimeAmount()
	if err != nil {
		return err
	}
	if topupAmount > maxAmount {
		return fmt.Errorf("%w: %d > %d", ErrDepositTooHigh, topupAmount, maxAmount)
	}
	s.TotalTopup = topupAmount
	return nil
}

// Topup records an additional deposit into a non-prepaid stream's escrow.
// Anyone may top up; refunds on cancel only ever go to the sender.
func (s *Stream) Topup(amount uint64) error {
	if err := s.requireOpenNonPrepaid(); err != nil {
		return err
	}
	total, err := checkedAdd(s.TotalTopup, amount)
	if err != nil {
		return err
	}
	maxAmount, err := s.LifetimeAmount()
	if err != nil {
		return err
	}
	if total > maxAmount {
		return fmt.Errorf("%w: total %d > %d", ErrExceedsMaxTopup, total, maxAmount)
	}
	s.TotalTopup = total
	return nil
}

// ChangeSender reassigns the sender of a non-prepaid stream. Only the
// current sender may do this, and only while the change-sender gate is
// active.
func (s *Stream) ChangeSender(caller, newSender solana.PublicKey, now uint64) error {
	if err := s.requireOpenNonPrepaid(); err != nil {
		return err
	}
	if newSender.IsZero() {
		return fmt.Errorf("%w: new sender is required", ErrInvalidParams)
	}
	if !s.Allows(CapChangeSender, caller, now) {
		return fmt.Errorf("%w: caller may not change sender", ErrUnauthorized)
	}
	s.Sender = newSender
	return nil
}

// Pause freezes accrual on a non-prepaid stream. The recipient can always
// pause; the sender needs the pause gate.
func (s *Stream) Pause(caller solana.PublicKey, now uint64) error {
	if err := s.requireOpenNonPrepaid(); err != nil {
		return err
	}
	if s.HasEnded(now) {
		return ErrStreamEnded
	}
	if s.IsPaused() {
		return ErrAlreadyPaused
	}
	if !s.Allows(CapPause, caller, now) {
		return fmt.Errorf("%w: caller may not pause", ErrUnauthorized)
	}
	s.PausedAt = now
	s.PausedBySender = caller == s.Sender
	return nil
}

// Resume unfreezes a paused non-prepaid stream and adds the pause span to
// the accumulated paused duration. If the sender paused, the recipient may
// resume only through the resume gate.
func (s *Stream) Resume(caller solana.PublicKey, now uint64) error {
	if err := s.requireOpenNonPrepaid(); err != nil {
		return err
	}
	if !s.IsPaused() {
		return ErrNotPaused
	}
	if s.PausedBySender {
		if !s.Allows(CapResumeSenderPause, caller, now) {
			return fmt.Errorf("%w: caller may not resume a sender pause", ErrUnauthorized)
		}
	} else if caller != s.Sender && caller != s.Recipient {
		return fmt.Errorf("%w: caller may not resume", ErrUnauthorized)
	}
	if now > s.PausedAt {
		s.TotalPausedSecs += now - s.PausedAt
	}
	s.PausedAt = 0
	s.PausedBySender = false
	return nil
}

// WithdrawAndChangeRecipient pays out the recipient's accrued-but-unwithdrawn
// balance and returns the amount to transfer out of escrow. Zero is a valid
// return, not an error. A non-zero newRecipient additionally redirects the
// stream; only the current recipient may redirect.
func (s *Stream) WithdrawAndChangeRecipient(caller, recipient, newRecipient solana.PublicKey, now uint64) (uint64, error) {
	if s.Cancelled {
		return 0, ErrStreamCancelled
	}
	if recipient != s.Recipient {
		return 0, fmt.Errorf("%w: recipient does not match stream", ErrUnauthorized)
	}
	if !s.Allows(CapWithdrawForRecipient, caller, now) {
		return 0, fmt.Errorf("%w: caller may not withdraw for recipient", ErrUnauthorized)
	}
	if !newRecipient.IsZero() && caller != s.Recipient {
		return 0, fmt.Errorf("%w: only the recipient may change recipient", ErrUnauthorized)
	}

	accrued, err := s.AccruedAmount(now)
	if err != nil {
		return 0, err
	}
	amount := saturatingSub(accrued, s.WithdrawnAmount)
	s.WithdrawnAmount = accrued
	if !newRecipient.IsZero() {
		s.Recipient = newRecipient
	}
	return amount, nil
}

// WithdrawExcessTopup returns the sender's unused over-deposit on an ended
// non-prepaid stream: whatever the escrow still holds beyond the recipient's
// outstanding entitlement. Returns 0 when nothing is owed.
func (s *Stream) WithdrawExcessTopup(now, escrowBalance uint64) (uint64, error) {
	if err := s.requireOpenNonPrepaid(); err != nil {
		return 0, err
	}
	if !s.HasEnded(now) {
		return 0, ErrStreamNotEnded
	}
	accrued, err := s.AccruedAmount(now)
	if err != nil {
		return 0, err
	}
	outstanding := saturatingSub(accrued, s.WithdrawnAmount)
	return saturatingSub(escrowBalance, outstanding), nil
}

// Cancel ends the stream permanently and computes the three-way settlement
// of the escrow balance.
//
// The recipient is paid everything accrued so far; the sender is refunded the
// unearned remainder. The sender needs the cancel gate, the recipient can
// always cancel, and once the stream is insolvent (escrow short of the
// recipient's entitlement, possible only for non-prepaid streams) anyone may
// cancel to release the funds. A third party cancelling an insolvent stream
// is paid cleanupRewardBps basis points of the remaining escrow.
func (s *Stream) Cancel(caller, recipient solana.PublicKey, now, escrowBalance, cleanupRewardBps uint64) (Settlement, error) {
	if s.Cancelled {
		return Settlement{}, ErrStreamCancelled
	}
	if recipient != s.Recipient {
		return Settlement{}, fmt.Errorf("%w: recipient does not match stream", ErrUnauthorized)
	}

	accrued, err := s.AccruedAmount(now)
	if err != nil {
		return Settlement{}, err
	}
	owed := saturatingSub(accrued, s.WithdrawnAmount)
	insolvent := escrowBalance < owed

	if !insolvent && !s.Allows(CapCancel, caller, now) {
		return Settlement{}, fmt.Errorf("%w: caller may not cancel", ErrUnauthorized)
	}

	var out Settlement
	if insolvent {
		out.RecipientAmount = escrowBalance
		if caller != s.Sender && caller != s.Recipient && cleanupRewardBps > 0 {
			out.SignerAmount = escrowBalance * cleanupRewardBps / 10_000
			out.RecipientAmount = escrowBalance - out.SignerAmount
		}
	} else {
		out.RecipientAmount = owed
		out.SenderAmount = escrowBalance - owed
	}

	if s.IsPaused() {
		if now > s.PausedAt {
			s.TotalPausedSecs += now - s.PausedAt
		}
		s.PausedAt = 0
		s.PausedBySender = false
	}
	s.WithdrawnAmount += out.RecipientAmount
	s.Cancelled = true
	s.CancelledAt = now
	s.CancelledBy = caller
	return out, nil
}

// requireOpenNonPrepaid rejects cancelled or prepaid streams.
func (s *Stream) requireOpenNonPrepaid() error {
	if s.Cancelled {
		return ErrStreamCancelled
	}
	if s.IsPrepaid {
		return ErrPrepaidStream
	}
	return nil
}
