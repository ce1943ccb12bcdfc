package stream

import "github.com/gagliardetto/solana-go"

// Capability enumerates the gated actions a caller may attempt on a stream.
type Capability int

const (
	// CapCancel is the sender's ability to cancel the stream.
	CapCancel Capability = iota
	// CapChangeSender is the sender's ability to hand the stream to a new sender.
	CapChangeSender
	// CapPause is the sender's ability to pause the stream.
	CapPause
	// CapResumeSenderPause is the recipient's ability to resume a stream the
	// sender paused.
	CapResumeSenderPause
	// CapWithdrawForRecipient is any third party's ability to trigger a
	// withdrawal on the recipient's behalf.
	CapWithdrawForRecipient
)

// gate returns the permission gate guarding the capability.
func (s *Stream) gate(c Capability) Gate {
	switch c {
	case CapCancel:
		return s.SenderCanCancel
	case CapChangeSender:
		return s.SenderCanChangeSender
	case CapPause:
		return s.SenderCanPause
	case CapResumeSenderPause:
		return s.RecipientCanResumePauseBySender
	case CapWithdrawForRecipient:
		return s.AnyoneCanWithdrawForRecipient
	}
	return Gate{}
}

// Allows reports whether the caller holds the capability at the given time.
//
// The recipient can always cancel and pause; the sender can always resume
// their own pause; everything else goes through the matching gate. The
// insolvency escape valve for cancel is handled in Cancel itself since it
// depends on the escrow balance, not on identity.
func (s *Stream) Allows(c Capability, caller solana.PublicKey, now uint64) bool {
	switch c {
	case CapCancel, CapPause:
		if caller == s.Recipient {
			return true
		}
		return caller == s.Sender && s.gate(c).ActiveNow(now)
	case CapChangeSender:
		return caller == s.Sender && s.gate(c).ActiveNow(now)
	case CapResumeSenderPause:
		if caller == s.Sender {
			return true
		}
		if caller != s.Recipient {
			return false
		}
		return s.gate(c).ActiveNow(now)
	case CapWithdrawForRecipient:
		return caller == s.Recipient || s.gate(c).ActiveNow(now)
	}
	return false
}

// gates returns every permission gate for creation-time window validation.
func (s *Stream) gates() []Gate {
	return []Gate{
		s.SenderCanCancel,
		s.SenderCanChangeSender,
		s.SenderCanPause,
		s.RecipientCanResumePauseBySender,
		s.AnyoneCanWithdrawForRecipient,
	}
}
