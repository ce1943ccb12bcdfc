package program

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/superstream-labs/superstream-go/account"
	"github.com/superstream-labs/superstream-go/ledger"
	"github.com/superstream-labs/superstream-go/stream"
)

// StreamRef locates an existing stream record. Callers reconstruct the
// stream address from these fields, so they are part of the external
// contract.
type StreamRef struct {
	Seed uint64
	Name string
	Mint solana.PublicKey
}

// CreateStreamArgs carries everything needed to create a stream.
type CreateStreamArgs struct {
	Seed      uint64
	Name      string
	Mint      solana.PublicKey
	Sender    solana.PublicKey
	Recipient solana.PublicKey

	StartsAt      uint64
	EndsAt        uint64
	InitialAmount uint64
	FlowInterval  uint64
	FlowRate      uint64

	SenderCanCancel                 stream.Gate
	SenderCanChangeSender           stream.Gate
	SenderCanPause                  stream.Gate
	RecipientCanResumePauseBySender stream.Gate
	AnyoneCanWithdrawForRecipient   stream.Gate

	// SenderToken funds the creation deposit; EscrowToken receives it and
	// must be owned by the stream address and rent exempt.
	SenderToken solana.PublicKey
	EscrowToken solana.PublicKey

	// TopupAmount is the creation deposit of a non-prepaid stream. Ignored
	// for prepaid streams, which escrow the exact lifetime amount.
	TopupAmount uint64
}

// CreatePrepaid creates a prepaid stream, escrowing the full lifetime amount
// from the sender. Returns the stream address.
func (p *Program) CreatePrepaid(args CreateStreamArgs) (solana.PublicKey, error) {
	return p.createStream(args, true)
}

// CreateNonPrepaid creates a non-prepaid stream funded with args.TopupAmount.
// Returns the stream address.
func (p *Program) CreateNonPrepaid(args CreateStreamArgs) (solana.PublicKey, error) {
	return p.createStream(args, false)
}

func (p *Program) createStream(args CreateStreamArgs, prepaid bool) (solana.PublicKey, error) {
	now := p.now()

	key, bump, err := p.derive(account.StreamSeeds(args.Seed, args.Mint, args.Name))
	if err != nil {
		return solana.PublicKey{}, err
	}

	exempt, err := p.ledger.IsRentExempt(args.EscrowToken)
	if err != nil {
		return solana.PublicKey{}, err
	}
	if !exempt {
		return solana.PublicKey{}, fmt.Errorf("%w: %s", stream.ErrEscrowNotRentExempt, args.EscrowToken)
	}

	_, err = p.store.GetStream(key)
	if err := requireAbsent(err, account.ErrRecordExists, key); err != nil {
		return solana.PublicKey{}, err
	}

	s, err := stream.New(now, stream.CreateConfig{
		IsPrepaid: prepaid,
		Mint:      args.Mint,
		Sender:    args.Sender,
		Recipient: args.Recipient,
		Name:      args.Name,
		Seed:      args.Seed,
		Bump:      bump,

		StartsAt:      args.StartsAt,
		EndsAt:        args.EndsAt,
		InitialAmount: args.InitialAmount,
		FlowInterval:  args.FlowInterval,
		FlowRate:      args.FlowRate,

		SenderCanCancel:                 args.SenderCanCancel,
		SenderCanChangeSender:           args.SenderCanChangeSender,
		SenderCanPause:                  args.SenderCanPause,
		RecipientCanResumePauseBySender: args.RecipientCanResumePauseBySender,
		AnyoneCanWithdrawForRecipient:   args.AnyoneCanWithdrawForRecipient,
	})
	if err != nil {
		return solana.PublicKey{}, err
	}

	var deposit uint64
	if prepaid {
		deposit, err = s.InitializePrepaid()
	} else {
		deposit = args.TopupAmount
		err = s.InitializeNonPrepaid(args.TopupAmount, p.params.DepositPeriodSecs)
	}
	if err != nil {
		return solana.PublicKey{}, err
	}

	if err := p.ledger.Transfer(ledger.WalletAuthority(args.Sender), args.SenderToken, args.EscrowToken, deposit); err != nil {
		return solana.PublicKey{}, err
	}
	if err := p.store.CreateStream(key, s); err != nil {
		return solana.PublicKey{}, err
	}

	p.log.Info("stream created",
		"stream", key, "sender", args.Sender, "recipient", args.Recipient,
		"prepaid", prepaid, "deposit", deposit)
	return key, nil
}

// TopupNonPrepaid deposits amount into a non-prepaid stream's escrow. Anyone
// may top up.
func (p *Program) TopupNonPrepaid(ref StreamRef, signer, signerToken, escrowToken solana.PublicKey, amount uint64) error {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return err
	}
	if err := s.Topup(amount); err != nil {
		return err
	}
	if err := p.ledger.Transfer(ledger.WalletAuthority(signer), signerToken, escrowToken, amount); err != nil {
		return err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return err
	}
	p.log.Info("stream topped up", "stream", key, "signer", signer, "amount", amount)
	return nil
}

// ChangeSenderNonPrepaid reassigns the sender of a non-prepaid stream.
func (p *Program) ChangeSenderNonPrepaid(ref StreamRef, sender, newSender solana.PublicKey) error {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return err
	}
	if err := s.ChangeSender(sender, newSender, p.now()); err != nil {
		return err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return err
	}
	p.log.Info("stream sender changed", "stream", key, "new_sender", newSender)
	return nil
}

// PauseNonPrepaid freezes accrual on a non-prepaid stream.
func (p *Program) PauseNonPrepaid(ref StreamRef, signer solana.PublicKey) error {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return err
	}
	if err := s.Pause(signer, p.now()); err != nil {
		return err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return err
	}
	p.log.Info("stream paused", "stream", key, "signer", signer)
	return nil
}

// ResumeNonPrepaid unfreezes a paused non-prepaid stream.
func (p *Program) ResumeNonPrepaid(ref StreamRef, signer solana.PublicKey) error {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return err
	}
	if err := s.Resume(signer, p.now()); err != nil {
		return err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return err
	}
	p.log.Info("stream resumed", "stream", key, "signer", signer)
	return nil
}

// Withdraw pays the recipient's accrued-but-unwithdrawn balance to
// recipientToken. Returns the withdrawn amount; zero is a valid result.
func (p *Program) Withdraw(ref StreamRef, signer, recipient, recipientToken, escrowToken solana.PublicKey) (uint64, error) {
	return p.WithdrawAndChangeRecipient(ref, signer, recipient, solana.PublicKey{}, recipientToken, escrowToken)
}

// WithdrawAndChangeRecipient withdraws for the recipient and, when
// newRecipient is non-zero, redirects the stream to it.
func (p *Program) WithdrawAndChangeRecipient(ref StreamRef, signer, recipient, newRecipient, recipientToken, escrowToken solana.PublicKey) (uint64, error) {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return 0, err
	}
	amount, err := s.WithdrawAndChangeRecipient(signer, recipient, newRecipient, p.now())
	if err != nil {
		return 0, err
	}
	auth, err := p.authorityFor(account.StreamSeeds(ref.Seed, ref.Mint, ref.Name))
	if err != nil {
		return 0, err
	}
	if err := ledger.Settle(p.ledger, auth, escrowToken, []ledger.Leg{{To: recipientToken, Amount: amount}}); err != nil {
		return 0, err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return 0, err
	}
	p.log.Info("stream withdrawn", "stream", key, "amount", amount)
	return amount, nil
}

// WithdrawExcessTopupNonPrepaidEnded refunds the sender's unused
// over-deposit once a non-prepaid stream has ended. Returns the refunded
// amount; zero means nothing was owed.
func (p *Program) WithdrawExcessTopupNonPrepaidEnded(ref StreamRef, senderToken, escrowToken solana.PublicKey) (uint64, error) {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return 0, err
	}
	balance, err := p.ledger.BalanceOf(escrowToken)
	if err != nil {
		return 0, err
	}
	amount, err := s.WithdrawExcessTopup(p.now(), balance)
	if err != nil {
		return 0, err
	}
	auth, err := p.authorityFor(account.StreamSeeds(ref.Seed, ref.Mint, ref.Name))
	if err != nil {
		return 0, err
	}
	if err := ledger.Settle(p.ledger, auth, escrowToken, []ledger.Leg{{To: senderToken, Amount: amount}}); err != nil {
		return 0, err
	}
	p.log.Info("excess topup withdrawn", "stream", key, "amount", amount)
	return amount, nil
}

// Cancel ends a stream and settles the escrow three ways: sender refund,
// signer cleanup reward, recipient payout, executed in that order through
// one escrow authority.
func (p *Program) Cancel(ref StreamRef, signer, recipient, signerToken, senderToken, recipientToken, escrowToken solana.PublicKey) (stream.Settlement, error) {
	key, s, err := p.loadStream(ref)
	if err != nil {
		return stream.Settlement{}, err
	}
	balance, err := p.ledger.BalanceOf(escrowToken)
	if err != nil {
		return stream.Settlement{}, err
	}
	settlement, err := s.Cancel(signer, recipient, p.now(), balance, p.params.CleanupRewardBps)
	if err != nil {
		return stream.Settlement{}, err
	}
	auth, err := p.authorityFor(account.StreamSeeds(ref.Seed, ref.Mint, ref.Name))
	if err != nil {
		return stream.Settlement{}, err
	}
	legs := []ledger.Leg{
		{To: senderToken, Amount: settlement.SenderAmount},
		{To: signerToken, Amount: settlement.SignerAmount},
		{To: recipientToken, Amount: settlement.RecipientAmount},
	}
	if err := ledger.Settle(p.ledger, auth, escrowToken, legs); err != nil {
		return stream.Settlement{}, err
	}
	if err := p.store.PutStream(key, s); err != nil {
		return stream.Settlement{}, err
	}
	p.log.Info("stream cancelled",
		"stream", key, "signer", signer,
		"to_sender", settlement.SenderAmount,
		"to_signer", settlement.SignerAmount,
		"to_recipient", settlement.RecipientAmount)
	return settlement, nil
}

// loadStream resolves a StreamRef to its address and record.
func (p *Program) loadStream(ref StreamRef) (solana.PublicKey, *stream.Stream, error) {
	key, _, err := p.derive(account.StreamSeeds(ref.Seed, ref.Mint, ref.Name))
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	s, err := p.store.GetStream(key)
	if err != nil {
		return solana.PublicKey{}, nil, err
	}
	return key, s, nil
}
