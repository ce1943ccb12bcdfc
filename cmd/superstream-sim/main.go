// Command superstream-sim drives a full stream lifecycle on a fake clock
// against an in-memory token ledger and a throwaway bolt store, logging
// every settlement. Useful for eyeballing accrual behavior without a chain.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
	"github.com/spf13/pflag"

	"github.com/superstream-labs/superstream-go/account"
	"github.com/superstream-labs/superstream-go/ledger"
	"github.com/superstream-labs/superstream-go/program"
	"github.com/superstream-labs/superstream-go/stream"
)

func main() {
	var (
		flowRate     = pflag.Uint64("flow-rate", 5, "amount accrued per interval")
		flowInterval = pflag.Uint64("flow-interval", 10, "accrual interval in seconds")
		duration     = pflag.Uint64("duration", 1000, "stream duration in seconds")
		withdrawAt   = pflag.Uint64("withdraw-at", 100, "seconds after start to withdraw")
		cancelAt     = pflag.Uint64("cancel-at", 400, "seconds after start to cancel")
		logLevel     = pflag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	pflag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q\n", *logLevel)
		os.Exit(2)
	}
	log := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level, TimeFormat: time.Kitchen}))

	if err := run(log, *flowRate, *flowInterval, *duration, *withdrawAt, *cancelAt); err != nil {
		log.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, flowRate, flowInterval, duration, withdrawAt, cancelAt uint64) error {
	dir, err := os.MkdirTemp("", "superstream-sim")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	store, err := account.OpenBoltStore(filepath.Join(dir, "accounts.db"))
	if err != nil {
		return err
	}
	defer store.Close()

	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	mem := ledger.NewInMemory()

	programID := solana.NewWallet().PublicKey()
	mint := solana.NewWallet().PublicKey()
	sender := solana.NewWallet().PublicKey()
	recipient := solana.NewWallet().PublicKey()

	const name = "sim"
	streamKey, _, err := account.Derive(programID, account.StreamSeeds(1, mint, name))
	if err != nil {
		return err
	}

	senderToken := solana.NewWallet().PublicKey()
	recipientToken := solana.NewWallet().PublicKey()
	escrowToken := solana.NewWallet().PublicKey()
	for _, acc := range []struct {
		key, owner solana.PublicKey
	}{
		{senderToken, sender},
		{recipientToken, recipient},
		{escrowToken, streamKey},
	} {
		if err := mem.CreateAccount(acc.key, mint, acc.owner, true); err != nil {
			return err
		}
	}
	if err := mem.Deposit(senderToken, 1_000_000); err != nil {
		return err
	}

	p, err := program.New(program.Config{
		Logger:    log,
		Clock:     clock,
		Store:     store,
		Ledger:    mem,
		ProgramID: programID,
	})
	if err != nil {
		return err
	}

	startsAt := uint64(clock.Now().Unix())
	_, err = p.CreatePrepaid(program.CreateStreamArgs{
		Seed:            1,
		Name:            name,
		Mint:            mint,
		Sender:          sender,
		Recipient:       recipient,
		StartsAt:        startsAt,
		EndsAt:          startsAt + duration,
		FlowInterval:    flowInterval,
		FlowRate:        flowRate,
		SenderCanCancel: stream.Gate{Enabled: true, ActiveAt: startsAt},
		SenderToken:     senderToken,
		EscrowToken:     escrowToken,
	})
	if err != nil {
		return err
	}

	ref := program.StreamRef{Seed: 1, Name: name, Mint: mint}

	clock.Advance(time.Duration(withdrawAt) * time.Second)
	amount, err := p.Withdraw(ref, recipient, recipient, recipientToken, escrowToken)
	if err != nil {
		return err
	}
	log.Info("withdrawal settled", "amount", amount)

	clock.Advance(time.Duration(cancelAt-withdrawAt) * time.Second)
	settlement, err := p.Cancel(ref, sender, recipient, senderToken, senderToken, recipientToken, escrowToken)
	if err != nil {
		return err
	}
	log.Info("cancel settled",
		"to_sender", settlement.SenderAmount,
		"to_recipient", settlement.RecipientAmount)

	for label, key := range map[string]solana.PublicKey{
		"sender": senderToken, "recipient": recipientToken, "escrow": escrowToken,
	} {
		balance, err := mem.BalanceOf(key)
		if err != nil {
			return err
		}
		log.Info("final balance", "account", label, "balance", balance)
	}
	return nil
}
