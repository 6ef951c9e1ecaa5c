package op

import (
	"context"
	"fmt"

	"mergeverse/internal/domain/merge"
)

func validateQuoteExchange(s *merge.PlayerState, cmd Command) error {
	if cmd.Amount <= 0 || cmd.Amount > s.Progress.Balance {
		return ErrInsufficientBalance
	}
	return nil
}

func applyQuoteExchange(ctx context.Context, r *Resolver, oc *opContext) error {
	amount, err := r.Ledger.Quote(ctx, oc.Cmd.Amount, oc.Cmd.Symbol, oc.State.Progress.IQ)
	if err != nil {
		return fmt.Errorf("quote %s: %w", oc.Cmd.Symbol, err)
	}
	oc.Payload = exchangeQuoteResponse{Symbol: oc.Cmd.Symbol, Amount: amount}
	return nil
}

func validateExchange(s *merge.PlayerState, cmd Command) error {
	if cmd.Amount <= 0 || cmd.Amount > s.Progress.Balance {
		return ErrInsufficientBalance
	}
	return nil
}

func applyExchange(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	// Quote re-checks symbol and skill eligibility before any funds move.
	if _, err := r.Ledger.Quote(ctx, oc.Cmd.Amount, oc.Cmd.Symbol, s.Progress.IQ); err != nil {
		return fmt.Errorf("quote %s: %w", oc.Cmd.Symbol, err)
	}
	txRef, err := r.Ledger.Transfer(ctx, oc.Cmd.Amount, oc.Cmd.Symbol, oc.Cmd.Address)
	if err != nil {
		return fmt.Errorf("transfer %s: %w", oc.Cmd.Symbol, err)
	}

	// The debit happens only after the external transfer succeeded.
	s.Progress.Balance -= oc.Cmd.Amount
	oc.Payload = exchangeResponse{TxRef: txRef, Balance: s.Progress.Balance}
	return nil
}
