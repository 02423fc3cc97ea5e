package credits

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// BalanceReader exposes the single lookup the gate needs. Balances are read
// fresh on every turn; a cached value could let an exhausted store keep
// spending.
type BalanceReader interface {
	CreditBalance(ctx context.Context, storeId uuid.UUID) (int, error)
}

// Gate decides whether a store may spend credits on a paid chat turn.
type Gate struct {
	balances BalanceReader
}

func NewGate(balances BalanceReader) *Gate {
	return &Gate{balances: balances}
}

// Allow reports whether the store can afford a turn of the given cost.
// The remaining balance is returned either way so callers can surface it.
func (g *Gate) Allow(ctx context.Context, storeId uuid.UUID, cost int) (bool, int, error) {
	balance, err := g.balances.CreditBalance(ctx, storeId)
	if err != nil {
		return false, 0, fmt.Errorf("read credit balance: %w", err)
	}
	return balance >= cost && balance > 0, balance, nil
}
