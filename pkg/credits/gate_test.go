package credits

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBalances struct {
	balance int
	err     error
	reads   int
}

func (s *stubBalances) CreditBalance(ctx context.Context, storeId uuid.UUID) (int, error) {
	s.reads++
	return s.balance, s.err
}

func TestGateAllow(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		cost    int
		want    bool
	}{
		{"enough credits", 10, 1, true},
		{"exactly enough", 1, 1, true},
		{"exhausted", 0, 1, false},
		{"negative balance", -3, 1, false},
		{"zero cost still needs positive balance", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gate := NewGate(&stubBalances{balance: tt.balance})
			ok, remaining, err := gate.Allow(context.Background(), uuid.New(), tt.cost)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.balance, remaining)
		})
	}
}

func TestGateReadsBalanceEveryCall(t *testing.T) {
	balances := &stubBalances{balance: 5}
	gate := NewGate(balances)

	for i := 0; i < 3; i++ {
		_, _, err := gate.Allow(context.Background(), uuid.New(), 1)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, balances.reads)
}

func TestGatePropagatesReadError(t *testing.T) {
	gate := NewGate(&stubBalances{err: errors.New("db down")})

	ok, _, err := gate.Allow(context.Background(), uuid.New(), 1)
	assert.Error(t, err)
	assert.False(t, ok)
}
