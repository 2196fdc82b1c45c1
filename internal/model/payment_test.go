package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestDerivePayment(t *testing.T) {
	tests := []struct {
		name    string
		amount  int64
		advance int64
		balance int64
		status  PaymentStatus
		err     error
	}{
		{"partial advance", 1500, 500, 1000, PaymentPartial, nil},
		{"fully paid", 1500, 1500, 0, PaymentPaid, nil},
		{"nothing collected", 1500, 0, 1500, PaymentPending, nil},
		{"nothing billed", 0, 0, 0, PaymentPending, nil},
		{"advance above amount", 1000, 1500, 0, "", ErrAdvanceExceedsAmount},
		{"negative amount", -1, 0, 0, "", ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, status, err := DerivePayment(d(tt.amount), d(tt.advance))
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.balance).Equal(balance), "balance %s", balance)
			assert.Equal(t, tt.status, status)
		})
	}
}

func TestSettleStampsPaidAt(t *testing.T) {
	now := time.Date(2024, 3, 20, 10, 0, 0, 0, time.UTC)
	p := Payment{Amount: d(1500), AdvanceAmount: d(500)}
	require.NoError(t, p.Settle(now))
	assert.Equal(t, PaymentPartial, p.Status)
	assert.Nil(t, p.PaidAt)

	p.AdvanceAmount = d(1500)
	require.NoError(t, p.Settle(now))
	assert.Equal(t, PaymentPaid, p.Status)
	require.NotNil(t, p.PaidAt)
	assert.Equal(t, now, *p.PaidAt)

	// settling again keeps the original paid timestamp
	require.NoError(t, p.Settle(now.Add(time.Hour)))
	assert.Equal(t, now, *p.PaidAt)
	assert.True(t, p.Collected().Equal(d(1500)))
}

func TestPaymentAmountsAreJSONNumbers(t *testing.T) {
	p := Payment{Amount: d(1500), AdvanceAmount: d(500), BalanceAmount: d(1000), Status: PaymentPartial}
	out, err := json.Marshal(p)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(out, &raw))
	assert.Equal(t, float64(1500), raw["amount"])
	assert.Equal(t, float64(1000), raw["balanceAmount"])
}
