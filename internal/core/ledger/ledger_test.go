package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name            string
		amountPaid      int64
		rentAmountDue   int64
		lastOverpayment int64
		wantBalance     int64
		wantOverpayment int64
	}{
		{"exact payment", 1000, 1000, 0, 0, 0},
		{"underpayment", 700, 1000, 0, 300, 0},
		{"overpayment", 1200, 1000, 0, 0, 200},
		{"credit covers shortfall", 700, 1000, 300, 0, 0},
		{"credit partially covers shortfall", 700, 1000, 100, 200, 0},
		{"credit plus payment overshoots", 900, 1000, 300, 0, 200},
		{"zero payment full credit", 0, 1000, 1000, 0, 0},
		{"zero payment excess credit", 0, 1000, 1500, 0, 500},
		{"zero payment no credit", 0, 1000, 0, 1000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Compute(tt.amountPaid, tt.rentAmountDue, tt.lastOverpayment)
			assert.Equal(t, tt.wantBalance, got.BalanceDue)
			assert.Equal(t, tt.wantOverpayment, got.Overpayment)
		})
	}
}

func TestComputeMutuallyExclusive(t *testing.T) {
	// At most one of balance and overpayment may be positive, whatever
	// the inputs.
	for paid := int64(0); paid <= 2000; paid += 250 {
		for carry := int64(0); carry <= 500; carry += 125 {
			got := Compute(paid, 1000, carry)
			assert.False(t, got.BalanceDue > 0 && got.Overpayment > 0,
				"paid=%d carry=%d produced balance=%d overpayment=%d",
				paid, carry, got.BalanceDue, got.Overpayment)
			assert.GreaterOrEqual(t, got.BalanceDue, int64(0))
			assert.GreaterOrEqual(t, got.Overpayment, int64(0))
		}
	}
}
