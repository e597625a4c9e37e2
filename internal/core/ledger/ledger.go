// Package ledger implements the rent balance calculation.
//
// The ledger is a rolling carry-forward: each payment's overpayment becomes
// credit toward the next period's due amount. The carry is a single hop from
// the immediately preceding payment, not a running total over all history.
package ledger

// Result holds the derived fields of a payment.
type Result struct {
	BalanceDue  int64
	Overpayment int64
}

// Compute derives balance_due and overpayment for a new payment.
//
// lastOverpayment is the overpayment of the tenant's most recent other
// payment, or 0 when no history exists. The two results are mutually
// exclusive: at most one of them is positive.
func Compute(amountPaid, rentAmountDue, lastOverpayment int64) Result {
	effective := amountPaid + lastOverpayment
	if effective >= rentAmountDue {
		return Result{BalanceDue: 0, Overpayment: effective - rentAmountDue}
	}
	return Result{BalanceDue: rentAmountDue - effective, Overpayment: 0}
}
