package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrAdvanceExceedsAmount = errors.New("advance amount cannot be greater than total amount")
)

// DerivePayment applies the billing rule:
//
//	balance = amount - advance
//	paid    when something was billed and nothing is outstanding
//	partial when an advance was taken and a balance remains
//	pending otherwise
func DerivePayment(amount, advance decimal.Decimal) (decimal.Decimal, PaymentStatus, error) {
	if amount.IsNegative() || advance.IsNegative() {
		return decimal.Zero, "", ErrNegativeAmount
	}
	if advance.GreaterThan(amount) {
		return decimal.Zero, "", ErrAdvanceExceedsAmount
	}
	balance := amount.Sub(advance)
	switch {
	case amount.IsPositive() && balance.IsZero():
		return balance, PaymentPaid, nil
	case advance.IsPositive():
		return balance, PaymentPartial, nil
	default:
		return balance, PaymentPending, nil
	}
}

// Settle recomputes BalanceAmount and Status from Amount and AdvanceAmount.
// PaidAt is stamped when the payment becomes paid and cleared when it is no longer paid.
func (p *Payment) Settle(now time.Time) error {
	balance, status, err := DerivePayment(p.Amount, p.AdvanceAmount)
	if err != nil {
		return err
	}
	wasPaid := p.Status == PaymentPaid && p.PaidAt != nil
	p.BalanceAmount = balance
	p.Status = status
	switch {
	case status == PaymentPaid && !wasPaid:
		t := now
		p.PaidAt = &t
	case status != PaymentPaid:
		p.PaidAt = nil
	}
	return nil
}
