package payments

import (
	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

// TargetStatus maps a completed payment type to the appointment status
// it drives. Total over the four payment types; unknown types map to
// nothing.
func TargetStatus(paymentType string) (domain.Status, bool) {
	switch paymentType {
	case models.PaymentTypeDownpayment, models.PaymentTypeFull:
		return domain.StatusApproved, true
	case models.PaymentTypeBalance:
		return domain.StatusCompleted, true
	case models.PaymentTypeRefund:
		return domain.StatusCancelled, true
	default:
		return "", false
	}
}

// Amount computes what a payment of the given type charges, using the
// configured down-payment percentage for partial payments.
func Amount(paymentType string, totalPrice float64, downPaymentPct int) float64 {
	if paymentType == models.PaymentTypeDownpayment {
		return totalPrice * float64(downPaymentPct) / 100
	}
	return totalPrice
}

// RemainingAfter computes the balance still owed once a payment of the
// given type completes. The second return is false when the type does
// not touch the balance (refunds).
func RemainingAfter(paymentType string, totalPrice, paid float64) (float64, bool) {
	switch paymentType {
	case models.PaymentTypeDownpayment:
		rest := totalPrice - paid
		if rest < 0 {
			rest = 0
		}
		return rest, true
	case models.PaymentTypeFull, models.PaymentTypeBalance:
		return 0, true
	default:
		return 0, false
	}
}
