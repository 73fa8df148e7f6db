package payments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

func TestTargetStatus(t *testing.T) {
	cases := []struct {
		paymentType string
		want        domain.Status
		ok          bool
	}{
		{models.PaymentTypeDownpayment, domain.StatusApproved, true},
		{models.PaymentTypeFull, domain.StatusApproved, true},
		{models.PaymentTypeBalance, domain.StatusCompleted, true},
		{models.PaymentTypeRefund, domain.StatusCancelled, true},
		{"Gift", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := TargetStatus(tc.paymentType)
		assert.Equal(t, tc.ok, ok, tc.paymentType)
		assert.Equal(t, tc.want, got, tc.paymentType)
	}
}

func TestAmount(t *testing.T) {
	assert.InDelta(t, 300.0, Amount(models.PaymentTypeDownpayment, 1000, 30), 0.001)
	assert.InDelta(t, 1000.0, Amount(models.PaymentTypeFull, 1000, 30), 0.001)
	assert.InDelta(t, 1000.0, Amount(models.PaymentTypeBalance, 1000, 30), 0.001)
}

func TestRemainingAfter(t *testing.T) {
	cases := []struct {
		paymentType string
		paid        float64
		want        float64
		ok          bool
	}{
		{models.PaymentTypeDownpayment, 300, 700, true},
		{models.PaymentTypeDownpayment, 1200, 0, true},
		{models.PaymentTypeFull, 1000, 0, true},
		{models.PaymentTypeBalance, 700, 0, true},
		{models.PaymentTypeRefund, 300, 0, false},
		{"Gift", 100, 0, false},
	}

	for _, tc := range cases {
		got, ok := RemainingAfter(tc.paymentType, 1000, tc.paid)
		assert.Equal(t, tc.ok, ok, tc.paymentType)
		assert.InDelta(t, tc.want, got, 0.001, tc.paymentType)
	}
}
