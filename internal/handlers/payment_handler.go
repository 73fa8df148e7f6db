package handlers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/httpresp"
	"github.com/amaraspa/spa-scheduler/internal/middleware"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/payments"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
	ucAppointment "github.com/amaraspa/spa-scheduler/internal/usecase/appointment"
)

type PaymentHandler struct {
	db      *gorm.DB
	gateway *payments.Gateway

	approveUC  *ucAppointment.ApproveAppointment
	cancelUC   *ucAppointment.CancelAppointment
	completeUC *ucAppointment.CompleteAppointment
}

func NewPaymentHandler(
	db *gorm.DB,
	gateway *payments.Gateway,
	approveUC *ucAppointment.ApproveAppointment,
	cancelUC *ucAppointment.CancelAppointment,
	completeUC *ucAppointment.CompleteAppointment,
) *PaymentHandler {
	return &PaymentHandler{
		db:         db,
		gateway:    gateway,
		approveUC:  approveUC,
		cancelUC:   cancelUC,
		completeUC: completeUC,
	}
}

// --------- Requests ---------

type OnlinePaymentRequest struct {
	AppointmentID uint   `json:"appointment_id" binding:"required"`
	Type          string `json:"type" binding:"required,oneof=Downpayment Full Balance"`
}

type CashPaymentRequest struct {
	AppointmentID uint    `json:"appointment_id" binding:"required"`
	Type          string  `json:"type" binding:"required,oneof=Downpayment Full Balance Refund"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Remarks       string  `json:"remarks"`
}

type WebhookNotification struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

// --------- Handlers ---------

// CreateOnline opens a checkout session for the given charge and records
// a pending payment tied to it by external reference.
func (h *PaymentHandler) CreateOnline(c *gin.Context) {
	if !h.gateway.Enabled() {
		httperr.Write(c, http.StatusServiceUnavailable, "online_payments_disabled", "Online payments are not configured.")
		return
	}

	var req OnlinePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var ap models.Appointment
	if err := h.db.Preload("Service").First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Appointment not found.")
		return
	}

	var settings models.SpaSettings
	if err := h.db.First(&settings).Error; err != nil {
		settings = models.DefaultSpaSettings()
	}

	amount := payments.Amount(req.Type, ap.TotalPrice, settings.DownPayment)
	externalRef := uuid.NewString()

	title := fmt.Sprintf("%s (%s Payment)", ap.Service.Name, req.Type)
	session, err := h.gateway.CreateCheckout(c.Request.Context(), title, amount, externalRef)
	if err != nil {
		log.Println("checkout error:", err)
		httperr.Internal(c, "checkout_failed", "Could not create payment session.")
		return
	}

	payment := models.Payment{
		AppointmentID: ap.ID,
		Amount:        amount,
		Method:        models.PaymentMethodOnline,
		Type:          req.Type,
		Status:        models.PaymentStatusPending,
		TransactionID: externalRef,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not record payment.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"checkout_url": session.CheckoutURL,
		"payment":      payment,
	})
}

// Webhook handles gateway payment notifications. The notification body
// is untrusted; the payment status is re-read from the gateway API.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	// The route is public and registered even when online payments are
	// off; without a gateway there is nothing to verify against.
	if !h.gateway.Enabled() {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	var notif WebhookNotification
	if err := c.ShouldBindJSON(&notif); err != nil || notif.Type != "payment" {
		// Not a payment event; acknowledge so the gateway stops retrying.
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	paymentID, err := strconv.Atoi(notif.Data.ID)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	info, err := h.gateway.LookupPayment(c.Request.Context(), paymentID)
	if err != nil {
		log.Println("webhook lookup error:", err)
		httperr.Internal(c, "lookup_failed", "Could not verify payment.")
		return
	}

	var payment models.Payment
	if err := h.db.Where("transaction_id = ?", info.ExternalReference).First(&payment).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if payment.Status == models.PaymentStatusCompleted {
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	if !info.Approved {
		payment.Status = models.PaymentStatusFailed
		_ = h.db.Save(&payment).Error
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	payment.Status = models.PaymentStatusCompleted
	if err := h.db.Save(&payment).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not record payment.")
		return
	}

	h.settleBalance(&payment)

	if err := h.applyPaymentStatus(c.Request.Context(), &payment, nil); err != nil {
		log.Println("payment transition error:", err)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// CreateCash records an in-person payment and applies its appointment
// transition immediately.
func (h *PaymentHandler) CreateCash(c *gin.Context) {
	var req CashPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, req.AppointmentID).Error; err != nil {
		httperr.NotFound(c, httperr.CodeNotFound, "Appointment not found.")
		return
	}

	dateStr := timezone.Now().Format("20060102")
	randomPart := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	transactionID := fmt.Sprintf("CSH-%s-%d-%s", dateStr, ap.ID, randomPart)

	payment := models.Payment{
		AppointmentID: ap.ID,
		Amount:        req.Amount,
		Method:        models.PaymentMethodCash,
		Type:          req.Type,
		Status:        models.PaymentStatusCompleted,
		TransactionID: transactionID,
		Remarks:       req.Remarks,
	}

	if err := h.db.Create(&payment).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not record payment.")
		return
	}

	h.settleBalance(&payment)

	if err := h.applyPaymentStatus(c.Request.Context(), &payment, middleware.AdminIDFromContext(c)); err != nil {
		writeSchedulingError(c, err)
		return
	}

	httpresp.Created(c, payment)
}

func (h *PaymentHandler) ListByAppointment(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Appointment id must be numeric.")
		return
	}

	var list []models.Payment
	if err := h.db.Where("appointment_id = ?", uint(id)).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		httperr.Internal(c, "internal_error", "Could not list payments.")
		return
	}

	httpresp.List(c, list)
}

// settleBalance updates the appointment's outstanding balance after a
// completed payment. A down payment leaves the rest owing; full and
// balance payments clear it.
func (h *PaymentHandler) settleBalance(payment *models.Payment) {
	var ap models.Appointment
	if err := h.db.First(&ap, payment.AppointmentID).Error; err != nil {
		return
	}

	rest, ok := payments.RemainingAfter(payment.Type, ap.TotalPrice, payment.Amount)
	if !ok {
		return
	}
	ap.RemainingBalance = rest

	if err := h.db.Save(&ap).Error; err != nil {
		log.Println("balance settle error:", err)
	}
}

// applyPaymentStatus drives the appointment through the lifecycle
// transition a completed payment implies.
func (h *PaymentHandler) applyPaymentStatus(ctx context.Context, payment *models.Payment, adminID *uint) error {
	target, ok := payments.TargetStatus(payment.Type)
	if !ok {
		return nil
	}

	var err error
	switch target {
	case domain.StatusApproved:
		_, err = h.approveUC.Execute(ctx, payment.AppointmentID, adminID)
	case domain.StatusCompleted:
		_, err = h.completeUC.Execute(ctx, payment.AppointmentID, adminID)
	case domain.StatusCancelled:
		_, err = h.cancelUC.Execute(ctx, payment.AppointmentID, adminID)
	}
	return err
}
