package appointment

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/amaraspa/spa-scheduler/internal/audit"
	"github.com/amaraspa/spa-scheduler/internal/cache"
	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/payments"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
)

// HoldDuration is how long an unpaid temporary booking keeps its row
// before the sweeper may purge it.
const HoldDuration = 10 * time.Minute

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID  uint
	ServiceID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM

	ModeOfPayment string
	Notes         string

	// IsTemporary creates a soft hold that expires unless a payment
	// confirms it within HoldDuration.
	IsTemporary bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	holds *cache.HoldStore
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	holds *cache.HoldStore,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		holds: holds,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	if in.ClientID == 0 || in.ServiceID == 0 || in.Date == "" || in.StartTime == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	// --------------------------------------------------
	// 2. Client standing
	// --------------------------------------------------
	client, err := uc.repo.GetClientByID(ctx, in.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
		}
		return nil, err
	}
	if !client.CanBook() {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotEligible)
	}

	// --------------------------------------------------
	// 3. Service availability
	// --------------------------------------------------
	service, err := uc.repo.GetServiceByID(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}
	if service.Status != models.ServiceStatusAvailable {
		return nil, httperr.ErrBusiness(httperr.CodeServiceOffline)
	}

	// --------------------------------------------------
	// 4. Settings (lazily defaulted singleton)
	// --------------------------------------------------
	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5-7. Slot: past date, hours window, end time
	// --------------------------------------------------
	s, err := resolveSlot(service, settings, in.Date, in.StartTime)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8-9. Room capacity across overlapping bookings
	// --------------------------------------------------
	if err := assertCapacity(ctx, uc.repo, settings, s, 0); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 10. Persist (capacity re-checked in the write tx)
	// --------------------------------------------------
	mode := in.ModeOfPayment
	if mode == "" {
		mode = models.PaymentMethodCash
	}

	down := payments.Amount(models.PaymentTypeDownpayment, service.Price, settings.DownPayment)

	ap := &models.Appointment{
		ClientID:         in.ClientID,
		ServiceID:        in.ServiceID,
		Date:             s.Date,
		StartTime:        s.StartTime,
		EndTime:          s.EndTime,
		Status:           string(domain.InitialStatus()),
		ModeOfPayment:    mode,
		TotalPrice:       service.Price,
		DownPayment:      down,
		RemainingBalance: service.Price,
		Notes:            in.Notes,
	}

	if in.IsTemporary {
		expires := timezone.Now().Add(HoldDuration)
		ap.IsTemporary = true
		ap.ExpiresAt = &expires
	}

	if err := uc.repo.CreateIfCapacity(ctx, ap); err != nil {
		return nil, err
	}

	if ap.IsTemporary {
		// Redis mirror is best-effort; the sweeper still purges rows.
		_ = uc.holds.Place(ctx, ap.ID, HoldDuration)
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
