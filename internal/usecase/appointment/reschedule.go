package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/amaraspa/spa-scheduler/internal/audit"
	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

type RescheduleAppointmentInput struct {
	AppointmentID uint

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	Notes     string
}

type RescheduleAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewRescheduleAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *RescheduleAppointment {
	return &RescheduleAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute re-runs the booking pipeline against the appointment's own
// service, with the appointment excluded from the overlap count so a
// move to the same slot never conflicts with itself.
func (uc *RescheduleAppointment) Execute(
	ctx context.Context,
	in RescheduleAppointmentInput,
) (*models.Appointment, error) {

	if in.Date == "" || in.StartTime == "" {
		return nil, httperr.ErrBusiness(httperr.CodeMissingFields)
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	service, err := uc.repo.GetServiceByID(ctx, ap.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeServiceNotFound)
		}
		return nil, err
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	s, err := resolveSlot(service, settings, in.Date, in.StartTime)
	if err != nil {
		return nil, err
	}

	if err := assertCapacity(ctx, uc.repo, settings, s, ap.ID); err != nil {
		return nil, err
	}

	if err := domain.Reschedule(ap, s.Date, s.StartTime, s.EndTime); err != nil {
		return nil, err
	}
	if in.Notes != "" {
		ap.Notes = in.Notes
	}

	if err := uc.repo.RescheduleIfCapacity(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_rescheduled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
