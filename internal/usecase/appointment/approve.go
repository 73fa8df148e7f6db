package appointment

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/amaraspa/spa-scheduler/internal/audit"
	"github.com/amaraspa/spa-scheduler/internal/cache"
	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

type ApproveAppointment struct {
	repo  domain.Repository
	holds *cache.HoldStore
	audit *audit.Dispatcher
}

func NewApproveAppointment(
	repo domain.Repository,
	holds *cache.HoldStore,
	audit *audit.Dispatcher,
) *ApproveAppointment {
	return &ApproveAppointment{
		repo:  repo,
		holds: holds,
		audit: audit,
	}
}

func (uc *ApproveAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	adminID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeNotFound)
		}
		return nil, err
	}

	wasTemporary := ap.IsTemporary

	if err := domain.Approve(ap); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	if wasTemporary {
		_ = uc.holds.Release(ctx, ap.ID)
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "appointment_approved",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
