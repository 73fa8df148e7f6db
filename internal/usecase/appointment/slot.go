package appointment

import (
	"context"
	"time"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/timeutil"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
)

// slot is a validated booking interval: the calendar day plus the
// derived half-open [StartTime, EndTime) window.
type slot struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

// resolveSlot runs the shared half of the booking pipeline: date and
// time parsing, past-date rejection, end-time derivation from the
// service duration, and the operating-hours window check.
func resolveSlot(
	service *models.Service,
	settings *models.SpaSettings,
	dateStr string,
	startTime string,
) (slot, error) {

	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		return slot{}, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	if date.Before(timezone.Today()) {
		return slot{}, httperr.ErrBusiness(httperr.CodePastDate)
	}

	startMin, err := timeutil.ToMinutes(startTime)
	if err != nil {
		return slot{}, httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	endMin := startMin + service.DurationMin

	openMin, err := timeutil.ToMinutes(settings.OpeningTime)
	if err != nil {
		return slot{}, err
	}
	closeMin, err := timeutil.ToMinutes(settings.ClosingTime)
	if err != nil {
		return slot{}, err
	}

	// Closing time never exceeds 23:59, so this also rejects any slot
	// that would cross midnight before ToHHMM could wrap it.
	if startMin < openMin || endMin > closeMin {
		return slot{}, httperr.ErrBusiness(httperr.CodeOutsideHours)
	}

	return slot{
		Date:      date,
		StartTime: startTime,
		EndTime:   timeutil.ToHHMM(endMin),
	}, nil
}

// assertCapacity counts confirmed bookings overlapping the slot and
// rejects once every room is taken. The repository re-runs this check
// inside the write transaction; this early pass keeps rejections cheap.
func assertCapacity(
	ctx context.Context,
	repo domain.Repository,
	settings *models.SpaSettings,
	s slot,
	excludeID uint,
) error {

	count, err := repo.CountOverlapping(ctx, s.Date, s.StartTime, s.EndTime, excludeID)
	if err != nil {
		return err
	}

	if count >= int64(settings.TotalRooms) {
		return httperr.ErrBusiness(httperr.CodeAllRoomsBooked)
	}

	return nil
}
