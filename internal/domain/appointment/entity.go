package appointment

import (
	"time"

	"github.com/amaraspa/spa-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Approve confirms a booking and releases its temporary hold, if any.
func Approve(ap *models.Appointment) error {
	if err := CanApprove(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusApproved)
	ap.IsTemporary = false
	ap.ExpiresAt = nil
	return nil
}

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	return nil
}

// Reschedule moves the appointment to a new slot that the caller has
// already validated against hours and capacity.
func Reschedule(ap *models.Appointment, date time.Time, startTime, endTime string) error {
	if err := CanReschedule(Status(ap.Status)); err != nil {
		return err
	}

	ap.Date = date
	ap.StartTime = startTime
	ap.EndTime = endTime
	ap.Status = string(StatusRescheduled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	return nil
}

// Expired reports whether a temporary hold has lapsed. Confirmed
// appointments never expire.
func Expired(ap *models.Appointment, now time.Time) bool {
	return ap.IsTemporary && ap.ExpiresAt != nil && ap.ExpiresAt.Before(now)
}
