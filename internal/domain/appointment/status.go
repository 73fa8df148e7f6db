package appointment

import "github.com/amaraspa/spa-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending     Status = "Pending"
	StatusApproved    Status = "Approved"
	StatusRescheduled Status = "Rescheduled"
	StatusCancelled   Status = "Cancelled"
	StatusCompleted   Status = "Completed"
)

func InitialStatus() Status {
	return StatusPending
}

// CountedStatuses is the capacity-counting set: only confirmed bookings
// hold a room. Pending holds never block other clients.
var CountedStatuses = []Status{StatusApproved, StatusRescheduled}

func CountedStatusStrings() []string {
	out := make([]string, len(CountedStatuses))
	for i, s := range CountedStatuses {
		out[i] = string(s)
	}
	return out
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ===============================
// Transition guards
// ===============================

// CanApprove: any non-terminal appointment may be approved.
func CanApprove(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanCancel: any non-terminal appointment may be cancelled.
func CanCancel(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanReschedule: any non-terminal appointment may be moved.
func CanReschedule(current Status) error {
	if current.Terminal() {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete: only confirmed appointments can be marked done.
func CanComplete(current Status) error {
	if current != StatusApproved && current != StatusRescheduled {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}
