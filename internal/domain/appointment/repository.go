package appointment

import (
	"context"
	"time"

	"github.com/amaraspa/spa-scheduler/internal/models"
)

type ListFilter struct {
	Status   string
	Date     *time.Time
	ClientID uint
}

type Repository interface {
	// -------- Client / Service --------
	GetClientByID(
		ctx context.Context,
		id uint,
	) (*models.Client, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Settings (singleton, lazy default) --------
	GetSettings(
		ctx context.Context,
	) (*models.SpaSettings, error)

	// -------- Appointment (read) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	ListByClient(
		ctx context.Context,
		clientID uint,
	) ([]models.Appointment, error)

	// -------- Capacity --------

	// CountOverlapping counts confirmed appointments on date whose
	// [startTime, endTime) interval overlaps the given one. excludeID
	// omits one appointment from the count (0 excludes nothing).
	CountOverlapping(
		ctx context.Context,
		date time.Time,
		startTime string,
		endTime string,
		excludeID uint,
	) (int64, error)

	// -------- Appointment (write) --------

	// CreateIfCapacity inserts ap inside a transaction that re-checks
	// room capacity at commit time. Returns the all_rooms_booked
	// business error when the slot filled up concurrently.
	CreateIfCapacity(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// RescheduleIfCapacity persists a slot change under the same
	// transactional capacity re-check, excluding ap itself.
	RescheduleIfCapacity(
		ctx context.Context,
		ap *models.Appointment,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Temporary holds --------
	DeleteExpiredTemporary(
		ctx context.Context,
		now time.Time,
	) (int64, error)
}
