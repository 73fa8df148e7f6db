package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Client / Service
// --------------------------------------------------

func (r *AppointmentGormRepository) GetClientByID(
	ctx context.Context,
	id uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *AppointmentGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

// --------------------------------------------------
// Settings (singleton)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSettings(
	ctx context.Context,
) (*models.SpaSettings, error) {

	var settings models.SpaSettings
	err := r.db.WithContext(ctx).First(&settings).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultSpaSettings()
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}

	return &settings, nil
}

func (r *AppointmentGormRepository) UpdateSettings(
	ctx context.Context,
	settings *models.SpaSettings,
) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	q := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service")

	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.Date != nil {
		q = q.Where("date = ?", *filter.Date)
	}
	if filter.ClientID != 0 {
		q = q.Where("client_id = ?", filter.ClientID)
	}

	var apps []models.Appointment
	if err := q.
		Order("date ASC, start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *AppointmentGormRepository) ListByClient(
	ctx context.Context,
	clientID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("client_id = ?", clientID).
		Order("date DESC, start_time DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}

	return apps, nil
}

// --------------------------------------------------
// Capacity
// --------------------------------------------------

// Zero-padded "HH:MM" strings compare correctly as text, so the
// half-open overlap test (existing.start < end AND existing.end > start)
// runs directly in SQL.
func countOverlapping(
	tx *gorm.DB,
	date time.Time,
	startTime string,
	endTime string,
	excludeID uint,
) (int64, error) {

	q := tx.Model(&models.Appointment{}).
		Where(
			"date = ? AND status IN ? AND start_time < ? AND end_time > ?",
			date,
			domain.CountedStatusStrings(),
			endTime,
			startTime,
		)

	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *AppointmentGormRepository) CountOverlapping(
	ctx context.Context,
	date time.Time,
	startTime string,
	endTime string,
	excludeID uint,
) (int64, error) {
	return countOverlapping(r.db.WithContext(ctx), date, startTime, endTime, excludeID)
}

// --------------------------------------------------
// Appointment (write, capacity re-checked at commit)
// --------------------------------------------------

// withCapacity locks the settings singleton FOR UPDATE, which
// serializes every concurrent capacity decision, then re-runs the
// overlap count before persisting. Two requests racing for the last
// room cannot both commit.
func (r *AppointmentGormRepository) withCapacity(
	ctx context.Context,
	ap *models.Appointment,
	excludeID uint,
	persist func(tx *gorm.DB) error,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var settings models.SpaSettings
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&settings).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			settings = models.DefaultSpaSettings()
			if err := tx.Create(&settings).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		count, err := countOverlapping(tx, ap.Date, ap.StartTime, ap.EndTime, excludeID)
		if err != nil {
			return err
		}

		if count >= int64(settings.TotalRooms) {
			return httperr.ErrBusiness(httperr.CodeAllRoomsBooked)
		}

		return persist(tx)
	})
}

func (r *AppointmentGormRepository) CreateIfCapacity(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.withCapacity(ctx, ap, 0, func(tx *gorm.DB) error {
		return tx.Create(ap).Error
	})
}

func (r *AppointmentGormRepository) RescheduleIfCapacity(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.withCapacity(ctx, ap, ap.ID, func(tx *gorm.DB) error {
		return tx.Save(ap).Error
	})
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

// --------------------------------------------------
// Temporary holds
// --------------------------------------------------

func (r *AppointmentGormRepository) DeleteExpiredTemporary(
	ctx context.Context,
	now time.Time,
) (int64, error) {

	res := r.db.WithContext(ctx).
		Where(
			"is_temporary = true AND expires_at IS NOT NULL AND expires_at < ? AND status = ?",
			now,
			string(domain.StatusPending),
		).
		Delete(&models.Appointment{})

	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
