package appointment

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/models"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) GetClientByID(ctx context.Context, id uint) (*models.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Client), args.Error(1)
}

func (m *MockRepository) GetServiceByID(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockRepository) GetSettings(ctx context.Context) (*models.SpaSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpaSettings), args.Error(1)
}

func (m *MockRepository) GetAppointmentByID(ctx context.Context, id uint) (*models.Appointment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockRepository) ListAppointments(ctx context.Context, filter domain.ListFilter) ([]models.Appointment, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) ListByClient(ctx context.Context, clientID uint) ([]models.Appointment, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockRepository) CountOverlapping(ctx context.Context, date time.Time, startTime, endTime string, excludeID uint) (int64, error) {
	args := m.Called(ctx, date, startTime, endTime, excludeID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) CreateIfCapacity(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) RescheduleIfCapacity(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) UpdateAppointment(ctx context.Context, ap *models.Appointment) error {
	args := m.Called(ctx, ap)
	return args.Error(0)
}

func (m *MockRepository) DeleteExpiredTemporary(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

var _ domain.Repository = (*MockRepository)(nil)
