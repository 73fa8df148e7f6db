package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
)

func bookedAppointment(id uint, status domain.Status) *models.Appointment {
	return &models.Appointment{
		ID:        id,
		ClientID:  1,
		ServiceID: 2,
		Date:      timezone.Today().AddDate(0, 0, 1),
		StartTime: "09:00",
		EndTime:   "10:00",
		Status:    string(status),
	}
}

func TestRescheduleAppointment_Success(t *testing.T) {
	repo := new(MockRepository)
	uc := NewRescheduleAppointment(repo, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(7)).
		Return(bookedAppointment(7, domain.StatusApproved), nil)
	repo.On("GetServiceByID", mock.Anything, uint(2)).Return(massageService(2, 60), nil)
	repo.On("GetSettings", mock.Anything).Return(defaultSettings(), nil)
	repo.On("CountOverlapping", mock.Anything, mock.Anything, "11:00", "12:00", uint(7)).
		Return(int64(0), nil)
	repo.On("RescheduleIfCapacity", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Return(nil)

	ap, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: 7,
		Date:          futureDate(2),
		StartTime:     "11:00",
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusRescheduled), ap.Status)
	assert.Equal(t, "11:00", ap.StartTime)
	assert.Equal(t, "12:00", ap.EndTime)
	repo.AssertExpectations(t)
}

// Moving an appointment onto its current slot must not collide with
// itself: the overlap count excludes the appointment's own row.
func TestRescheduleAppointment_SameSlot(t *testing.T) {
	repo := new(MockRepository)
	uc := NewRescheduleAppointment(repo, nil)

	ap := bookedAppointment(7, domain.StatusApproved)
	repo.On("GetAppointmentByID", mock.Anything, uint(7)).Return(ap, nil)
	repo.On("GetServiceByID", mock.Anything, uint(2)).Return(massageService(2, 60), nil)
	repo.On("GetSettings", mock.Anything).Return(defaultSettings(), nil)
	repo.On("CountOverlapping", mock.Anything, mock.Anything, "09:00", "10:00", uint(7)).
		Return(int64(0), nil)
	repo.On("RescheduleIfCapacity", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Return(nil)

	got, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: 7,
		Date:          ap.Date.Format("2006-01-02"),
		StartTime:     "09:00",
	})

	require.NoError(t, err)
	assert.Equal(t, "09:00", got.StartTime)
	repo.AssertCalled(t, "CountOverlapping", mock.Anything, mock.Anything, "09:00", "10:00", uint(7))
}

func TestRescheduleAppointment_NotFound(t *testing.T) {
	repo := new(MockRepository)
	uc := NewRescheduleAppointment(repo, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: 99,
		Date:          futureDate(1),
		StartTime:     "09:00",
	})
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}

func TestRescheduleAppointment_TerminalStatus(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted} {
		repo := new(MockRepository)
		uc := NewRescheduleAppointment(repo, nil)

		repo.On("GetAppointmentByID", mock.Anything, uint(7)).
			Return(bookedAppointment(7, status), nil)

		_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
			AppointmentID: 7,
			Date:          futureDate(1),
			StartTime:     "11:00",
		})
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err), status)
	}
}

func TestRescheduleAppointment_CapacityFull(t *testing.T) {
	repo := new(MockRepository)
	uc := NewRescheduleAppointment(repo, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(7)).
		Return(bookedAppointment(7, domain.StatusPending), nil)
	repo.On("GetServiceByID", mock.Anything, uint(2)).Return(massageService(2, 60), nil)
	repo.On("GetSettings", mock.Anything).Return(defaultSettings(), nil)
	repo.On("CountOverlapping", mock.Anything, mock.Anything, "11:00", "12:00", uint(7)).
		Return(int64(1), nil)

	_, err := uc.Execute(context.Background(), RescheduleAppointmentInput{
		AppointmentID: 7,
		Date:          futureDate(1),
		StartTime:     "11:00",
	})
	assert.Equal(t, httperr.CodeAllRoomsBooked, httperr.BusinessCode(err))
	repo.AssertNotCalled(t, "RescheduleIfCapacity", mock.Anything, mock.Anything)
}

func TestExpireTemporary(t *testing.T) {
	repo := new(MockRepository)
	uc := NewExpireTemporary(repo)

	repo.On("DeleteExpiredTemporary", mock.Anything, mock.AnythingOfType("time.Time")).
		Return(int64(3), nil)

	n, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	now := repo.Calls[0].Arguments.Get(1).(time.Time)
	assert.WithinDuration(t, timezone.Now(), now, 5*time.Second)
}
