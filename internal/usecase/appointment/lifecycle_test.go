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
)

func TestApproveAppointment_ClearsHold(t *testing.T) {
	repo := new(MockRepository)
	uc := NewApproveAppointment(repo, nil, nil)

	ap := bookedAppointment(5, domain.StatusPending)
	expires := time.Now().Add(HoldDuration)
	ap.IsTemporary = true
	ap.ExpiresAt = &expires

	repo.On("GetAppointmentByID", mock.Anything, uint(5)).Return(ap, nil)
	repo.On("UpdateAppointment", mock.Anything, ap).Return(nil)

	got, err := uc.Execute(context.Background(), 5, nil)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusApproved), got.Status)
	assert.False(t, got.IsTemporary)
	assert.Nil(t, got.ExpiresAt)
	repo.AssertExpectations(t)
}

func TestApproveAppointment_NotFound(t *testing.T) {
	repo := new(MockRepository)
	uc := NewApproveAppointment(repo, nil, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(5)).Return(nil, gorm.ErrRecordNotFound)

	_, err := uc.Execute(context.Background(), 5, nil)
	assert.Equal(t, httperr.CodeNotFound, httperr.BusinessCode(err))
}

func TestApproveAppointment_Terminal(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusCancelled, domain.StatusCompleted} {
		repo := new(MockRepository)
		uc := NewApproveAppointment(repo, nil, nil)

		repo.On("GetAppointmentByID", mock.Anything, uint(5)).
			Return(bookedAppointment(5, status), nil)

		_, err := uc.Execute(context.Background(), 5, nil)
		assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err), status)
		repo.AssertNotCalled(t, "UpdateAppointment", mock.Anything, mock.Anything)
	}
}

func TestCancelAppointment(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCancelAppointment(repo, nil, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(5)).
		Return(bookedAppointment(5, domain.StatusApproved), nil)
	repo.On("UpdateAppointment", mock.Anything, mock.AnythingOfType("*models.Appointment")).
		Return(nil)

	got, err := uc.Execute(context.Background(), 5, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), got.Status)
}

func TestCancelAppointment_AlreadyCancelled(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCancelAppointment(repo, nil, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(5)).
		Return(bookedAppointment(5, domain.StatusCancelled), nil)

	_, err := uc.Execute(context.Background(), 5, nil)
	assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
}

func TestCompleteAppointment(t *testing.T) {
	for _, status := range []domain.Status{domain.StatusApproved, domain.StatusRescheduled} {
		repo := new(MockRepository)
		uc := NewCompleteAppointment(repo, nil)

		repo.On("GetAppointmentByID", mock.Anything, uint(5)).
			Return(bookedAppointment(5, status), nil)
		repo.On("UpdateAppointment", mock.Anything, mock.AnythingOfType("*models.Appointment")).
			Return(nil)

		got, err := uc.Execute(context.Background(), 5, nil)
		require.NoError(t, err)
		assert.Equal(t, string(domain.StatusCompleted), got.Status)
	}
}

// Completion requires a confirmed booking: a Pending appointment has
// not been approved and cannot jump straight to Completed.
func TestCompleteAppointment_Pending(t *testing.T) {
	repo := new(MockRepository)
	uc := NewCompleteAppointment(repo, nil)

	repo.On("GetAppointmentByID", mock.Anything, uint(5)).
		Return(bookedAppointment(5, domain.StatusPending), nil)

	_, err := uc.Execute(context.Background(), 5, nil)
	assert.Equal(t, httperr.CodeInvalidState, httperr.BusinessCode(err))
}
