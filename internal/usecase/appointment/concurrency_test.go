package appointment

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
)

// memRepo is an in-memory Repository whose capacity checks run under a
// single mutex, mirroring the row-lock transaction the SQL repository
// uses. It exists to race many bookings against one room.
type memRepo struct {
	mu           sync.Mutex
	settings     models.SpaSettings
	clients      map[uint]*models.Client
	services     map[uint]*models.Service
	appointments map[uint]*models.Appointment
	nextID       uint
}

func newMemRepo(settings models.SpaSettings) *memRepo {
	return &memRepo{
		settings:     settings,
		clients:      map[uint]*models.Client{},
		services:     map[uint]*models.Service{},
		appointments: map[uint]*models.Appointment{},
	}
}

func (r *memRepo) GetClientByID(_ context.Context, id uint) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (r *memRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s, nil
}

func (r *memRepo) GetSettings(_ context.Context) (*models.SpaSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.settings
	return &s, nil
}

func (r *memRepo) GetAppointmentByID(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *ap
	return &cp, nil
}

func (r *memRepo) ListAppointments(_ context.Context, _ domain.ListFilter) ([]models.Appointment, error) {
	return nil, nil
}

func (r *memRepo) ListByClient(_ context.Context, _ uint) ([]models.Appointment, error) {
	return nil, nil
}

func (r *memRepo) countLocked(date time.Time, start, end string, excludeID uint) int64 {
	counted := map[string]bool{}
	for _, s := range domain.CountedStatusStrings() {
		counted[s] = true
	}

	var n int64
	for _, ap := range r.appointments {
		if ap.ID == excludeID || !ap.Date.Equal(date) || !counted[ap.Status] {
			continue
		}
		if ap.StartTime < end && start < ap.EndTime {
			n++
		}
	}
	return n
}

func (r *memRepo) CountOverlapping(_ context.Context, date time.Time, start, end string, excludeID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countLocked(date, start, end, excludeID), nil
}

func (r *memRepo) CreateIfCapacity(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countLocked(ap.Date, ap.StartTime, ap.EndTime, 0) >= int64(r.settings.TotalRooms) {
		return httperr.ErrBusiness(httperr.CodeAllRoomsBooked)
	}

	r.nextID++
	ap.ID = r.nextID
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) RescheduleIfCapacity(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.countLocked(ap.Date, ap.StartTime, ap.EndTime, ap.ID) >= int64(r.settings.TotalRooms) {
		return httperr.ErrBusiness(httperr.CodeAllRoomsBooked)
	}

	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ap
	r.appointments[ap.ID] = &cp
	return nil
}

func (r *memRepo) DeleteExpiredTemporary(_ context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, ap := range r.appointments {
		if domain.Expired(ap, now) {
			delete(r.appointments, id)
			n++
		}
	}
	return n, nil
}

var _ domain.Repository = (*memRepo)(nil)

// Many confirmed bookings racing into the same single-room slot: after
// the dust settles exactly one may hold it.
func TestConcurrentReschedule_SingleRoom(t *testing.T) {
	const racers = 16

	repo := newMemRepo(models.DefaultSpaSettings())
	repo.services[2] = massageService(2, 60)

	day := timezone.Today().AddDate(0, 0, 1)
	ctx := context.Background()

	// Seed approved bookings on distinct days so each holds a room
	// somewhere else before the race.
	for i := 0; i < racers; i++ {
		ap := &models.Appointment{
			ClientID:  1,
			ServiceID: 2,
			Date:      day.AddDate(0, 0, i+1),
			StartTime: "09:00",
			EndTime:   "10:00",
			Status:    string(domain.StatusApproved),
		}
		require.NoError(t, repo.CreateIfCapacity(ctx, ap))
	}

	uc := NewRescheduleAppointment(repo, nil)

	var wg sync.WaitGroup
	results := make(chan error, racers)
	for id := uint(1); id <= racers; id++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			_, err := uc.Execute(ctx, RescheduleAppointmentInput{
				AppointmentID: id,
				Date:          day.Format("2006-01-02"),
				StartTime:     "10:00",
			})
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var won, lost int
	for err := range results {
		switch {
		case err == nil:
			won++
		case httperr.BusinessCode(err) == httperr.CodeAllRoomsBooked:
			lost++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, won)
	assert.Equal(t, racers-1, lost)
	assert.EqualValues(t, 1, repo.countLocked(day, "10:00", "11:00", 0))
}

// Pending bookings do not consume rooms, so concurrent creates on a
// free slot all land; once one of them is confirmed the slot is closed
// to further confirmed bookings.
func TestConcurrentCreate_PendingDoesNotBlock(t *testing.T) {
	const racers = 8

	repo := newMemRepo(models.DefaultSpaSettings())
	repo.services[2] = massageService(2, 60)
	for i := uint(1); i <= racers; i++ {
		repo.clients[i] = activeClient(i)
	}

	uc := NewCreateAppointment(repo, nil, nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, racers)
	for i := uint(1); i <= racers; i++ {
		wg.Add(1)
		go func(clientID uint) {
			defer wg.Done()
			_, err := uc.Execute(ctx, CreateAppointmentInput{
				ClientID:  clientID,
				ServiceID: 2,
				Date:      futureDate(1),
				StartTime: "09:00",
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	// Confirm one of them; an overlapping create is now rejected.
	approve := NewApproveAppointment(repo, nil, nil)
	_, err := approve.Execute(ctx, 1, nil)
	require.NoError(t, err)

	_, err = uc.Execute(ctx, CreateAppointmentInput{
		ClientID:  2,
		ServiceID: 2,
		Date:      futureDate(1),
		StartTime: "09:30",
	})
	assert.Equal(t, httperr.CodeAllRoomsBooked, httperr.BusinessCode(err))
}
