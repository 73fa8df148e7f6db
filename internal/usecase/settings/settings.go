package settings

import (
	"context"

	"github.com/amaraspa/spa-scheduler/internal/audit"
	"github.com/amaraspa/spa-scheduler/internal/httperr"
	"github.com/amaraspa/spa-scheduler/internal/models"
	"github.com/amaraspa/spa-scheduler/internal/timeutil"
)

// MinSpanMinutes is the shortest allowed operating window.
const MinSpanMinutes = 60

// Repository is the slice of storage this package needs; the GORM
// appointment repository satisfies it.
type Repository interface {
	GetSettings(ctx context.Context) (*models.SpaSettings, error)
	UpdateSettings(ctx context.Context, settings *models.SpaSettings) error
}

// ======================================================
// GET
// ======================================================

type GetSettings struct {
	repo Repository
}

func NewGetSettings(repo Repository) *GetSettings {
	return &GetSettings{repo: repo}
}

// Execute returns the singleton record, lazily created with defaults.
func (uc *GetSettings) Execute(ctx context.Context) (*models.SpaSettings, error) {
	return uc.repo.GetSettings(ctx)
}

// ======================================================
// UPDATE
// ======================================================

// UpdateSettingsInput carries a partial update; nil fields keep the
// current value.
type UpdateSettingsInput struct {
	TotalRooms  *int
	OpeningTime *string
	ClosingTime *string
	DownPayment *int
}

type UpdateSettings struct {
	repo  Repository
	audit *audit.Dispatcher
}

func NewUpdateSettings(repo Repository, audit *audit.Dispatcher) *UpdateSettings {
	return &UpdateSettings{repo: repo, audit: audit}
}

// Execute merges the partial input onto the current record first and
// validates the merged result, so a lone closing-time change is still
// checked against the existing opening time.
func (uc *UpdateSettings) Execute(
	ctx context.Context,
	in UpdateSettingsInput,
	adminID *uint,
) (*models.SpaSettings, error) {

	current, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	merged := *current
	if in.TotalRooms != nil {
		merged.TotalRooms = *in.TotalRooms
	}
	if in.OpeningTime != nil {
		merged.OpeningTime = *in.OpeningTime
	}
	if in.ClosingTime != nil {
		merged.ClosingTime = *in.ClosingTime
	}
	if in.DownPayment != nil {
		merged.DownPayment = *in.DownPayment
	}

	if err := validate(&merged); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateSettings(ctx, &merged); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		AdminID:  adminID,
		Action:   "settings_updated",
		Entity:   "spa_settings",
		EntityID: &merged.ID,
		Metadata: merged,
	})

	return &merged, nil
}

func validate(s *models.SpaSettings) error {
	if s.TotalRooms < 1 {
		return httperr.ErrBusiness(httperr.CodeInvalidSettings)
	}
	if s.DownPayment < 1 || s.DownPayment > 100 {
		return httperr.ErrBusiness(httperr.CodeInvalidSettings)
	}

	openMin, err := timeutil.ToMinutes(s.OpeningTime)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}
	closeMin, err := timeutil.ToMinutes(s.ClosingTime)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodeInvalidTimeFormat)
	}

	if openMin >= closeMin {
		return httperr.ErrBusiness(httperr.CodeInvalidSettings)
	}
	if closeMin-openMin < MinSpanMinutes {
		return httperr.ErrBusiness(httperr.CodeInvalidSettings)
	}

	return nil
}
