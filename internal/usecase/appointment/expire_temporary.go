package appointment

import (
	"context"

	domain "github.com/amaraspa/spa-scheduler/internal/domain/appointment"
	"github.com/amaraspa/spa-scheduler/internal/timezone"
)

// ExpireTemporary purges temporary Pending appointments whose hold has
// lapsed. Run periodically by cmd/sweeper; confirmed appointments are
// never touched.
type ExpireTemporary struct {
	repo domain.Repository
}

func NewExpireTemporary(repo domain.Repository) *ExpireTemporary {
	return &ExpireTemporary{repo: repo}
}

func (uc *ExpireTemporary) Execute(ctx context.Context) (int64, error) {
	return uc.repo.DeleteExpiredTemporary(ctx, timezone.Now())
}
