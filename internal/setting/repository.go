package setting

import (
	"context"
	"errors"

	"github.com/mahedy25/storefront-api/internal/domain"
)

var ErrSettingNotFound = errors.New("setting not found")

// Repository persists the single store-wide settings document.
type Repository interface {
	Get(ctx context.Context) (*domain.Setting, error)
	Upsert(ctx context.Context, s *domain.Setting) (*domain.Setting, error)
}
