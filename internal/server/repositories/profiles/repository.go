package profiles

import (
	"context"

	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	// Upsert creates the user's profile or overwrites the existing one.
	Upsert(ctx context.Context, p *models.Profile) error
}
