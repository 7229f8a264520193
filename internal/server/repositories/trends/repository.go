package trends

import (
	"context"

	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type Repository interface {
	Compute(ctx context.Context) ([]*models.Trend, error)
}
