package properties

import (
	"context"

	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Property) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Property, error)
	List(ctx context.Context) ([]*models.Property, error)
	Update(ctx context.Context, p *models.Property) error
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
}
