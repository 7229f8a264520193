package clients

import (
	"context"

	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type Repository interface {
	// Create inserts a new client. A duplicate email yields
	// common.ErrAlreadyExists.
	Create(ctx context.Context, c *models.Client) (int64, error)
	GetByEmail(ctx context.Context, email string) (*models.Client, error)
	List(ctx context.Context) ([]*models.Client, error)
	Delete(ctx context.Context, id int64) error
}
