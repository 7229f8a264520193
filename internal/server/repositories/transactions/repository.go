package transactions

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, t *models.Transaction) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Transaction, error)
	// Update overwrites amount and date only; type, property and client
	// are immutable after creation.
	Update(ctx context.Context, id int64, amount decimal.Decimal, date time.Time) error
	Delete(ctx context.Context, id int64) error
	ListDetailed(ctx context.Context) ([]*models.TransactionDetail, error)
	ListByClientName(ctx context.Context, name string) ([]*models.TransactionWithProperty, error)
}
