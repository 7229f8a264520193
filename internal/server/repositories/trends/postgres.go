// Package trends computes per-property sale/rental counts for public
// display. Read-only.
package trends

import (
	"context"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Compute counts transactions per property and type. The LEFT JOIN keeps
// properties with no history in the result, with zero counts.
func (r *PostgresRepository) Compute(ctx context.Context) ([]*models.Trend, error) {
	query := `
		SELECT p.name AS property_name,
		       p.location,
		       COUNT(*) FILTER (WHERE t.transaction_type = 'sale') AS times_sold,
		       COUNT(*) FILTER (WHERE t.transaction_type = 'rental') AS times_rented
		FROM properties p
		LEFT JOIN transactions t ON p.id = t.property_id
		GROUP BY p.id, p.name, p.location
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("select trends", err)
	}
	defer rows.Close()

	var result []*models.Trend
	for rows.Next() {
		var tr models.Trend
		if err := rows.Scan(&tr.PropertyName, &tr.Location, &tr.TimesSold, &tr.TimesRented); err != nil {
			return nil, common.NewPersistenceError("scan trend", err)
		}
		result = append(result, &tr)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("iterate trends", err)
	}
	return result, nil
}
