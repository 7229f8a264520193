// Package profiles provides PostgreSQL-backed persistence for per-user
// profiles.
package profiles

import (
	"context"
	"database/sql"
	"errors"

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

func (r *PostgresRepository) GetByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	query := `
		SELECT id, user_id, name, dob, address, gender
		FROM profiles
		WHERE user_id = $1
	`
	p := &models.Profile{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&p.ID, &p.UserID, &p.Name, &p.DOB, &p.Address, &p.Gender)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewPersistenceError("select profile", err)
	}
	return p, nil
}

func (r *PostgresRepository) Upsert(ctx context.Context, p *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, name, dob, address, gender)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET
			name = EXCLUDED.name,
			dob = EXCLUDED.dob,
			address = EXCLUDED.address,
			gender = EXCLUDED.gender
	`
	if _, err := r.db.ExecContext(ctx, query, p.UserID, p.Name, p.DOB, p.Address, p.Gender); err != nil {
		return common.NewPersistenceError("upsert profile", err)
	}
	return nil
}
