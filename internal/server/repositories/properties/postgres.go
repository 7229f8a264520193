// Package properties provides PostgreSQL-backed persistence for the
// property catalog.
package properties

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/models"
)

// PostgresRepository implements property storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.Property) (int64, error) {
	query := `
		INSERT INTO properties (name, location, price, rooms, type, description, image_key)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		p.Name, p.Location, p.Price, p.Rooms, p.Type, p.Description, p.ImageKey).Scan(&id)
	if err != nil {
		return 0, common.NewPersistenceError("insert property", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Property, error) {
	query := `
		SELECT id, name, location, price, rooms, type, COALESCE(description, ''), COALESCE(image_key, '')
		FROM properties
		WHERE id = $1
	`
	p := &models.Property{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Location, &p.Price, &p.Rooms, &p.Type, &p.Description, &p.ImageKey)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewPersistenceError("select property", err)
	}
	return p, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Property, error) {
	query := `
		SELECT id, name, location, price, rooms, type, COALESCE(description, ''), COALESCE(image_key, '')
		FROM properties
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("select properties", err)
	}
	defer rows.Close()

	var result []*models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Price, &p.Rooms, &p.Type, &p.Description, &p.ImageKey); err != nil {
			return nil, common.NewPersistenceError("scan property", err)
		}
		result = append(result, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("iterate properties", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, p *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, location = $2, price = $3, rooms = $4, type = $5, description = NULLIF($6, ''), image_key = NULLIF($7, '')
		WHERE id = $8
	`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.Location, p.Price, p.Rooms, p.Type, p.Description, p.ImageKey, p.ID)
	if err != nil {
		return common.NewPersistenceError("update property", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewPersistenceError("update property rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// Delete removes the listing. Dependent transactions are intentionally not
// checked; their property_id may dangle afterwards.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return common.NewPersistenceError("delete property", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewPersistenceError("delete property rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM properties WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, common.NewPersistenceError("property exists", err)
	}
	return exists, nil
}
