// Package clients provides PostgreSQL-backed persistence for the client
// registry. The unique constraint on clients.email is the guard that keeps
// concurrent find-or-create calls from inserting duplicates.
package clients

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

// Create inserts a new client. ON CONFLICT DO NOTHING keeps a lost
// insert race from aborting an enclosing transaction; the caller gets
// ErrAlreadyExists and can retry the lookup.
func (r *PostgresRepository) Create(ctx context.Context, c *models.Client) (int64, error) {
	query := `
		INSERT INTO clients (name, email, phone, inquiries)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query, c.Name, c.Email, c.Phone, c.Inquiries).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrAlreadyExists
		}
		return 0, common.NewPersistenceError("insert client", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.Client, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), phone, inquiries
		FROM clients
		WHERE email = $1
	`
	c := &models.Client{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Inquiries)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewPersistenceError("select client", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Client, error) {
	query := `
		SELECT id, name, COALESCE(email, ''), phone, inquiries
		FROM clients
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("select clients", err)
	}
	defer rows.Close()

	var result []*models.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Inquiries); err != nil {
			return nil, common.NewPersistenceError("scan client", err)
		}
		result = append(result, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("iterate clients", err)
	}
	return result, nil
}

// Delete removes the client unconditionally; transactions referencing it
// are not checked.
func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return common.NewPersistenceError("delete client", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewPersistenceError("delete client rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}
