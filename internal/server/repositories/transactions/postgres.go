// Package transactions provides PostgreSQL-backed persistence for the
// transaction ledger.
package transactions

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

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

func (r *PostgresRepository) Create(ctx context.Context, t *models.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (property_id, client_id, transaction_type, amount, date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRowContext(ctx, query,
		t.PropertyID, t.ClientID, t.Type, t.Amount, t.Date).Scan(&id)
	if err != nil {
		return 0, common.NewPersistenceError("insert transaction", err)
	}
	return id, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Transaction, error) {
	query := `
		SELECT id, property_id, client_id, transaction_type, amount, date
		FROM transactions
		WHERE id = $1
	`
	t := &models.Transaction{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.PropertyID, &t.ClientID, &t.Type, &t.Amount, &t.Date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, common.NewPersistenceError("select transaction", err)
	}
	return t, nil
}

func (r *PostgresRepository) Update(ctx context.Context, id int64, amount decimal.Decimal, date time.Time) error {
	query := `
		UPDATE transactions
		SET amount = $1, date = $2
		WHERE id = $3
	`
	res, err := r.db.ExecContext(ctx, query, amount, date, id)
	if err != nil {
		return common.NewPersistenceError("update transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewPersistenceError("update transaction rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return common.NewPersistenceError("delete transaction", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return common.NewPersistenceError("delete transaction rows affected", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// ListDetailed returns every transaction with property and client names
// for the back-office listing. Inner joins drop rows whose property or
// client has since been deleted, matching the page this feeds.
func (r *PostgresRepository) ListDetailed(ctx context.Context) ([]*models.TransactionDetail, error) {
	query := `
		SELECT t.id, t.property_id, t.client_id, t.transaction_type, t.amount, t.date,
		       p.name AS property_name, c.name AS client_name
		FROM transactions t
		JOIN properties p ON t.property_id = p.id
		JOIN clients c ON t.client_id = c.id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, common.NewPersistenceError("select transactions", err)
	}
	defer rows.Close()

	var result []*models.TransactionDetail
	for rows.Next() {
		var d models.TransactionDetail
		if err := rows.Scan(&d.ID, &d.PropertyID, &d.ClientID, &d.Type, &d.Amount, &d.Date,
			&d.PropertyName, &d.ClientName); err != nil {
			return nil, common.NewPersistenceError("scan transaction", err)
		}
		result = append(result, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("iterate transactions", err)
	}
	return result, nil
}

// ListByClientName returns transactions for every client with the given
// name. The lookup key is the name, not the id; clients sharing a name
// will have their histories merged.
func (r *PostgresRepository) ListByClientName(ctx context.Context, name string) ([]*models.TransactionWithProperty, error) {
	query := `
		SELECT t.id, t.property_id, t.client_id, t.transaction_type, t.amount, t.date,
		       p.name AS property_name
		FROM transactions t
		JOIN properties p ON t.property_id = p.id
		WHERE t.client_id IN (SELECT id FROM clients WHERE name = $1)
	`
	rows, err := r.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, common.NewPersistenceError("select transactions by client name", err)
	}
	defer rows.Close()

	var result []*models.TransactionWithProperty
	for rows.Next() {
		var tw models.TransactionWithProperty
		if err := rows.Scan(&tw.ID, &tw.PropertyID, &tw.ClientID, &tw.Type, &tw.Amount, &tw.Date,
			&tw.PropertyName); err != nil {
			return nil, common.NewPersistenceError("scan transaction", err)
		}
		result = append(result, &tw)
	}
	if err := rows.Err(); err != nil {
		return nil, common.NewPersistenceError("iterate transactions", err)
	}
	return result, nil
}
