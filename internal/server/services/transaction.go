package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// TransactionService is the ledger: the single entry point for recording
// sale and rental transactions, and the owner of the rental-only mutation
// rule. Sales are append-only history; rentals may be updated (amount and
// date only) or deleted. The transaction type itself is immutable after
// creation.
type TransactionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	properties  *PropertyService
	clients     *ClientService
}

func NewTransactionService(db *sql.DB, m repomanager.RepositoryManager, properties *PropertyService, clients *ClientService) *TransactionService {
	return &TransactionService{
		db:          db,
		repomanager: m,
		properties:  properties,
		clients:     clients,
	}
}

// Record validates and inserts a transaction for the acting identity.
// The identity is provisioned as a client on its first transaction; the
// provisioning and the insert run in one database transaction so a failed
// insert does not leave an orphaned client behind.
func (s *TransactionService) Record(ctx context.Context, propertyID int64, transactionType string, amount decimal.Decimal, date time.Time, identity models.Identity) (int64, error) {
	if propertyID <= 0 {
		return 0, fmt.Errorf("%w: property id must be provided", common.ErrValidation)
	}
	if transactionType != models.TransactionTypeSale && transactionType != models.TransactionTypeRental {
		return 0, fmt.Errorf("%w: unknown transaction type %q", common.ErrValidation, transactionType)
	}
	if !amount.IsPositive() {
		return 0, fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}

	exists, err := s.properties.Exists(ctx, propertyID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, fmt.Errorf("property: %w", common.ErrNotFound)
	}

	// callers may backdate; an unset date means "now"
	if date.IsZero() {
		date = time.Now()
	}

	var id int64
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		clientID, err := s.clients.FindOrCreateWith(ctx, tx, identity.Name, identity.Email, "", "")
		if err != nil {
			return err
		}

		id, err = s.repomanager.Transactions(tx).Create(ctx, &models.Transaction{
			PropertyID: propertyID,
			ClientID:   clientID,
			Type:       transactionType,
			Amount:     amount,
			Date:       date,
		})
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update overwrites a rental's amount and date. Sales fail with
// ErrPermissionDenied; type, property and client are never touched.
func (s *TransactionService) Update(ctx context.Context, id int64, amount decimal.Decimal, date time.Time) error {
	if !amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", common.ErrValidation)
	}

	repo := s.repomanager.Transactions(s.db)

	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Type != models.TransactionTypeRental {
		return fmt.Errorf("%w: only rental transactions can be updated", common.ErrPermissionDenied)
	}

	if date.IsZero() {
		date = t.Date
	}
	return repo.Update(ctx, id, amount, date)
}

// Delete removes a rental permanently. Sales fail with ErrPermissionDenied.
func (s *TransactionService) Delete(ctx context.Context, id int64) error {
	repo := s.repomanager.Transactions(s.db)

	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t.Type != models.TransactionTypeRental {
		return fmt.Errorf("%w: only rental transactions can be deleted", common.ErrPermissionDenied)
	}

	return repo.Delete(ctx, id)
}

// ListForClientByName returns the transactions of every client with the
// given name, each with its property name. The name key matches the
// original system; clients sharing a name have their histories merged.
func (s *TransactionService) ListForClientByName(ctx context.Context, name string) ([]*models.TransactionWithProperty, error) {
	return s.repomanager.Transactions(s.db).ListByClientName(ctx, name)
}

// ListDetailed returns every transaction with property and client names.
func (s *TransactionService) ListDetailed(ctx context.Context) ([]*models.TransactionDetail, error) {
	return s.repomanager.Transactions(s.db).ListDetailed(ctx)
}

// TotalFor sums the amounts of the given transactions. Decimal arithmetic
// keeps the result exact regardless of scale.
func TotalFor(transactions []*models.TransactionWithProperty) decimal.Decimal {
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total
}
