package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// ClientService is the client registry: find-or-create keyed by email,
// plus listing and unconditional delete.
type ClientService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewClientService(db *sql.DB, m repomanager.RepositoryManager) *ClientService {
	return &ClientService{db: db, repomanager: m}
}

// FindOrCreate returns the id of the client with the given email, creating
// the row first if none exists. An existing client is returned unchanged:
// name, phone and inquiries keep their first-seen values.
func (s *ClientService) FindOrCreate(ctx context.Context, name, email, phone, inquiries string) (int64, error) {
	return s.FindOrCreateWith(ctx, s.db, name, email, phone, inquiries)
}

// FindOrCreateWith is FindOrCreate running on the given DBTX, so the
// ledger can provision a client inside the same transaction as the
// insert it performs.
//
// Race safety comes from the unique constraint on clients.email: when a
// concurrent call wins the insert, Create reports ErrAlreadyExists and
// the lookup is retried.
func (s *ClientService) FindOrCreateWith(ctx context.Context, db dbx.DBTX, name, email, phone, inquiries string) (int64, error) {
	if email == "" {
		return 0, fmt.Errorf("%w: email must be provided", common.ErrValidation)
	}

	repo := s.repomanager.Clients(db)

	c, err := repo.GetByEmail(ctx, email)
	if err == nil {
		return c.ID, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return 0, err
	}

	id, err := repo.Create(ctx, &models.Client{Name: name, Email: email, Phone: phone, Inquiries: inquiries})
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, common.ErrAlreadyExists) {
		return 0, err
	}

	// lost the insert race; the row exists now
	c, err = repo.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	return s.repomanager.Clients(s.db).List(ctx)
}

// Delete removes the client without checking transactions that reference
// it, consistent with the catalog's delete policy.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Clients(s.db).Delete(ctx, id)
}
