// Package services contains the back-office business logic: the property
// catalog, the client registry, the transaction ledger, trend aggregation,
// and account handling. Services receive the acting identity as an
// explicit parameter and never read it from ambient state.
package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// PropertyService owns listing validation and catalog CRUD.
type PropertyService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPropertyService(db *sql.DB, m repomanager.RepositoryManager) *PropertyService {
	return &PropertyService{db: db, repomanager: m}
}

// validate enforces listing constraints: name/location/type non-empty,
// price > 0, rooms >= 0 (zero is legal for studio and land listings).
func (s *PropertyService) validate(p *models.Property) error {
	if p.Name == "" {
		return fmt.Errorf("%w: name must not be empty", common.ErrValidation)
	}
	if p.Location == "" {
		return fmt.Errorf("%w: location must not be empty", common.ErrValidation)
	}
	if p.Type == "" {
		return fmt.Errorf("%w: type must not be empty", common.ErrValidation)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", common.ErrValidation)
	}
	if p.Rooms < 0 {
		return fmt.Errorf("%w: rooms must not be negative", common.ErrValidation)
	}
	return nil
}

func (s *PropertyService) Create(ctx context.Context, p *models.Property) (int64, error) {
	if err := s.validate(p); err != nil {
		return 0, err
	}
	return s.repomanager.Properties(s.db).Create(ctx, p)
}

func (s *PropertyService) Update(ctx context.Context, p *models.Property) error {
	if err := s.validate(p); err != nil {
		return err
	}
	return s.repomanager.Properties(s.db).Update(ctx, p)
}

// Delete removes the listing without checking dependent transactions.
func (s *PropertyService) Delete(ctx context.Context, id int64) error {
	return s.repomanager.Properties(s.db).Delete(ctx, id)
}

func (s *PropertyService) Get(ctx context.Context, id int64) (*models.Property, error) {
	return s.repomanager.Properties(s.db).GetByID(ctx, id)
}

func (s *PropertyService) List(ctx context.Context) ([]*models.Property, error) {
	return s.repomanager.Properties(s.db).List(ctx)
}

// Exists is the catalog's existence check consumed by the ledger.
func (s *PropertyService) Exists(ctx context.Context, id int64) (bool, error) {
	return s.repomanager.Properties(s.db).Exists(ctx, id)
}
