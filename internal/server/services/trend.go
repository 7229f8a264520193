package services

import (
	"context"
	"database/sql"

	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// TrendService computes per-property sale/rental counts for the public
// browse page. Results are recomputed on every call; nothing is cached.
type TrendService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewTrendService(db *sql.DB, m repomanager.RepositoryManager) *TrendService {
	return &TrendService{db: db, repomanager: m}
}

func (s *TrendService) Compute(ctx context.Context) ([]*models.Trend, error) {
	return s.repomanager.Trends(s.db).Compute(ctx)
}
