package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmarchuk/estatedesk/internal/dbx"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/clients"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/profiles"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/properties"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/transactions"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/trends"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a DBTX, so the same
// factory serves both standalone queries (*sql.DB) and transactional
// flows (*sql.Tx).
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	Properties(db dbx.DBTX) properties.Repository
	Clients(db dbx.DBTX) clients.Repository
	Transactions(db dbx.DBTX) transactions.Repository
	Trends(db dbx.DBTX) trends.Repository
}
