package services

import (
	"context"
	"database/sql"

	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// ProfileService manages the zero-or-one profile a user owns. Only the
// owning identity can read or write it.
type ProfileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager) *ProfileService {
	return &ProfileService{db: db, repomanager: m}
}

// Get returns the identity's profile, or ErrNotFound when none was saved.
func (s *ProfileService) Get(ctx context.Context, identity models.Identity) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByUserID(ctx, identity.ID)
}

// Save creates or overwrites the identity's profile.
func (s *ProfileService) Save(ctx context.Context, identity models.Identity, name, dob, address, gender string) error {
	return s.repomanager.Profiles(s.db).Upsert(ctx, &models.Profile{
		UserID:  identity.ID,
		Name:    name,
		DOB:     dob,
		Address: address,
		Gender:  gender,
	})
}
