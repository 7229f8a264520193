package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmarchuk/estatedesk/internal/common"
	"github.com/dmarchuk/estatedesk/internal/server/auth"
	"github.com/dmarchuk/estatedesk/internal/server/config"
	"github.com/dmarchuk/estatedesk/internal/server/models"
	"github.com/dmarchuk/estatedesk/internal/server/repositories/repomanager"
)

// UserService handles staff account registration and login. Login mints
// the signed identity token the middleware later turns back into a
// models.Identity.
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a staff account. A duplicate email surfaces as
// ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, name, email, password string, isAdmin bool) (*models.User, error) {
	if name == "" || email == "" {
		return nil, fmt.Errorf("%w: name and email must be provided", common.ErrValidation)
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password must be provided", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %v", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash), IsAdmin: isAdmin}
	id, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = id
	return user, nil
}

// Login verifies the credentials and returns the user together with a
// signed identity token. Unknown emails and wrong passwords both yield
// ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrUnauthorized
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(models.Identity{ID: user.ID, Name: user.Name, Email: user.Email},
		s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, "", fmt.Errorf("error generating token: %v", err)
	}

	return user, token, nil
}

// GetByID loads a user, e.g. to confirm a token still maps to an account.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}
