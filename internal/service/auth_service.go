package service

import (
	"context"
	"errors"

	"nftgame/internal/domain"
	"nftgame/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration and login. It lives outside the
// economy core: its only contact with balances is the starting bonus
// baked into user creation.
type AuthService struct {
	userRepo *repository.UserRepository
}

func NewAuthService(db *pgxpool.Pool) *AuthService {
	return &AuthService{userRepo: repository.NewUserRepository(db)}
}

// Register creates a user with the starting bonus applied
func (s *AuthService) Register(ctx context.Context, email, username, password string) (*domain.User, error) {
	exists, err := s.userRepo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Create(ctx, u); err != nil {
		if uniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and returns the user
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}
