package users

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/mkravets/falljournal/internal/common"
	"github.com/mkravets/falljournal/internal/server/auth"
	"github.com/mkravets/falljournal/internal/server/config"
)

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// HashPassword returns the hex-encoded SHA-256 digest of password. The digest
// is deterministic and unsalted; stored credential files depend on this exact
// scheme, so it must not change.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Register creates a new account. Returns common.ErrorAlreadyExists (wrapped)
// when the username is taken; the existing record is left untouched.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {

	user := &User{
		Name:         username,
		PasswordHash: HashPassword(password),
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Authenticate reports whether username exists and password matches its
// stored hash. An unknown username is (false, nil); store-level failures
// propagate.
func (s *Service) Authenticate(ctx context.Context, username, password string) (bool, error) {

	user, err := s.repo.GetByName(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, err
	}

	return s.checkHash(user.PasswordHash, HashPassword(password)), nil
}

func (s *Service) checkHash(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// Login authenticates and, on success, mints a session token carrying the
// username. Bad credentials map to common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {

	ok, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", common.ErrorInternal
	}
	if !ok {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(username, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
