package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/carpediem/console/internal/account"
	identityDatamodel "github.com/carpediem/console/internal/core/datamodel/identity"
	"github.com/carpediem/console/internal/core/events"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Repository interface {
	GetIdentityByEmail(email string) (*identityDatamodel.Identity, error)
	GetIdentityByAuthID(authID string) (*identityDatamodel.Identity, error)
	CreateIdentity(identity *identityDatamodel.Identity) error
	UpdateLastSignIn(authID string, at time.Time) error
}

// AccountRegistry is the slice of the account service the auth flow needs.
type AccountRegistry interface {
	GetByAuthID(authID string) (*account.Account, error)
	RegisterIdentity(ctx context.Context, authID, email, firstName, lastName string) (*account.Account, error)
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

var ErrIdentityNotFound = errors.New("identity not found")

type Service struct {
	repo           Repository
	accounts       AccountRegistry
	tokenGenerator TokenGenerator
	bus            Publisher
	logger         *slog.Logger
	bcryptCost     int
}

func NewService(repo Repository, accounts AccountRegistry, tokenGen TokenGenerator, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:           repo,
		accounts:       accounts,
		tokenGenerator: tokenGen,
		bus:            bus,
		logger:         logger,
		bcryptCost:     bcrypt.DefaultCost,
	}
}

// WithBCryptCost overrides the hash cost, mainly from config.
func (s *Service) WithBCryptCost(cost int) *Service {
	if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
		s.bcryptCost = cost
	}
	return s
}

// Register creates the credential row and its roster account, then signs the
// new identity in.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	if _, err := s.repo.GetIdentityByEmail(dto.Email); err == nil {
		return AuthTokens{}, ErrEmailTaken
	} else if !errors.Is(err, ErrIdentityNotFound) {
		return AuthTokens{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to hash password: %w", err)
	}

	identity := &identityDatamodel.Identity{
		AuthID:       uuid.New().String(),
		Email:        dto.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := s.repo.CreateIdentity(identity); err != nil {
		return AuthTokens{}, fmt.Errorf("failed to create identity: %w", err)
	}

	if _, err := s.accounts.RegisterIdentity(ctx, identity.AuthID, dto.Email, dto.FirstName, dto.LastName); err != nil {
		return AuthTokens{}, fmt.Errorf("failed to register account: %w", err)
	}

	return s.issueTokens(identity.AuthID, identity.Email)
}

// Authenticate validates credentials, stamps the sign-in, and returns tokens.
// Deactivated accounts still authenticate; the access resolver is what turns
// their portal access off.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	identity, err := s.repo.GetIdentityByEmail(dto.Email)
	if err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := VerifyPassword(identity.PasswordHash, dto.Password); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	now := time.Now()
	if err := s.repo.UpdateLastSignIn(identity.AuthID, now); err != nil {
		s.logger.Error("failed to stamp last sign in", "auth_id", identity.AuthID, "error", err)
	}

	if err := s.bus.Publish(ctx, events.NewAccountSignedInEvent(identity.AuthID, identity.Email)); err != nil {
		s.logger.Error("failed to publish signed in event", "auth_id", identity.AuthID, "error", err)
	}

	return s.issueTokens(identity.AuthID, identity.Email)
}

// RefreshTokens validates the refresh token and returns a fresh pair.
func (s *Service) RefreshTokens(refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}
	return s.issueTokens(claims.AuthID, claims.Email)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// AccountForAuthID resolves the roster account behind a validated token.
func (s *Service) AccountForAuthID(authID string) (*account.Account, error) {
	return s.accounts.GetByAuthID(authID)
}

func (s *Service) issueTokens(authID, email string) (AuthTokens, error) {
	accessToken, err := s.tokenGenerator.GenerateAccessToken(authID, email)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(authID, email)
	if err != nil {
		return AuthTokens{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return AuthTokens{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
