package auth_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/auth"
	identityDatamodel "github.com/carpediem/console/internal/core/datamodel/identity"
	"github.com/carpediem/console/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuthService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Service Suite")
}

// MockRepository implements auth.Repository for testing
type MockRepository struct {
	identities map[string]*identityDatamodel.Identity
	shouldFail bool
	failError  error
}

func NewMockRepository() *MockRepository {
	return &MockRepository{identities: make(map[string]*identityDatamodel.Identity)}
}

func (m *MockRepository) GetIdentityByEmail(email string) (*identityDatamodel.Identity, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, id := range m.identities {
		if id.Email == email {
			copied := *id
			return &copied, nil
		}
	}
	return nil, auth.ErrIdentityNotFound
}

func (m *MockRepository) GetIdentityByAuthID(authID string) (*identityDatamodel.Identity, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	id, exists := m.identities[authID]
	if !exists {
		return nil, auth.ErrIdentityNotFound
	}
	copied := *id
	return &copied, nil
}

func (m *MockRepository) CreateIdentity(identity *identityDatamodel.Identity) error {
	if m.shouldFail {
		return m.failError
	}
	copied := *identity
	m.identities[identity.AuthID] = &copied
	return nil
}

func (m *MockRepository) UpdateLastSignIn(authID string, at time.Time) error {
	if m.shouldFail {
		return m.failError
	}
	id, exists := m.identities[authID]
	if !exists {
		return auth.ErrIdentityNotFound
	}
	id.LastSignInAt = &at
	return nil
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *MockRepository) AddIdentity(email, password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	authID := "auth-" + email
	m.identities[authID] = &identityDatamodel.Identity{
		AuthID:       authID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	return authID
}

// MockRegistry implements auth.AccountRegistry for testing
type MockRegistry struct {
	accounts   map[string]*account.Account
	registered []string
}

func NewMockRegistry() *MockRegistry {
	return &MockRegistry{accounts: make(map[string]*account.Account)}
}

func (m *MockRegistry) GetByAuthID(authID string) (*account.Account, error) {
	a, exists := m.accounts[authID]
	if !exists {
		return nil, account.ErrNotFound
	}
	return a, nil
}

func (m *MockRegistry) RegisterIdentity(_ context.Context, authID, email, firstName, lastName string) (*account.Account, error) {
	a := &account.Account{
		ID:        int64(len(m.accounts) + 1),
		AuthID:    authID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      2,
	}
	m.accounts[authID] = a
	m.registered = append(m.registered, email)
	return a, nil
}

// MockPublisher records published events
type MockPublisher struct {
	published []events.Event
}

func (m *MockPublisher) Publish(_ context.Context, event events.Event) error {
	m.published = append(m.published, event)
	return nil
}

var _ = Describe("Auth Service", func() {
	var (
		mockRepo     *MockRepository
		mockRegistry *MockRegistry
		mockBus      *MockPublisher
		tokenGen     *auth.JWTTokenGenerator
		service      *auth.Service
		ctx          context.Context
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		mockRegistry = NewMockRegistry()
		mockBus = &MockPublisher{}
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789abcdef",
			"test-refresh-secret-0123456789abcdef",
			15*time.Minute,
			7*24*time.Hour,
		)
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = auth.NewService(mockRepo, mockRegistry, tokenGen, mockBus, logger)
		ctx = context.Background()
	})

	Describe("Register", func() {
		Context("with a valid signup", func() {
			It("should create the identity and its roster account", func() {
				tokens, err := service.Register(ctx, auth.RegisterDTO{
					LastName:  "Lefevre",
					FirstName: "Claire",
					Email:     "claire.lefevre@carpediem.pro",
					Password:  "motdepasse123",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(tokens.AccessToken).NotTo(BeEmpty())
				Expect(tokens.RefreshToken).NotTo(BeEmpty())
				Expect(mockRegistry.registered).To(ConsistOf("claire.lefevre@carpediem.pro"))
			})

			It("should issue an access token carrying the new auth id", func() {
				tokens, err := service.Register(ctx, auth.RegisterDTO{
					Email:    "claire.lefevre@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(err).NotTo(HaveOccurred())

				claims, err := service.ValidateAccessToken(tokens.AccessToken)
				Expect(err).NotTo(HaveOccurred())
				Expect(claims.AuthID).NotTo(BeEmpty())
				Expect(claims.Email).To(Equal("claire.lefevre@carpediem.pro"))
			})
		})

		Context("when the email already has an identity", func() {
			BeforeEach(func() {
				mockRepo.AddIdentity("claire.lefevre@carpediem.pro", "autre-mot-de-passe")
			})

			It("should return email taken", func() {
				_, err := service.Register(ctx, auth.RegisterDTO{
					Email:    "claire.lefevre@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(errors.Is(err, auth.ErrEmailTaken)).To(BeTrue())
			})
		})

		Context("with a short password", func() {
			It("should return a validation error", func() {
				_, err := service.Register(ctx, auth.RegisterDTO{
					Email:    "claire.lefevre@carpediem.pro",
					Password: "court",
				})
				var vErr auth.ValidationError
				Expect(errors.As(err, &vErr)).To(BeTrue())
			})
		})
	})

	Describe("Authenticate", func() {
		var authID string

		BeforeEach(func() {
			authID = mockRepo.AddIdentity("marie.dupont@carpediem.pro", "motdepasse123")
		})

		Context("with valid credentials", func() {
			It("should return a token pair", func() {
				tokens, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "marie.dupont@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(tokens.AccessToken).NotTo(BeEmpty())
				Expect(tokens.RefreshToken).NotTo(BeEmpty())
			})

			It("should stamp the last sign in", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "marie.dupont@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(err).NotTo(HaveOccurred())

				identity, err := mockRepo.GetIdentityByAuthID(authID)
				Expect(err).NotTo(HaveOccurred())
				Expect(identity.LastSignInAt).NotTo(BeNil())
			})

			It("should publish a signed in event", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "marie.dupont@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(mockBus.published).To(HaveLen(1))
				Expect(mockBus.published[0].EventType()).To(Equal(events.EventTypeAccountSignedIn))
			})
		})

		Context("with a wrong password", func() {
			It("should return invalid credentials", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "marie.dupont@carpediem.pro",
					Password: "mauvais-mot-de-passe",
				})
				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeTrue())
			})
		})

		Context("with an unknown email", func() {
			It("should return invalid credentials, not a lookup error", func() {
				_, err := service.Authenticate(ctx, auth.LoginDTO{
					Email:    "inconnu@carpediem.pro",
					Password: "motdepasse123",
				})
				Expect(errors.Is(err, auth.ErrInvalidCredentials)).To(BeTrue())
			})
		})
	})

	Describe("RefreshTokens", func() {
		var tokens auth.AuthTokens

		BeforeEach(func() {
			mockRepo.AddIdentity("marie.dupont@carpediem.pro", "motdepasse123")
			var err error
			tokens, err = service.Authenticate(ctx, auth.LoginDTO{
				Email:    "marie.dupont@carpediem.pro",
				Password: "motdepasse123",
			})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should issue a new pair for a valid refresh token", func() {
			fresh, err := service.RefreshTokens(tokens.RefreshToken)
			Expect(err).NotTo(HaveOccurred())
			Expect(fresh.AccessToken).NotTo(BeEmpty())
			Expect(fresh.RefreshToken).NotTo(BeEmpty())
		})

		It("should reject an access token used as a refresh token", func() {
			_, err := service.RefreshTokens(tokens.AccessToken)
			Expect(errors.Is(err, auth.ErrInvalidToken)).To(BeTrue())
		})

		It("should reject garbage", func() {
			_, err := service.RefreshTokens("pas-un-jeton")
			Expect(errors.Is(err, auth.ErrInvalidToken)).To(BeTrue())
		})
	})

	Describe("ValidateAccessToken", func() {
		It("should reject a refresh token used as an access token", func() {
			mockRepo.AddIdentity("marie.dupont@carpediem.pro", "motdepasse123")
			tokens, err := service.Authenticate(ctx, auth.LoginDTO{
				Email:    "marie.dupont@carpediem.pro",
				Password: "motdepasse123",
			})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(tokens.RefreshToken)
			Expect(errors.Is(err, auth.ErrInvalidToken)).To(BeTrue())
		})

		It("should reject an expired token", func() {
			shortGen := auth.NewJWTTokenGenerator(
				"test-access-secret-0123456789abcdef",
				"test-refresh-secret-0123456789abcdef",
				-time.Minute,
				7*24*time.Hour,
			)
			expired, err := shortGen.GenerateAccessToken("auth-x", "x@carpediem.pro")
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ValidateAccessToken(expired)
			Expect(errors.Is(err, auth.ErrTokenExpired)).To(BeTrue())
		})
	})
})
