package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/carpediem/console/internal/accesspolicy"
	"github.com/carpediem/console/internal/core/events"
)

type Repository interface {
	GetByID(id int64) (*Account, error)
	GetByAuthID(authID string) (*Account, error)
	GetByEmail(email string) (*Account, error)
	List() ([]*Account, error)
	Create(a *Account) (int64, error)
	Update(a *Account) error
	Delete(id int64) error
}

type Publisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type Service struct {
	repo   Repository
	bus    Publisher
	logger *slog.Logger
}

func NewService(repo Repository, bus Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		bus:    bus,
		logger: logger,
	}
}

// GetByAuthID is the session facade's account lookup: one row keyed on the
// identity provider's subject id.
func (s *Service) GetByAuthID(authID string) (*Account, error) {
	a, err := s.repo.GetByAuthID(authID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by auth id: %w", err)
	}
	return a, nil
}

func (s *Service) GetByID(id int64) (*Account, error) {
	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get account by id: %w", err)
	}
	return a, nil
}

func (s *Service) List() ([]*Account, error) {
	accounts, err := s.repo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// Create registers a roster entry. The auth identity attaches later when the
// person signs up; until then AuthID stays empty.
func (s *Service) Create(ctx context.Context, dto RosterCreateDTO, actorAuthID string) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a := &Account{
		Email:     dto.Email,
		FirstName: dto.FirstName,
		LastName:  dto.LastName,
		Role:      dto.Role,
		SubDomain: dto.SubDomain,
		Domains:   dto.Domains,
	}

	id, err := s.repo.Create(a)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	a.ID = id

	if err := s.bus.Publish(ctx, events.NewAccountCreatedEvent(a.ID, a.AuthID, a.Email, a.Role)); err != nil {
		s.logger.Error("failed to publish account created event", "account_id", a.ID, "error", err)
	}

	return s.repo.GetByID(id)
}

// RegisterIdentity binds a fresh auth identity to the roster. A row created by
// an administrator ahead of signup is claimed by email; anyone else gets a new
// standard-user row.
func (s *Service) RegisterIdentity(ctx context.Context, authID, email, firstName, lastName string) (*Account, error) {
	existing, err := s.repo.GetByEmail(email)
	if err == nil {
		if existing.AuthID == "" {
			existing.AuthID = authID
			if err := s.repo.Update(existing); err != nil {
				return nil, fmt.Errorf("failed to attach identity: %w", err)
			}
			if err := s.bus.Publish(ctx, events.NewAccountUpdatedEvent(existing.ID, authID, []string{"auth_id"})); err != nil {
				s.logger.Error("failed to publish account updated event", "account_id", existing.ID, "error", err)
			}
		}
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to look up account by email: %w", err)
	}

	a := &Account{
		AuthID:    authID,
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Role:      accesspolicy.RoleStandardUser,
	}

	id, err := s.repo.Create(a)
	if err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	a.ID = id

	if err := s.bus.Publish(ctx, events.NewAccountCreatedEvent(a.ID, a.AuthID, a.Email, a.Role)); err != nil {
		s.logger.Error("failed to publish account created event", "account_id", a.ID, "error", err)
	}

	return a, nil
}

// UpdateRoster applies an administrator edit to any roster row.
func (s *Service) UpdateRoster(ctx context.Context, id int64, dto RosterUpdateDTO, actorAuthID string) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if dto.LastName != nil {
		a.LastName = *dto.LastName
	}
	if dto.FirstName != nil {
		a.FirstName = *dto.FirstName
	}
	if dto.Email != nil {
		a.Email = *dto.Email
	}
	if dto.Role != nil {
		a.Role = *dto.Role
	}
	if dto.Active != nil {
		a.Active = dto.Active
	}
	if dto.SubDomain != nil {
		a.SubDomain = dto.SubDomain
	}
	if dto.Domains != nil {
		a.Domains = *dto.Domains
	}

	if err := s.repo.Update(a); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	if err := s.bus.Publish(ctx, events.NewAccountUpdatedEvent(a.ID, actorAuthID, dto.Fields())); err != nil {
		s.logger.Error("failed to publish account updated event", "account_id", a.ID, "error", err)
	}

	return a, nil
}

// UpdateProfile applies a self-service edit: name and email only, looked up by
// the caller's own auth id so owners can never reach another row.
func (s *Service) UpdateProfile(ctx context.Context, authID string, dto ProfileUpdateDTO) (*Account, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByAuthID(authID)
	if err != nil {
		return nil, err
	}

	a.LastName = dto.LastName
	a.FirstName = dto.FirstName
	a.Email = dto.Email

	if err := s.repo.Update(a); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	if err := s.bus.Publish(ctx, events.NewAccountUpdatedEvent(a.ID, authID, []string{"nom", "prenom", "email"})); err != nil {
		s.logger.Error("failed to publish account updated event", "account_id", a.ID, "error", err)
	}

	return a, nil
}

// Delete removes a roster row immediately. There is no soft-delete; the row and
// its access are gone as soon as this returns.
func (s *Service) Delete(ctx context.Context, id int64, actorAuthID string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if err := s.bus.Publish(ctx, events.NewAccountDeletedEvent(id, actorAuthID)); err != nil {
		s.logger.Error("failed to publish account deleted event", "account_id", id, "error", err)
	}

	return nil
}
