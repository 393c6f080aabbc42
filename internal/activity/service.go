package activity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/directory"
)

// Sources label where an activity listing came from, so the console can show
// a degraded-data banner when the directory was unreachable.
const (
	SourceDirectory = "auth-admin"
	SourceFallback  = "utilisateur-fallback"
)

// Entry is one line of the admin activity view.
type Entry struct {
	AuthID       string     `json:"auth_id,omitempty"`
	Email        string     `json:"email"`
	CreatedAt    time.Time  `json:"created_at"`
	LastSignInAt *time.Time `json:"last_sign_in_at,omitempty"`
}

// Listing is the activity response: the entries plus which source produced them.
type Listing struct {
	Source  string  `json:"source"`
	Entries []Entry `json:"utilisateurs"`
}

// DirectorySource is the identity provider's admin API view.
type DirectorySource interface {
	Configured() bool
	ListUsers(ctx context.Context) ([]directory.User, error)
}

// RosterSource is the local roster fallback.
type RosterSource interface {
	List() ([]*account.Account, error)
}

type Service struct {
	directory DirectorySource
	roster    RosterSource
	logger    *slog.Logger
}

func NewService(dir DirectorySource, roster RosterSource, logger *slog.Logger) *Service {
	return &Service{
		directory: dir,
		roster:    roster,
		logger:    logger,
	}
}

// Listing prefers the directory and falls back to the roster when the
// directory cannot answer. Only when both sources fail does it error.
func (s *Service) Listing(ctx context.Context) (*Listing, error) {
	if s.directory != nil && s.directory.Configured() {
		users, err := s.directory.ListUsers(ctx)
		if err == nil {
			entries := make([]Entry, 0, len(users))
			for _, u := range users {
				entries = append(entries, Entry{
					AuthID:       u.ID,
					Email:        u.Email,
					CreatedAt:    u.CreatedAt,
					LastSignInAt: u.LastSignInAt,
				})
			}
			return &Listing{Source: SourceDirectory, Entries: entries}, nil
		}
		s.logger.Warn("directory listing failed, falling back to roster", "error", err)
	}

	accounts, err := s.roster.List()
	if err != nil {
		return nil, fmt.Errorf("activity fallback failed: %w", err)
	}

	entries := make([]Entry, 0, len(accounts))
	for _, a := range accounts {
		entries = append(entries, Entry{
			AuthID:    a.AuthID,
			Email:     a.Email,
			CreatedAt: a.CreatedAt,
		})
	}
	return &Listing{Source: SourceFallback, Entries: entries}, nil
}
