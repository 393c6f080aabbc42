package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/carpediem/console/internal/core/events"
)

// Repository persists sign-in journal rows.
type Repository interface {
	Record(authID string, at time.Time) error
}

// Recorder turns sign-in events into connexion rows. It listens on the bus so
// the auth flow never blocks on journal writes.
type Recorder struct {
	repo   Repository
	logger *slog.Logger
}

func NewRecorder(repo Repository, logger *slog.Logger) *Recorder {
	return &Recorder{
		repo:   repo,
		logger: logger,
	}
}

func (r *Recorder) HandleSignedIn(ctx context.Context, event events.Event) error {
	signedIn, ok := event.(*events.AccountSignedInEvent)
	if !ok {
		r.logger.Error("invalid event type for sign in handler", "event_type", event.EventType())
		return fmt.Errorf("expected AccountSignedInEvent, got %T", event)
	}

	if err := r.repo.Record(signedIn.AuthID, signedIn.OccurredAt()); err != nil {
		r.logger.Error("failed to record connexion",
			"auth_id", signedIn.AuthID,
			"event_id", signedIn.EventID(),
			"error", err)
		return fmt.Errorf("journal write failed for %s: %w", signedIn.AuthID, err)
	}

	r.logger.Info("connexion recorded",
		"auth_id", signedIn.AuthID,
		"event_id", signedIn.EventID())
	return nil
}

// HandleCreated journals the first connexion of a self-registered account.
// Roster rows created by an administrator carry no auth id yet and are skipped:
// nobody signed in.
func (r *Recorder) HandleCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(*events.AccountCreatedEvent)
	if !ok {
		r.logger.Error("invalid event type for creation handler", "event_type", event.EventType())
		return fmt.Errorf("expected AccountCreatedEvent, got %T", event)
	}

	if created.AuthID == "" {
		return nil
	}

	if err := r.repo.Record(created.AuthID, created.OccurredAt()); err != nil {
		r.logger.Error("failed to record signup connexion",
			"auth_id", created.AuthID,
			"event_id", created.EventID(),
			"error", err)
		return fmt.Errorf("journal write failed for %s: %w", created.AuthID, err)
	}

	return nil
}

func (r *Recorder) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeAccountSignedIn, r.HandleSignedIn)
	eventBus.Subscribe(events.EventTypeAccountCreated, r.HandleCreated)

	r.logger.Info("journal event handlers registered",
		"handlers", []string{events.EventTypeAccountSignedIn, events.EventTypeAccountCreated})
}
