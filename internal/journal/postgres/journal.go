package postgres

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

type JournalRepository struct {
	db *gorm.DB
}

func NewJournalRepository(db *gorm.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

func (r *JournalRepository) Record(authID string, at time.Time) error {
	query := `INSERT INTO connexions (auth_id, created_at) VALUES (?, ?)`
	if err := r.db.Exec(query, authID, at).Error; err != nil {
		return fmt.Errorf("insert connexion: %w", err)
	}
	return nil
}
