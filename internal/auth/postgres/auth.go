package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/carpediem/console/internal/auth"
	identityDatamodel "github.com/carpediem/console/internal/core/datamodel/identity"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetIdentityByEmail(email string) (*identityDatamodel.Identity, error) {
	query := `SELECT auth_id, email, password_hash, created_at, last_sign_in_at FROM identities WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	return scanIdentity(row)
}

func (r *Repository) GetIdentityByAuthID(authID string) (*identityDatamodel.Identity, error) {
	query := `SELECT auth_id, email, password_hash, created_at, last_sign_in_at FROM identities WHERE auth_id = ?`
	row := r.db.Raw(query, authID).Row()
	return scanIdentity(row)
}

func (r *Repository) CreateIdentity(identity *identityDatamodel.Identity) error {
	query := `INSERT INTO identities (auth_id, email, password_hash, created_at) VALUES (?, ?, ?, ?)`
	if err := r.db.Exec(query, identity.AuthID, identity.Email, identity.PasswordHash, identity.CreatedAt).Error; err != nil {
		return fmt.Errorf("insert identity: %w", err)
	}
	return nil
}

func (r *Repository) UpdateLastSignIn(authID string, at time.Time) error {
	result := r.db.Exec(`UPDATE identities SET last_sign_in_at = ? WHERE auth_id = ?`, at, authID)
	if result.Error != nil {
		return fmt.Errorf("update last sign in: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return auth.ErrIdentityNotFound
	}
	return nil
}

func scanIdentity(row *sql.Row) (*identityDatamodel.Identity, error) {
	var id identityDatamodel.Identity
	var lastSignIn sql.NullTime

	err := row.Scan(&id.AuthID, &id.Email, &id.PasswordHash, &id.CreatedAt, &lastSignIn)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, auth.ErrIdentityNotFound
		}
		return nil, err
	}

	if lastSignIn.Valid {
		t := lastSignIn.Time
		id.LastSignInAt = &t
	}
	return &id, nil
}
