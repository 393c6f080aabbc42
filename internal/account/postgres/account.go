package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/carpediem/console/internal/account"
	accountDatamodel "github.com/carpediem/console/internal/core/datamodel/account"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

const accountColumns = `id, auth_id, email, prenom, nom, role, actif, sous_domaine, domaines, created_at, updated_at`

func (r *AccountRepository) GetByID(id int64) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM utilisateurs WHERE id = ?`
	row := r.db.Raw(query, id).Row()
	return scanAccount(row)
}

func (r *AccountRepository) GetByAuthID(authID string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM utilisateurs WHERE auth_id = ?`
	row := r.db.Raw(query, authID).Row()
	return scanAccount(row)
}

func (r *AccountRepository) GetByEmail(email string) (*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM utilisateurs WHERE email = ?`
	row := r.db.Raw(query, email).Row()
	return scanAccount(row)
}

func (r *AccountRepository) List() ([]*account.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM utilisateurs ORDER BY created_at DESC`
	rows, err := r.db.Raw(query).Rows()
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*account.Account
	for rows.Next() {
		a, err := scanAccountRows(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (r *AccountRepository) Create(a *account.Account) (int64, error) {
	dm := account.ToDataModel(a)
	now := time.Now()
	query := `
		INSERT INTO utilisateurs (auth_id, email, prenom, nom, role, actif, sous_domaine, domaines, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id`

	var id int64
	row := r.db.Raw(query,
		nullableString(dm.AuthID),
		dm.Email,
		dm.FirstName,
		dm.LastName,
		dm.Role,
		dm.Active,
		dm.SubDomain,
		nullableString(dm.Domains),
		now,
		now,
	).Row()
	if err := row.Scan(&id); err != nil {
		if isUniqueViolation(err) {
			return 0, account.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("insert account: %w", err)
	}
	return id, nil
}

func (r *AccountRepository) Update(a *account.Account) error {
	dm := account.ToDataModel(a)
	query := `
		UPDATE utilisateurs
		SET auth_id = ?, email = ?, prenom = ?, nom = ?, role = ?, actif = ?, sous_domaine = ?, domaines = ?, updated_at = ?
		WHERE id = ?`

	result := r.db.Exec(query,
		nullableString(dm.AuthID),
		dm.Email,
		dm.FirstName,
		dm.LastName,
		dm.Role,
		dm.Active,
		dm.SubDomain,
		nullableString(dm.Domains),
		time.Now(),
		dm.ID,
	)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return account.ErrDuplicateEmail
		}
		return fmt.Errorf("update account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepository) Delete(id int64) error {
	result := r.db.Exec(`DELETE FROM utilisateurs WHERE id = ?`, id)
	if result.Error != nil {
		return fmt.Errorf("delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return account.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row *sql.Row) (*account.Account, error) {
	a, err := scanAccountRows(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, account.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func scanAccountRows(s rowScanner) (*account.Account, error) {
	var dm accountDatamodel.Account
	var authID, subDomain, domains sql.NullString
	var active sql.NullBool

	err := s.Scan(
		&dm.ID,
		&authID,
		&dm.Email,
		&dm.FirstName,
		&dm.LastName,
		&dm.Role,
		&active,
		&subDomain,
		&domains,
		&dm.CreatedAt,
		&dm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if authID.Valid {
		dm.AuthID = authID.String
	}
	if active.Valid {
		v := active.Bool
		dm.Active = &v
	}
	if subDomain.Valid {
		v := subDomain.String
		dm.SubDomain = &v
	}
	if domains.Valid {
		dm.Domains = domains.String
	}
	return account.FromDataModel(&dm), nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// isUniqueViolation recognizes the duplicate-key error of the unique email
// index. The string match covers the sqlite driver used by handler suites.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
