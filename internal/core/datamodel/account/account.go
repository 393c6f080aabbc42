package account

import "time"

// Account is the persistence row for the utilisateurs table. Column names keep
// the portal's French vocabulary; Active and SubDomain are nullable because
// older rows were created before either column existed.
type Account struct {
	ID        int64     `db:"id"`
	AuthID    string    `db:"auth_id"`
	Email     string    `db:"email"`
	FirstName string    `db:"prenom"`
	LastName  string    `db:"nom"`
	Role      int       `db:"role"`
	Active    *bool     `db:"actif"`
	SubDomain *string   `db:"sous_domaine"`
	Domains   string    `db:"domaines"` // legacy comma-joined list, display only
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
