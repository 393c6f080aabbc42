package identity

import "time"

// Identity is the persistence row for the identities table: the credential and
// session side of an account, keyed by the opaque auth id the utilisateurs
// table references.
type Identity struct {
	AuthID       string     `db:"auth_id"`
	Email        string     `db:"email"`
	PasswordHash string     `db:"password_hash"`
	CreatedAt    time.Time  `db:"created_at"`
	LastSignInAt *time.Time `db:"last_sign_in_at"`
}
