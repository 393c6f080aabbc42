package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/carpediem/console/internal/accesspolicy"
	accountDatamodel "github.com/carpediem/console/internal/core/datamodel/account"
)

// Account is the domain view of one registered user. JSON field names keep the
// portal's wire vocabulary (nom/prenom/actif/sous_domaine) so existing clients
// keep working. Active is a pointer because absence must read as active.
type Account struct {
	ID        int64     `json:"id"`
	AuthID    string    `json:"auth_id,omitempty"`
	Email     string    `json:"email"`
	FirstName string    `json:"prenom"`
	LastName  string    `json:"nom"`
	Role      int       `json:"role"`
	Active    *bool     `json:"actif,omitempty"`
	SubDomain *string   `json:"sous_domaine,omitempty"`
	Domains   []string  `json:"domaines,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

var (
	ErrNotFound = errors.New("account not found")

	// ErrDuplicateEmail surfaces the unique email index. One roster row per
	// email: registration claims rows by email, so duplicates would make the
	// claim ambiguous.
	ErrDuplicateEmail = errors.New("email already in use")
)

// IsActive treats an unset flag as active; only an explicit false deactivates.
func (a *Account) IsActive() bool {
	return a.Active == nil || *a.Active
}

func (a *Account) Tier() accesspolicy.Tier {
	return accesspolicy.Classify(a.Role).Tier
}

func (a *Account) RoleLabel() string {
	return accesspolicy.Classify(a.Role).Label
}

func (a *Account) IsAdministrator() bool {
	return a.Tier() == accesspolicy.TierAdministrator
}

// PolicySubject projects the account onto the resolver's input snapshot.
func (a *Account) PolicySubject() accesspolicy.Subject {
	subject := accesspolicy.Subject{
		Role:   a.Role,
		Active: a.Active,
	}
	if a.SubDomain != nil {
		subject.SubDomain = *a.SubDomain
	}
	return subject
}

func ToDataModel(a *Account) *accountDatamodel.Account {
	return &accountDatamodel.Account{
		ID:        a.ID,
		AuthID:    a.AuthID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Role:      a.Role,
		Active:    a.Active,
		SubDomain: a.SubDomain,
		Domains:   strings.Join(a.Domains, ","),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func FromDataModel(dm *accountDatamodel.Account) *Account {
	a := &Account{
		ID:        dm.ID,
		AuthID:    dm.AuthID,
		Email:     dm.Email,
		FirstName: dm.FirstName,
		LastName:  dm.LastName,
		Role:      dm.Role,
		Active:    dm.Active,
		SubDomain: dm.SubDomain,
		CreatedAt: dm.CreatedAt,
		UpdatedAt: dm.UpdatedAt,
	}
	if dm.Domains != "" {
		a.Domains = strings.Split(dm.Domains, ",")
	}
	return a
}

type ctxKey string

const contextAccountKey ctxKey = "account"

// FromContext returns the account snapshot the auth middleware resolved for
// this request, if any.
func FromContext(ctx context.Context) (*Account, bool) {
	a, ok := ctx.Value(contextAccountKey).(*Account)
	return a, ok
}

func NewContext(ctx context.Context, a *Account) context.Context {
	return context.WithValue(ctx, contextAccountKey, a)
}
