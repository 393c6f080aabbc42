package accesspolicy

import (
	"fmt"
	"time"
)

// Status is the resolved access state for a sub-domain. Wire values keep the
// French labels the portal displays. StatusRestricted is a defined value no
// current rule produces; it exists for future rules and display mappings.
type Status string

const (
	StatusAuthorized Status = "autorisé"
	StatusRestricted Status = "restreint"
	StatusBlocked    Status = "bloqué"
)

// AdminSubDomain is the literal sub-domain every administrator resolves to,
// regardless of the stored assignment.
const AdminSubDomain = "admin"

// Subject is the account snapshot the resolver consumes. Nil Active means the
// field was never set and defaults to active; empty SubDomain means unassigned.
type Subject struct {
	Role      int
	Active    *bool
	SubDomain string
}

// Decision is the derived access outcome. It is never persisted; LastSeenAt is
// the resolution-time clock reading, a display artifact rather than an audit fact.
type Decision struct {
	PrincipalDomain string    `json:"domaine_principal"`
	SubDomain       string    `json:"sous_domaine"`
	FullURL         string    `json:"url_complete"`
	Status          Status    `json:"statut_acces"`
	LastSeenAt      time.Time `json:"derniere_connexion"`
}

// Resolver derives access decisions against a configured principal domain.
// Resolution is a pure function of the subject snapshot: no I/O, no failure;
// absent fields are defaulted, never rejected.
type Resolver struct {
	principalDomain  string
	defaultSubDomain string
	now              func() time.Time
}

func NewResolver(principalDomain, defaultSubDomain string) *Resolver {
	if defaultSubDomain == "" {
		defaultSubDomain = "client"
	}
	return &Resolver{
		principalDomain:  principalDomain,
		defaultSubDomain: defaultSubDomain,
		now:              time.Now,
	}
}

// WithClock overrides the resolution clock.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

func (r *Resolver) PrincipalDomain() string {
	return r.principalDomain
}

// Resolve computes the access decision for a subject. Administrators are
// authorized on the "admin" sub-domain whatever their stored assignment or
// active flag; everyone else lands on their assigned sub-domain (or the
// default) and is blocked only when explicitly deactivated. The resolver never
// redirects; navigating to FullURL is the caller's action, gated on Status.
func (r *Resolver) Resolve(subject Subject) Decision {
	decision := Decision{
		PrincipalDomain: r.principalDomain,
		LastSeenAt:      r.now(),
	}

	if Classify(subject.Role).Tier == TierAdministrator {
		decision.SubDomain = AdminSubDomain
		decision.Status = StatusAuthorized
	} else {
		decision.SubDomain = subject.SubDomain
		if decision.SubDomain == "" {
			decision.SubDomain = r.defaultSubDomain
		}
		if subject.Active == nil || *subject.Active {
			decision.Status = StatusAuthorized
		} else {
			decision.Status = StatusBlocked
		}
	}

	decision.FullURL = fmt.Sprintf("https://%s.%s", decision.SubDomain, r.principalDomain)
	return decision
}
