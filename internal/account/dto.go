package account

import (
	"strings"

	"github.com/carpediem/console/internal/accesspolicy"
)

// ValidationError represents a simple validation error from DTO validation.
type ValidationError struct {
	Msg string
}

func (v ValidationError) Error() string { return v.Msg }

// ProfileUpdateDTO is the self-service shape: owners may change their name and
// email, never their role, active flag, or sub-domain assignment.
type ProfileUpdateDTO struct {
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
	Email     string `json:"email"`
}

func (d ProfileUpdateDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is invalid"}
	}
	return nil
}

// RosterCreateDTO is the administrator's creation shape. Role accepts only the
// assignable values; guest (3) is classifiable but never assignable.
type RosterCreateDTO struct {
	LastName  string   `json:"nom"`
	FirstName string   `json:"prenom"`
	Email     string   `json:"email"`
	Role      int      `json:"role"`
	SubDomain *string  `json:"sous_domaine"`
	Domains   []string `json:"domaines"`
}

func (d RosterCreateDTO) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return ValidationError{Msg: "email is required"}
	}
	if !strings.Contains(d.Email, "@") {
		return ValidationError{Msg: "email is invalid"}
	}
	if d.Role != accesspolicy.RoleAdministrator && d.Role != accesspolicy.RoleStandardUser {
		return ValidationError{Msg: "role must be 1 (administrateur) or 2 (utilisateur standard)"}
	}
	if err := validateDomains(d.Domains); err != nil {
		return err
	}
	return nil
}

// validateDomains rejects entries that would corrupt the stored comma-joined
// list, where a comma inside one entry reads back as two.
func validateDomains(domains []string) error {
	for _, d := range domains {
		if strings.Contains(d, ",") {
			return ValidationError{Msg: "domaines entries cannot contain commas"}
		}
	}
	return nil
}

// RosterUpdateDTO is the administrator's edit shape. Pointer fields distinguish
// "leave unchanged" from "set".
type RosterUpdateDTO struct {
	LastName  *string   `json:"nom"`
	FirstName *string   `json:"prenom"`
	Email     *string   `json:"email"`
	Role      *int      `json:"role"`
	Active    *bool     `json:"actif"`
	SubDomain *string   `json:"sous_domaine"`
	Domains   *[]string `json:"domaines"`
}

func (d RosterUpdateDTO) Validate() error {
	if d.Email != nil {
		if strings.TrimSpace(*d.Email) == "" {
			return ValidationError{Msg: "email cannot be empty"}
		}
		if !strings.Contains(*d.Email, "@") {
			return ValidationError{Msg: "email is invalid"}
		}
	}
	if d.Role != nil && *d.Role != accesspolicy.RoleAdministrator && *d.Role != accesspolicy.RoleStandardUser {
		return ValidationError{Msg: "role must be 1 (administrateur) or 2 (utilisateur standard)"}
	}
	if d.Domains != nil {
		if err := validateDomains(*d.Domains); err != nil {
			return err
		}
	}
	return nil
}

// Fields lists the set fields, for the account.updated event payload.
func (d RosterUpdateDTO) Fields() []string {
	var fields []string
	if d.LastName != nil {
		fields = append(fields, "nom")
	}
	if d.FirstName != nil {
		fields = append(fields, "prenom")
	}
	if d.Email != nil {
		fields = append(fields, "email")
	}
	if d.Role != nil {
		fields = append(fields, "role")
	}
	if d.Active != nil {
		fields = append(fields, "actif")
	}
	if d.SubDomain != nil {
		fields = append(fields, "sous_domaine")
	}
	if d.Domains != nil {
		fields = append(fields, "domaines")
	}
	return fields
}
