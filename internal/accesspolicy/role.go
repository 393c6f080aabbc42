package accesspolicy

// Tier is the coarse permission class derived from an account's integer role.
type Tier int

const (
	TierUnknown Tier = iota
	TierAdministrator
	TierStandardUser
	TierGuest
)

// Stored role values. RoleGuest is classifiable but no writer ever assigns it.
const (
	RoleAdministrator = 1
	RoleStandardUser  = 2
	RoleGuest         = 3
)

type Classification struct {
	Tier  Tier
	Label string
}

// Classify maps a stored role value to its tier and display label. It is total:
// every integer, including zero for an absent value, classifies without error.
func Classify(role int) Classification {
	switch role {
	case RoleAdministrator:
		return Classification{Tier: TierAdministrator, Label: "Administrateur"}
	case RoleStandardUser:
		return Classification{Tier: TierStandardUser, Label: "Utilisateur Standard"}
	case RoleGuest:
		return Classification{Tier: TierGuest, Label: "Invité"}
	default:
		return Classification{Tier: TierUnknown, Label: "Non défini"}
	}
}

func (t Tier) String() string {
	switch t {
	case TierAdministrator:
		return "administrator"
	case TierStandardUser:
		return "standard_user"
	case TierGuest:
		return "guest"
	default:
		return "unknown"
	}
}
