package accesspolicy

// Entry is one item of the navigation catalog. Entries are configuration, not
// persisted data.
type Entry struct {
	Label     string `json:"label"`
	Icon      string `json:"icon"`
	Route     string `json:"route"`
	AdminOnly bool   `json:"admin_only"`
}

// catalog is the full navigation surface in display order. The "Utilisateurs"
// roster entry is admin-only unconditionally: older page variants disagreed on
// this flag, and granting roster access to standard users would contradict the
// role model. "Journal" routes to a placeholder surface.
var catalog = []Entry{
	{Label: "Home", Icon: "🏠", Route: "/home"},
	{Label: "Utilisateurs", Icon: "👤", Route: "/utilisateurs", AdminOnly: true},
	{Label: "Mon Profil", Icon: "👤", Route: "/profil"},
	{Label: "Sous-domaines", Icon: "🌐", Route: "/sous-domaine"},
	{Label: "Journal", Icon: "📝", Route: "/journal"},
	{Label: "Console", Icon: "🖥️", Route: "/admin/console", AdminOnly: true},
}

// Catalog returns a copy of the full navigation catalog.
func Catalog() []Entry {
	out := make([]Entry, len(catalog))
	copy(out, catalog)
	return out
}

// VisibleEntries filters the catalog for a tier, preserving catalog order.
// An entry is visible iff it is not admin-only or the tier is Administrator.
func VisibleEntries(tier Tier) []Entry {
	visible := make([]Entry, 0, len(catalog))
	for _, entry := range catalog {
		if entry.AdminOnly && tier != TierAdministrator {
			continue
		}
		visible = append(visible, entry)
	}
	return visible
}
