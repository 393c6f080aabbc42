package accesspolicy

// ColorTable is one theme's color set, keyed the way the portal pages consume it.
type ColorTable struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Success    string `json:"success"`
	Info       string `json:"info"`
	Warning    string `json:"warning"`
	Danger     string `json:"danger"`
	Light      string `json:"light"`
	Dark       string `json:"dark"`
	Gray100    string `json:"gray100"`
	Gray200    string `json:"gray200"`
	Gray300    string `json:"gray300"`
	Gray400    string `json:"gray400"`
	Gray500    string `json:"gray500"`
	Gray600    string `json:"gray600"`
	Gray700    string `json:"gray700"`
	Gray800    string `json:"gray800"`
	Gray900    string `json:"gray900"`
	White      string `json:"white"`
	Background string `json:"background"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

var palettes = map[string]ColorTable{
	ThemeLight: {
		Primary:    "#7367f0",
		Secondary:  "#f5f6fa",
		Accent:     "#e3e6fc",
		Success:    "#28c76f",
		Info:       "#00cfe8",
		Warning:    "#ff9f43",
		Danger:     "#ea5455",
		Light:      "#f8f8f8",
		Dark:       "#4b4b5a",
		Gray100:    "#f4f6fb",
		Gray200:    "#e9ebf0",
		Gray300:    "#eaeaea",
		Gray400:    "#b9b9c3",
		Gray500:    "#7367f0",
		Gray600:    "#82868b",
		Gray700:    "#6e6b7b",
		Gray800:    "#4b4b5a",
		Gray900:    "#222f3e",
		White:      "#fff",
		Background: "#f4f6fb",
	},
	ThemeDark: {
		Primary:    "#181c23",
		Secondary:  "#22242a",
		Accent:     "#3a4256",
		Success:    "#22d3ee",
		Info:       "#818cf8",
		Warning:    "#fbbf24",
		Danger:     "#f87171",
		Light:      "#374151",
		Dark:       "#f9fafb",
		Gray100:    "#1f2937",
		Gray200:    "#111827",
		Gray300:    "#374151",
		Gray400:    "#4b5563",
		Gray500:    "#6b7280",
		Gray600:    "#a1a1aa",
		Gray700:    "#bfc7d5",
		Gray800:    "#e0e6f0",
		Gray900:    "#f8fafc",
		White:      "#fff",
		Background: "#181c23",
	},
}

// Palette resolves a theme key to its color table. Unknown keys fall back to light.
func Palette(themeKey string) ColorTable {
	if table, ok := palettes[themeKey]; ok {
		return table
	}
	return palettes[ThemeLight]
}

// StatusColor maps an access status onto a palette color for badge rendering.
func StatusColor(table ColorTable, status Status) string {
	switch status {
	case StatusAuthorized:
		return table.Success
	case StatusRestricted:
		return table.Warning
	case StatusBlocked:
		return table.Danger
	default:
		return table.Gray400
	}
}
