package uiprefs

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carpediem/console/internal/accesspolicy"
	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/transport"
	"github.com/carpediem/console/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	store *Store
}

func NewHandler(store *Store) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		store:       store,
	}
}

// GetPreferences handles GET /ui/preferences
func (h *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	current, ok := account.FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.store.Get(current.AuthID))
}

// UpdatePreferences handles PUT /ui/preferences
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	current, ok := account.FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var prefs Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.WriteJSON(w, http.StatusOK, h.store.Set(current.AuthID, prefs))
}

// GetPalette handles GET /ui/palette/{theme}. Unknown themes fall back to the
// light palette rather than erroring.
func (h *Handler) GetPalette(w http.ResponseWriter, r *http.Request) {
	theme := chi.URLParam(r, "theme")
	table := accesspolicy.Palette(theme)

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"theme":    normalizeTheme(theme),
		"couleurs": table,
	})
}

func normalizeTheme(theme string) string {
	if theme == accesspolicy.ThemeDark {
		return accesspolicy.ThemeDark
	}
	return accesspolicy.ThemeLight
}
