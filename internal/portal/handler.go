package portal

import (
	"log/slog"
	"net/http"

	"github.com/carpediem/console/internal/accesspolicy"
	"github.com/carpediem/console/internal/account"
	"github.com/carpediem/console/internal/transport"
	"github.com/carpediem/console/pkg/logger"
)

// Handler serves the session-facing portal surface: which menu entries the
// caller sees and where their sub-domain access points.
type Handler struct {
	*transport.BaseHandler
	resolver *accesspolicy.Resolver
}

func NewHandler(resolver *accesspolicy.Resolver) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		resolver:    resolver,
	}
}

// GetNavigation handles GET /navigation
func (h *Handler) GetNavigation(w http.ResponseWriter, r *http.Request) {
	current, ok := account.FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	entries := accesspolicy.VisibleEntries(current.Tier())
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"role_label": current.RoleLabel(),
		"entries":    entries,
	})
}

// GetAccess handles GET /access
func (h *Handler) GetAccess(w http.ResponseWriter, r *http.Request) {
	current, ok := account.FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	decision := h.resolver.Resolve(current.PolicySubject())
	h.WriteJSON(w, http.StatusOK, decision)
}
