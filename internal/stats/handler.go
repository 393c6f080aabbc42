package stats

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/carpediem/console/internal/transport"
	"github.com/carpediem/console/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// GetMonthlySignIns handles GET /stats/connexions?annee=2026
func (h *Handler) GetMonthlySignIns(w http.ResponseWriter, r *http.Request) {
	series, err := h.Service.MonthlySignIns(yearParam(r))
	if err != nil {
		h.Logger.Error("sign in stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, series)
}

// GetMonthlyRegistrations handles GET /stats/inscriptions?annee=2026
func (h *Handler) GetMonthlyRegistrations(w http.ResponseWriter, r *http.Request) {
	series, err := h.Service.MonthlyRegistrations(yearParam(r))
	if err != nil {
		h.Logger.Error("registration stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, series)
}

// GetRoleDistribution handles GET /stats/roles
func (h *Handler) GetRoleDistribution(w http.ResponseWriter, r *http.Request) {
	distribution, err := h.Service.RoleDistribution()
	if err != nil {
		h.Logger.Error("role stats failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"roles": distribution})
}

// yearParam reads ?annee=, defaulting to the current year.
func yearParam(r *http.Request) int {
	if raw := r.URL.Query().Get("annee"); raw != "" {
		if year, err := strconv.Atoi(raw); err == nil && year > 0 {
			return year
		}
	}
	return time.Now().Year()
}
