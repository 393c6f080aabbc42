package activity

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/carpediem/console/internal"
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

// GetActivity handles GET /admin/activity (administrator only)
func (h *Handler) GetActivity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := internal.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	listing, err := h.Service.Listing(ctx)
	if err != nil {
		h.Logger.Error("activity listing failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, listing)
}
