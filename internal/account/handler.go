package account

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/carpediem/console/internal"
	"github.com/carpediem/console/internal/transport"
	"github.com/carpediem/console/pkg/logger"
	"github.com/go-chi/chi"
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

// profileResponse decorates an account with its derived role label.
type profileResponse struct {
	*Account
	RoleLabel string `json:"role_label"`
}

// GetCurrentAccount handles GET /accounts/me
func (h *Handler) GetCurrentAccount(w http.ResponseWriter, r *http.Request) {
	current, ok := FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	h.WriteJSON(w, http.StatusOK, profileResponse{Account: current, RoleLabel: current.RoleLabel()})
}

// UpdateProfile handles PATCH /accounts/me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := FromContext(r.Context())
	if !ok || current == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ProfileUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(r.Context(), current.AuthID, dto)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, profileResponse{Account: updated, RoleLabel: updated.RoleLabel()})
}

// ListRoster handles GET /utilisateurs (administrator only, enforced by middleware)
func (h *Handler) ListRoster(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.Service.List()
	if err != nil {
		h.Logger.Error("failed to list roster", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"utilisateurs": accounts})
}

// CreateRosterEntry handles POST /utilisateurs
func (h *Handler) CreateRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := FromContext(r.Context())

	var dto RosterCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actorAuthID := ""
	if actor != nil {
		actorAuthID = actor.AuthID
	}

	created, err := h.Service.Create(r.Context(), dto, actorAuthID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// UpdateRosterEntry handles PATCH /utilisateurs/{id}
func (h *Handler) UpdateRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	var dto RosterUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	actorAuthID := ""
	if actor != nil {
		actorAuthID = actor.AuthID
	}

	updated, err := h.Service.UpdateRoster(r.Context(), id, dto, actorAuthID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

// DeleteRosterEntry handles DELETE /utilisateurs/{id}
func (h *Handler) DeleteRosterEntry(w http.ResponseWriter, r *http.Request) {
	actor, _ := FromContext(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid account id")
		return
	}

	actorAuthID := ""
	if actor != nil {
		actorAuthID = actor.AuthID
	}

	if err := h.Service.Delete(r.Context(), id, actorAuthID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case ValidationError:
		h.WriteError(w, http.StatusBadRequest, e.Error())
	default:
		if appErr, ok := internal.IsAppError(err); ok {
			h.WriteAppError(w, appErr)
			return
		}
		if errors.Is(err, ErrNotFound) {
			h.WriteAppError(w, internal.ErrAccountNotFound)
			return
		}
		if errors.Is(err, ErrDuplicateEmail) {
			h.WriteAppError(w, internal.ErrEmailConflict)
			return
		}
		h.Logger.Error("account service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
	}
}
