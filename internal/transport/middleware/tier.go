package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/carpediem/console/internal"
	"github.com/carpediem/console/internal/account"
)

// RequireAdministrator gates a route on the administrator tier. It runs after
// the auth middleware, so a missing account means the chain is miswired and
// reads as unauthorized rather than a server error.
func RequireAdministrator(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			current, ok := account.FromContext(r.Context())
			if !ok || current == nil {
				writeAppError(w, internal.ErrIdentityAbsent)
				return
			}

			if !current.IsAdministrator() {
				logger.Warn("administrator route denied",
					"auth_id", current.AuthID,
					"role", current.Role,
					"path", r.URL.Path,
				)
				writeAppError(w, internal.ErrNotAdministrator)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeAppError(w http.ResponseWriter, appErr *internal.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)
	json.NewEncoder(w).Encode(appErr)
}
