package identity

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gestion-taller/taller-management/internal"
)

// Middleware authenticates every request on the protected surface. It places
// only the subject user id in context; role and permission state is resolved
// per-check by the evaluator so it can never go stale inside a session.
func Middleware(verifier *Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				writeUnauthenticated(w)
				return
			}

			userID, claims, err := verifier.Verify(token)
			if err != nil {
				logger.Warn("token rejected", "error", err, "path", r.URL.Path)
				writeUnauthenticated(w)
				return
			}

			ctx := internal.ContextWithUserID(r.Context(), userID)
			if claims.Email != "" {
				logger.DebugContext(ctx, "request authenticated", "user_id", userID, "email", claims.Email)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

func writeUnauthenticated(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": internal.MsgNotAuthenticated})
}
