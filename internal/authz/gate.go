package authz

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/permissions"
)

// AreaResolver derives the target resource's area name from the request,
// typically by looking up the resource being acted on. Returning "" means the
// area could not be established, which the gate treats as a denial. Errors are
// infrastructure failures and map to a 5xx.
type AreaResolver func(r *http.Request) (string, error)

// Gate enforces a declared capability on a route before the handler runs.
// Bindings are established at registration time; there is no runtime
// discovery of requirements.
type Gate struct {
	evaluator *permissions.Evaluator
	audit     *AuditLogger
	logger    *slog.Logger
}

func NewGate(evaluator *permissions.Evaluator, audit *AuditLogger, logger *slog.Logger) *Gate {
	return &Gate{evaluator: evaluator, audit: audit, logger: logger}
}

// Require binds a capability to the wrapped handler. The handler body never
// runs unless the check returns true.
func (g *Gate) Require(cap permissions.Capability) func(http.Handler) http.Handler {
	return g.enforce(cap, nil)
}

// RequireInArea binds an area-scoped capability. The resolver supplies the
// area the target resource belongs to; how that mapping works is owned by the
// registering module, not by the gate.
func (g *Gate) RequireInArea(cap permissions.Capability, resolve AreaResolver) func(http.Handler) http.Handler {
	return g.enforce(cap, resolve)
}

func (g *Gate) enforce(cap permissions.Capability, resolve AreaResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := internal.UserIDFromContext(r.Context())
			if !ok {
				writeMessage(w, http.StatusUnauthorized, internal.MsgNotAuthenticated)
				return
			}

			contextArea := ""
			if resolve != nil {
				area, err := resolve(r)
				if err != nil {
					g.logger.Error("area resolution failed", "error", err, "path", r.URL.Path)
					writeMessage(w, http.StatusServiceUnavailable, "Service unavailable.")
					return
				}
				contextArea = area
			}

			allowed, err := g.evaluator.HasPermission(r.Context(), userID, cap.Module, cap.Action, contextArea)
			if err != nil {
				// Store outage: this is not a verdict, so no audit record and
				// no 403. Operators must be able to tell outages from denials.
				g.logger.Error("permission evaluation failed", "error", err, "user_id", userID, "path", r.URL.Path)
				writeMessage(w, http.StatusServiceUnavailable, "Service unavailable.")
				return
			}
			if !allowed {
				g.audit.RecordDenial(r.Context(), userID, cap.Module, cap.Action, r.URL.Path)
				writeMessage(w, http.StatusForbidden, internal.MsgForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeMessage emits the fixed denial body shape. It carries no detail about
// which capability or area was missing.
func writeMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
