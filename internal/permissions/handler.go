package permissions

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/gestion-taller/taller-management/internal"
	"github.com/gestion-taller/taller-management/internal/transport"
	"github.com/gestion-taller/taller-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Evaluator *Evaluator
}

func NewHandler(evaluator *Evaluator) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Evaluator:   evaluator,
	}
}

// GetEffectivePermissions handles GET /permisos-efectivos/{userId}. A user may
// always query their own set; querying another user requires usuarios.ver.
func (h *Handler) GetEffectivePermissions(w http.ResponseWriter, r *http.Request) {
	callerID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, internal.MsgNotAuthenticated)
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if targetID != callerID {
		allowed, err := h.Evaluator.HasPermission(r.Context(), callerID, ModuleUsers, ActionView, "")
		if err != nil {
			h.Logger.Error("effective permissions: evaluator failure", "error", err, "user_id", callerID)
			h.WriteError(w, http.StatusServiceUnavailable, "service unavailable")
			return
		}
		if !allowed {
			h.WriteError(w, http.StatusForbidden, internal.MsgForbidden)
			return
		}
	}

	set, err := h.Evaluator.EffectivePermissions(r.Context(), targetID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			h.WriteError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("effective permissions: evaluator failure", "error", err, "user_id", targetID)
		h.WriteError(w, http.StatusServiceUnavailable, "service unavailable")
		return
	}

	h.WriteJSON(w, http.StatusOK, ToResponse(set))
}
