package areas

import (
	"encoding/json"
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

// AssignArea handles POST /usuarios/{userId}/areas.
func (h *Handler) AssignArea(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var dto AssignAreaDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if dto.IDArea <= 0 {
		h.WriteError(w, http.StatusBadRequest, "idArea is required")
		return
	}

	if err := h.Service.AssignArea(r.Context(), userID, dto.IDArea); err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.listForUser(w, r, userID)
}

// RemoveArea handles DELETE /usuarios/{userId}/areas/{idArea}.
func (h *Handler) RemoveArea(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	areaID, err := strconv.ParseInt(chi.URLParam(r, "idArea"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid area id")
		return
	}

	if err := h.Service.RemoveArea(r.Context(), userID, areaID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListUserAreas handles GET /usuarios/{userId}/areas.
func (h *Handler) ListUserAreas(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	h.listForUser(w, r, userID)
}

// ListAreas handles GET /areas.
func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	all, err := h.Service.ListAll(r.Context())
	if err != nil {
		h.Logger.Error("list areas failed", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	resp := AreasResponse{Areas: make([]AreaResponse, 0, len(all))}
	for _, a := range all {
		resp.Areas = append(resp.Areas, AreaResponse{ID: a.ID, Nombre: a.Name})
	}
	h.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) listForUser(w http.ResponseWriter, r *http.Request, userID int64) {
	names, err := h.Service.ListAreas(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, UserAreasResponse{IDUsuario: userID, AreasAsignadas: names})
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := internal.IsAppError(err); ok {
		status, body := appErr.ToHTTPResponse()
		h.WriteJSON(w, status, body)
		return
	}
	h.Logger.Error("area service failure", "error", err)
	h.WriteError(w, http.StatusInternalServerError, "internal server error")
}
