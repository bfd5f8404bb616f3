package projects

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jmoiron/sqlx"

	"github.com/gestion-taller/taller-management/internal/authz"
)

// StageAreaResolver resolves the workshop area a project stage belongs to,
// for the gate's area check on stage completion. An unknown stage yields ""
// so the gate denies rather than erroring.
func StageAreaResolver(db *sqlx.DB) authz.AreaResolver {
	return func(r *http.Request) (string, error) {
		stageID := chi.URLParam(r, "etapaId")
		if stageID == "" {
			return "", nil
		}

		var areaName string
		query := `
			SELECT a.name
			FROM project_stages ps
			JOIN areas a ON a.id = ps.area_id
			WHERE ps.id = $1`
		err := db.GetContext(r.Context(), &areaName, query, stageID)
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		if err != nil {
			return "", err
		}
		return areaName, nil
	}
}
