package permissions

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gestion-taller/taller-management/internal"
)

// RepositoryAPI is the per-request state the evaluator reads: the subject's
// current role and status, and the operator's area assignments. Both are read
// fresh on every call so a mid-session reassignment takes effect on the next
// check.
type RepositoryAPI interface {
	GetSubject(ctx context.Context, userID int64) (*Subject, error)
	ListAreaNames(ctx context.Context, userID int64) ([]string, error)
}

// Evaluator answers "may user U perform capability C, possibly in area A".
// It is stateless; concurrent use needs no coordination.
type Evaluator struct {
	catalog *Holder
	repo    RepositoryAPI
	logger  *slog.Logger
}

func NewEvaluator(catalog *Holder, repo RepositoryAPI, logger *slog.Logger) *Evaluator {
	return &Evaluator{catalog: catalog, repo: repo, logger: logger}
}

// HasPermission evaluates one capability check. contextArea is the area the
// target resource belongs to; pass "" when the capability is not area-scoped.
//
// The returned error is non-nil only for infrastructure failures (store
// unreachable or timed out). Every ambiguity (unknown user, inactive user,
// unknown capability, missing area context) is a plain false.
func (e *Evaluator) HasPermission(ctx context.Context, userID int64, module, action, contextArea string) (bool, error) {
	if strings.TrimSpace(module) == "" || strings.TrimSpace(action) == "" {
		return false, nil
	}

	subject, err := e.repo.GetSubject(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return false, nil
		}
		return false, internal.NewInfrastructureError("permission store unavailable", err)
	}
	if !subject.IsActive {
		return false, nil
	}

	// Admin bypass is absolute: not filtered by catalog membership or area.
	if subject.RoleKind == KindAdmin {
		return true, nil
	}

	entry, ok := e.catalog.Load().Lookup(subject.RoleID, NewCapability(module, action))
	if !ok {
		return false, nil
	}

	if entry.AreaScoped && subject.RoleKind == KindOperator {
		contextArea = strings.TrimSpace(contextArea)
		if contextArea == "" {
			// Missing context is a denial, never an implicit grant.
			return false, nil
		}
		areas, err := e.repo.ListAreaNames(ctx, userID)
		if err != nil {
			return false, internal.NewInfrastructureError("area assignment store unavailable", err)
		}
		for _, a := range areas {
			if strings.EqualFold(strings.TrimSpace(a), contextArea) {
				return true, nil
			}
		}
		return false, nil
	}

	return true, nil
}

// EffectivePermissions materializes the full per-user view. Inactive users
// keep their role flags but expose no capabilities, matching HasPermission
// denying them everything.
func (e *Evaluator) EffectivePermissions(ctx context.Context, userID int64) (*EffectivePermissionSet, error) {
	subject, err := e.repo.GetSubject(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, internal.NewInfrastructureError("permission store unavailable", err)
	}

	set := &EffectivePermissionSet{
		UserID:       subject.UserID,
		RoleID:       subject.RoleID,
		RoleName:     subject.RoleName,
		RoleKind:     subject.RoleKind,
		Areas:        []string{},
		Capabilities: []CatalogEntry{},
	}

	if !subject.IsActive {
		return set, nil
	}

	if subject.RoleKind == KindOperator {
		areas, err := e.repo.ListAreaNames(ctx, userID)
		if err != nil {
			return nil, internal.NewInfrastructureError("area assignment store unavailable", err)
		}
		set.Areas = areas
	}

	set.Capabilities = e.catalog.Load().RoleCapabilities(subject.RoleID)
	return set, nil
}
