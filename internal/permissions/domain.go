package permissions

import (
	"errors"
	"strings"
)

// RoleKind is the classification tag of a role. Authorization behaviour
// depends on the kind, never on the role's display name.
type RoleKind string

const (
	KindAdmin      RoleKind = "admin"
	KindSupervisor RoleKind = "supervisor"
	KindOperator   RoleKind = "operario"
	KindWarehouse  RoleKind = "deposito"
	KindOther      RoleKind = "otro"
)

// ParseRoleKind maps a stored kind column to a RoleKind. Anything
// unrecognized collapses to KindOther so a bad row can never widen access.
func ParseRoleKind(raw string) RoleKind {
	switch RoleKind(Normalize(raw)) {
	case KindAdmin:
		return KindAdmin
	case KindSupervisor:
		return KindSupervisor
	case KindOperator:
		return KindOperator
	case KindWarehouse:
		return KindWarehouse
	default:
		return KindOther
	}
}

// Capability identifies one checkable permission as a (module, action) pair.
// Identity is over the normalized forms: "  Proyectos ", "VER" and
// "proyectos", "ver" name the same capability.
type Capability struct {
	Module string
	Action string
}

// Normalize trims and case-folds a capability component.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// NewCapability builds a capability in canonical form.
func NewCapability(module, action string) Capability {
	return Capability{Module: Normalize(module), Action: Normalize(action)}
}

// Key returns the canonical lookup key for the capability.
func (c Capability) Key() string {
	return Normalize(c.Module) + "." + Normalize(c.Action)
}

// CatalogEntry is one declared capability together with its catalog metadata.
type CatalogEntry struct {
	ID         int64
	Name       string
	Capability Capability
	AreaScoped bool
}

// Subject is the minimal user state the evaluator needs: existence, activity
// and role classification.
type Subject struct {
	UserID   int64
	IsActive bool
	RoleID   int64
	RoleName string
	RoleKind RoleKind
}

// EffectivePermissionSet is the fully resolved per-user view handed to the
// client mirror and admin UIs. It is recomputed on every query and never
// cached server-side.
//
// Area-scoped capabilities appear in Capabilities unconditionally: whether
// they apply to a concrete resource is only decidable at check time, when the
// resource's area is known.
type EffectivePermissionSet struct {
	UserID       int64
	RoleID       int64
	RoleName     string
	RoleKind     RoleKind
	Areas        []string
	Capabilities []CatalogEntry
}

func (s *EffectivePermissionSet) IsAdmin() bool      { return s.RoleKind == KindAdmin }
func (s *EffectivePermissionSet) IsSupervisor() bool { return s.RoleKind == KindSupervisor }
func (s *EffectivePermissionSet) IsOperator() bool   { return s.RoleKind == KindOperator }
func (s *EffectivePermissionSet) IsWarehouse() bool  { return s.RoleKind == KindWarehouse }

// ErrSubjectNotFound is returned by repositories when the user id does not
// resolve. The evaluator folds it into a plain denial so callers cannot
// distinguish unknown users from forbidden ones.
var ErrSubjectNotFound = errors.New("permissions: subject not found")
