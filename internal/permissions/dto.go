package permissions

// Wire contract consumed by the client-side permission mirror and admin UIs.
// Field names are fixed; the frontend caches this payload for the session and
// discards it on logout or any 401/403.
type EffectivePermissionsResponse struct {
	IDUsuario      int64             `json:"idUsuario"`
	IDRol          int64             `json:"idRol"`
	NombreRol      string            `json:"nombreRol"`
	EsAdmin        bool              `json:"esAdmin"`
	EsSupervisor   bool              `json:"esSupervisor"`
	EsOperario     bool              `json:"esOperario"`
	EsDeposito     bool              `json:"esDeposito"`
	AreasAsignadas []string          `json:"areasAsignadas"`
	Permisos       []PermisoResponse `json:"permisos"`
}

type PermisoResponse struct {
	IDPermiso     int64  `json:"idPermiso"`
	NombrePermiso string `json:"nombrePermiso"`
	Modulo        string `json:"modulo"`
	Accion        string `json:"accion"`
}

func ToResponse(set *EffectivePermissionSet) EffectivePermissionsResponse {
	areas := set.Areas
	if areas == nil {
		areas = []string{}
	}
	permisos := make([]PermisoResponse, 0, len(set.Capabilities))
	for _, entry := range set.Capabilities {
		permisos = append(permisos, PermisoResponse{
			IDPermiso:     entry.ID,
			NombrePermiso: entry.Name,
			Modulo:        entry.Capability.Module,
			Accion:        entry.Capability.Action,
		})
	}
	return EffectivePermissionsResponse{
		IDUsuario:      set.UserID,
		IDRol:          set.RoleID,
		NombreRol:      set.RoleName,
		EsAdmin:        set.IsAdmin(),
		EsSupervisor:   set.IsSupervisor(),
		EsOperario:     set.IsOperator(),
		EsDeposito:     set.IsWarehouse(),
		AreasAsignadas: areas,
		Permisos:       permisos,
	}
}
