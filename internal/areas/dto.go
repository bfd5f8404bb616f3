package areas

type AssignAreaDTO struct {
	IDArea int64 `json:"idArea"`
}

type UserAreasResponse struct {
	IDUsuario      int64    `json:"idUsuario"`
	AreasAsignadas []string `json:"areasAsignadas"`
}

type AreaResponse struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type AreasResponse struct {
	Areas []AreaResponse `json:"areas"`
}
