package sia

// Raw wire types for the legacy search endpoint. The endpoint serializes Java
// collections as {"list": [...], "javaClass": "..."} wrappers and uses Spanish
// snake_case field names; these structs mirror that shape exactly.

// JavaList is the Java collection wrapper used throughout the legacy API.
type JavaList[T any] struct {
	List      []T    `json:"list"`
	JavaClass string `json:"javaClass"`
}

// RawSubjectResult is the top-level payload of a course search.
type RawSubjectResult struct {
	TotalAsignaturas int                  `json:"totalAsignaturas"`
	NumPaginas       int                  `json:"numPaginas"`
	Asignaturas      JavaList[RawSubject] `json:"asignaturas"`
}

// RawSubject is one course in a search result.
type RawSubject struct {
	IDAsignatura string             `json:"id_asignatura"`
	Codigo       string             `json:"codigo"`
	Nombre       string             `json:"nombre"`
	Tipologia    string             `json:"tipologia"`
	Creditos     int                `json:"creditos"`
	JavaClass    string             `json:"javaClass"`
	Grupos       JavaList[RawGroup] `json:"grupos"`
}

// RawGroup is one course group with its per-weekday schedule and classroom
// fields flattened the way the legacy API renders them.
type RawGroup struct {
	JavaClass         string                      `json:"javaClass"`
	Codigo            string                      `json:"codigo"`
	NombreDocente     string                      `json:"nombredocente"`
	UsuarioDocente    string                      `json:"usuariodocente"`
	CuposTotal        int                         `json:"cupostotal"`
	CuposDisponibles  int                         `json:"cuposdisponibles"`
	HorarioLunes      string                      `json:"horario_lunes"`
	HorarioMartes     string                      `json:"horario_martes"`
	HorarioMiercoles  string                      `json:"horario_miercoles"`
	HorarioJueves     string                      `json:"horario_jueves"`
	HorarioViernes    string                      `json:"horario_viernes"`
	HorarioSabado     string                      `json:"horario_sabado"`
	HorarioDomingo    string                      `json:"horario_domingo"`
	AulaLunes         string                      `json:"aula_lunes"`
	AulaMartes        string                      `json:"aula_martes"`
	AulaMiercoles     string                      `json:"aula_miercoles"`
	AulaJueves        string                      `json:"aula_jueves"`
	AulaViernes       string                      `json:"aula_viernes"`
	AulaSabado        string                      `json:"aula_sabado"`
	AulaDomingo       string                      `json:"aula_domingo"`
	PlanLimitacion    JavaList[RawPlanRestriction] `json:"planlimitacion"`
}

// RawPlanRestriction is a study-plan restriction on a group.
type RawPlanRestriction struct {
	Plan           string `json:"plan"`
	TipoLimitacion string `json:"tipo_limitacion"`
	JavaClass      string `json:"javaClass"`
}
