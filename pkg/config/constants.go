package config

const baseHost = "sia.unal.edu.co"

// Portal entry points. The catalog is public; everything under ServiciosApp
// requires the authenticated session.
const (
	URLJSONRPC         = "https://" + baseHost + "/ServiciosApp/buscador/JSON-RPC"
	URLCatalog         = "https://" + baseHost + "/Catalogo/facespublico/public/servicioPublico.jsf"
	URLCatalogSearch   = URLCatalog + "?taskflowId=task-flow-AC_CatalogoAsignaturas"
	URLPortal          = "https://" + baseHost + "/ServiciosApp/"
	URLGrades          = "https://" + baseHost + "/ServiciosApp/Historico/facesprivado/private/servicioPrivado.jsf"
	URLSchedule        = "https://" + baseHost + "/ServiciosApp/Horario/facesprivado/private/servicioPrivado.jsf"
	URLEnrollment      = "https://" + baseHost + "/ServiciosApp/Matricula/facesprivado/private/servicioPrivado.jsf"
	URLAcademicHistory = URLGrades
)

// Legacy search endpoint method names.
const (
	RPCMethodSearchCourses   = "buscador.obtenerAsignaturas"
	RPCMethodGetCourseGroups = "buscador.obtenerGruposAsignaturas"
)

// Levels maps caller-friendly level names to the codes the legacy search
// endpoint expects.
var Levels = map[string]string{
	"pregrado": "pre",
	"posgrado": "pos",
	"all":      "",
}

// Typologies maps typology enum keys to the single-letter codes the legacy
// search endpoint expects.
var Typologies = map[string]string{
	"disciplinar_optativa":        "p",
	"fundamentacion_obligatoria":  "b",
	"disciplinar_obligatoria":     "c",
	"libre_eleccion":              "l",
	"nivelacion":                  "m",
	"trabajo_de_grado":            "o",
	"fundamentacion_optativa":     "t",
	"all":                         "",
}

// TypologyLabels maps typology enum keys to the human-readable labels shown
// in the catalog's typology dropdown.
var TypologyLabels = map[string]string{
	"disciplinar_optativa":       "Disciplinar Optativa",
	"fundamentacion_obligatoria": "Fundamentación Obligatoria",
	"disciplinar_obligatoria":    "Disciplinar Obligatoria",
	"libre_eleccion":             "Libre Elección",
	"nivelacion":                 "Nivelación",
	"trabajo_de_grado":           "Trabajo de Grado",
	"fundamentacion_optativa":    "Fundamentación Optativa",
}
