package siamcp

// Tool input structs. Field descriptions feed the generated JSON schemas;
// validate tags are checked before any dispatch, so a malformed request never
// reaches the portal.

type searchCoursesInput struct {
	Query    string `json:"query" jsonschema:"course name or keywords to search for" validate:"required,min=2"`
	Level    string `json:"level,omitempty" jsonschema:"academic level: pregrado, posgrado or all" validate:"omitempty,oneof=pregrado posgrado all"`
	Typology string `json:"typology,omitempty" jsonschema:"course typology key, e.g. libre_eleccion, disciplinar_obligatoria, or all" validate:"omitempty"`
	Page     int    `json:"page,omitempty" jsonschema:"result page, starting at 1" validate:"omitempty,min=1"`
	PageSize int    `json:"pageSize,omitempty" jsonschema:"results per page" validate:"omitempty,min=1,max=50"`
}

type courseCodeInput struct {
	CourseCode string `json:"courseCode" jsonschema:"numeric course code, e.g. 3007747" validate:"required,numeric"`
}

type listFacultiesInput struct {
	Level string `json:"level" jsonschema:"academic level: pregrado or posgrado" validate:"required"`
	Sede  string `json:"sede,omitempty" jsonschema:"campus name, e.g. medellin; defaults to the configured campus" validate:"omitempty"`
}

type listProgramsInput struct {
	Level   string `json:"level" jsonschema:"academic level: pregrado or posgrado" validate:"required"`
	Faculty string `json:"faculty" jsonschema:"faculty name or code, fuzzy matched" validate:"required"`
	Sede    string `json:"sede,omitempty" jsonschema:"campus name; defaults to the configured campus" validate:"omitempty"`
}

type browseCatalogInput struct {
	Level    string `json:"level" jsonschema:"academic level: pregrado or posgrado" validate:"required"`
	Faculty  string `json:"faculty" jsonschema:"faculty name or code, fuzzy matched" validate:"required"`
	Program  string `json:"program" jsonschema:"study program name or code, fuzzy matched" validate:"required"`
	Typology string `json:"typology,omitempty" jsonschema:"optional typology filter key" validate:"omitempty"`
	Name     string `json:"name,omitempty" jsonschema:"optional course name filter" validate:"omitempty"`
	Credits  int    `json:"credits,omitempty" jsonschema:"optional credits filter" validate:"omitempty,min=1"`
	Sede     string `json:"sede,omitempty" jsonschema:"campus name; defaults to the configured campus" validate:"omitempty"`
}

type courseDetailsInput struct {
	CourseCode string `json:"courseCode" jsonschema:"numeric course code" validate:"required,numeric"`
	Level      string `json:"level" jsonschema:"academic level: pregrado or posgrado" validate:"required"`
	Faculty    string `json:"faculty" jsonschema:"faculty name or code, fuzzy matched" validate:"required"`
	Program    string `json:"program" jsonschema:"study program name or code, fuzzy matched" validate:"required"`
	Sede       string `json:"sede,omitempty" jsonschema:"campus name; defaults to the configured campus" validate:"omitempty"`
}

type authenticateInput struct {
	Username string `json:"username" jsonschema:"portal username, without the email domain" validate:"required"`
	Password string `json:"password" jsonschema:"portal password; used for login only, never stored" validate:"required"`
}

type gradesInput struct {
	Period string `json:"period,omitempty" jsonschema:"academic period, e.g. 2025-1; defaults to the current one" validate:"omitempty"`
}

type emptyInput struct{}
