package sia

import (
	"strconv"
	"strings"
)

// typologyNames maps the legacy API's single-letter typology codes to the
// human-readable labels shown in the portal UI.
var typologyNames = map[string]string{
	"p": "Disciplinar Optativa",
	"b": "Fundamentación Obligatoria",
	"c": "Disciplinar Obligatoria",
	"l": "Libre Elección",
	"m": "Nivelación",
	"o": "Trabajo de Grado",
	"t": "Fundamentación Optativa",
}

// TypologyName resolves a typology code to its label, accepting either case.
// Unknown codes pass through unchanged.
func TypologyName(code string) string {
	if name, ok := typologyNames[strings.ToLower(code)]; ok {
		return name
	}
	return code
}

// ParseSearchResult converts a raw search payload into the domain model.
func ParseSearchResult(raw RawSubjectResult) SearchResult {
	courses := make([]Course, 0, len(raw.Asignaturas.List))
	for _, s := range raw.Asignaturas.List {
		courses = append(courses, parseRawSubject(s))
	}
	return SearchResult{
		TotalCourses: raw.TotalAsignaturas,
		TotalPages:   raw.NumPaginas,
		Courses:      courses,
	}
}

func parseRawSubject(raw RawSubject) Course {
	c := Course{
		Code:     raw.Codigo,
		Name:     raw.Nombre,
		Typology: TypologyName(raw.Tipologia),
		Credits:  raw.Creditos,
	}
	for _, g := range raw.Grupos.List {
		c.Groups = append(c.Groups, ParseRawGroup(g))
	}
	return c
}

// ParseRawGroup converts a raw group into the domain model, defaulting empty
// schedule and classroom cells to "--" the way the portal renders them.
func ParseRawGroup(raw RawGroup) CourseGroup {
	restrictions := make([]PlanRestriction, 0, len(raw.PlanLimitacion.List))
	for _, r := range raw.PlanLimitacion.List {
		restrictions = append(restrictions, PlanRestriction{Plan: r.Plan, Type: r.TipoLimitacion})
	}
	return CourseGroup{
		Code:              raw.Codigo,
		ProfessorName:     raw.NombreDocente,
		ProfessorUsername: raw.UsuarioDocente,
		TotalSeats:        raw.CuposTotal,
		AvailableSeats:    raw.CuposDisponibles,
		Schedule: WeekSchedule{
			Monday:    orDash(raw.HorarioLunes),
			Tuesday:   orDash(raw.HorarioMartes),
			Wednesday: orDash(raw.HorarioMiercoles),
			Thursday:  orDash(raw.HorarioJueves),
			Friday:    orDash(raw.HorarioViernes),
			Saturday:  orDash(raw.HorarioSabado),
			Sunday:    orDash(raw.HorarioDomingo),
		},
		Classrooms: WeekClassrooms{
			Monday:    orDash(raw.AulaLunes),
			Tuesday:   orDash(raw.AulaMartes),
			Wednesday: orDash(raw.AulaMiercoles),
			Thursday:  orDash(raw.AulaJueves),
			Friday:    orDash(raw.AulaViernes),
			Saturday:  orDash(raw.AulaSabado),
			Sunday:    orDash(raw.AulaDomingo),
		},
		PlanRestrictions: restrictions,
	}
}

// ParseGroupList converts a slice of raw groups.
func ParseGroupList(raws []RawGroup) []CourseGroup {
	groups := make([]CourseGroup, 0, len(raws))
	for _, r := range raws {
		groups = append(groups, ParseRawGroup(r))
	}
	return groups
}

func orDash(v string) string {
	if v == "" {
		return "--"
	}
	return v
}

// cell returns the first non-empty value among the named columns, falling
// back to the positional col_N key. Private ADF tables render the same
// logical column under inconsistent header labels depending on the page.
func cell(r *TableRow, fallbackIdx int, names ...string) string {
	for _, n := range names {
		if v := r.Get(n); v != "" {
			return v
		}
	}
	return r.Get("col_" + strconv.Itoa(fallbackIdx))
}

// ParseGradeRows maps extracted grade-table rows into Grades. Rows without a
// course code are dropped. period is used when the table has no period column.
func ParseGradeRows(rows []*TableRow, period string) []Grade {
	grades := make([]Grade, 0, len(rows))
	for _, row := range rows {
		g := Grade{
			CourseCode: cell(row, 0, "Código", "codigo"),
			CourseName: cell(row, 1, "Asignatura", "asignatura"),
			Credits:    ParseDecimal(cell(row, 2, "Créditos", "creditos")),
			Grade:      ParseDecimal(cell(row, 3, "Nota", "nota", "Calificación")),
			Period:     cell(row, 4, "Periodo", "periodo"),
			Typology:   cell(row, 5, "Tipología", "tipologia"),
		}
		if g.Period == "" {
			g.Period = period
		}
		if g.CourseCode != "" {
			grades = append(grades, g)
		}
	}
	return grades
}

// ParseScheduleRows maps extracted schedule-table rows into ScheduleEntries.
func ParseScheduleRows(rows []*TableRow) []ScheduleEntry {
	entries := make([]ScheduleEntry, 0, len(rows))
	for _, row := range rows {
		e := ScheduleEntry{
			CourseCode: cell(row, 0, "Código", "codigo"),
			CourseName: cell(row, 1, "Asignatura", "asignatura"),
			Group:      cell(row, 2, "Grupo", "grupo"),
			Day:        cell(row, 3, "Día", "dia"),
			StartHour:  cell(row, 4, "Hora inicio", "hora_inicio"),
			EndHour:    cell(row, 5, "Hora fin", "hora_fin"),
			Classroom:  cell(row, 6, "Aula", "aula"),
			Professor:  cell(row, 7, "Docente", "docente"),
		}
		if e.CourseCode != "" {
			entries = append(entries, e)
		}
	}
	return entries
}

// ParseCatalogRows maps catalog results-table rows into CatalogCourses.
func ParseCatalogRows(rows []*TableRow) []CatalogCourse {
	courses := make([]CatalogCourse, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, CatalogCourse{
			Code:     cell(row, 0, "Código", "codigo"),
			Name:     cell(row, 1, "Asignatura", "asignatura"),
			Credits:  int(ParseDecimal(cell(row, 2, "Créditos", "creditos"))),
			Typology: cell(row, 3, "Tipología", "tipologia"),
		})
	}
	return courses
}

// ParseEnrolledRows maps enrollment-table rows into EnrolledCourses.
func ParseEnrolledRows(rows []*TableRow) []EnrolledCourse {
	courses := make([]EnrolledCourse, 0, len(rows))
	for _, row := range rows {
		c := EnrolledCourse{
			Code:      cell(row, 0, "Código", "codigo"),
			Name:      cell(row, 1, "Asignatura", "asignatura"),
			Group:     cell(row, 2, "Grupo", "grupo"),
			Credits:   int(ParseDecimal(cell(row, 3, "Créditos", "creditos"))),
			Professor: cell(row, 4, "Docente", "docente"),
		}
		if c.Code != "" {
			courses = append(courses, c)
		}
	}
	return courses
}

// ParseDecimal parses a portal-rendered number, accepting the Spanish comma
// decimal separator. Unparseable input yields 0.
func ParseDecimal(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
