package adf

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// Label candidates for each metadata field, tried in order. The detail page
// does not render every label for every course, and older skins vary the
// wording, so each field carries its observed variants.
var (
	nameLabels       = []string{"Nombre de la asignatura", "Asignatura", "Nombre"}
	creditLabels     = []string{"Créditos", "Creditos"}
	typologyLabels   = []string{"Tipología", "Tipologia"}
	facultyLabels    = []string{"Facultad"}
	departmentLabels = []string{"Departamento"}
	programLabels    = []string{"Plan de estudios"}
	classCodeLabels  = []string{"Código clase teórica", "Código clase", "Clase teórica"}
)

var (
	timeRangeRe = regexp.MustCompile(`(\d{1,2}:\d{2})\s*[–\-—]\s*(\d{1,2}:\d{2})`)
	daySplitRe  = regexp.MustCompile(`[/,|]`)
	digitsRe    = regexp.MustCompile(`\D`)
	groupTextRe = regexp.MustCompile(`Grupo\s+(\w+)[^\n]*?\n?([A-ZÁÉÍÓÚ][a-záéíóú\s]+)?\s*(\d{2}:\d{2})`)
)

// ParseCourseDetail extracts a best-effort CourseDetails from a rendered
// course detail document. Every field is layered fallback: absence of a
// label, a table, or a whole section produces a partial record, never an
// error.
func ParseCourseDetail(fragment, courseCode string) sia.CourseDetails {
	result := sia.CourseDetails{
		Code:          courseCode,
		Prerequisites: []sia.CatalogPrerequisite{},
		Groups:        []sia.CatalogGroup{},
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return result
	}

	bodyText := CollapseText(fragment)

	result.Name = findLabelValue(doc, bodyText, nameLabels)
	if credits := findLabelValue(doc, bodyText, creditLabels); credits != "" {
		result.Credits, _ = strconv.Atoi(digitsRe.ReplaceAllString(credits, ""))
	}
	result.Typology = findLabelValue(doc, bodyText, typologyLabels)
	result.Faculty = findLabelValue(doc, bodyText, facultyLabels)
	result.Department = findLabelValue(doc, bodyText, departmentLabels)
	result.Program = findLabelValue(doc, bodyText, programLabels)
	result.ClassCode = findLabelValue(doc, bodyText, classCodeLabels)

	// Name has one extra fallback tier: the page heading, then whatever text
	// immediately follows the course code anywhere in the document.
	if result.Name == "" {
		result.Name = strings.TrimSpace(doc.Find("h1, h2").First().Text())
	}
	if result.Name == "" {
		result.Name = findTextNearCode(doc, courseCode)
	}

	// Classify tables heuristically; first match of each kind wins.
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		headers := headerTexts(table)

		if len(result.Prerequisites) == 0 && isPrereqTable(headers) {
			result.Prerequisites = parsePrereqTable(table, headers)
		}
		if len(result.Groups) == 0 && isGroupsTable(headers) {
			result.Groups = parseGroupsTable(table, headers)
		}
	})

	if len(result.Groups) == 0 {
		result.Groups = groupsFromText(bodyText)
	}

	if result.Prerequisites == nil {
		result.Prerequisites = []sia.CatalogPrerequisite{}
	}
	if result.Groups == nil {
		result.Groups = []sia.CatalogGroup{}
	}
	return result
}

// isPrereqTable reports whether a header set looks like the prerequisites
// table: a type-like column plus a code-like column.
func isPrereqTable(headers []string) bool {
	return anyContains(headers, "tipo") && anyContains(headers, "digo")
}

// isGroupsTable reports whether a header set looks like the groups table.
func isGroupsTable(headers []string) bool {
	return anyContains(headers, "grupo")
}

func anyContains(headers []string, substr string) bool {
	for _, h := range headers {
		if strings.Contains(h, substr) {
			return true
		}
	}
	return false
}

// findLabelValue resolves a metadata field by layered fallback:
//  1. an element whose text equals one of the labels (case-insensitive,
//     trailing colon stripped), reading the next sibling's text, then the
//     next cell in the same table row;
//  2. a bounded regex scan of the whole-document text.
//
// Returns "" when every strategy comes up empty.
func findLabelValue(doc *goquery.Document, bodyText string, labels []string) string {
	for _, label := range labels {
		if v := labelAdjacent(doc, label); v != "" {
			return v
		}
		if v := labelRegex(bodyText, label); v != "" {
			return v
		}
	}
	return ""
}

func labelAdjacent(doc *goquery.Document, label string) string {
	var found string
	doc.Find("td, th, span, label").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		text = strings.TrimSpace(strings.TrimSuffix(text, ":"))
		if !strings.EqualFold(text, label) {
			return true
		}

		if next := el.Next(); next.Length() > 0 {
			if v := strings.TrimSpace(next.Text()); v != "" && len(v) < 200 {
				found = v
				return false
			}
		}
		// Label and value can sit in sibling cells of the same row.
		row := el.Closest("tr")
		cells := row.Find("td")
		idx := -1
		cells.EachWithBreak(func(i int, cell *goquery.Selection) bool {
			if cell.Get(0) == el.Get(0) {
				idx = i
				return false
			}
			return true
		})
		if idx >= 0 && idx+1 < cells.Length() {
			if v := strings.TrimSpace(cells.Eq(idx + 1).Text()); v != "" && len(v) < 200 {
				found = v
				return false
			}
		}
		return true
	})
	return found
}

func labelRegex(bodyText, label string) string {
	re, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(label) + `\s*:?\s*([^\n\r|]{1,150})`)
	if err != nil {
		return ""
	}
	m := re.FindStringSubmatch(bodyText)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// findTextNearCode returns the text immediately following the course code
// wherever it appears in the document. Last-resort name extraction.
func findTextNearCode(doc *goquery.Document, courseCode string) string {
	var result string
	doc.Find("td, span, h1, h2, h3").EachWithBreak(func(_ int, el *goquery.Selection) bool {
		text := strings.TrimSpace(el.Text())
		if !strings.Contains(text, courseCode) {
			return true
		}
		_, after, ok := strings.Cut(text, courseCode)
		after = strings.TrimSpace(after)
		if !ok || len(after) <= 2 || len(after) >= 100 {
			return true
		}
		result = strings.TrimSpace(strings.FieldsFunc(after, func(r rune) bool {
			return r == '\n' || r == '\r' || r == '|'
		})[0])
		return false
	})
	return result
}

// columnIndex returns the index of the first header containing any of the
// given substrings, or fallback when none matches.
func columnIndex(headers []string, fallback int, substrings ...string) int {
	for i, h := range headers {
		for _, s := range substrings {
			if strings.Contains(h, s) {
				return i
			}
		}
	}
	return fallback
}

func cellAt(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// parsePrereqTable extracts prerequisite rows. Expected columns, flexibly:
// Condición, Tipo, ¿Todas?, Código, Asignatura.
func parsePrereqTable(table *goquery.Selection, headers []string) []sia.CatalogPrerequisite {
	tipoIdx := columnIndex(headers, 1, "tipo")
	codigoIdx := columnIndex(headers, 3, "digo")
	nombreIdx := columnIndex(headers, 4, "asignatura", "nombre")

	var prereqs []sia.CatalogPrerequisite
	dataRows(table).Each(func(_ int, tr *goquery.Selection) {
		cells := rowCells(tr)
		if len(cells) < 2 {
			return
		}
		p := sia.CatalogPrerequisite{
			Type:       cellAt(cells, tipoIdx),
			CourseCode: cellAt(cells, codigoIdx),
			CourseName: cellAt(cells, nombreIdx),
		}
		if p.Type != "" || p.CourseCode != "" {
			prereqs = append(prereqs, p)
		}
	})
	return prereqs
}

// parseGroupsTable extracts group rows. Expected columns, flexibly:
// Grupo, Profesor/Docente, Días, Horario, Aula, Cupos.
func parseGroupsTable(table *goquery.Selection, headers []string) []sia.CatalogGroup {
	grupoIdx := columnIndex(headers, 0, "grupo")
	profesorIdx := columnIndex(headers, 1, "profesor", "docente")
	diasIdx := columnIndex(headers, -1, "dia")
	horarioIdx := columnIndex(headers, -1, "horario", "hora")
	aulaIdx := columnIndex(headers, -1, "aula", "salon")
	cuposIdx := columnIndex(headers, -1, "cupo", "disponible")

	var groups []sia.CatalogGroup
	dataRows(table).Each(func(_ int, tr *goquery.Selection) {
		cells := rowCells(tr)
		if len(cells) < 2 {
			return
		}

		seatsCell := cellAt(cells, cuposIdx)
		if cuposIdx < 0 {
			seatsCell = cellAt(cells, len(cells)-1)
		}
		seats, _ := strconv.Atoi(strings.TrimSpace(seatsCell))

		g := sia.CatalogGroup{
			GroupNumber:    cellAt(cells, grupoIdx),
			Professor:      cellAt(cells, profesorIdx),
			AvailableSeats: seats,
			// Total seats are not rendered on the detail page.
		}
		if g.GroupNumber == "" && g.Professor == "" {
			return
		}
		g.Schedules = parseScheduleCells(cellAt(cells, diasIdx), cellAt(cells, horarioIdx), cellAt(cells, aulaIdx))
		groups = append(groups, g)
	})
	return groups
}

// parseScheduleCells splits a days cell ("Mar / Jue") and a time cell
// ("10:00–12:00") into per-day schedule slots. The common layout renders one
// time range that applies to every listed day, so a single matched range is
// broadcast across all of them.
func parseScheduleCells(dias, horario, classroom string) []sia.CatalogSchedule {
	if dias == "" && horario == "" {
		return nil
	}

	var days []string
	for _, d := range daySplitRe.Split(dias, -1) {
		if d = strings.TrimSpace(d); d != "" {
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil
	}

	start, end := "", ""
	if m := timeRangeRe.FindStringSubmatch(horario); m != nil {
		start, end = m[1], m[2]
	}

	schedules := make([]sia.CatalogSchedule, 0, len(days))
	for _, day := range days {
		schedules = append(schedules, sia.CatalogSchedule{
			Day:       day,
			StartTime: start,
			EndTime:   end,
			Classroom: classroom,
		})
	}
	return schedules
}

// groupsFromText is the last-resort group scan: the literal token "Grupo"
// followed by a name-like token and a time-like token. Used when no table on
// the page classified as a groups table.
func groupsFromText(bodyText string) []sia.CatalogGroup {
	var groups []sia.CatalogGroup
	for _, m := range groupTextRe.FindAllStringSubmatch(bodyText, -1) {
		if m[1] == "" {
			continue
		}
		groups = append(groups, sia.CatalogGroup{
			GroupNumber: m[1],
			Professor:   strings.TrimSpace(m[2]),
		})
	}
	return groups
}
