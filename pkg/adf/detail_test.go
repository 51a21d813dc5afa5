package adf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const detailPage = `
<html><body>
  <h2>Detalle de la asignatura</h2>
  <table>
    <tr><td>Nombre de la asignatura:</td><td>Estructuras de Datos</td></tr>
    <tr><td>Créditos:</td><td>3</td></tr>
    <tr><td>Tipología:</td><td>Disciplinar Obligatoria</td></tr>
    <tr><td>Facultad:</td><td>3068 FACULTAD DE MINAS</td></tr>
    <tr><td>Plan de estudios:</td><td>Ingeniería de Sistemas</td></tr>
  </table>
  <table>
    <thead><tr><th>Condición</th><th>Tipo</th><th>¿Todas?</th><th>Código</th><th>Asignatura</th></tr></thead>
    <tbody>
      <tr><td>Prerrequisito</td><td>Obligatorio</td><td>Sí</td><td>3007746</td><td>Programación I</td></tr>
    </tbody>
  </table>
  <table>
    <thead><tr><th>Grupo</th><th>Docente</th><th>Días</th><th>Horario</th><th>Aula</th><th>Cupos</th></tr></thead>
    <tbody>
      <tr><td>01</td><td>Juan Pérez</td><td>Mar / Jue</td><td>10:00–12:00</td><td>21-101</td><td>5</td></tr>
    </tbody>
  </table>
</body></html>`

func TestParseCourseDetailMetadata(t *testing.T) {
	d := ParseCourseDetail(detailPage, "3007747")

	assert.Equal(t, "3007747", d.Code)
	assert.Equal(t, "Estructuras de Datos", d.Name)
	assert.Equal(t, 3, d.Credits)
	assert.Equal(t, "Disciplinar Obligatoria", d.Typology)
	assert.Equal(t, "3068 FACULTAD DE MINAS", d.Faculty)
	assert.Equal(t, "Ingeniería de Sistemas", d.Program)
}

func TestParseCourseDetailPrerequisites(t *testing.T) {
	d := ParseCourseDetail(detailPage, "3007747")

	require.Len(t, d.Prerequisites, 1)
	assert.Equal(t, "Obligatorio", d.Prerequisites[0].Type)
	assert.Equal(t, "3007746", d.Prerequisites[0].CourseCode)
	assert.Equal(t, "Programación I", d.Prerequisites[0].CourseName)
}

func TestParseCourseDetailGroups(t *testing.T) {
	d := ParseCourseDetail(detailPage, "3007747")

	require.Len(t, d.Groups, 1)
	g := d.Groups[0]
	assert.Equal(t, "01", g.GroupNumber)
	assert.Equal(t, "Juan Pérez", g.Professor)
	assert.Equal(t, 5, g.AvailableSeats)

	require.Len(t, g.Schedules, 2, "one time range broadcast across both days")
	assert.Equal(t, "Mar", g.Schedules[0].Day)
	assert.Equal(t, "Jue", g.Schedules[1].Day)
	for _, s := range g.Schedules {
		assert.Equal(t, "10:00", s.StartTime)
		assert.Equal(t, "12:00", s.EndTime)
		assert.Equal(t, "21-101", s.Classroom)
	}
}

func TestParseCourseDetailMissingFieldsAreNotErrors(t *testing.T) {
	d := ParseCourseDetail("<html><body><p>nada</p></body></html>", "123")
	assert.Equal(t, "123", d.Code)
	assert.Empty(t, d.Name)
	assert.Zero(t, d.Credits)
	assert.Empty(t, d.Prerequisites)
	assert.Empty(t, d.Groups)
}

func TestParseCourseDetailRegexFallback(t *testing.T) {
	// No label-adjacent layout: the value follows the label in running text.
	html := `<html><body><div>Facultad: 3068 FACULTAD DE MINAS | Créditos: 4</div></body></html>`
	d := ParseCourseDetail(html, "123")
	assert.Equal(t, "3068 FACULTAD DE MINAS", d.Faculty)
	assert.Equal(t, 4, d.Credits)
}

func TestParseCourseDetailNameNearCode(t *testing.T) {
	html := `<html><body><span>3007747 Estructuras de Datos</span></body></html>`
	d := ParseCourseDetail(html, "3007747")
	assert.Equal(t, "Estructuras de Datos", d.Name)
}

func TestParseCourseDetailGroupsPositionalFallback(t *testing.T) {
	// Headerless groups-like table is not classified; the text scan still
	// synthesizes minimal records from the "Grupo" token pattern.
	html := `<html><body><p>Grupo 01 Juan 10:00</p></body></html>`
	d := ParseCourseDetail(html, "123")
	require.Len(t, d.Groups, 1)
	assert.Equal(t, "01", d.Groups[0].GroupNumber)
}

func TestNormalize(t *testing.T) {
	cases := []struct{ in, want string }{
		{"1102 SEDE MEDELLÍN", "1102 sede medellin"},
		{"Ingeniería", "ingenieria"},
		{"FUNDAMENTACIÓN", "fundamentacion"},
		{"plain", "plain"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Normalize(c.in))
	}
}
