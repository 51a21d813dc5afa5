package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unal-mcp/sia-mcp/pkg/buscador"
	"github.com/unal-mcp/sia-mcp/pkg/cache"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/ratelimit"
)

const groupsResponse = `{"result": {"javaClass": "java.util.ArrayList", "list": [
	{"codigo": "01", "nombredocente": "Juan Pérez", "cupostotal": 30, "cuposdisponibles": 4}
]}, "error": null}`

const searchResponse = `{"result": {
	"totalAsignaturas": 1, "numPaginas": 1,
	"asignaturas": {"javaClass": "java.util.ArrayList", "list": [
		{"codigo": "3007747", "nombre": "Estructuras de Datos", "tipologia": "C", "creditos": 3,
		 "grupos": {"javaClass": "java.util.ArrayList", "list": []}}
	]}
}, "error": null}`

// testService wires a Service whose legacy client talks to a local server.
// Browser-backed collaborators stay nil; the tests here never touch them.
func testService(t *testing.T, handler http.HandlerFunc) (*Service, *int) {
	t.Helper()
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	rpc := buscador.NewClientForURL(server.URL, ratelimit.New(0))
	t.Cleanup(rpc.Close)

	cfg := &config.Config{Selectors: config.DefaultSelectors()}
	svc := NewService(rpc, nil, nil, cache.New(time.Minute), cfg)
	t.Cleanup(svc.Close)
	return svc, &calls
}

func TestSearchCoursesCachesByQueryAndPage(t *testing.T) {
	svc, calls := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchResponse))
	})
	ctx := context.Background()

	first, err := svc.SearchCourses(ctx, "estructuras", "pregrado", "all", 1, 15)
	require.NoError(t, err)
	require.Len(t, first.Courses, 1)
	assert.Equal(t, "Disciplinar Obligatoria", first.Courses[0].Typology)

	_, err = svc.SearchCourses(ctx, "estructuras", "pregrado", "all", 1, 15)
	require.NoError(t, err)
	assert.Equal(t, 1, *calls, "second identical search must be served from cache")

	_, err = svc.SearchCourses(ctx, "estructuras", "pregrado", "all", 2, 15)
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "a different page is a different cache entry")

	_, err = svc.SearchCourses(ctx, "estructuras", "pregrado", "all", 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 3, *calls, "a different page size is a different cache entry")
}

func TestCourseGroupsCached(t *testing.T) {
	svc, calls := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(groupsResponse))
	})
	ctx := context.Background()

	groups, err := svc.CourseGroups(ctx, "3007747")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Juan Pérez", groups[0].ProfessorName)
	assert.Equal(t, "--", groups[0].Schedule.Monday)

	_, err = svc.CourseGroups(ctx, "3007747")
	require.NoError(t, err)
	assert.Equal(t, 1, *calls)
}

func TestSeatAvailabilityNeverCached(t *testing.T) {
	svc, calls := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(groupsResponse))
	})
	ctx := context.Background()

	report, err := svc.SeatAvailability(ctx, "3007747")
	require.NoError(t, err)
	require.Len(t, report.Groups, 1)
	assert.Equal(t, 4, report.Groups[0].Available)
	assert.Equal(t, 30, report.Groups[0].Total)

	_, err = svc.SeatAvailability(ctx, "3007747")
	require.NoError(t, err)
	assert.Equal(t, 2, *calls, "seat checks must hit the endpoint every time")
}

func TestSearchCoursesErrorNotCached(t *testing.T) {
	svc, calls := testService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": null, "error": "backend caido"}`))
	})
	ctx := context.Background()

	_, err := svc.SearchCourses(ctx, "q", "", "", 1, 15)
	require.Error(t, err)

	_, err = svc.SearchCourses(ctx, "q", "", "", 1, 15)
	require.Error(t, err)
	assert.Greater(t, *calls, 3, "failures must not be cached")
}
