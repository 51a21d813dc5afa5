// Package scrape exposes the high-level portal operations the tool surface
// calls: course search, group and seat lookups, catalog browsing, and the
// authenticated student pages. It composes the legacy search client, the
// catalog navigator, the session manager, and the cache.
package scrape

import (
	"context"
	"fmt"

	"github.com/unal-mcp/sia-mcp/pkg/adf"
	"github.com/unal-mcp/sia-mcp/pkg/buscador"
	"github.com/unal-mcp/sia-mcp/pkg/cache"
	"github.com/unal-mcp/sia-mcp/pkg/catalog"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/session"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// Service bundles the engine's clients behind one operation set.
type Service struct {
	rpc      *buscador.Client
	nav      *catalog.Navigator
	sessions *session.Manager
	cache    *cache.Cache
	cfg      *config.Config
	log      *logging.Logger
}

// NewService wires a Service from its collaborators.
func NewService(rpc *buscador.Client, nav *catalog.Navigator, sessions *session.Manager, store *cache.Cache, cfg *config.Config) *Service {
	log, _ := logging.NewLogger("scrape")
	return &Service{
		rpc:      rpc,
		nav:      nav,
		sessions: sessions,
		cache:    store,
		cfg:      cfg,
		log:      log,
	}
}

// Close releases the service's logger. Collaborators are owned by main.
func (s *Service) Close() {
	_ = s.log.Close()
}

// SearchCourses runs a paged course search against the legacy endpoint.
// Results are cached per query, level, typology, page and page size.
func (s *Service) SearchCourses(ctx context.Context, query, level, typology string, page, pageSize int) (sia.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 15
	}

	key := fmt.Sprintf("search:%s:%s:%s:%d:%d", query, level, typology, page, pageSize)
	if cached, ok := cache.Getter[sia.SearchResult](s.cache, key); ok {
		return cached, nil
	}

	raw, err := s.rpc.SearchCourses(ctx, query, level, typology, "", page, pageSize)
	if err != nil {
		return sia.SearchResult{}, err
	}
	result := sia.ParseSearchResult(*raw)
	s.cache.Set(key, result, 0)
	return result, nil
}

// CourseGroups returns the groups of a course, cached.
func (s *Service) CourseGroups(ctx context.Context, courseCode string) ([]sia.CourseGroup, error) {
	key := "groups:" + courseCode
	if cached, ok := cache.Getter[[]sia.CourseGroup](s.cache, key); ok {
		return cached, nil
	}

	raws, err := s.rpc.CourseGroups(ctx, courseCode)
	if err != nil {
		return nil, err
	}
	groups := sia.ParseGroupList(raws)
	s.cache.Set(key, groups, 0)
	return groups, nil
}

// GroupSeats is one group's live seat snapshot.
type GroupSeats struct {
	Group     string `json:"group"`
	Total     int    `json:"total"`
	Available int    `json:"available"`
	Professor string `json:"professor"`
}

// SeatAvailability is the real-time seat report for a course.
type SeatAvailability struct {
	CourseCode string       `json:"courseCode"`
	Groups     []GroupSeats `json:"groups"`
}

// SeatAvailability fetches live seat counts. Never cached: stale counts are
// worse than slow ones during enrollment week.
func (s *Service) SeatAvailability(ctx context.Context, courseCode string) (SeatAvailability, error) {
	raws, err := s.rpc.CourseGroups(ctx, courseCode)
	if err != nil {
		return SeatAvailability{}, err
	}

	report := SeatAvailability{
		CourseCode: courseCode,
		Groups:     make([]GroupSeats, 0, len(raws)),
	}
	for _, g := range raws {
		report.Groups = append(report.Groups, GroupSeats{
			Group:     g.Codigo,
			Total:     g.CuposTotal,
			Available: g.CuposDisponibles,
			Professor: g.NombreDocente,
		})
	}
	return report, nil
}

// ListFaculties lists the faculties of a level and campus via the catalog
// cascade, cached.
func (s *Service) ListFaculties(ctx context.Context, level, sede string) ([]sia.DropdownOption, error) {
	key := fmt.Sprintf("faculties:%s:%s", level, sede)
	if cached, ok := cache.Getter[[]sia.DropdownOption](s.cache, key); ok {
		return cached, nil
	}

	options, err := s.nav.ListFaculties(ctx, level, sede)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, options, 0)
	return options, nil
}

// ListPrograms lists the programs of a faculty, cached.
func (s *Service) ListPrograms(ctx context.Context, level, faculty, sede string) ([]sia.DropdownOption, error) {
	key := fmt.Sprintf("programs:%s:%s:%s", level, faculty, sede)
	if cached, ok := cache.Getter[[]sia.DropdownOption](s.cache, key); ok {
		return cached, nil
	}

	options, err := s.nav.ListPrograms(ctx, level, faculty, sede)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, options, 0)
	return options, nil
}

// BrowseCatalog walks the catalog cascade for a level, faculty and program
// and returns the course listing, cached.
func (s *Service) BrowseCatalog(ctx context.Context, params catalog.SearchParams) (sia.CatalogEntry, error) {
	key := fmt.Sprintf("catalog:%s:%s:%s:%s:%s:%s:%d",
		params.Level, params.Sede, params.Faculty, params.Program,
		params.Typology, params.Name, params.Credits)
	if cached, ok := cache.Getter[sia.CatalogEntry](s.cache, key); ok {
		return cached, nil
	}

	rows, err := s.nav.Search(ctx, params)
	if err != nil {
		return sia.CatalogEntry{}, err
	}

	entry := sia.CatalogEntry{
		Level:   params.Level,
		Faculty: params.Faculty,
		Program: params.Program,
		Courses: sia.ParseCatalogRows(rows),
	}
	s.cache.Set(key, entry, 0)
	return entry, nil
}

// FullCourseDetails navigates to a course's detail page and extracts
// everything on it, cached. A course code absent from the search results is
// an error; a found page with missing sections is not.
func (s *Service) FullCourseDetails(ctx context.Context, params catalog.DetailParams) (sia.CourseDetails, error) {
	key := "details:" + params.CourseCode
	if cached, ok := cache.Getter[sia.CourseDetails](s.cache, key); ok {
		return cached, nil
	}

	html, err := s.nav.CourseDetailHTML(ctx, params)
	if err != nil {
		return sia.CourseDetails{}, err
	}
	if html == "" {
		return sia.CourseDetails{}, fmt.Errorf("course %s not found in catalog results", params.CourseCode)
	}

	details := adf.ParseCourseDetail(html, params.CourseCode)
	s.cache.Set(key, details, 0)
	return details, nil
}
