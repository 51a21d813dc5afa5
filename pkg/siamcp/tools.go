package siamcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/unal-mcp/sia-mcp/pkg/catalog"
)

// register wires every tool. Public catalog tools work without a session;
// the student tools require authenticate first.
func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "search-courses",
		Description: "Search courses by name or keywords in the UNAL course catalog",
	}, handler(s, "search-courses", func(ctx context.Context, in searchCoursesInput) (any, error) {
		return s.svc.SearchCourses(ctx, in.Query, in.Level, in.Typology, in.Page, in.PageSize)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-course-groups",
		Description: "Get the groups of a course: professor, weekly schedule, classrooms and seats",
	}, handler(s, "get-course-groups", func(ctx context.Context, in courseCodeInput) (any, error) {
		return s.svc.CourseGroups(ctx, in.CourseCode)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "check-seat-availability",
		Description: "Check real-time seat availability for every group of a course (never cached)",
	}, handler(s, "check-seat-availability", func(ctx context.Context, in courseCodeInput) (any, error) {
		return s.svc.SeatAvailability(ctx, in.CourseCode)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list-faculties",
		Description: "List the faculties available for an academic level and campus",
	}, handler(s, "list-faculties", func(ctx context.Context, in listFacultiesInput) (any, error) {
		return s.svc.ListFaculties(ctx, in.Level, in.Sede)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list-programs",
		Description: "List the study programs of a faculty",
	}, handler(s, "list-programs", func(ctx context.Context, in listProgramsInput) (any, error) {
		return s.svc.ListPrograms(ctx, in.Level, in.Faculty, in.Sede)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "browse-catalog",
		Description: "Browse the course catalog of a program, with optional typology, name and credits filters",
	}, handler(s, "browse-catalog", func(ctx context.Context, in browseCatalogInput) (any, error) {
		return s.svc.BrowseCatalog(ctx, catalog.SearchParams{
			Level:    in.Level,
			Faculty:  in.Faculty,
			Program:  in.Program,
			Typology: in.Typology,
			Name:     in.Name,
			Credits:  in.Credits,
			Sede:     in.Sede,
		})
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-course-details",
		Description: "Get a course's full detail page: metadata, prerequisites and groups",
	}, handler(s, "get-course-details", func(ctx context.Context, in courseDetailsInput) (any, error) {
		return s.svc.FullCourseDetails(ctx, catalog.DetailParams{
			CourseCode: in.CourseCode,
			Level:      in.Level,
			Faculty:    in.Faculty,
			Program:    in.Program,
			Sede:       in.Sede,
		})
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "authenticate",
		Description: "Log into the student portal; the session lasts 20 minutes",
	}, handler(s, "authenticate", func(ctx context.Context, in authenticateInput) (any, error) {
		if err := s.sessions.Authenticate(in.Username, in.Password); err != nil {
			return nil, err
		}
		return s.sessions.State(), nil
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-grades",
		Description: "Get the authenticated student's grades, optionally for a specific period",
	}, handler(s, "get-grades", func(ctx context.Context, in gradesInput) (any, error) {
		return s.svc.Grades(ctx, in.Period)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-current-schedule",
		Description: "Get the authenticated student's current weekly schedule",
	}, handler(s, "get-current-schedule", func(ctx context.Context, in emptyInput) (any, error) {
		return s.svc.CurrentSchedule(ctx)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-academic-history",
		Description: "Get the authenticated student's academic history with PAPA and per-period averages",
	}, handler(s, "get-academic-history", func(ctx context.Context, in emptyInput) (any, error) {
		return s.svc.AcademicHistory(ctx)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get-enrollment-status",
		Description: "Get the authenticated student's current enrollment snapshot",
	}, handler(s, "get-enrollment-status", func(ctx context.Context, in emptyInput) (any, error) {
		return s.svc.EnrollmentStatus(ctx)
	}))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "logout",
		Description: "End the authenticated session",
	}, handler(s, "logout", func(ctx context.Context, in emptyInput) (any, error) {
		s.sessions.Destroy()
		return s.sessions.State(), nil
	}))
}
