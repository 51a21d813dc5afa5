// Package sia defines the domain model for the SIA UNAL academic portal:
// courses, groups, schedules, grades, and the session state shared by the
// authenticated scrapers.
package sia

import "time"

// DropdownOption is one selectable choice read live from a catalog dropdown.
// Options are never persisted; their contents depend on upstream selections
// and server-side conversational state.
type DropdownOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Course is a catalog course as returned by search.
type Course struct {
	Code     string        `json:"code"`
	Name     string        `json:"name"`
	Typology string        `json:"typology"`
	Credits  int           `json:"credits"`
	Groups   []CourseGroup `json:"groups,omitempty"`
}

// SearchResult is a page of search results from the legacy search endpoint.
type SearchResult struct {
	TotalCourses int      `json:"totalCourses"`
	TotalPages   int      `json:"totalPages"`
	Courses      []Course `json:"courses"`
}

// CourseGroup is one section of a course with its professor, seats, and
// per-weekday schedule.
type CourseGroup struct {
	Code              string            `json:"code"`
	ProfessorName     string            `json:"professorName"`
	ProfessorUsername string            `json:"professorUsername"`
	TotalSeats        int               `json:"totalSeats"`
	AvailableSeats    int               `json:"availableSeats"`
	Schedule          WeekSchedule      `json:"schedule"`
	Classrooms        WeekClassrooms    `json:"classrooms"`
	PlanRestrictions  []PlanRestriction `json:"planRestrictions"`
}

// WeekSchedule holds the raw schedule string for each weekday ("--" when the
// group does not meet that day).
type WeekSchedule struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// WeekClassrooms holds the classroom for each weekday.
type WeekClassrooms struct {
	Monday    string `json:"monday"`
	Tuesday   string `json:"tuesday"`
	Wednesday string `json:"wednesday"`
	Thursday  string `json:"thursday"`
	Friday    string `json:"friday"`
	Saturday  string `json:"saturday"`
	Sunday    string `json:"sunday"`
}

// PlanRestriction limits a group to (or excludes it from) a study plan.
type PlanRestriction struct {
	Plan string `json:"plan"`
	Type string `json:"type"`
}

// CatalogEntry is the result of browsing the catalog cascade for one
// level/faculty/program combination.
type CatalogEntry struct {
	Level   string          `json:"level"`
	Faculty string          `json:"faculty"`
	Program string          `json:"program"`
	Courses []CatalogCourse `json:"courses"`
}

// CatalogCourse is one row of the catalog results table.
type CatalogCourse struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Credits  int    `json:"credits"`
	Typology string `json:"typology"`
}

// CourseDetails aggregates everything scraped from a course detail page.
// Every scalar field is independently optional: the portal's layout does not
// guarantee any of them is rendered for a given course, so absence is a valid
// terminal state rather than an error.
type CourseDetails struct {
	Code          string                `json:"code"`
	Name          string                `json:"name,omitempty"`
	Credits       int                   `json:"credits,omitempty"`
	Typology      string                `json:"typology,omitempty"`
	Faculty       string                `json:"faculty,omitempty"`
	Department    string                `json:"department,omitempty"`
	Program       string                `json:"program,omitempty"`
	ClassCode     string                `json:"classCode,omitempty"`
	Description   string                `json:"description,omitempty"`
	Prerequisites []CatalogPrerequisite `json:"prerequisites"`
	Groups        []CatalogGroup        `json:"groups"`
}

// CatalogPrerequisite is one row of the prerequisites table on a detail page.
type CatalogPrerequisite struct {
	Type       string `json:"type"`
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
}

// CatalogGroup is a group as rendered on a course detail page.
type CatalogGroup struct {
	GroupNumber    string            `json:"groupNumber"`
	Professor      string            `json:"professor"`
	Schedules      []CatalogSchedule `json:"schedules"`
	AvailableSeats int               `json:"availableSeats"`
	TotalSeats     int               `json:"totalSeats"`
}

// CatalogSchedule is one day/time/classroom slot of a catalog group.
type CatalogSchedule struct {
	Day       string `json:"day"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Classroom string `json:"classroom"`
}

// Grade is one row of the student's grade report.
type Grade struct {
	CourseCode string  `json:"courseCode"`
	CourseName string  `json:"courseName"`
	Credits    float64 `json:"credits"`
	Grade      float64 `json:"grade"`
	Period     string  `json:"period"`
	Typology   string  `json:"typology"`
}

// ScheduleEntry is one row of the student's current weekly schedule.
type ScheduleEntry struct {
	CourseCode string `json:"courseCode"`
	CourseName string `json:"courseName"`
	Group      string `json:"group"`
	Day        string `json:"day"`
	StartHour  string `json:"startHour"`
	EndHour    string `json:"endHour"`
	Classroom  string `json:"classroom"`
	Professor  string `json:"professor"`
}

// PeriodSummary groups grades by academic period with weighted averages.
type PeriodSummary struct {
	Period            string  `json:"period"`
	Grades            []Grade `json:"grades"`
	PeriodAverage     float64 `json:"periodAverage"`
	CumulativeAverage float64 `json:"cumulativeAverage"`
}

// AcademicHistory is the student's full academic record.
type AcademicHistory struct {
	StudentName      string          `json:"studentName"`
	StudentID        string          `json:"studentId"`
	Program          string          `json:"program"`
	PAPA             float64         `json:"papa"`
	TotalCredits     float64         `json:"totalCredits"`
	CompletedCredits float64         `json:"completedCredits"`
	Periods          []PeriodSummary `json:"periods"`
}

// EnrolledCourse is one course in the current enrollment.
type EnrolledCourse struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Group     string `json:"group"`
	Credits   int    `json:"credits"`
	Professor string `json:"professor"`
}

// EnrollmentStatus is the student's current enrollment snapshot.
type EnrollmentStatus struct {
	StudentName     string           `json:"studentName"`
	Program         string           `json:"program"`
	CurrentPeriod   string           `json:"currentPeriod"`
	EnrolledCourses []EnrolledCourse `json:"enrolledCourses"`
	TotalCredits    int              `json:"totalCredits"`
	Status          string           `json:"status"`
}

// SessionState is the caller-visible view of the authenticated session.
type SessionState struct {
	Authenticated bool       `json:"authenticated"`
	Username      string     `json:"username,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
}
