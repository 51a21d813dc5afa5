package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/session"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// Authenticated operations. None of these cache: private pages reflect the
// student's live record, and the session can expire between calls anyway.

// Grades fetches the grade report, optionally switching to a specific
// academic period first ("2025-1"). The period dropdown match is a plain
// substring check against the option labels.
func (s *Service) Grades(ctx context.Context, period string) ([]sia.Grade, error) {
	sel := s.cfg.Selectors.Grades

	rows, err := s.sessions.FetchTable(ctx, config.URLGrades, sel.Table, selectPeriodSetup(sel, period))
	if err != nil {
		return nil, err
	}
	return sia.ParseGradeRows(rows, period), nil
}

// selectPeriodSetup returns a page setup that switches the grade report to
// the named period. A period that matches no option is skipped; the report
// then shows its default period.
func selectPeriodSetup(sel config.GradesSelectors, period string) session.SetupFunc {
	if period == "" {
		return nil
	}
	return func(page playwright.Page) error {
		if _, err := page.WaitForSelector(sel.PeriodSelect, playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(10000),
		}); err != nil {
			return nil
		}

		raw, err := page.Evaluate(`sel => Array.from(document.querySelectorAll(sel + " option"))
			.map(o => ({ value: o.value, label: (o.textContent || "").trim() }))`, sel.PeriodSelect)
		if err != nil {
			return nil
		}
		items, _ := raw.([]interface{})
		for _, item := range items {
			m, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			label, _ := m["label"].(string)
			value, _ := m["value"].(string)
			if strings.Contains(label, period) {
				_, err := page.SelectOption(sel.PeriodSelect, playwright.SelectOptionValues{
					Values: &[]string{value},
				})
				return err
			}
		}
		return nil
	}
}

// CurrentSchedule fetches the student's weekly schedule.
func (s *Service) CurrentSchedule(ctx context.Context) ([]sia.ScheduleEntry, error) {
	rows, err := s.sessions.FetchTable(ctx, config.URLSchedule, s.cfg.Selectors.Grades.Table, nil)
	if err != nil {
		return nil, err
	}
	return sia.ParseScheduleRows(rows), nil
}

// EnrollmentStatus fetches the current enrollment snapshot: student labels
// from the page region plus the enrolled courses table.
func (s *Service) EnrollmentStatus(ctx context.Context) (sia.EnrollmentStatus, error) {
	sel := s.cfg.Selectors.Enrollment

	fragment, err := s.sessions.FetchFragment(ctx, config.URLEnrollment, sel.Region, nil)
	if err != nil {
		return sia.EnrollmentStatus{}, err
	}

	status := sia.EnrollmentStatus{}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		status.StudentName = firstText(doc, `[id*="ot1"], [id*="nombre"]`)
		status.Program = firstText(doc, `[id*="ot2"], [id*="programa"]`)
		status.CurrentPeriod = firstText(doc, `[id*="ot3"], [id*="periodo"]`)
		status.Status = firstText(doc, `[id*="ot4"], [id*="estado"]`)
	}

	rows, err := s.sessions.FetchTable(ctx, config.URLEnrollment, sel.Table, nil)
	if err != nil {
		return sia.EnrollmentStatus{}, err
	}
	status.EnrolledCourses = sia.ParseEnrolledRows(rows)
	for _, c := range status.EnrolledCourses {
		status.TotalCredits += c.Credits
	}
	return status, nil
}

// AcademicHistory fetches the full academic record: student labels, the PAPA
// average, and every grade grouped by period with credit-weighted averages.
func (s *Service) AcademicHistory(ctx context.Context) (sia.AcademicHistory, error) {
	sel := s.cfg.Selectors.History

	fragment, err := s.sessions.FetchFragment(ctx, config.URLAcademicHistory, sel.Region, nil)
	if err != nil {
		return sia.AcademicHistory{}, err
	}

	history := sia.AcademicHistory{}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment)); err == nil {
		history.StudentName = firstText(doc, `[id*="nombre"], [id*="ot1"]`)
		history.StudentID = firstText(doc, `[id*="documento"], [id*="ot2"]`)
		history.Program = firstText(doc, `[id*="programa"], [id*="ot3"]`)
	}

	papaText, err := s.sessions.FetchText(ctx, config.URLAcademicHistory, sel.PAPALabel, nil)
	if err != nil {
		return sia.AcademicHistory{}, err
	}
	history.PAPA = sia.ParseDecimal(papaText)

	rows, err := s.sessions.FetchTable(ctx, config.URLAcademicHistory, sel.Table, nil)
	if err != nil {
		return sia.AcademicHistory{}, err
	}
	grades := sia.ParseGradeRows(rows, "")

	history.Periods = summarizePeriods(grades, history.PAPA)
	for _, g := range grades {
		history.TotalCredits += g.Credits
		if g.Grade >= 3.0 {
			history.CompletedCredits += g.Credits
		}
	}
	return history, nil
}

// summarizePeriods groups grades by period, preserving first-seen period
// order, with a credit-weighted average per period.
func summarizePeriods(grades []sia.Grade, papa float64) []sia.PeriodSummary {
	var order []string
	byPeriod := make(map[string][]sia.Grade)
	for _, g := range grades {
		period := g.Period
		if period == "" {
			period = "Sin periodo"
		}
		if _, seen := byPeriod[period]; !seen {
			order = append(order, period)
		}
		byPeriod[period] = append(byPeriod[period], g)
	}

	summaries := make([]sia.PeriodSummary, 0, len(order))
	for _, period := range order {
		periodGrades := byPeriod[period]
		var credits, weighted float64
		for _, g := range periodGrades {
			credits += g.Credits
			weighted += g.Grade * g.Credits
		}
		average := 0.0
		if credits > 0 {
			average = weighted / credits
		}
		summaries = append(summaries, sia.PeriodSummary{
			Period:            period,
			Grades:            periodGrades,
			PeriodAverage:     average,
			CumulativeAverage: papa,
		})
	}
	return summaries
}

// firstText returns the trimmed text of the first selector match.
func firstText(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().Text())
}
