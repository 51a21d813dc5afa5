package catalog

import (
	"context"
	"strconv"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/adf"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// SearchParams drive a full catalog search. Level, Faculty and Program are
// required; the rest are best-effort filters.
type SearchParams struct {
	Level    string
	Faculty  string
	Program  string
	Typology string
	Name     string
	Credits  int
	Sede     string
}

// DetailParams locate one course's detail page. The cascading form must be
// walked before the course link exists, so the full path is required.
type DetailParams struct {
	CourseCode string
	Level      string
	Faculty    string
	Program    string
	Sede       string
}

const outerHTMLJS = `sel => { const el = document.querySelector(sel); return el ? el.outerHTML : ""; }`

// clickCourseCellJS clicks the results cell whose text equals the course
// code, preferring a link inside the cell. Returns whether anything was
// clicked.
const clickCourseCellJS = `code => {
	for (const cell of document.querySelectorAll("td")) {
		if ((cell.textContent || "").trim() === code) {
			const link = cell.querySelector("a");
			if (link) { link.click(); } else { cell.click(); }
			return true;
		}
	}
	return false;
}`

// Search walks the cascade with the given parameters, submits the form, and
// returns the parsed result rows. An absent results table yields zero rows.
func (n *Navigator) Search(ctx context.Context, params SearchParams) ([]*sia.TableRow, error) {
	var rows []*sia.TableRow
	err := n.withPage(ctx, func(page playwright.Page) error {
		if err := n.driveCascade(page, params.Level, params.Sede, params.Faculty, params.Program); err != nil {
			return err
		}
		n.applyFilters(page, params)
		if err := n.submitSearch(page); err != nil {
			return err
		}

		raw, err := page.Evaluate(outerHTMLJS, n.cfg.Selectors.Catalog.ResultsTable)
		if err != nil {
			return err
		}
		fragment, _ := raw.(string)
		rows = adf.ParseTable(fragment)
		return nil
	})
	if rows == nil {
		rows = []*sia.TableRow{}
	}
	return rows, err
}

// CourseDetailHTML walks the cascade, searches, clicks through to the course
// named by params.CourseCode, and returns the detail page's full HTML. An
// unmatched code returns "", not an error: the caller decides whether a
// missing course is fatal.
func (n *Navigator) CourseDetailHTML(ctx context.Context, params DetailParams) (string, error) {
	var html string
	err := n.withPage(ctx, func(page playwright.Page) error {
		if err := n.driveCascade(page, params.Level, params.Sede, params.Faculty, params.Program); err != nil {
			return err
		}
		if err := n.submitSearch(page); err != nil {
			return err
		}

		raw, err := page.Evaluate(clickCourseCellJS, strings.TrimSpace(params.CourseCode))
		if err != nil {
			return err
		}
		if clicked, _ := raw.(bool); !clicked {
			n.log.Infof("course %s not present in results", params.CourseCode)
			return nil
		}
		n.waitForSettle(page, 15000)

		html, err = page.Content()
		return err
	})
	return html, err
}

// driveCascade walks level, campus, faculty and program in strict order.
func (n *Navigator) driveCascade(page playwright.Page, level, sede, faculty, program string) error {
	if err := n.selectLevel(page, level); err != nil {
		return err
	}
	if err := n.selectSede(page, sede); err != nil {
		return err
	}
	if err := n.selectFaculty(page, faculty); err != nil {
		return err
	}
	return n.selectProgram(page, program)
}

// applyFilters applies the optional typology, name and credits filters.
// Each is best-effort: the portal drops and renames these inputs across
// upgrades, so a missing one is logged and skipped, never fatal. The
// days-of-week filter the portal renders has no known stable selector and is
// skipped entirely.
func (n *Navigator) applyFilters(page playwright.Page, params SearchParams) {
	sel := n.cfg.Selectors.Catalog

	if params.Typology != "" {
		label := params.Typology
		if mapped, ok := config.TypologyLabels[params.Typology]; ok {
			label = mapped
		}
		if _, err := page.SelectOption(sel.Typology, playwright.SelectOptionValues{
			Labels: &[]string{label},
		}); err != nil {
			n.log.Debugf("typology filter %q skipped: %v", label, err)
		}
	}

	if params.Name != "" {
		if !n.fillFirst(page, params.Name, sel.NameInput, `input[id*="it1"]`) {
			n.log.Debugf("name filter input not found, skipped")
		}
	}

	if params.Credits > 0 {
		if !n.fillFirst(page, strconv.Itoa(params.Credits), sel.CreditsInput, `input[id*="it2"]`) {
			n.log.Debugf("credits filter input not found, skipped")
		}
	}
}

// fillFirst fills the first selector that matches an element.
func (n *Navigator) fillFirst(page playwright.Page, value string, selectors ...string) bool {
	for _, s := range selectors {
		el, err := page.QuerySelector(s)
		if err != nil || el == nil {
			continue
		}
		if err := el.Fill(value); err == nil {
			return true
		}
	}
	return false
}

// submitSearch clicks the search button and lets the results region load.
func (n *Navigator) submitSearch(page playwright.Page) error {
	if err := page.Click(n.cfg.Selectors.Catalog.SearchButton); err != nil {
		return err
	}
	n.waitForSettle(page, 15000)
	return nil
}
