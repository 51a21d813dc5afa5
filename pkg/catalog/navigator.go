// Package catalog drives the public course catalog's cascading search form.
// The form is a chain of dependent dropdowns (level, campus, faculty,
// program, typology) where each selection triggers a server round trip that
// repopulates the next field. The navigator walks the chain in strict order,
// fires the framework's internal cascade dispatch after every selection, and
// verifies each dependent dropdown actually repopulated.
package catalog

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/browser"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/ratelimit"
	"github.com/unal-mcp/sia-mcp/pkg/retry"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// Navigator runs catalog operations on throwaway pages of the shared
// browser. Safe for sequential use; the rate limiter serializes operations
// that race.
type Navigator struct {
	browsers *browser.Manager
	cfg      *config.Config
	limiter  *ratelimit.Limiter
	log      *logging.Logger
}

// NewNavigator creates a Navigator on the shared browser.
func NewNavigator(browsers *browser.Manager, cfg *config.Config, limiter *ratelimit.Limiter) *Navigator {
	log, _ := logging.NewLogger("catalog")
	return &Navigator{
		browsers: browsers,
		cfg:      cfg,
		limiter:  limiter,
		log:      log,
	}
}

// Close releases the navigator's logger. The shared browser is owned by its
// own manager.
func (n *Navigator) Close() {
	_ = n.log.Close()
}

// withPage opens a fresh page, navigates to the catalog search form, hands
// the page to fn, and closes it on every path. The initial navigation is
// retried: the portal intermittently serves slow or truncated loads.
func (n *Navigator) withPage(ctx context.Context, fn func(page playwright.Page) error) error {
	if err := n.limiter.Wait(ctx); err != nil {
		return err
	}

	page, err := n.browsers.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	err = retry.Do(ctx, retry.DefaultOptions(), func() error {
		return n.navigateToCatalog(page)
	})
	if err != nil {
		return err
	}

	return fn(page)
}

// navigateToCatalog loads the catalog search page. "load" matters: the
// framework registers its cascade handlers on load, not DOMContentLoaded.
func (n *Navigator) navigateToCatalog(page playwright.Page) error {
	if _, err := page.Goto(config.URLCatalogSearch, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   playwright.Float(45000),
	}); err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	if _, err := page.WaitForSelector(n.cfg.Selectors.Catalog.Level, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		return fmt.Errorf("catalog form did not render: %w", err)
	}
	return nil
}

// selectLevel walks the first cascade step: level enables the campus
// dropdown.
func (n *Navigator) selectLevel(page playwright.Page, level string) error {
	sel := n.cfg.Selectors.Catalog
	if err := n.selectAndWaitPPR(page, func() error {
		return n.selectOption(page, sel.Level, level)
	}, 10000); err != nil {
		return err
	}
	n.waitForEnabled(page, sel.Sede, 10000)
	return nil
}

// selectSede walks the second cascade step: campus repopulates the faculty
// dropdown. An empty sede falls back to the configured default campus, and a
// failed match is logged and skipped rather than fatal, since the form keeps
// a usable default selection.
func (n *Navigator) selectSede(page playwright.Page, sede string) error {
	sel := n.cfg.Selectors.Catalog
	if sede == "" {
		sede = n.cfg.Sede
	}

	before := n.optionCount(page, sel.Faculty)
	err := n.selectAndWaitPPR(page, func() error {
		if err := n.selectByLabel(page, sel.Sede, sede); err != nil {
			n.log.Debugf("campus %q not selected: %v", sede, err)
		}
		return nil
	}, 10000)
	if err != nil {
		return err
	}
	n.waitForPopulated(page, sel.Faculty, 2, 8000)
	n.checkCascadeFired(page, "campus", sel.Faculty, before)
	return nil
}

// selectFaculty walks the third cascade step: faculty repopulates the
// program dropdown. A failed faculty match is fatal; nothing below it can be
// reached.
func (n *Navigator) selectFaculty(page playwright.Page, faculty string) error {
	sel := n.cfg.Selectors.Catalog

	before := n.optionCount(page, sel.Program)
	err := n.selectAndWaitPPR(page, func() error {
		return n.selectByLabel(page, sel.Faculty, faculty)
	}, 10000)
	if err != nil {
		return err
	}
	n.waitForPopulated(page, sel.Program, 2, 8000)
	n.checkCascadeFired(page, "faculty", sel.Program, before)
	return nil
}

// selectProgram walks the fourth step. Program has no dependent dropdown to
// observe, so a short settle wait stands in for the response check.
func (n *Navigator) selectProgram(page playwright.Page, program string) error {
	if err := n.selectByLabel(page, n.cfg.Selectors.Catalog.Program, program); err != nil {
		return err
	}
	n.waitForSettle(page, 3000)
	return nil
}

// checkCascadeFired compares a dependent dropdown's option count with its
// pre-trigger value and warns when it did not change. A silent non-cascade
// here is the most common failure mode after a portal upgrade, and it is
// otherwise invisible: the stale options simply produce wrong matches later.
func (n *Navigator) checkCascadeFired(page playwright.Page, step, dependentSel string, before int) {
	after := n.optionCount(page, dependentSel)
	if after == before {
		n.log.Warnf("%s cascade may not have fired: %s still has %d options", step, dependentSel, after)
	}
}

// ListFaculties returns the faculties available for a level and campus.
// An empty sede uses the configured default campus.
func (n *Navigator) ListFaculties(ctx context.Context, level, sede string) ([]sia.DropdownOption, error) {
	var options []sia.DropdownOption
	err := n.withPage(ctx, func(page playwright.Page) error {
		if err := n.selectLevel(page, level); err != nil {
			return err
		}
		if err := n.selectSede(page, sede); err != nil {
			return err
		}
		var err error
		options, err = n.readOptions(page, n.cfg.Selectors.Catalog.Faculty)
		return err
	})
	return options, err
}

// ListPrograms returns the study programs of a faculty for a level and
// campus.
func (n *Navigator) ListPrograms(ctx context.Context, level, faculty, sede string) ([]sia.DropdownOption, error) {
	var options []sia.DropdownOption
	err := n.withPage(ctx, func(page playwright.Page) error {
		if err := n.selectLevel(page, level); err != nil {
			return err
		}
		if err := n.selectSede(page, sede); err != nil {
			return err
		}
		if err := n.selectFaculty(page, faculty); err != nil {
			return err
		}
		var err error
		options, err = n.readOptions(page, n.cfg.Selectors.Catalog.Program)
		return err
	})
	return options, err
}
