package session

import (
	"context"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/adf"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// SetupFunc adjusts a loaded private page before extraction, e.g. selecting
// an academic period on the grade report.
type SetupFunc func(page playwright.Page) error

// outerHTMLJS returns the outer HTML of the first selector match, or "".
const outerHTMLJS = `sel => { const el = document.querySelector(sel); return el ? el.outerHTML : ""; }`

// FetchTable loads a private page, optionally runs a setup step, and parses
// the table addressed by tableSelector. The page is closed on every path. An
// absent table yields zero rows, not an error: the portal renders empty
// regions instead of errors for periods with no data.
func (m *Manager) FetchTable(ctx context.Context, url, tableSelector string, setup SetupFunc) ([]*sia.TableRow, error) {
	fragment, err := m.FetchFragment(ctx, url, tableSelector, setup)
	if err != nil {
		return nil, err
	}
	return adf.ParseTable(fragment), nil
}

// FetchFragment loads a private page and returns the outer HTML of the first
// element matching selector, or "" when nothing matches.
func (m *Manager) FetchFragment(ctx context.Context, url, selector string, setup SetupFunc) (string, error) {
	var fragment string
	err := m.withPage(ctx, url, selector, setup, func(page playwright.Page) error {
		raw, err := page.Evaluate(outerHTMLJS, selector)
		if err != nil {
			return fmt.Errorf("failed to extract %s: %w", selector, err)
		}
		fragment, _ = raw.(string)
		return nil
	})
	return fragment, err
}

// FetchText loads a private page and returns the trimmed text of the first
// element matching selector, or "" when nothing matches.
func (m *Manager) FetchText(ctx context.Context, url, selector string, setup SetupFunc) (string, error) {
	var text string
	err := m.withPage(ctx, url, selector, setup, func(page playwright.Page) error {
		el, err := page.QuerySelector(selector)
		if err != nil || el == nil {
			return nil
		}
		t, err := el.TextContent()
		if err != nil {
			return nil
		}
		text = strings.TrimSpace(t)
		return nil
	})
	return text, err
}

// withPage is the shared fetch skeleton: rate limit, open a session page,
// navigate, run setup plus a settle delay for its partial refresh, wait
// bounded for the target selector, hand the page to extract, and close the
// page regardless of outcome. The selector wait is swallowed: a page with no
// data renders no region at all, which is a valid empty result.
func (m *Manager) withPage(ctx context.Context, url, selector string, setup SetupFunc, extract func(page playwright.Page) error) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return err
	}

	page, err := m.NewPage()
	if err != nil {
		return err
	}
	defer page.Close()

	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}

	if setup != nil {
		if err := setup(page); err != nil {
			return err
		}
		// Setup triggers a partial refresh with no reliable completion
		// event; give the region time to re-render.
		page.WaitForTimeout(2000)
	}

	if _, err := page.WaitForSelector(selector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(15000),
	}); err != nil {
		m.log.Debugf("selector %s not found on %s", selector, url)
	}

	return extract(page)
}
