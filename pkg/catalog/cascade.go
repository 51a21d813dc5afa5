package catalog

import (
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/adf"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// JS snippets evaluated against the catalog form. Selectors are passed as
// arguments, never interpolated.
const (
	readOptionsJS = `sel => Array.from(document.querySelectorAll(sel + " option"))
		.filter(o => o.value && o.value.trim() !== "")
		.map(o => ({ value: o.value, label: (o.textContent || o.value).trim() }))`

	optionCountJS = `sel => document.querySelectorAll(sel + " option").length`

	populatedJS = `({ sel, min }) => document.querySelectorAll(sel + " option").length >= min`

	enabledJS = `sel => { const el = document.querySelector(sel); return !!el && !el.disabled; }`

	// adfTriggerJS invokes the UI framework's internal partial-update dispatch
	// for the changed select. selectOption fires the DOM change event, but in
	// headless mode the framework's event queue never reaches the server, so
	// the dispatch is called directly. The first POST it sends is rejected by
	// the portal's WAF (403) because the body carries serialized internal JS
	// objects; pre-registering every cascade-dependent field as a partial
	// target makes the framework retry with a clean body that passes (200) and
	// updates the DOM. Returns false when the framework hook is absent.
	adfTriggerJS = `({ sel, targets }) => {
		const select = document.querySelector(sel);
		if (!select || !select.name) return false;
		const adfPage = window.AdfPage && window.AdfPage.PAGE;
		if (!adfPage || typeof adfPage._sendRichPayload !== "function") return false;
		const comp = adfPage.findComponent(select.name);
		if (!comp) return false;
		for (const id of targets) {
			const c = adfPage.findComponent(id);
			if (c && c !== comp) adfPage.addPartialTargets(c);
		}
		adfPage._sendRichPayload(comp, null, null);
		return true;
	}`
)

// readOptions returns the non-empty options of a select.
func (n *Navigator) readOptions(page playwright.Page, selector string) ([]sia.DropdownOption, error) {
	raw, err := page.Evaluate(readOptionsJS, selector)
	if err != nil {
		return nil, err
	}
	items, _ := raw.([]interface{})
	options := make([]sia.DropdownOption, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		value, _ := m["value"].(string)
		label, _ := m["label"].(string)
		options = append(options, sia.DropdownOption{Value: value, Label: label})
	}
	return options, nil
}

// optionCount returns the total option count of a select, including the empty
// placeholder. Used to detect whether a cascade actually repopulated it.
func (n *Navigator) optionCount(page playwright.Page, selector string) int {
	raw, err := page.Evaluate(optionCountJS, selector)
	if err != nil {
		return 0
	}
	switch v := raw.(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

// matchOption finds the first option whose label fuzzily contains the given
// label (case folded, diacritics stripped). "medellin" matches
// "1102 SEDE MEDELLÍN". No match returns *sia.OptionNotFoundError carrying
// every available label.
func matchOption(options []sia.DropdownOption, label string) (sia.DropdownOption, error) {
	want := adf.Normalize(label)
	for _, o := range options {
		if strings.Contains(adf.Normalize(o.Label), want) {
			return o, nil
		}
	}
	available := make([]string, 0, len(options))
	for _, o := range options {
		available = append(available, o.Label)
	}
	return sia.DropdownOption{}, &sia.OptionNotFoundError{Label: label, Available: available}
}

// selectByLabel selects the first fuzzy label match, then fires the cascade
// dispatch.
func (n *Navigator) selectByLabel(page playwright.Page, selector, label string) error {
	options, err := n.readOptions(page, selector)
	if err != nil {
		return err
	}
	match, err := matchOption(options, label)
	if err != nil {
		return err
	}
	if _, err := page.SelectOption(selector, playwright.SelectOptionValues{
		Values: &[]string{match.Value},
	}); err != nil {
		return err
	}
	return n.adfTrigger(page, selector)
}

// selectOption tries an exact label match first, then falls back to fuzzy
// matching. Used for the level dropdown, whose canonical labels are known but
// arrive from callers in varied casing.
func (n *Navigator) selectOption(page playwright.Page, selector, value string) error {
	_, err := page.SelectOption(selector, playwright.SelectOptionValues{
		Labels: &[]string{value},
	})
	if err == nil {
		return n.adfTrigger(page, selector)
	}
	return n.selectByLabel(page, selector, value)
}

// adfTrigger fires the framework's partial-update dispatch for a changed
// select; see adfTriggerJS.
func (n *Navigator) adfTrigger(page playwright.Page, selector string) error {
	raw, err := page.Evaluate(adfTriggerJS, map[string]interface{}{
		"sel":     selector,
		"targets": n.cfg.Selectors.Catalog.CascadeTargets,
	})
	if err != nil {
		return err
	}
	if fired, _ := raw.(bool); !fired {
		n.log.Debugf("cascade dispatch unavailable for %s", selector)
	}
	return nil
}

// selectAndWaitPPR runs a selection with a response listener armed first, so
// the partial-update response cannot slip past between action and wait. A
// missing response is not an error: the first selection of a run has no
// cascade dependency to answer.
func (n *Navigator) selectAndWaitPPR(page playwright.Page, action func() error, timeoutMs float64) error {
	var actionErr error
	_, waitErr := page.ExpectResponse(func(resp playwright.Response) bool {
		return strings.Contains(resp.URL(), "servicioPublico.jsf") &&
			resp.Request().Method() == "POST" &&
			resp.Status() == 200
	}, func() error {
		actionErr = action()
		return actionErr
	}, playwright.PageExpectResponseOptions{Timeout: playwright.Float(timeoutMs)})

	if actionErr != nil {
		return actionErr
	}
	if waitErr != nil {
		n.log.Debugf("no cascade response within %.0fms", timeoutMs)
	}
	return nil
}

// waitForPopulated waits until a select holds at least min options. Checking
// the DOM condition directly is more reliable than networkidle. Timeout is
// swallowed: readers take whatever options are there.
func (n *Navigator) waitForPopulated(page playwright.Page, selector string, min int, timeoutMs float64) {
	_, err := page.WaitForFunction(populatedJS, map[string]interface{}{
		"sel": selector,
		"min": min,
	}, playwright.PageWaitForFunctionOptions{Timeout: playwright.Float(timeoutMs)})
	if err != nil {
		n.log.Debugf("dropdown %s not populated within %.0fms", selector, timeoutMs)
	}
}

// waitForEnabled waits until a select is enabled. The campus dropdown arrives
// pre-populated but disabled until the level cascade fires, so an option
// count wait would pass immediately there. Timeout is swallowed.
func (n *Navigator) waitForEnabled(page playwright.Page, selector string, timeoutMs float64) {
	_, err := page.WaitForFunction(enabledJS, selector,
		playwright.PageWaitForFunctionOptions{Timeout: playwright.Float(timeoutMs)})
	if err != nil {
		n.log.Debugf("dropdown %s not enabled within %.0fms", selector, timeoutMs)
	}
}

// waitForSettle lets in-flight cascade XHR finish after a selection that has
// no dependent dropdown to observe. Timeout is swallowed.
func (n *Navigator) waitForSettle(page playwright.Page, timeoutMs float64) {
	err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(timeoutMs),
	})
	if err != nil {
		n.log.Debugf("cascade settle timed out after %.0fms", timeoutMs)
	}
}
