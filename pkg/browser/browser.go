// Package browser owns the shared Playwright driver and Chromium process.
// One browser serves the whole process: the public catalog navigator opens
// throwaway pages on it, and the session manager creates its authenticated
// context on it. The browser is launched lazily on first use and relaunched
// if it is found disconnected.
package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
)

// Manager is the explicit lifecycle handle for the shared browser. Pass it
// by reference to collaborators; there is no package-level instance.
type Manager struct {
	mu       sync.Mutex
	pw       *playwright.Playwright
	browser  playwright.Browser
	headless bool
}

// NewManager creates a Manager. Nothing is launched until Browser is called.
func NewManager(headless bool) *Manager {
	return &Manager{headless: headless}
}

// Browser returns the shared browser, launching Playwright and Chromium on
// first use and relaunching if the previous browser process died.
func (m *Manager) Browser() (playwright.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil && m.browser.IsConnected() {
		return m.browser, nil
	}

	if m.pw == nil {
		// Discard driver output: stdout belongs to the stdio transport.
		opts := &playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		}
		if err := playwright.Install(opts); err != nil {
			return nil, fmt.Errorf("failed to install playwright: %w", err)
		}
		pw, err := playwright.Run(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to start playwright: %w", err)
		}
		m.pw = pw
	}

	browser, err := m.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(m.headless),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}
	m.browser = browser
	return m.browser, nil
}

// NewPage opens a fresh page in its own throwaway context. Each logical
// operation gets its own page and must close it on every exit path; pages
// are never reused across operations.
func (m *Manager) NewPage() (playwright.Page, error) {
	b, err := m.Browser()
	if err != nil {
		return nil, err
	}
	page, err := b.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

// Close tears down the browser and stops the Playwright driver, swallowing
// close-time errors. Safe to call multiple times.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.browser != nil {
		_ = m.browser.Close() // ignore errors, continue cleanup
		m.browser = nil
	}
	if m.pw != nil {
		_ = m.pw.Stop()
		m.pw = nil
	}
}
