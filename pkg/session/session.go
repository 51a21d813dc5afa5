// Package session manages the authenticated portal session: a dedicated
// browser context holding the login cookies, a 20 minute expiry clock, and
// page factories for the private pages.
package session

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/unal-mcp/sia-mcp/pkg/browser"
	"github.com/unal-mcp/sia-mcp/pkg/config"
	"github.com/unal-mcp/sia-mcp/pkg/logging"
	"github.com/unal-mcp/sia-mcp/pkg/ratelimit"
	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// TTL is how long the portal keeps a session alive. The server gives no
// renewal signal, so expiry is tracked locally from the moment login
// succeeds.
const TTL = 20 * time.Minute

var portalURLRe = regexp.MustCompile(`(?i)ServiciosApp`)

// Manager owns the authenticated browser context. Zero value is not usable;
// construct with NewManager.
type Manager struct {
	browsers *browser.Manager
	cfg      *config.Config
	limiter  *ratelimit.Limiter
	log      *logging.Logger

	mu        sync.Mutex
	context   playwright.BrowserContext
	username  string
	expiresAt time.Time
}

// NewManager creates a session manager on the shared browser. No browser
// work happens until Authenticate.
func NewManager(browsers *browser.Manager, cfg *config.Config, limiter *ratelimit.Limiter) *Manager {
	log, _ := logging.NewLogger("session")
	return &Manager{
		browsers: browsers,
		cfg:      cfg,
		limiter:  limiter,
		log:      log,
	}
}

// Authenticate logs into the portal with the given credentials. Any previous
// session is destroyed first, whether or not the new login succeeds. On
// success the manager holds an authenticated context good for TTL.
func (m *Manager) Authenticate(username, password string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.destroyLocked()

	b, err := m.browsers.Browser()
	if err != nil {
		return err
	}
	bctx, err := b.NewContext()
	if err != nil {
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return fmt.Errorf("failed to open login page: %w", err)
	}
	// The login page is single-use either way.
	defer page.Close()

	if err := m.login(page, username, password); err != nil {
		_ = bctx.Close()
		return err
	}

	m.context = bctx
	m.username = username
	m.expiresAt = time.Now().Add(TTL)
	m.log.Infof("authenticated %s, session expires %s", username, m.expiresAt.Format(time.RFC3339))
	return nil
}

// login drives the centralized login form. The portal redirects unauthenticated
// visits to it; landing back on a ServiciosApp URL is the success signal.
func (m *Manager) login(page playwright.Page, username, password string) error {
	sel := m.cfg.Selectors.Login

	if _, err := page.Goto(config.URLPortal, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return fmt.Errorf("failed to load portal: %w", err)
	}

	if err := page.Fill(sel.UsernameInput, username); err != nil {
		return fmt.Errorf("failed to fill username: %w", err)
	}
	if err := page.Fill(sel.PasswordInput, password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}
	if err := page.Click(sel.SubmitButton); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}

	err := page.WaitForURL(portalURLRe, playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(20000),
	})
	if err == nil {
		return nil
	}

	// Still on the login page: surface whatever rejection it rendered.
	return &sia.AuthError{
		ServerMessage: m.loginErrorMessage(page),
		Err:           err,
	}
}

// loginErrorMessage scrapes the login page's error region, tolerating skins
// that render none.
func (m *Manager) loginErrorMessage(page playwright.Page) string {
	el, err := page.QuerySelector(m.cfg.Selectors.Login.ErrorRegion)
	if err != nil || el == nil {
		return ""
	}
	text, err := el.TextContent()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

// State reports the session state, expiring it lazily: the first call after
// the TTL passes tears the context down and reports unauthenticated.
func (m *Manager) State() sia.SessionState {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.context != nil && time.Now().After(m.expiresAt) {
		m.log.Infof("session for %s expired", m.username)
		m.destroyLocked()
	}
	if m.context == nil {
		return sia.SessionState{}
	}
	expires := m.expiresAt
	return sia.SessionState{
		Authenticated: true,
		Username:      m.username,
		ExpiresAt:     &expires,
	}
}

// NewPage opens a page inside the authenticated context. Callers own the
// page and must close it on every exit path. Returns ErrNoActiveSession when
// there is no live session.
func (m *Manager) NewPage() (playwright.Page, error) {
	if !m.State().Authenticated {
		return nil, sia.ErrNoActiveSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.context == nil {
		return nil, sia.ErrNoActiveSession
	}
	page, err := m.context.NewPage()
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	return page, nil
}

// Destroy ends the session, closing the authenticated context. Errors during
// teardown are swallowed; afterwards the manager always reports
// unauthenticated.
func (m *Manager) Destroy() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.destroyLocked()
}

func (m *Manager) destroyLocked() {
	if m.context != nil {
		_ = m.context.Close() // ignore errors, state is reset regardless
		m.context = nil
	}
	m.username = ""
	m.expiresAt = time.Time{}
}

// Close tears down the session and releases the logger.
func (m *Manager) Close() {
	m.Destroy()
	_ = m.log.Close()
}
