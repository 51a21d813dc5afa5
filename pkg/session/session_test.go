package session

import (
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unal-mcp/sia-mcp/pkg/sia"
)

// fakeContext stubs the one BrowserContext method the state machine touches.
type fakeContext struct {
	playwright.BrowserContext
	closed bool
}

func (f *fakeContext) Close(...playwright.BrowserContextCloseOptions) error {
	f.closed = true
	return nil
}

func TestStateUnauthenticated(t *testing.T) {
	m := NewManager(nil, nil, nil)
	defer m.Close()

	state := m.State()
	assert.False(t, state.Authenticated)
	assert.Empty(t, state.Username)
	assert.Nil(t, state.ExpiresAt)
}

func TestNewPageRequiresSession(t *testing.T) {
	m := NewManager(nil, nil, nil)
	defer m.Close()

	_, err := m.NewPage()
	assert.ErrorIs(t, err, sia.ErrNoActiveSession)
}

func TestStateWhileSessionLive(t *testing.T) {
	m := NewManager(nil, nil, nil)
	defer m.Close()

	expires := time.Now().Add(10 * time.Minute)
	m.context = &fakeContext{}
	m.username = "jdoe"
	m.expiresAt = expires

	state := m.State()
	assert.True(t, state.Authenticated)
	assert.Equal(t, "jdoe", state.Username)
	require.NotNil(t, state.ExpiresAt)
	assert.WithinDuration(t, expires, *state.ExpiresAt, time.Second)
}

func TestStateLazyExpiry(t *testing.T) {
	m := NewManager(nil, nil, nil)
	defer m.Close()

	fake := &fakeContext{}
	m.context = fake
	m.username = "jdoe"
	m.expiresAt = time.Now().Add(-time.Minute)

	state := m.State()
	assert.False(t, state.Authenticated)
	assert.True(t, fake.closed, "expired context must be torn down")

	_, err := m.NewPage()
	assert.ErrorIs(t, err, sia.ErrNoActiveSession)
}

func TestDestroyIsIdempotent(t *testing.T) {
	m := NewManager(nil, nil, nil)
	defer m.Close()

	fake := &fakeContext{}
	m.context = fake
	m.username = "jdoe"
	m.expiresAt = time.Now().Add(TTL)

	m.Destroy()
	assert.True(t, fake.closed)
	assert.False(t, m.State().Authenticated)

	m.Destroy()
	assert.False(t, m.State().Authenticated)
}
