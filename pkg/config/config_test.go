package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SIA_SEDE", "")
	t.Setenv("SIA_HEADLESS", "")
	t.Setenv("SIA_RATE_LIMIT_DELAY", "")
	t.Setenv("SIA_CACHE_TTL", "")
	t.Setenv("SIA_SELECTORS_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultSede, cfg.Sede)
	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultRateLimitDelay, cfg.RateLimitDelay)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
	assert.Equal(t, DefaultSelectors(), cfg.Selectors)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("SIA_SEDE", "bogota")
	t.Setenv("SIA_HEADLESS", "false")
	t.Setenv("SIA_RATE_LIMIT_DELAY", "500ms")
	t.Setenv("SIA_CACHE_TTL", "1m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "bogota", cfg.Sede)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 500*time.Millisecond, cfg.RateLimitDelay)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestDurationAcceptsBareMilliseconds(t *testing.T) {
	t.Setenv("SIA_RATE_LIMIT_DELAY", "2000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, cfg.RateLimitDelay)
}

func TestInvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SIA_HEADLESS", "quizas")
	t.Setenv("SIA_CACHE_TTL", "pronto")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Headless)
	assert.Equal(t, DefaultCacheTTL, cfg.CacheTTL)
}

func TestSelectorOverridesMergePartially(t *testing.T) {
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	override := "catalog:\n  level: '#new-level'\nlogin:\n  submit_button: '#enviar'\n"
	require.NoError(t, os.WriteFile(path, []byte(override), 0600))

	t.Setenv("SIA_SELECTORS_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "#new-level", cfg.Selectors.Catalog.Level)
	assert.Equal(t, "#enviar", cfg.Selectors.Login.SubmitButton)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultSelectors().Catalog.Sede, cfg.Selectors.Catalog.Sede)
	assert.Equal(t, DefaultSelectors().Login.UsernameInput, cfg.Selectors.Login.UsernameInput)
}

func TestSelectorOverridesMissingFileFails(t *testing.T) {
	t.Setenv("SIA_SELECTORS_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestDefaultSelectorsCascadeTargetsCoverDependentFields(t *testing.T) {
	sel := DefaultSelectors().Catalog
	require.Len(t, sel.CascadeTargets, 4)
	assert.Equal(t, []string{
		"pt1:r1:0:soc9",
		"pt1:r1:0:soc2",
		"pt1:r1:0:soc3",
		"pt1:r1:0:soc4",
	}, sel.CascadeTargets)
}

func TestLevelAndTypologyCodes(t *testing.T) {
	assert.Equal(t, "pre", Levels["pregrado"])
	assert.Equal(t, "pos", Levels["posgrado"])
	assert.Equal(t, "", Levels["all"])
	assert.Equal(t, "l", Typologies["libre_eleccion"])
	assert.Equal(t, "Libre Elección", TypologyLabels["libre_eleccion"])
}
