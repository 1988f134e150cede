package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GRADECELL_CANVAS_URL", "")
	t.Setenv("GRADECELL_CANVAS_TOKEN", "")

	cfg := LoadConfig()

	assert.False(t, cfg.Configured())
	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 100, cfg.PerPage)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("GRADECELL_CANVAS_URL", "https://school.instructure.com/")
	t.Setenv("GRADECELL_CANVAS_TOKEN", "abc")
	t.Setenv("GRADECELL_CANVAS_TIMEOUT_MS", "2500")
	t.Setenv("GRADECELL_CANVAS_PER_PAGE", "50")

	cfg := LoadConfig()

	assert.True(t, cfg.Configured())
	assert.Equal(t, "https://school.instructure.com", cfg.BaseURL)
	assert.Equal(t, "abc", cfg.Token)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.Equal(t, 50, cfg.PerPage)
}

func TestLoadConfig_InvalidNumbersIgnored(t *testing.T) {
	t.Setenv("GRADECELL_CANVAS_TIMEOUT_MS", "soon")
	t.Setenv("GRADECELL_CANVAS_PER_PAGE", "-3")

	cfg := LoadConfig()

	assert.Equal(t, 15000, cfg.TimeoutMs)
	assert.Equal(t, 100, cfg.PerPage)
}
