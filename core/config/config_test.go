package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, []string{"app", filepath.Join("src", "app")}, cfg.RouteRoots)
	assert.Equal(t, "next", cfg.FrameworkDependency)
	assert.Equal(t, "_", cfg.PrivatePrefix)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Equal(t, "GET", cfg.Create.DefaultMethod)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `
route_roots: ["routes"]
ignore: ["generated"]
watch:
  debounce: 1s
  vcs: false
create:
  sample_limit: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"routes"}, cfg.RouteRoots)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.False(t, cfg.Watch.VCS)
	assert.Equal(t, 5, cfg.Create.SampleLimit)
	assert.Equal(t, "package.json", cfg.Manifest, "unset keys keep defaults")
	assert.Contains(t, cfg.ExcludeNames(), "generated")
	assert.Contains(t, cfg.ExcludeNames(), "node_modules")
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad yaml", "route_roots: [app"},
		{"empty roots", "route_roots: []"},
		{"bad method", "create:\n  default_method: FETCH"},
		{"zero sample", "create:\n  sample_limit: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(tt.content), 0644))

			_, err := Load(dir)
			assert.Error(t, err)
		})
	}
}
