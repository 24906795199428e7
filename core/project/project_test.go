package project

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/approute/core/config"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestIsRoutableProject(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name     string
		manifest string
		dirs     []string
		want     bool
	}{
		{"dependency and app dir", `{"dependencies":{"next":"15.0.0"}}`, []string{"app"}, true},
		{"dev dependency and src/app", `{"devDependencies":{"next":"15.0.0"}}`, []string{"src/app"}, true},
		{"no dependency", `{"dependencies":{"react":"19"}}`, []string{"app"}, false},
		{"no routing root", `{"dependencies":{"next":"15"}}`, []string{"pages"}, false},
		{"unparseable manifest", `{"dependencies":`, []string{"app"}, false},
		{"no manifest", "", []string{"app"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.manifest != "" {
				write(t, filepath.Join(dir, "package.json"), tt.manifest)
			}
			for _, d := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, d), 0755))
			}
			assert.Equal(t, tt.want, IsRoutableProject(dir, cfg))
		})
	}
}

func TestFindRouteRootFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "app"), 0755))

	root, ok := FindRouteRoot(dir, config.Default())
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "app"), root)
}

func TestFindRouteRootIgnoresFiles(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "app"), "not a directory")

	_, ok := FindRouteRoot(dir, config.Default())
	assert.False(t, ok)
}

func TestFindHandlerFilePriority(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "route.js"), "")
	path, ok := FindHandlerFile(dir)
	require.True(t, ok)
	assert.Equal(t, "route.js", filepath.Base(path))

	write(t, filepath.Join(dir, "route.ts"), "")
	path, _ = FindHandlerFile(dir)
	assert.Equal(t, "route.ts", filepath.Base(path))

	_, ok = FindHandlerFile(t.TempDir())
	assert.False(t, ok)

	assert.True(t, IsHandlerFile("/x/route.tsx"))
	assert.False(t, IsHandlerFile("/x/page.tsx"))
}

func TestDominantExtension(t *testing.T) {
	t.Run("typed majority", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "app")
		write(t, filepath.Join(root, "a", "route.ts"), "")
		write(t, filepath.Join(root, "b", "page.tsx"), "")
		write(t, filepath.Join(root, "c", "route.js"), "")
		assert.Equal(t, "ts", DominantExtension(dir, root, 50, nil))
	})

	t.Run("untyped majority", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "app")
		write(t, filepath.Join(root, "a", "route.js"), "")
		write(t, filepath.Join(root, "b", "page.jsx"), "")
		assert.Equal(t, "js", DominantExtension(dir, root, 50, nil))
	})

	t.Run("empty falls back to tsconfig", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "app")
		require.NoError(t, os.MkdirAll(root, 0755))
		assert.Equal(t, "js", DominantExtension(dir, root, 50, nil))

		write(t, filepath.Join(dir, "tsconfig.json"), "{}")
		assert.Equal(t, "ts", DominantExtension(dir, root, 50, nil))
	})

	t.Run("excluded dirs are not sampled", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "app")
		write(t, filepath.Join(root, "a", "route.js"), "")
		for i := 0; i < 3; i++ {
			write(t, filepath.Join(root, "node_modules", fmt.Sprintf("m%d.ts", i)), "")
		}
		assert.Equal(t, "js", DominantExtension(dir, root, 50, []string{"node_modules"}))
	})

	t.Run("sample is bounded", func(t *testing.T) {
		dir := t.TempDir()
		root := filepath.Join(dir, "app")
		write(t, filepath.Join(root, "a.js"), "")
		write(t, filepath.Join(root, "b.ts"), "")
		write(t, filepath.Join(root, "c.ts"), "")
		assert.Equal(t, "js", DominantExtension(dir, root, 1, nil), "lexical walk stops after a.js")
	})
}
