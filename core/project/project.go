// Package project decides whether a workspace is a routable project and
// answers the layout questions the scanner and mutator ask about it.
package project

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
)

// HandlerFileNames lists route handler file names in lookup priority order.
var HandlerFileNames = []string{"route.ts", "route.tsx", "route.js", "route.jsx"}

type manifest struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// IsRoutableProject reports whether rootDir declares the framework dependency
// and contains a routing root. Unreadable manifests count as not routable.
func IsRoutableProject(rootDir string, cfg *config.Config) bool {
	if !HasFrameworkDependency(rootDir, cfg) {
		return false
	}
	_, ok := FindRouteRoot(rootDir, cfg)
	return ok
}

func HasFrameworkDependency(rootDir string, cfg *config.Config) bool {
	path := filepath.Join(rootDir, cfg.Manifest)
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("No manifest at %s: %v", path, err)
		return false
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		logger.Debug("Failed to parse manifest %s: %v", path, err)
		return false
	}

	if _, ok := m.Dependencies[cfg.FrameworkDependency]; ok {
		return true
	}
	_, ok := m.DevDependencies[cfg.FrameworkDependency]
	return ok
}

// FindRouteRoot returns the first configured routing root that is a directory.
func FindRouteRoot(rootDir string, cfg *config.Config) (string, bool) {
	for _, rel := range cfg.RouteRoots {
		candidate := filepath.Join(rootDir, rel)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// FindHandlerFile returns the handler file inside dir, if any.
func FindHandlerFile(dir string) (string, bool) {
	for _, name := range HandlerFileNames {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

// IsHandlerFile reports whether the base name of path is a handler file name.
func IsHandlerFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range HandlerFileNames {
		if base == name {
			return true
		}
	}
	return false
}

// IsTypedExtension reports whether ext (with or without dot) is a typed source extension.
func IsTypedExtension(ext string) bool {
	ext = strings.TrimPrefix(ext, ".")
	return ext == "ts" || ext == "tsx"
}

// DominantExtension samples up to limit source files below routeRoot and
// returns "ts" or "js". Ties and empty samples fall back to "ts" when the
// project carries a tsconfig.json.
func DominantExtension(projectDir, routeRoot string, limit int, exclude []string) string {
	typed, untyped, sampled := 0, 0, 0

	filepath.WalkDir(routeRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			for _, ex := range exclude {
				if d.Name() == ex {
					return filepath.SkipDir
				}
			}
			return nil
		}

		switch filepath.Ext(path) {
		case ".ts", ".tsx":
			typed++
		case ".js", ".jsx":
			untyped++
		default:
			return nil
		}
		sampled++
		if sampled >= limit {
			return fs.SkipAll
		}
		return nil
	})

	logger.Debug("Sampled %d source files: %d typed, %d untyped", sampled, typed, untyped)

	switch {
	case typed > untyped:
		return "ts"
	case untyped > typed:
		return "js"
	}
	if _, err := os.Stat(filepath.Join(projectDir, "tsconfig.json")); err == nil {
		return "ts"
	}
	return "js"
}
