package mutator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/shared"
	"github.com/tristendillon/approute/core/template_engine"
)

// Host is notified after a mutation changed the tree.
type Host interface {
	// Refresh asks for a rescan of the routing root.
	Refresh()
	// Open shows path to the user, positioned at the zero-based line.
	Open(path string, line int)
}

type nopHost struct{}

func (nopHost) Refresh()         {}
func (nopHost) Open(string, int) {}

// Mutator translates logical route edits into filesystem changes below one
// routing root. Operations run to completion; they are not serialised against
// each other or against a concurrent scan.
type Mutator struct {
	projectDir string
	routeRoot  string
	cfg        *config.Config
	engine     *template_engine.TemplateEngine
	host       Host
}

func NewMutator(projectDir, routeRoot string, cfg *config.Config, host Host) *Mutator {
	if host == nil {
		host = nopHost{}
	}
	root, err := filepath.Abs(routeRoot)
	if err != nil {
		root = filepath.Clean(routeRoot)
	}
	return &Mutator{
		projectDir: projectDir,
		routeRoot:  root,
		cfg:        cfg,
		engine:     template_engine.NewTemplateEngine(),
		host:       host,
	}
}

func (m *Mutator) RouteRoot() string {
	return m.routeRoot
}

func (m *Mutator) parse(raw string) (RouteInput, error) {
	return ParseRouteInput(raw, m.cfg.Create.DefaultMethod, m.cfg.PrivatePrefix)
}

// prune removes dir and then each empty ancestor, stopping below the routing
// root. Existence is re-checked at every step since another operation may
// already have removed a directory. Failures are logged, never returned.
func (m *Mutator) prune(dir string) {
	dir = filepath.Clean(dir)
	for dir != m.routeRoot && shared.IsWithin(m.routeRoot, dir) {
		entries, err := os.ReadDir(dir)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			logger.Warn("Failed to inspect %s for pruning: %v", dir, err)
			return
		case len(entries) > 0:
			return
		default:
			if err := os.Remove(dir); err != nil && !os.IsNotExist(err) {
				logger.Warn("Failed to prune %s: %v", dir, err)
				return
			}
			logger.Debug("Pruned empty directory %s", dir)
		}
		dir = filepath.Dir(dir)
	}
}

func writeFile(path string, content string, mode os.FileMode) error {
	if err := os.WriteFile(path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func fileMode(path string) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return 0644
}
