package explorer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/tristendillon/approute/core/cache"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
	"github.com/tristendillon/approute/core/mutator"
	"github.com/tristendillon/approute/core/project"
	"github.com/tristendillon/approute/core/walker"
	"github.com/tristendillon/approute/core/watcher"
)

// ErrNotRoutable is returned by New for directories that fail project validation.
var ErrNotRoutable = errors.New("not a routable project")

// Explorer owns the current route forest of one project. The forest is
// replaced wholesale on every Refresh; readers see the old or the new one.
type Explorer struct {
	projectDir string
	routeRoot  string
	cfg        *config.Config

	cache   *cache.FileCache
	walker  walker.RouteWalker
	mutator *mutator.Mutator

	forest atomic.Pointer[models.Forest]

	mu        sync.Mutex
	listeners []func(*models.Forest)
	opener    func(path string, line int)
}

// New validates projectDir and resolves its routing root. The forest stays
// empty until the first Refresh.
func New(projectDir string, cfg *config.Config) (*Explorer, error) {
	dir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", projectDir, err)
	}
	if !project.IsRoutableProject(dir, cfg) {
		return nil, fmt.Errorf("%s: %w: needs %s declaring %q and one of %v",
			dir, ErrNotRoutable, cfg.Manifest, cfg.FrameworkDependency, cfg.RouteRoots)
	}
	root, _ := project.FindRouteRoot(dir, cfg)

	fileCache := cache.NewFileCache(nil)
	e := &Explorer{
		projectDir: dir,
		routeRoot:  root,
		cfg:        cfg,
		cache:      fileCache,
		walker:     walker.NewRouteWalker(cfg, fileCache),
	}
	e.forest.Store(models.NewForest(nil))
	e.mutator = mutator.NewMutator(dir, root, cfg, e)
	logger.Debug("Project %s, routing root %s", dir, root)
	return e, nil
}

func (e *Explorer) ProjectDir() string        { return e.projectDir }
func (e *Explorer) RouteRoot() string         { return e.routeRoot }
func (e *Explorer) Config() *config.Config    { return e.cfg }
func (e *Explorer) Mutator() *mutator.Mutator { return e.mutator }

// Forest returns the most recently scanned forest.
func (e *Explorer) Forest() *models.Forest {
	return e.forest.Load()
}

// Scan rebuilds the forest from disk, swaps it in and notifies listeners.
func (e *Explorer) Scan() *models.Forest {
	forest := e.walker.Walk(e.routeRoot)
	e.forest.Store(forest)
	forest.PrintTree(logger.DEBUG)
	e.cache.LogStats()

	e.mu.Lock()
	listeners := make([]func(*models.Forest), len(e.listeners))
	copy(listeners, e.listeners)
	e.mu.Unlock()
	for _, fn := range listeners {
		fn(forest)
	}
	return forest
}

// Refresh implements mutator.Host.
func (e *Explorer) Refresh() {
	e.Scan()
}

// Open implements mutator.Host by forwarding to the registered opener.
func (e *Explorer) Open(path string, line int) {
	e.mu.Lock()
	opener := e.opener
	e.mu.Unlock()
	if opener != nil {
		opener(path, line)
	}
}

// OnChange registers fn to run after every scan with the new forest.
func (e *Explorer) OnChange(fn func(*models.Forest)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, fn)
}

// SetOpener sets the callback mutations use to show the file they touched.
func (e *Explorer) SetOpener(fn func(path string, line int)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.opener = fn
}

// Route resolves a logical path against the current forest.
func (e *Explorer) Route(apiPath string) (*models.Route, error) {
	in, err := mutator.ParseRouteInput(apiPath, e.cfg.Create.DefaultMethod, e.cfg.PrivatePrefix)
	if err != nil {
		return nil, err
	}
	if in.MethodGiven {
		return nil, &mutator.ValidationError{Input: apiPath, Reason: "expected a route path without a method"}
	}
	route, ok := e.Forest().Find(in.LogicalPath())
	if !ok {
		return nil, fmt.Errorf("route %s: %w", in.LogicalPath(), mutator.ErrNotFound)
	}
	return route, nil
}

func (e *Explorer) Create(raw string) (*mutator.CreateResult, error) {
	return e.mutator.Create(raw)
}

func (e *Explorer) Delete(apiPath string) error {
	route, err := e.Route(apiPath)
	if err != nil {
		return err
	}
	return e.mutator.Delete(route.FilePath, route.APIPath)
}

func (e *Explorer) Rename(apiPath, raw string, merge bool) (*mutator.RenameResult, error) {
	route, err := e.Route(apiPath)
	if err != nil {
		return nil, err
	}
	return e.mutator.Rename(*route, raw, merge)
}

// Watch rescans whenever the routing root settles after a burst of changes.
// It blocks until ctx is done.
func (e *Explorer) Watch(ctx context.Context) error {
	fw, err := watcher.NewFileWatcher(e.projectDir, e.routeRoot, e.cfg, e.Refresh)
	if err != nil {
		return err
	}
	defer fw.Close()
	fw.Invalidator = e.cache
	return fw.Watch(ctx)
}
