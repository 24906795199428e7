package walker

import (
	"os"
	"path/filepath"

	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
	"github.com/tristendillon/approute/core/parser"
	"github.com/tristendillon/approute/core/project"
)

// HandlerExtractor returns the method handlers declared in a route file.
type HandlerExtractor interface {
	Extract(path string) []models.Handler
}

// ExtractorFunc adapts a plain function to HandlerExtractor.
type ExtractorFunc func(path string) []models.Handler

func (f ExtractorFunc) Extract(path string) []models.Handler {
	return f(path)
}

type RouteWalker interface {
	Walk(root string) *models.Forest
}

type RouteWalkerImpl struct {
	Exclude       []string
	PrivatePrefix string
	Extractor     HandlerExtractor
}

func NewRouteWalker(cfg *config.Config, extractor HandlerExtractor) *RouteWalkerImpl {
	if extractor == nil {
		extractor = ExtractorFunc(parser.ExtractHandlers)
	}
	return &RouteWalkerImpl{
		Exclude:       cfg.ExcludeNames(),
		PrivatePrefix: cfg.PrivatePrefix,
		Extractor:     extractor,
	}
}

// Walk builds a fresh forest from the routing root. It only reads the
// filesystem; a directory that cannot be read is logged and skipped.
func (w *RouteWalkerImpl) Walk(root string) *models.Forest {
	var routes []models.Route
	visited := make(map[string]bool)

	w.walkDir(root, nil, visited, &routes)

	forest := models.NewForest(routes)
	logger.Debug("Scanned %s: %d routes", root, forest.Len())
	return forest
}

func (w *RouteWalkerImpl) walkDir(dir string, segments []models.RouteSegment, visited map[string]bool, routes *[]models.Route) {
	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		logger.Warn("Skipping %s: %v", dir, err)
		return
	}
	if visited[real] {
		logger.Debug("Already visited %s, skipping", dir)
		return
	}
	visited[real] = true

	entries, err := os.ReadDir(dir)
	if err != nil {
		logger.Warn("Skipping %s: %v", dir, err)
		return
	}

	if routeFile, ok := project.FindHandlerFile(dir); ok {
		handlers := w.Extractor.Extract(routeFile)
		if len(handlers) > 0 {
			route := models.Route{
				APIPath:  models.LogicalPath(segments),
				FilePath: routeFile,
				Segments: append([]models.RouteSegment(nil), segments...),
				Kind:     models.KindOf(segments),
				Handlers: handlers,
			}
			*routes = append(*routes, route)
			logger.Debug("Registered route: %s (methods: %v)", route.APIPath, route.Methods())
		} else {
			logger.Debug("No handlers in %s", routeFile)
		}
	}

	for _, entry := range entries {
		name := entry.Name()
		if w.isExcluded(name) {
			continue
		}

		child := filepath.Join(dir, name)
		if !isDir(entry, child) {
			continue
		}

		segment := models.ClassifySegment(name, w.PrivatePrefix)
		if segment.Kind == models.SegmentPrivate {
			continue
		}

		next := make([]models.RouteSegment, len(segments), len(segments)+1)
		copy(next, segments)
		w.walkDir(child, append(next, segment), visited, routes)
	}
}

func (w *RouteWalkerImpl) isExcluded(name string) bool {
	for _, ex := range w.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}

// isDir follows symlinks so linked directories are walked; cycles are cut by the visited set.
func isDir(entry os.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
