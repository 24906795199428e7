package models

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tristendillon/approute/core/logger"
)

// HTTPMethods are the handler names recognised in route files, in canonical order.
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// IsHTTPMethod reports whether name is a recognised method, ignoring case.
func IsHTTPMethod(name string) bool {
	upper := strings.ToUpper(name)
	for _, m := range HTTPMethods {
		if m == upper {
			return true
		}
	}
	return false
}

type RouteKind int

const (
	RouteStatic RouteKind = iota
	RouteDynamic
	RouteCatchAll
)

func (k RouteKind) String() string {
	switch k {
	case RouteDynamic:
		return "dynamic"
	case RouteCatchAll:
		return "catch-all"
	default:
		return "static"
	}
}

func (k RouteKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Handler is one exported method implementation. Route is the index of the
// owning route inside its Forest, or -1 before the handler is placed in one.
type Handler struct {
	Method string `json:"method" yaml:"method"`
	Line   int    `json:"line" yaml:"line"`
	Route  int    `json:"-" yaml:"-"`
}

type Route struct {
	APIPath  string         `json:"path" yaml:"path"`
	FilePath string         `json:"file" yaml:"file"`
	Segments []RouteSegment `json:"segments,omitempty" yaml:"segments,omitempty"`
	Kind     RouteKind      `json:"kind" yaml:"kind"`
	Handlers []Handler      `json:"handlers" yaml:"handlers"`
	Parent   int            `json:"-" yaml:"-"`
}

func (r *Route) Methods() []string {
	methods := make([]string, len(r.Handlers))
	for i, h := range r.Handlers {
		methods[i] = h.Method
	}
	return methods
}

func (r *Route) Handler(method string) (Handler, bool) {
	upper := strings.ToUpper(method)
	for _, h := range r.Handlers {
		if h.Method == upper {
			return h, true
		}
	}
	return Handler{}, false
}

// LogicalPath joins the display tokens of the path-contributing segments.
func LogicalPath(segments []RouteSegment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s.InPath() {
			parts = append(parts, s.Display)
		}
	}
	return "/" + strings.Join(parts, "/")
}

// KindOf derives a route kind from its segments. Catch-all wins over dynamic.
func KindOf(segments []RouteSegment) RouteKind {
	kind := RouteStatic
	for _, s := range segments {
		if s.Kind.IsCatchAll() {
			return RouteCatchAll
		}
		if s.Kind.IsParam() {
			kind = RouteDynamic
		}
	}
	return kind
}

// Forest is the scanned set of routes. Routes are stored in one slice and refer
// to each other by index, so a forest is replaced as a whole and never patched.
type Forest struct {
	Routes []Route
	index  map[string]int
}

// NewForest sorts routes by logical path and resolves parent and handler back-references.
func NewForest(routes []Route) *Forest {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].APIPath < routes[j].APIPath
	})

	f := &Forest{Routes: routes, index: make(map[string]int, len(routes))}
	for i := range f.Routes {
		if _, dup := f.index[f.Routes[i].APIPath]; !dup {
			f.index[f.Routes[i].APIPath] = i
		}
		for j := range f.Routes[i].Handlers {
			f.Routes[i].Handlers[j].Route = i
		}
	}
	for i := range f.Routes {
		f.Routes[i].Parent = f.nearestAncestor(f.Routes[i].APIPath)
	}
	return f
}

func (f *Forest) nearestAncestor(path string) int {
	for path != "/" {
		cut := strings.LastIndex(path, "/")
		if cut <= 0 {
			path = "/"
		} else {
			path = path[:cut]
		}
		if idx, ok := f.index[path]; ok {
			return idx
		}
	}
	return -1
}

func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Routes)
}

func (f *Forest) Find(apiPath string) (*Route, bool) {
	if f == nil {
		return nil, false
	}
	idx, ok := f.index[apiPath]
	if !ok {
		return nil, false
	}
	return &f.Routes[idx], true
}

// RouteOf returns the route owning h.
func (f *Forest) RouteOf(h Handler) (*Route, bool) {
	if f == nil || h.Route < 0 || h.Route >= len(f.Routes) {
		return nil, false
	}
	return &f.Routes[h.Route], true
}

// Roots returns the indices of routes without a parent route.
func (f *Forest) Roots() []int {
	return f.Children(-1)
}

func (f *Forest) Children(parent int) []int {
	if f == nil {
		return nil
	}
	var children []int
	for i := range f.Routes {
		if f.Routes[i].Parent == parent {
			children = append(children, i)
		}
	}
	return children
}

func (f *Forest) PrintTree(level logger.LogLevel) {
	for _, idx := range f.Roots() {
		f.printNode(idx, "", level)
	}
}

func (f *Forest) printNode(idx int, prefix string, level logger.LogLevel) {
	route := &f.Routes[idx]
	logger.GetLogFromLevel(level)("%s%s (%s) [%s]", prefix, route.APIPath, route.Kind, strings.Join(route.Methods(), ", "))
	for _, child := range f.Children(idx) {
		f.printNode(child, prefix+"  ", level)
	}
}

func (f *Forest) String() string {
	var b strings.Builder
	for _, r := range f.Routes {
		fmt.Fprintf(&b, "%s %v\n", r.APIPath, r.Methods())
	}
	return b.String()
}
