package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segments(names ...string) []RouteSegment {
	segs := make([]RouteSegment, len(names))
	for i, n := range names {
		segs[i] = ClassifySegment(n, DefaultPrivatePrefix)
	}
	return segs
}

func TestLogicalPathSkipsGroups(t *testing.T) {
	assert.Equal(t, "/", LogicalPath(nil))
	assert.Equal(t, "/products/[id]", LogicalPath(segments("(shop)", "products", "[id]")))
	assert.Equal(t, "/blog/[...slug]", LogicalPath(segments("blog", "(posts)", "[...slug]")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, RouteStatic, KindOf(segments("about")))
	assert.Equal(t, RouteDynamic, KindOf(segments("products", "[id]")))
	assert.Equal(t, RouteCatchAll, KindOf(segments("[org]", "docs", "[...path]")))
	assert.Equal(t, RouteCatchAll, KindOf(segments("shop", "[[...filters]]")))
}

func TestNewForestSortsAndLinks(t *testing.T) {
	routes := []Route{
		{APIPath: "/products/[id]", Handlers: []Handler{{Method: "GET"}, {Method: "DELETE", Line: 4}}},
		{APIPath: "/", Handlers: []Handler{{Method: "GET"}}},
		{APIPath: "/products", Handlers: []Handler{{Method: "POST"}}},
		{APIPath: "/blog/[...slug]", Handlers: []Handler{{Method: "GET"}}},
	}

	f := NewForest(routes)
	require.Equal(t, 4, f.Len())

	paths := make([]string, f.Len())
	for i, r := range f.Routes {
		paths[i] = r.APIPath
	}
	assert.Equal(t, []string{"/", "/blog/[...slug]", "/products", "/products/[id]"}, paths)

	product, ok := f.Find("/products/[id]")
	require.True(t, ok)
	parent, ok := f.Find("/products")
	require.True(t, ok)
	assert.Equal(t, parent.APIPath, f.Routes[product.Parent].APIPath)

	blog, _ := f.Find("/blog/[...slug]")
	assert.Equal(t, "/", f.Routes[blog.Parent].APIPath, "nearest ancestor is the root route")
	assert.Equal(t, []int{0}, f.Roots())

	del, ok := product.Handler("delete")
	require.True(t, ok)
	owner, ok := f.RouteOf(del)
	require.True(t, ok)
	assert.Equal(t, "/products/[id]", owner.APIPath)
	assert.Equal(t, []string{"GET", "DELETE"}, owner.Methods())
}

func TestForestWithoutRootRoute(t *testing.T) {
	f := NewForest([]Route{{APIPath: "/a/b"}, {APIPath: "/c"}})
	assert.Equal(t, []int{0, 1}, f.Roots())
	assert.Empty(t, f.Children(0))

	_, ok := f.Find("/missing")
	assert.False(t, ok)
	_, ok = f.RouteOf(Handler{Route: 7})
	assert.False(t, ok)

	var empty *Forest
	assert.Equal(t, 0, empty.Len())
}

func TestIsHTTPMethod(t *testing.T) {
	assert.True(t, IsHTTPMethod("get"))
	assert.True(t, IsHTTPMethod("OPTIONS"))
	assert.False(t, IsHTTPMethod("FETCH"))
}
