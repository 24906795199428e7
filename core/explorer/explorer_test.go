package explorer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tristendillon/approute/core/config"
	"github.com/tristendillon/approute/core/models"
	"github.com/tristendillon/approute/core/mutator"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	write(t, filepath.Join(dir, "package.json"), `{"dependencies":{"next":"15.0.0"}}`)
	write(t, filepath.Join(dir, "tsconfig.json"), "{}")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "app"), 0755))
	return dir
}

func methodsByPath(f *models.Forest) map[string][]string {
	out := make(map[string][]string)
	for _, r := range f.Routes {
		out[r.APIPath] = r.Methods()
	}
	return out
}

func TestNewRejectsNonRoutableProject(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "package.json"), `{"dependencies":{"react":"19"}}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "app"), 0755))

	_, err := New(dir, config.Default())
	assert.True(t, errors.Is(err, ErrNotRoutable))
}

func TestNewResolvesNestedRouteRoot(t *testing.T) {
	dir := newProject(t)
	e, err := New(dir, config.Default())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "src", "app"), e.RouteRoot())
	assert.Equal(t, 0, e.Forest().Len())
}

func TestCreateThenScan(t *testing.T) {
	dir := newProject(t)
	e, err := New(dir, config.Default())
	require.NoError(t, err)

	var notified []*models.Forest
	e.OnChange(func(f *models.Forest) { notified = append(notified, f) })
	var opened string
	e.SetOpener(func(path string, line int) { opened = path })

	res, err := e.Create("/products/[id]:DELETE")
	require.NoError(t, err)
	_, err = e.Create("/products/[id]")
	require.NoError(t, err)

	route, err := e.Route("/products/[id]")
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE", "GET"}, route.Methods())
	assert.Equal(t, models.RouteDynamic, route.Kind)
	assert.Equal(t, res.Path, route.FilePath)
	assert.Equal(t, res.Path, opened)

	require.Len(t, notified, 2)
	assert.Same(t, e.Forest(), notified[1])
}

func TestRenameAndDeleteThroughForest(t *testing.T) {
	dir := newProject(t)
	e, err := New(dir, config.Default())
	require.NoError(t, err)

	_, err = e.Create("/a/b")
	require.NoError(t, err)
	_, err = e.Create("/c:POST")
	require.NoError(t, err)

	res, err := e.Rename("/a/b", "/c/d", false)
	require.NoError(t, err)
	assert.Equal(t, mutator.OutcomeMoved, res.Outcome)
	assert.Equal(t, map[string][]string{"/c": {"POST"}, "/c/d": {"GET"}}, methodsByPath(e.Forest()))

	res, err = e.Rename("/c/d", "/c", false)
	require.NoError(t, err)
	assert.Equal(t, mutator.OutcomeMergeRequired, res.Outcome)

	res, err = e.Rename("/c/d", "/c", true)
	require.NoError(t, err)
	assert.Equal(t, mutator.OutcomeMerged, res.Outcome)
	assert.Equal(t, map[string][]string{"/c": {"POST", "GET"}}, methodsByPath(e.Forest()))

	require.NoError(t, e.Delete("/c"))
	assert.Equal(t, 0, e.Forest().Len())
	assert.DirExists(t, e.RouteRoot())
	assert.NoDirExists(t, filepath.Join(e.RouteRoot(), "c"))
}

func TestRouteLookupErrors(t *testing.T) {
	dir := newProject(t)
	e, err := New(dir, config.Default())
	require.NoError(t, err)
	e.Scan()

	_, err = e.Route("/missing")
	assert.True(t, errors.Is(err, mutator.ErrNotFound))

	_, err = e.Route("/missing:GET")
	assert.True(t, mutator.IsValidation(err))
}

func TestCustomPrivatePrefixRoutesResolve(t *testing.T) {
	dir := newProject(t)
	cfg := config.Default()
	cfg.PrivatePrefix = "~"
	e, err := New(dir, cfg)
	require.NoError(t, err)

	res, err := e.Create("/_internal/users")
	require.NoError(t, err)
	assert.Equal(t, "/_internal/users", res.LogicalPath)

	route, err := e.Route(res.LogicalPath)
	require.NoError(t, err)
	assert.Equal(t, res.Path, route.FilePath)

	require.NoError(t, e.Delete(res.LogicalPath))
	assert.Equal(t, 0, e.Forest().Len())
}
