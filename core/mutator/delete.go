package mutator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/shared"
)

// Delete removes a route handler file and prunes the directories it leaves
// empty, up to but excluding the routing root. Confirmation is the caller's job.
func (m *Mutator) Delete(filePath, logicalPath string) error {
	path, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", filePath, err)
	}
	if !shared.IsWithin(m.routeRoot, filepath.Dir(path)) {
		return invalid(logicalPath, "%s is outside the routing root", filePath)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("route %s: %w: %s", logicalPath, ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return invalid(logicalPath, "%s is a directory", filePath)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete %s: %w", path, err)
	}
	logger.Info("Deleted route %s (%s)", logicalPath, path)

	m.prune(filepath.Dir(path))
	m.host.Refresh()
	return nil
}
