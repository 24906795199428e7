package mutator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
	"github.com/tristendillon/approute/core/project"
	"github.com/tristendillon/approute/core/shared"
)

type RenameResult struct {
	From        string
	Path        string
	LogicalPath string
	Outcome     Outcome
}

// Rename moves the handler file of source so that it serves raw. Group
// directories on the old path stay where they are. When the destination
// already has a handler file, merge must be true to combine the two;
// otherwise OutcomeMergeRequired is returned and nothing changes.
func (m *Mutator) Rename(source models.Route, raw string, merge bool) (*RenameResult, error) {
	in, err := m.parse(raw)
	if err != nil {
		return nil, err
	}
	if in.MethodGiven {
		return nil, invalid(raw, "rename does not take a method")
	}

	from, err := filepath.Abs(source.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", source.FilePath, err)
	}
	if !shared.IsWithin(m.routeRoot, filepath.Dir(from)) {
		return nil, invalid(raw, "%s is outside the routing root", source.FilePath)
	}
	if _, err := os.Stat(from); os.IsNotExist(err) {
		return nil, fmt.Errorf("route %s: %w: %s", source.APIPath, ErrNotFound, from)
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", from, err)
	}

	rel, err := filepath.Rel(m.routeRoot, filepath.Dir(from))
	if err != nil {
		return nil, fmt.Errorf("failed to relate %s to %s: %w", from, m.routeRoot, err)
	}
	var oldSegments []string
	if rel != "." {
		oldSegments = strings.Split(rel, string(filepath.Separator))
	}

	targetDir := filepath.Join(append([]string{m.routeRoot}, RemapSegments(oldSegments, in.Segments, m.cfg.PrivatePrefix)...)...)
	target, exists := project.FindHandlerFile(targetDir)
	if !exists {
		target = filepath.Join(targetDir, filepath.Base(from))
	}

	result := &RenameResult{From: from, Path: target, LogicalPath: in.LogicalPath()}

	if filepath.Clean(target) == filepath.Clean(from) {
		result.Outcome = OutcomeNoOp
		logger.Info("Route %s already lives at %s", source.APIPath, from)
		return result, nil
	}

	if exists {
		if !merge {
			result.Outcome = OutcomeMergeRequired
			return result, nil
		}
		if err := mergeFiles(from, target); err != nil {
			return nil, err
		}
		result.Outcome = OutcomeMerged
	} else {
		if err := os.MkdirAll(targetDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create route directory %s: %w", targetDir, err)
		}
		if err := copyFile(from, target); err != nil {
			return nil, err
		}
		result.Outcome = OutcomeMoved
	}

	if err := os.Remove(from); err != nil {
		return nil, fmt.Errorf("%s written but failed to delete source %s: %w", target, from, err)
	}
	logger.Info("Renamed %s to %s (%s)", source.APIPath, result.LogicalPath, result.Outcome)

	m.prune(filepath.Dir(from))
	m.host.Refresh()
	m.host.Open(target, 0)
	return result, nil
}

// RemapSegments rewrites the directory segments of an existing route onto the
// segments of a new logical path. Group segments keep their position; every
// other old segment is replaced by the next new one. Surplus old segments are
// dropped and surplus new ones appended.
func RemapSegments(oldSegments, newSegments []string, privatePrefix string) []string {
	out := make([]string, 0, len(oldSegments)+len(newSegments))
	next := 0
	for _, seg := range oldSegments {
		if models.ClassifySegment(seg, privatePrefix).Kind == models.SegmentGroup {
			out = append(out, seg)
			continue
		}
		if next < len(newSegments) {
			out = append(out, newSegments[next])
			next++
		}
	}
	return append(out, newSegments[next:]...)
}

func mergeFiles(from, target string) error {
	src, err := os.ReadFile(from)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", from, err)
	}
	dst, err := os.ReadFile(target)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", target, err)
	}
	return writeFile(target, Merge(string(src), string(dst)), fileMode(target))
}

func copyFile(from, to string) error {
	in, err := os.Open(from)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", from, err)
	}
	defer in.Close()

	out, err := os.OpenFile(to, os.O_CREATE|os.O_EXCL|os.O_WRONLY, fileMode(from))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", to, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", from, to, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", to, err)
	}
	return nil
}
