package parser

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/tristendillon/approute/core/logger"
	"github.com/tristendillon/approute/core/models"
)

var (
	functionDecl = regexp.MustCompile(`^\s*export\s+(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*[(<]`)
	assignedDecl = regexp.MustCompile(`^\s*export\s+(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*(?::[^=]*)?=`)
)

// MatchHandler reports the method declared by line, normalised to upper case.
func MatchHandler(line string) (string, bool) {
	for _, re := range []*regexp.Regexp{functionDecl, assignedDecl} {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if models.IsHTTPMethod(m[1]) {
			return strings.ToUpper(m[1]), true
		}
		return "", false
	}
	return "", false
}

// ParseSource returns the handlers declared in src in source line order.
// Later declarations of an already seen method are ignored.
func ParseSource(src string) []models.Handler {
	handlers := []models.Handler{}
	seen := make(map[string]bool)

	for line, text := range SplitLines(src) {
		if method, ok := MatchHandler(text); ok && !seen[method] {
			seen[method] = true
			handlers = append(handlers, models.Handler{Method: method, Line: line, Route: -1})
		}
	}
	return handlers
}

func ParseRoute(path string) (*models.ParsedFile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read route file %s: %w", path, err)
	}

	handlers := ParseSource(string(src))
	for _, h := range handlers {
		logger.Debug("Found method %s in %s:%d", h.Method, path, h.Line+1)
	}

	return &models.ParsedFile{Path: path, Handlers: handlers}, nil
}

// ExtractHandlers is ParseRoute for callers that treat unreadable files as empty.
func ExtractHandlers(path string) []models.Handler {
	parsed, err := ParseRoute(path)
	if err != nil {
		logger.Debug("Skipping unreadable route file: %v", err)
		return []models.Handler{}
	}
	return parsed.Handlers
}
