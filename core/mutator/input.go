package mutator

import (
	"strings"

	"github.com/tristendillon/approute/core/models"
)

// RouteInput is a validated `/<segments>[:<METHOD>]` string.
type RouteInput struct {
	Raw           string
	Segments      []string
	Method        string
	MethodGiven   bool
	PrivatePrefix string
}

// LogicalPath renders the input the way the scanner renders routes.
func (in RouteInput) LogicalPath() string {
	segments := make([]models.RouteSegment, len(in.Segments))
	for i, s := range in.Segments {
		segments[i] = models.ClassifySegment(s, in.PrivatePrefix)
	}
	return models.LogicalPath(segments)
}

// ParseRouteInput validates raw. The method defaults to defaultMethod when no
// `:METHOD` suffix is present. A bare "/" addresses the routing root.
func ParseRouteInput(raw, defaultMethod, privatePrefix string) (RouteInput, error) {
	in := RouteInput{Raw: raw, Method: strings.ToUpper(defaultMethod), PrivatePrefix: privatePrefix}

	path := strings.TrimSpace(raw)
	if path == "" {
		return in, invalid(raw, "route path is empty")
	}

	if idx := strings.LastIndex(path, ":"); idx >= 0 {
		method := strings.ToUpper(strings.TrimSpace(path[idx+1:]))
		if !models.IsHTTPMethod(method) {
			return in, invalid(raw, "unsupported method %q", path[idx+1:])
		}
		in.Method = method
		in.MethodGiven = true
		path = strings.TrimSpace(path[:idx])
	}

	path = strings.Trim(path, "/")
	if path == "" {
		return in, nil
	}

	for _, seg := range strings.Split(path, "/") {
		if err := validateSegment(raw, seg, privatePrefix); err != nil {
			return in, err
		}
		in.Segments = append(in.Segments, seg)
	}
	return in, nil
}

func validateSegment(raw, seg, privatePrefix string) error {
	switch {
	case seg == "":
		return invalid(raw, "empty path segment")
	case seg == "." || seg == "..":
		return invalid(raw, "relative segment %q", seg)
	case strings.ContainsAny(seg, "\\<>:\"|?*'`\r\n\t"):
		return invalid(raw, "segment %q contains a reserved character", seg)
	case !models.HasBalancedBrackets(seg):
		return invalid(raw, "unbalanced brackets in segment %q", seg)
	}

	segment := models.ClassifySegment(seg, privatePrefix)
	if segment.Kind == models.SegmentPrivate {
		return invalid(raw, "private segment %q cannot be routed", seg)
	}
	if segment.Kind == models.SegmentStatic && strings.ContainsAny(seg, "[]") {
		return invalid(raw, "malformed parameter segment %q", seg)
	}
	return nil
}
