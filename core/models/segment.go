package models

import "strings"

// DefaultPrivatePrefix marks directories excluded from routing along with their subtree.
const DefaultPrivatePrefix = "_"

type SegmentKind int

const (
	SegmentStatic SegmentKind = iota
	SegmentDynamic
	SegmentCatchAll
	SegmentOptionalCatchAll
	SegmentGroup
	SegmentPrivate
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	case SegmentCatchAll:
		return "catch-all"
	case SegmentOptionalCatchAll:
		return "optional-catch-all"
	case SegmentGroup:
		return "group"
	case SegmentPrivate:
		return "private"
	default:
		return "unknown"
	}
}

func (k SegmentKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// IsParam reports whether the segment binds a URL parameter.
func (k SegmentKind) IsParam() bool {
	return k == SegmentDynamic || k == SegmentCatchAll || k == SegmentOptionalCatchAll
}

// IsCatchAll covers both the required and the optional catch-all forms.
func (k SegmentKind) IsCatchAll() bool {
	return k == SegmentCatchAll || k == SegmentOptionalCatchAll
}

type RouteSegment struct {
	Name      string      `json:"name" yaml:"name"`
	Kind      SegmentKind `json:"kind" yaml:"kind"`
	ParamName string      `json:"param,omitempty" yaml:"param,omitempty"`
	Display   string      `json:"display" yaml:"display"`
}

// InPath reports whether the segment appears in the logical URL path.
func (s RouteSegment) InPath() bool {
	return s.Kind != SegmentGroup && s.Kind != SegmentPrivate
}

// ClassifySegment maps one directory name to its segment kind. It never fails:
// shapes it cannot read (unbalanced or empty brackets) are treated as static.
func ClassifySegment(folderName, privatePrefix string) RouteSegment {
	segment := RouteSegment{Name: folderName, Kind: SegmentStatic, Display: folderName}

	if inner, ok := unwrap(folderName, "[[...", "]]"); ok {
		segment.Kind = SegmentOptionalCatchAll
		segment.ParamName = inner
		segment.Display = "[[..." + inner + "]]"
		return segment
	}
	if inner, ok := unwrap(folderName, "[...", "]"); ok {
		segment.Kind = SegmentCatchAll
		segment.ParamName = inner
		segment.Display = "[..." + inner + "]"
		return segment
	}
	if inner, ok := unwrap(folderName, "[", "]"); ok && !strings.HasPrefix(inner, "...") {
		segment.Kind = SegmentDynamic
		segment.ParamName = inner
		segment.Display = "[" + inner + "]"
		return segment
	}
	if len(folderName) > 2 && strings.HasPrefix(folderName, "(") && strings.HasSuffix(folderName, ")") {
		segment.Kind = SegmentGroup
		return segment
	}
	if privatePrefix != "" && strings.HasPrefix(folderName, privatePrefix) {
		segment.Kind = SegmentPrivate
	}
	return segment
}

func unwrap(name, open, close string) (string, bool) {
	if len(name) <= len(open)+len(close) {
		return "", false
	}
	if !strings.HasPrefix(name, open) || !strings.HasSuffix(name, close) {
		return "", false
	}
	inner := name[len(open) : len(name)-len(close)]
	if strings.ContainsAny(inner, "[]/") {
		return "", false
	}
	return inner, true
}

// HasBalancedBrackets reports whether every '[' in s is closed by a later ']'.
func HasBalancedBrackets(s string) bool {
	depth := 0
	for _, r := range s {
		switch r {
		case '[':
			depth++
		case ']':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0
}
