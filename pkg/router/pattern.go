package router

import (
	"fmt"
	"net/url"
	"strings"
)

// segmentKind classifies one pattern segment.
type segmentKind uint8

const (
	segStatic segmentKind = iota
	segParam
	segWildcard
)

// segment is one compiled pattern segment.
type segment struct {
	kind      segmentKind
	value     string // literal text or parameter name
	paramType string // "string" or "int"
}

// pattern is a compiled path pattern.
type pattern struct {
	raw      string
	segments []segment
}

// compilePattern parses a full path pattern.
func compilePattern(raw string) (pattern, error) {
	if raw == CatchAll {
		return pattern{raw: raw, segments: []segment{{kind: segWildcard}}}, nil
	}
	if !strings.HasPrefix(raw, "/") {
		return pattern{}, fmt.Errorf("pattern %q must start with /", raw)
	}

	parts := splitPath(raw)
	p := pattern{raw: raw, segments: make([]segment, 0, len(parts))}
	seen := make(map[string]bool)
	for i, part := range parts {
		switch {
		case part == CatchAll:
			if i != len(parts)-1 {
				return pattern{}, fmt.Errorf("pattern %q: * must be the last segment", raw)
			}
			p.segments = append(p.segments, segment{kind: segWildcard})

		case strings.HasPrefix(part, ":"):
			name, typ := parseParamSegment(part)
			if name == "" {
				return pattern{}, fmt.Errorf("pattern %q: empty parameter name", raw)
			}
			if typ != "string" && typ != "int" {
				return pattern{}, fmt.Errorf("pattern %q: unknown parameter type %q", raw, typ)
			}
			if seen[name] {
				return pattern{}, fmt.Errorf("pattern %q: parameter %q repeated", raw, name)
			}
			seen[name] = true
			p.segments = append(p.segments, segment{kind: segParam, value: name, paramType: typ})

		default:
			p.segments = append(p.segments, segment{kind: segStatic, value: part})
		}
	}
	return p, nil
}

// match reports whether parts satisfies the pattern and returns the
// captured parameters.
func (p pattern) match(parts []string) (map[string]string, bool) {
	var params map[string]string
	capture := func(k, v string) {
		if params == nil {
			params = make(map[string]string)
		}
		params[k] = v
	}

	for i, seg := range p.segments {
		if seg.kind == segWildcard {
			capture(CatchAll, strings.Join(parts[i:], "/"))
			return params, true
		}
		if i >= len(parts) {
			return nil, false
		}
		part := parts[i]
		switch seg.kind {
		case segStatic:
			if part != seg.value {
				return nil, false
			}
		case segParam:
			if seg.paramType == "int" && !isDigits(part) {
				return nil, false
			}
			capture(seg.value, part)
		}
	}
	if len(parts) != len(p.segments) {
		return nil, false
	}
	return params, true
}

// key normalizes the pattern for duplicate detection, so that
// "/a/:id" and "/a/:slug" compare equal.
func (p pattern) key() string {
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		switch seg.kind {
		case segStatic:
			sb.WriteString(seg.value)
		case segParam:
			sb.WriteString(":" + seg.paramType)
		case segWildcard:
			sb.WriteString(CatchAll)
		}
	}
	return sb.String()
}

// splitPath splits a path into segments.
// "/users/:id/posts" -> ["users", ":id", "posts"]
func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// parseParamSegment extracts name and type from a parameter segment.
// Input: ":id" or ":id:int" -> name="id", type="string" or "int"
func parseParamSegment(seg string) (name, paramType string) {
	seg = seg[1:]
	if idx := strings.Index(seg, ":"); idx != -1 {
		return seg[:idx], seg[idx+1:]
	}
	return seg, "string"
}

// joinPattern resolves a child pattern against its parent.
func joinPattern(parent, child string) string {
	if child == CatchAll && parent == "" {
		return CatchAll
	}
	if strings.HasPrefix(child, "/") || parent == "" {
		return child
	}
	return strings.TrimRight(parent, "/") + "/" + child
}

// decodeSegments splits an escaped request path and unescapes each
// segment. An escaped slash inside a segment is rejected.
func decodeSegments(path string) ([]string, error) {
	parts := splitPath(path)
	for i, part := range parts {
		decoded, err := url.PathUnescape(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidPath, err)
		}
		if strings.ContainsAny(decoded, "/\x00") {
			return nil, fmt.Errorf("%w: bad segment %q", ErrInvalidPath, part)
		}
		parts[i] = decoded
	}
	return parts, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
