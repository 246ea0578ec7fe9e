package generator

import (
	"strings"
)

// normalizePath rewrites a route path into OpenAPI template form and returns the
// path variables in order of appearance. Play segments ":id", "$id<regex>" and
// "*rest" become "{id}" and "{rest}"; "{id}" is kept as is.
func normalizePath(route string) (string, []string, error) {
	route = strings.TrimSpace(route)
	if !strings.HasPrefix(route, "/") {
		return "", nil, declErr(ErrInvalidDeclaration, "path "+route, "path must start with '/'")
	}
	if route == "/" {
		return route, nil, nil
	}

	segments := strings.Split(strings.TrimPrefix(route, "/"), "/")
	vars := make([]string, 0)
	seen := map[string]bool{}
	for i, seg := range segments {
		name := ""
		switch {
		case strings.HasPrefix(seg, ":"):
			name = seg[1:]
		case strings.HasPrefix(seg, "*"):
			name = seg[1:]
		case strings.HasPrefix(seg, "$"):
			name = seg[1:]
			if lt := strings.IndexByte(name, '<'); lt >= 0 {
				name = name[:lt]
			}
		case strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}"):
			name = seg[1 : len(seg)-1]
		default:
			continue
		}
		if !identifier.MatchString(name) {
			return "", nil, declErr(ErrInvalidDeclaration, "path "+route, "malformed path variable %q", seg)
		}
		if seen[name] {
			return "", nil, declErr(ErrInvalidDeclaration, "path "+route, "path variable %q repeated", name)
		}
		seen[name] = true
		vars = append(vars, name)
		segments[i] = "{" + name + "}"
	}
	return "/" + strings.Join(segments, "/"), vars, nil
}
