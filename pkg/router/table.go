package router

import (
	"errors"
	"fmt"
	"strings"
)

// MaxRedirects bounds how many redirect entries a navigation may chain
// through before reaching a view.
const MaxRedirects = 5

var (
	// ErrInvalidPath is returned for paths that cannot be resolved at all.
	ErrInvalidPath = errors.New("router: invalid path")

	// ErrTooManyRedirects is returned by Follow when a chain exceeds
	// MaxRedirects.
	ErrTooManyRedirects = errors.New("router: too many redirects")
)

// Table is an immutable, validated route table. It is safe for concurrent
// use.
type Table struct {
	groups   []*compiledGroup
	byPrefix map[string]*compiledGroup
	fallback *compiledGroup
}

type compiledGroup struct {
	name     string
	layout   string
	prefixes []string
	routes   []compiledRoute // every entry except the group catch-all
	catchAll compiledRoute
}

type compiledRoute struct {
	pattern  pattern
	view     string
	redirect string
}

// Build validates groups and compiles them into a Table. Groups and their
// entries are copied, so later changes to the arguments have no effect.
func Build(groups ...Group) (*Table, error) {
	v := &validator{}
	t := &Table{byPrefix: make(map[string]*compiledGroup)}

	for _, g := range groups {
		cg := v.compileGroup(g)
		if cg == nil {
			continue
		}
		t.groups = append(t.groups, cg)

		if len(cg.prefixes) == 0 {
			if t.fallback != nil {
				v.add(ErrorDefaultGroup, g.Name, fmt.Sprintf("groups %q and %q both have no prefixes", t.fallback.name, g.Name))
				continue
			}
			t.fallback = cg
		}
		for _, p := range cg.prefixes {
			if other, ok := t.byPrefix[p]; ok {
				v.add(ErrorPrefixConflict, g.Name, fmt.Sprintf("prefix %q already claimed by group %q", p, other.name))
				continue
			}
			t.byPrefix[p] = cg
		}
	}
	if t.fallback == nil && len(t.groups) > 0 {
		v.add(ErrorDefaultGroup, "", "no group without prefixes")
	}
	if len(groups) == 0 {
		v.add(ErrorDefaultGroup, "", "no groups")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	v.checkRedirects(t)
	if err := v.err(); err != nil {
		return nil, err
	}
	return t, nil
}

// MustBuild is like Build but panics on error. It is meant for tables
// declared as package level values.
func MustBuild(groups ...Group) *Table {
	t, err := Build(groups...)
	if err != nil {
		panic(err)
	}
	return t
}

// Resolve matches path against the table. path is the escaped form of
// the path component, as returned by (*url.URL).EscapedPath; each segment
// is unescaped once before matching. Any query string must be stripped by
// the caller.
func (t *Table) Resolve(path string) (*Resolution, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, fmt.Errorf("%w: %q must start with /", ErrInvalidPath, path)
	}
	parts, err := decodeSegments(path)
	if err != nil {
		return nil, err
	}

	g := t.groupFor(parts)
	for i := range g.routes {
		r := &g.routes[i]
		if params, ok := r.pattern.match(parts); ok {
			return g.resolution(r, params, false), nil
		}
	}
	params, _ := g.catchAll.pattern.match(parts)
	return g.resolution(&g.catchAll, params, true), nil
}

// Follow resolves path and chases redirects until a view is reached. It
// returns the final resolution and the redirect targets visited.
func (t *Table) Follow(path string) (*Resolution, []string, error) {
	return t.follow(path, MaxRedirects)
}

func (t *Table) follow(path string, limit int) (*Resolution, []string, error) {
	var hops []string
	for {
		res, err := t.Resolve(path)
		if err != nil {
			return nil, hops, err
		}
		if res.Redirect == "" {
			return res, hops, nil
		}
		if len(hops) == limit {
			return nil, hops, fmt.Errorf("%w: %s", ErrTooManyRedirects, strings.Join(hops, " -> "))
		}
		hops = append(hops, res.Redirect)
		path = res.Redirect
	}
}

// Routes returns every compiled row in resolution order, group by group,
// each group ending with its catch-all.
func (t *Table) Routes() []Route {
	var out []Route
	t.Walk(func(r Route) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Walk calls fn for every row in resolution order until fn returns false.
func (t *Table) Walk(fn func(Route) bool) {
	for _, g := range t.groups {
		for _, r := range g.routes {
			if !fn(g.route(r)) {
				return
			}
		}
		if !fn(g.route(g.catchAll)) {
			return
		}
	}
}

// Groups returns the group names in declaration order.
func (t *Table) Groups() []string {
	names := make([]string, len(t.groups))
	for i, g := range t.groups {
		names[i] = g.name
	}
	return names
}

// Views returns the distinct view keys referenced by the table in first
// use order.
func (t *Table) Views() []string {
	seen := make(map[string]bool)
	var out []string
	t.Walk(func(r Route) bool {
		if r.View != "" && !seen[r.View] {
			seen[r.View] = true
			out = append(out, r.View)
		}
		return true
	})
	return out
}

func (t *Table) groupFor(parts []string) *compiledGroup {
	if len(parts) > 0 {
		if g, ok := t.byPrefix[parts[0]]; ok {
			return g
		}
	}
	return t.fallback
}

func (g *compiledGroup) resolution(r *compiledRoute, params map[string]string, fallback bool) *Resolution {
	if params == nil {
		params = map[string]string{}
	}
	return &Resolution{
		Group:    g.name,
		Layout:   g.layout,
		Pattern:  r.pattern.raw,
		View:     r.view,
		Redirect: r.redirect,
		Params:   params,
		Fallback: fallback,
	}
}

func (g *compiledGroup) route(r compiledRoute) Route {
	return Route{
		Group:    g.name,
		Layout:   g.layout,
		Pattern:  r.pattern.raw,
		View:     r.view,
		Redirect: r.redirect,
	}
}
