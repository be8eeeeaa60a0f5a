// Package view defines what a route renders once its code is loaded.
package view

import (
	"context"
	"net/url"

	"github.com/vango-dev/admindash/pkg/vdom"
)

// Props are handed to a view when it renders.
type Props struct {
	// Context carries request scoped values. Views must not block on it.
	Context context.Context

	// Path is the request path that matched the route.
	Path string

	// Params are the captured :param segments.
	Params map[string]string

	// Query is the parsed query string.
	Query url.Values

	// Values carries view specific data prepared by the host (for example
	// the stored CV of the current session).
	Values map[string]any
}

// Param returns a captured route parameter, or "" when absent.
func (p Props) Param(name string) string {
	return p.Params[name]
}

// Value returns a host supplied value, or nil when absent.
func (p Props) Value(key string) any {
	return p.Values[key]
}

// Definition is a loaded view ready to render.
type Definition interface {
	Render(p Props) *vdom.VNode
}

// Func adapts a render function to Definition.
type Func func(p Props) *vdom.VNode

// Render implements Definition.
func (f Func) Render(p Props) *vdom.VNode { return f(p) }

// Meta carries document metadata for a view.
type Meta struct {
	Title       string
	Description string
}

// Page is a Definition with document metadata.
type Page struct {
	Meta Meta
	Body func(p Props) *vdom.VNode
}

// Render implements Definition.
func (p *Page) Render(props Props) *vdom.VNode {
	if p.Body == nil {
		return nil
	}
	return p.Body(props)
}

// MetaOf returns the metadata of def when it carries any.
func MetaOf(def Definition) (Meta, bool) {
	if p, ok := def.(*Page); ok {
		return p.Meta, true
	}
	return Meta{}, false
}
