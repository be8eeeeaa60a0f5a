// Package views is the dashboard's view catalog: the route table, the two
// layouts, and a LoadFunc for every view the table names.
//
// Most pages are stand-ins with a title and a short description. The
// ecommerce and invoice pages load their records through the data API, and
// the CV generator renders the session's saved CV.
package views

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/pkg/loader"
	"github.com/vango-dev/admindash/pkg/render"
	"github.com/vango-dev/admindash/pkg/router"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

// Deps are the collaborators views load data through.
type Deps struct {
	// API serves product and invoice records. Views that need it fail to
	// load when it is nil.
	API *api.Client
}

// Chrome is what a layout needs to know about the page it wraps.
type Chrome struct {
	AppName string
	Path    string
	Title   string
}

// Layout wraps a view's content in page chrome.
type Layout func(ch Chrome, content *vdom.VNode) *vdom.VNode

// Catalog maps view and layout keys to their implementations.
type Catalog struct {
	deps    Deps
	views   map[string]entry
	layouts map[string]Layout
}

type entry struct {
	title string
	load  func(Deps) loader.LoadFunc
}

// NewCatalog returns the full catalog.
func NewCatalog(deps Deps) *Catalog {
	c := &Catalog{
		deps:  deps,
		views: make(map[string]entry),
		layouts: map[string]Layout{
			LayoutFull:  FullLayout,
			LayoutBlank: BlankLayout,
		},
	}
	for key, p := range standIns {
		c.views[key] = entry{title: p.title, load: static(p.title, p.description)}
	}
	for key, e := range dataViews() {
		c.views[key] = e
	}
	return c
}

// Keys returns every view key in sorted order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.views))
	for k := range c.views {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// LoadFunc returns the LoadFunc of a view.
func (c *Catalog) LoadFunc(key string) (loader.LoadFunc, bool) {
	e, ok := c.views[key]
	if !ok {
		return nil, false
	}
	return e.load(c.deps), true
}

// Title returns the document title of a view, or "" when unknown.
func (c *Catalog) Title(key string) string {
	return c.views[key].title
}

// Layout returns a layout by key.
func (c *Catalog) Layout(key string) (Layout, bool) {
	l, ok := c.layouts[key]
	return l, ok
}

// Check reports the first view or layout the table names that the catalog
// doesn't have.
func (c *Catalog) Check(t *router.Table) error {
	for _, key := range t.Views() {
		if _, ok := c.views[key]; !ok {
			return errors.New("D101").WithField(key)
		}
	}
	for _, r := range t.Routes() {
		if _, ok := c.layouts[r.Layout]; !ok {
			return errors.New("D102").WithField(r.Layout).
				WithDetail(fmt.Sprintf("Group %q uses layout %q", r.Group, r.Layout))
		}
	}
	return nil
}

// contentMarker stands in for the view while a layout is split.
const contentMarker = "<!--admindash:content-->"

// Split renders l around an empty content area and returns the HTML before
// and after it, so that the view can be streamed in between.
func Split(l Layout, ch Chrome) (before, after string, err error) {
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(l(ch, vdom.Raw(contentMarker)))
	if err != nil {
		return "", "", err
	}
	before, after, ok := strings.Cut(html, contentMarker)
	if !ok {
		return "", "", fmt.Errorf("views: layout dropped its content")
	}
	return before, after, nil
}

// static returns a loader for a page that needs no data.
func static(title, description string) func(Deps) loader.LoadFunc {
	page := &view.Page{
		Meta: view.Meta{Title: title, Description: description},
		Body: func(view.Props) *vdom.VNode {
			return vdom.Div(vdom.Class("page"),
				pageHeader(title),
				vdom.Div(vdom.Class("card"),
					vdom.P(vdom.Class("card-text"), description),
				),
			)
		},
	}
	return func(Deps) loader.LoadFunc {
		return func(context.Context) (view.Definition, error) {
			return page, nil
		}
	}
}

func pageHeader(title string) *vdom.VNode {
	return vdom.Div(vdom.Class("page-header"),
		vdom.H2(title),
		vdom.Nav(vdom.Class("breadcrumb"), vdom.AriaLabel("breadcrumb"),
			vdom.A(vdom.Href(Home), "Home"),
			vdom.Span(vdom.Class("breadcrumb-sep"), "/"),
			vdom.Span(title),
		),
	)
}
