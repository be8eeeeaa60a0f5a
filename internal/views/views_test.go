package views

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/admindash/internal/api"
	"github.com/vango-dev/admindash/internal/config"
	"github.com/vango-dev/admindash/internal/cv"
	"github.com/vango-dev/admindash/internal/errors"
	"github.com/vango-dev/admindash/internal/mocks"
	"github.com/vango-dev/admindash/pkg/render"
	"github.com/vango-dev/admindash/pkg/router"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

type refuseTransport struct{}

func (refuseTransport) RoundTrip(*http.Request) (*http.Response, error) {
	return nil, stderrors.New("network disabled in tests")
}

func mockedDeps(t *testing.T) Deps {
	t.Helper()
	w := mocks.New(mocks.WithNext(refuseTransport{}))
	w.Start()
	if err := w.WaitReady(context.Background(), 5*time.Second); err != nil {
		t.Fatalf("WaitReady() error = %v", err)
	}
	return Deps{API: api.NewClient(config.DefaultAPIBase, w.Client(5*time.Second), 0)}
}

func renderView(t *testing.T, c *Catalog, key string, props view.Props) string {
	t.Helper()
	fn, ok := c.LoadFunc(key)
	if !ok {
		t.Fatalf("LoadFunc(%q) not found", key)
	}
	def, err := fn(context.Background())
	if err != nil {
		t.Fatalf("load %q: %v", key, err)
	}
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(def.Render(props))
	if err != nil {
		t.Fatalf("render %q: %v", key, err)
	}
	return html
}

func TestNewTable(t *testing.T) {
	table, err := NewTable(NewCatalog(Deps{}))
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	if diff := cmp.Diff([]string{"shell", "bare"}, table.Groups()); diff != "" {
		t.Errorf("Groups() mismatch (-want +got):\n%s", diff)
	}
}

func TestTableResolve(t *testing.T) {
	table, err := NewTable(nil)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}

	tests := []struct {
		path     string
		view     string
		redirect string
		layout   string
		params   map[string]string
	}{
		{path: "/", redirect: Home, layout: LayoutFull},
		{path: "/dashboards/modern", view: "dashboard/modern", layout: LayoutFull},
		{path: "/apps/ecommerce/detail/42", view: "apps/ecommerce/detail", layout: LayoutFull, params: map[string]string{"id": "42"}},
		{path: "/apps/invoice/detail/101", view: "apps/invoice/detail", layout: LayoutFull, params: map[string]string{"id": "101"}},
		{path: "/forms/form-elements/date-range", view: "forms/date-time", layout: LayoutFull},
		{path: "/forms/form-elements/switch", view: "forms/switch", layout: LayoutFull},
		{path: "/unknown/garbage", redirect: NotFound, layout: LayoutFull},
		{path: "/auth/404", view: "auth/error", layout: LayoutBlank},
		{path: "/auth/nope", redirect: NotFound, layout: LayoutBlank},
		{path: "/landingpage", view: "pages/landingpage", layout: LayoutBlank},
		{path: "/frontend-pages/blog/detail/7", view: "frontend/blog-post", layout: LayoutBlank, params: map[string]string{"id": "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := table.Resolve(tt.path)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if res.View != tt.view || res.Redirect != tt.redirect || res.Layout != tt.layout {
				t.Errorf("Resolve(%q) = view %q redirect %q layout %q, want %q %q %q",
					tt.path, res.View, res.Redirect, res.Layout, tt.view, tt.redirect, tt.layout)
			}
			for k, v := range tt.params {
				if res.Params[k] != v {
					t.Errorf("Params[%q] = %q, want %q", k, res.Params[k], v)
				}
			}
		})
	}
}

func TestTableRedirectsReachViews(t *testing.T) {
	table, err := NewTable(nil)
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	for _, path := range []string{"/", "/nowhere", "/auth/missing"} {
		res, _, err := table.Follow(path)
		if err != nil {
			t.Fatalf("Follow(%q) error = %v", path, err)
		}
		if res.View == "" {
			t.Errorf("Follow(%q) ended without a view", path)
		}
	}
}

func TestCatalogCheck(t *testing.T) {
	c := NewCatalog(Deps{})

	unknownView := router.MustBuild(router.Group{
		Name: "shell", Layout: LayoutFull,
		Entries: []router.Entry{
			{Path: "/x", View: "does/not/exist"},
			{Path: "*", Redirect: "/x"},
		},
	})
	if err := c.Check(unknownView); errors.CodeOf(err) != "D101" {
		t.Errorf("Check(unknown view) code = %q, want D101 (err %v)", errors.CodeOf(err), err)
	}

	unknownLayout := router.MustBuild(router.Group{
		Name: "shell", Layout: "sidebarless",
		Entries: []router.Entry{
			{Path: "/x", View: "dashboard/modern"},
			{Path: "*", Redirect: "/x"},
		},
	})
	if err := c.Check(unknownLayout); errors.CodeOf(err) != "D102" {
		t.Errorf("Check(unknown layout) code = %q, want D102 (err %v)", errors.CodeOf(err), err)
	}
}

func TestCatalogKeysHaveTitles(t *testing.T) {
	c := NewCatalog(Deps{})
	for _, key := range c.Keys() {
		if c.Title(key) == "" {
			t.Errorf("view %q has no title", key)
		}
	}
	if c.Title("missing") != "" {
		t.Error("Title(missing) != \"\"")
	}
}

func TestSplit(t *testing.T) {
	before, after, err := Split(FullLayout, Chrome{AppName: "Admin Dashboard", Path: "/apps/chats"})
	if err != nil {
		t.Fatalf("Split() error = %v", err)
	}
	if !strings.Contains(before, "layout--full") || !strings.Contains(before, `class="sidebar-link active"`) {
		t.Errorf("before = %s", before)
	}
	if !strings.Contains(before, `value="/apps/chats"`) {
		t.Error("reload control does not return to the current path")
	}
	if !strings.HasSuffix(after, "</div>") {
		t.Errorf("after = %q", after)
	}

	if _, _, err := Split(func(Chrome, *vdom.VNode) *vdom.VNode { return nil }, Chrome{}); err == nil {
		t.Error("Split() accepted a layout without content")
	}
}

func TestStandInPage(t *testing.T) {
	html := renderView(t, NewCatalog(Deps{}), "auth/maintenance", view.Props{})
	if !strings.Contains(html, "Maintenance Mode") {
		t.Errorf("html = %s", html)
	}
}

func TestDataViewsWithoutAPI(t *testing.T) {
	fn, _ := NewCatalog(Deps{}).LoadFunc("apps/ecommerce/shop")
	if _, err := fn(context.Background()); !stderrors.Is(err, ErrNoAPI) {
		t.Errorf("load error = %v, want ErrNoAPI", err)
	}
}

func TestProductDetail(t *testing.T) {
	c := NewCatalog(mockedDeps(t))

	html := renderView(t, c, "apps/ecommerce/detail", view.Props{Params: map[string]string{"id": "1"}})
	for _, want := range []string{"Cute Soft Teddybear", "$285", "24% off", "In Stock"} {
		if !strings.Contains(html, want) {
			t.Errorf("detail missing %q", want)
		}
	}

	html = renderView(t, c, "apps/ecommerce/detail", view.Props{Params: map[string]string{"id": "999"}})
	if !strings.Contains(html, "No product with id &quot;999&quot;") {
		t.Errorf("missing not-found card: %s", html)
	}
}

func TestShopCategoryFilter(t *testing.T) {
	c := NewCatalog(mockedDeps(t))

	all := renderView(t, c, "apps/ecommerce/shop", view.Props{Query: url.Values{}})
	if n := strings.Count(all, "product-card"); n != 4 {
		t.Errorf("cards = %d, want 4", n)
	}
	toys := renderView(t, c, "apps/ecommerce/shop", view.Props{Query: url.Values{"category": {"toys"}}})
	if n := strings.Count(toys, "product-card"); n != 1 {
		t.Errorf("toys cards = %d, want 1", n)
	}
	none := renderView(t, c, "apps/ecommerce/shop", view.Props{Query: url.Values{"category": {"garden"}}})
	if !strings.Contains(none, "There is no Product") {
		t.Error("empty shop message missing")
	}
}

func TestInvoiceViews(t *testing.T) {
	c := NewCatalog(mockedDeps(t))

	list := renderView(t, c, "apps/invoice/list", view.Props{})
	if !strings.Contains(list, `href="/apps/invoice/detail/101"`) {
		t.Errorf("list missing link to 101: %s", list)
	}
	detail := renderView(t, c, "apps/invoice/detail", view.Props{Params: map[string]string{"id": "101"}})
	if !strings.Contains(detail, "PineappleInc.") || !strings.Contains(detail, "$390") {
		t.Errorf("detail = %s", detail)
	}
}

func TestCVGenerator(t *testing.T) {
	c := NewCatalog(Deps{})

	empty := renderView(t, c, CVGeneratorView, view.Props{})
	if !strings.Contains(empty, "Start filling out your information to see the preview") {
		t.Error("empty CV does not show the empty preview")
	}

	doc := cv.New()
	doc.PersonalInfo.FirstName = "Ada"
	doc.SelectedTemplate = "minimal"
	html := renderView(t, c, CVGeneratorView, view.Props{Values: map[string]any{
		ValueCV:     doc,
		ValueNotice: "Saved",
	}})
	for _, want := range []string{"cv--minimal", `value="Ada"`, "Saved", "Creative Design (Coming Soon)"} {
		if !strings.Contains(html, want) {
			t.Errorf("cv generator missing %q", want)
		}
	}
}
