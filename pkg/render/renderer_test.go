package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/vango-dev/admindash/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	r := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text escaped", vdom.Text(`<b>"x"</b> & 'y'`), "&lt;b&gt;&quot;x&quot;&lt;/b&gt; &amp; &#39;y&#39;"},
		{"element", vdom.Div(vdom.Class("card"), "hi"), `<div class="card">hi</div>`},
		{"void", vdom.Input(vdom.Type("text"), vdom.Name("q")), `<input name="q" type="text">`},
		{"boolean true", vdom.Input(vdom.Checked(true)), `<input checked>`},
		{"boolean false", vdom.Input(vdom.Checked(false)), `<input>`},
		{"nested", vdom.Ul(vdom.Li("a"), vdom.Li("b")), `<ul><li>a</li><li>b</li></ul>`},
		{"fragment", vdom.Fragment(vdom.Span("a"), "b"), `<span>a</span>b`},
		{"raw", vdom.Raw("<i>ok</i>"), "<i>ok</i>"},
		{"component", vdom.Div(vdom.Func(func() *vdom.VNode { return vdom.P("c") })), `<div><p>c</p></div>`},
		{"attr newline", vdom.Div(vdom.Data("note", "a\nb")), `<div data-note="a&#10;b"></div>`},
		{"int attr", vdom.Progress(vdom.AttrKV("value", 3)), `<progress value="3"></progress>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderAttributesSorted(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	got, _ := r.RenderToString(vdom.A(vdom.Href("/x"), vdom.Class("btn"), vdom.ID("go")))
	want := `<a class="btn" href="/x" id="go"></a>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	r := NewRenderer(RendererConfig{AssetPath: "/static"})
	var buf bytes.Buffer
	err := r.RenderPage(&buf, Document{
		Title:       "Orders <1>",
		Description: "All orders",
		StyleSheets: []string{"app.css", "/abs.css"},
	}, vdom.Main("body"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Orders &lt;1&gt;</title>",
		`<meta name="description" content="All orders">`,
		`href="/static/app.css"`,
		`href="/abs.css"`,
		"<main>body</main>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q\n%s", want, html)
		}
	}
}

func TestRenderComponentPanicPropagates(t *testing.T) {
	r := NewRenderer(RendererConfig{})
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic to propagate")
		}
	}()
	r.RenderToString(vdom.Div(vdom.Func(func() *vdom.VNode { panic("boom") })))
}
