package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/vango-dev/admindash/pkg/vdom"
)

// Document describes the shell around rendered page content.
type Document struct {
	// Title is the page title
	Title string

	// Description fills the description meta tag
	Description string

	// StyleSheets contains paths to external stylesheets, relative to
	// RendererConfig.AssetPath unless absolute
	StyleSheets []string

	// Styles contains inline CSS styles
	Styles []string

	// Lang is the language attribute for the html element.
	// Defaults to "en" if not specified.
	Lang string
}

// RenderPage renders a complete HTML document to the given writer.
func (r *Renderer) RenderPage(w io.Writer, doc Document, body *vdom.VNode) error {
	if err := r.writeOpen(w, doc); err != nil {
		return err
	}
	if err := r.RenderToWriter(w, body); err != nil {
		return err
	}
	return r.writeClose(w)
}

// writeOpen writes everything up to and including the opening body tag.
func (r *Renderer) writeOpen(w io.Writer, doc Document) error {
	lang := doc.Lang
	if lang == "" {
		lang = "en"
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n")
	fmt.Fprintf(&b, "<html lang=\"%s\">\n<head>\n", escapeAttr(lang))
	b.WriteString(`  <meta charset="utf-8">` + "\n")
	b.WriteString(`  <meta name="viewport" content="width=device-width, initial-scale=1">` + "\n")
	if doc.Title != "" {
		fmt.Fprintf(&b, "  <title>%s</title>\n", escapeHTML(doc.Title))
	}
	if doc.Description != "" {
		fmt.Fprintf(&b, "  <meta name=\"description\" content=\"%s\">\n", escapeAttr(doc.Description))
	}
	for _, href := range doc.StyleSheets {
		fmt.Fprintf(&b, "  <link rel=\"stylesheet\" href=\"%s\">\n", escapeAttr(r.assetURL(href)))
	}
	for _, style := range doc.Styles {
		fmt.Fprintf(&b, "  <style>%s</style>\n", style)
	}
	b.WriteString("</head>\n<body>\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) writeClose(w io.Writer) error {
	_, err := io.WriteString(w, "\n</body>\n</html>\n")
	return err
}

func (r *Renderer) assetURL(href string) string {
	if r.config.AssetPath == "" || strings.HasPrefix(href, "/") || strings.Contains(href, "://") {
		return href
	}
	return strings.TrimSuffix(r.config.AssetPath, "/") + "/" + href
}
