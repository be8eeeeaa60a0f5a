// Package render provides server-side rendering (SSR) for dashboard views.
//
// The render package converts VNode trees into HTML strings or streams:
//
//   - HTML5 compliant element rendering
//   - Text and attribute escaping
//   - Void and boolean attribute handling
//   - Full document rendering with DOCTYPE, head and body
//   - Streaming with deferred slots, so a placeholder can be sent first
//     and replaced later in the same response
//
// # Basic Usage
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// # Streaming
//
//	s := render.NewStream(w, render.RendererConfig{})
//	s.Open(render.Document{Title: "Orders"})
//	s.Slot("main", spinner)
//	// ... later
//	s.Fill("main", view)
//	s.Close()
//
// Fill emits the content inside a <template> element followed by a tiny
// inline script that swaps it into the slot. Browsers without scripting
// still receive the content, after the placeholder.
package render
