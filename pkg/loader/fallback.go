package loader

import (
	"github.com/vango-dev/admindash/pkg/vdom"
)

// ReloadAction is the form action the default error view posts to.
const ReloadAction = "/_dash/reload"

// Spinner is the default placeholder.
func Spinner() *vdom.VNode {
	return vdom.Div(
		vdom.Class("spinner"),
		vdom.Role("status"),
		vdom.AriaBusy(true),
		vdom.AriaLive("polite"),
		vdom.Span(vdom.Class("spinner-ring")),
		vdom.Span(vdom.Class("visually-hidden"), "Loading..."),
	)
}

// ErrorView renders the recoverable failure view. The reload control posts
// to ReloadAction with the page to return to.
func ErrorView(err *ViewError, returnTo string) *vdom.VNode {
	msg := ""
	if err != nil {
		msg = err.Message
	}
	return vdom.Div(
		vdom.Class("view-error"),
		vdom.Role("alert"),
		vdom.H3("Something went wrong loading this component."),
		vdom.P(vdom.Class("view-error-message"), msg),
		vdom.Form(
			vdom.Method("post"),
			vdom.Action(ReloadAction),
			vdom.Input(vdom.Type("hidden"), vdom.Name("to"), vdom.Value(returnTo)),
			vdom.Button(vdom.Type("submit"), vdom.Class("btn-reload"), "Reload Page"),
		),
	)
}
