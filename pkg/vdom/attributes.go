package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleAttr sets the style attribute (named to avoid conflict with Style element).
func StyleAttr(style string) Attr { return attr("style", style) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// AriaLabel sets the aria-label attribute.
func AriaLabel(label string) Attr { return attr("aria-label", label) }

// AriaBusy sets the aria-busy attribute.
func AriaBusy(busy bool) Attr { return attr("aria-busy", busy) }

// AriaLive sets the aria-live attribute.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// Link and form attributes

func Href(url string) Attr      { return attr("href", url) }
func Src(url string) Attr       { return attr("src", url) }
func Alt(text string) Attr      { return attr("alt", text) }
func Action(url string) Attr    { return attr("action", url) }
func Method(m string) Attr      { return attr("method", m) }
func Name(name string) Attr     { return attr("name", name) }
func Value(value string) Attr   { return attr("value", value) }
func Type(t string) Attr        { return attr("type", t) }
func For(id string) Attr        { return attr("for", id) }
func Placeholder(s string) Attr { return attr("placeholder", s) }
func Rel(rel string) Attr       { return attr("rel", rel) }
func Charset(cs string) Attr    { return attr("charset", cs) }
func Content(c string) Attr     { return attr("content", c) }
func Max(v string) Attr         { return attr("max", v) }
func Checked(on bool) Attr      { return attr("checked", on) }
func Selected(on bool) Attr     { return attr("selected", on) }
func Disabled(on bool) Attr     { return attr("disabled", on) }
func Hidden(on bool) Attr       { return attr("hidden", on) }

// AttrKV sets an arbitrary attribute.
func AttrKV(key string, v any) Attr { return attr(key, v) }
