package router

// CatchAll is the path of an entry that matches anything.
const CatchAll = "*"

// Entry is one row of the route table.
type Entry struct {
	// Path is the pattern (e.g., "/apps/ecommerce/detail/:id"). Child paths
	// without a leading slash are relative to their parent.
	Path string `json:"path" yaml:"path"`

	// Redirect is the navigation target for redirect entries.
	Redirect string `json:"redirect,omitempty" yaml:"redirect,omitempty"`

	// View is the catalog key of the view rendered by this entry.
	View string `json:"view,omitempty" yaml:"view,omitempty"`

	// Children are nested entries tried after this one.
	Children []Entry `json:"children,omitempty" yaml:"children,omitempty"`
}

// IsRedirect reports whether the entry navigates instead of rendering.
func (e Entry) IsRedirect() bool {
	return e.Redirect != ""
}

// IsCatchAll reports whether the entry is a catch-all.
func (e Entry) IsCatchAll() bool {
	return e.Path == CatchAll
}

// Group is a top-level subtree sharing one layout.
type Group struct {
	// Name identifies the group (e.g., "shell", "bare").
	Name string `json:"name" yaml:"name"`

	// Layout is the catalog key of the layout wrapping every view.
	Layout string `json:"layout" yaml:"layout"`

	// Prefixes are the first path segments claimed by this group. A group
	// with no prefixes handles everything the others do not.
	Prefixes []string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`

	// Entries are tried in order. The last one must be the catch-all.
	Entries []Entry `json:"entries" yaml:"entries"`
}

// Resolution is the outcome of resolving a path.
type Resolution struct {
	// Group and Layout identify the group the path resolved in.
	Group  string
	Layout string

	// Pattern is the full pattern of the matched entry.
	Pattern string

	// View is the catalog key to render. Empty for redirects.
	View string

	// Redirect is the navigation target. Empty for views.
	Redirect string

	// Params holds captured segments.
	Params map[string]string

	// Fallback is set when only the catch-all matched.
	Fallback bool
}

// Route is a flattened table row, as listed by Table.Routes.
type Route struct {
	Group    string `json:"group" yaml:"group"`
	Layout   string `json:"layout" yaml:"layout"`
	Pattern  string `json:"pattern" yaml:"pattern"`
	View     string `json:"view,omitempty" yaml:"view,omitempty"`
	Redirect string `json:"redirect,omitempty" yaml:"redirect,omitempty"`
}
