package cv

// Template describes one preview layout.
type Template struct {
	ID          string
	Name        string
	Description string
	ComingSoon  bool
}

var templates = []Template{
	{
		ID:          "modern",
		Name:        "Modern Professional",
		Description: "Clean, modern design with sections clearly separated and professional styling",
	},
	{
		ID:          "minimal",
		Name:        "Minimal Clean",
		Description: "Simple, elegant design focusing on content with minimal visual elements",
	},
	{
		ID:          "creative",
		Name:        "Creative Design",
		Description: "Eye-catching design with creative elements for design and creative roles",
		ComingSoon:  true,
	},
	{
		ID:          "executive",
		Name:        "Executive",
		Description: "Professional executive-level template with sophisticated styling",
		ComingSoon:  true,
	},
}

// Templates lists every template in display order.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// LookupTemplate finds a template by id.
func LookupTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}
