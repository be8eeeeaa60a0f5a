package cv

import (
	"net/url"
	"strings"
)

// ApplyForm copies the personal information and template fields of an
// HTML form submission onto c. Fields absent from form are left alone.
// Sections with several entries are only editable through the JSON API.
func ApplyForm(c *CV, form url.Values) {
	set := func(name string, dst *string) {
		if vs, ok := form[name]; ok && len(vs) > 0 {
			*dst = strings.TrimSpace(vs[0])
		}
	}
	p := &c.PersonalInfo
	set("firstName", &p.FirstName)
	set("lastName", &p.LastName)
	set("email", &p.Email)
	set("phone", &p.Phone)
	set("address", &p.Address)
	set("summary", &p.Summary)
	set("profilePicture", &p.ProfilePicture)
	set("selectedTemplate", &c.SelectedTemplate)
}
