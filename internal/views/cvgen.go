package views

import (
	"context"

	"github.com/vango-dev/admindash/internal/cv"
	"github.com/vango-dev/admindash/pkg/loader"
	"github.com/vango-dev/admindash/pkg/vdom"
	"github.com/vango-dev/admindash/pkg/view"
)

// CVGeneratorView is the catalog key of the CV generator.
const CVGeneratorView = "apps/cv-generator"

// Props values the CV generator reads.
const (
	// ValueCV holds the session's cv.CV.
	ValueCV = "cv"

	// ValueNotice holds a status line shown above the form, such as a
	// validation error.
	ValueNotice = "notice"
)

func cvGenerator(Deps) loader.LoadFunc {
	return func(context.Context) (view.Definition, error) {
		return &view.Page{
			Meta: view.Meta{Title: "CV Generator", Description: "Build your CV and preview it live."},
			Body: cvGeneratorBody,
		}, nil
	}
}

func cvGeneratorBody(p view.Props) *vdom.VNode {
	doc, ok := p.Value(ValueCV).(cv.CV)
	if !ok {
		doc = cv.New()
	}
	notice, _ := p.Value(ValueNotice).(string)
	info := doc.PersonalInfo

	return vdom.Div(vdom.Class("page", "cv-generator"),
		pageHeader("CV Generator"),
		vdom.If(notice != "", vdom.Div(vdom.Class("alert"), vdom.Role("status"), notice)),
		vdom.Div(vdom.Class("cv-columns"),
			vdom.Form(vdom.Class("card", "cv-form"),
				vdom.Method("post"),
				vdom.Action("/apps/cv-generator"),
				vdom.Fieldset(
					vdom.Legend("Personal Information"),
					field("firstName", "First Name", info.FirstName),
					field("lastName", "Last Name", info.LastName),
					field("email", "Email", info.Email),
					field("phone", "Phone", info.Phone),
					field("address", "Address", info.Address),
					field("profilePicture", "Profile Picture URL", info.ProfilePicture),
					vdom.Label(vdom.For("cv-summary"), "Professional Summary"),
					vdom.Textarea(vdom.ID("cv-summary"), vdom.Name("summary"), info.Summary),
				),
				vdom.Fieldset(
					vdom.Legend("Template"),
					vdom.Select(vdom.Name("selectedTemplate"),
						vdom.Range(cv.Templates(), func(t cv.Template, _ int) *vdom.VNode {
							label := t.Name
							if t.ComingSoon {
								label += " (Coming Soon)"
							}
							return vdom.Option(
								vdom.Value(t.ID),
								vdom.Selected(t.ID == doc.SelectedTemplate),
								vdom.Disabled(t.ComingSoon),
								label,
							)
						}),
					),
				),
				vdom.Button(vdom.Type("submit"), vdom.Class("btn"), "Save"),
			),
			vdom.Div(vdom.Class("card", "cv-preview-card"), cv.Preview(doc)),
		),
	)
}

func field(name, label, value string) *vdom.VNode {
	id := "cv-" + name
	return vdom.Div(vdom.Class("form-field"),
		vdom.Label(vdom.For(id), label),
		vdom.Input(vdom.ID(id), vdom.Name(name), vdom.Value(value)),
	)
}
