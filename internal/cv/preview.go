package cv

import (
	"strconv"
	"time"

	"github.com/vango-dev/admindash/pkg/vdom"
)

// Preview renders c with its selected template. Templates without their own
// layout render as modern. An unnamed CV renders the empty-state hint.
func Preview(c CV) *vdom.VNode {
	if c.IsEmpty() {
		return vdom.Div(vdom.Class("cv-preview", "cv-preview--empty"),
			vdom.H3("CV Preview"),
			vdom.P("Start filling out your information to see the preview"),
		)
	}
	switch c.SelectedTemplate {
	case "minimal":
		return minimal(c)
	default:
		return modern(c)
	}
}

// FormatDate renders "2024-03" or "2024-03-15" as "Mar 2024". Other input
// is returned unchanged.
func FormatDate(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range []string{"2006-01-02", "2006-01", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2006")
		}
	}
	return s
}

// ProficiencyLevel maps a 1-5 rating to a color name.
func ProficiencyLevel(level int) string {
	switch {
	case level >= 4:
		return "success"
	case level >= 3:
		return "info"
	case level >= 2:
		return "warning"
	}
	return "error"
}

// GroupSkills groups skills by category in first-seen order. Skills
// without a category go to "Other".
func GroupSkills(skills []Skill) (categories []string, groups map[string][]Skill) {
	groups = make(map[string][]Skill)
	for _, s := range skills {
		cat := s.Category
		if cat == "" {
			cat = "Other"
		}
		if _, ok := groups[cat]; !ok {
			categories = append(categories, cat)
		}
		groups[cat] = append(groups[cat], s)
	}
	return categories, groups
}

func jobDates(w WorkExperience) string {
	end := FormatDate(w.EndDate)
	if w.IsCurrentJob {
		end = "Present"
	}
	return FormatDate(w.StartDate) + " - " + end
}

func educationDates(e Education) string {
	end := FormatDate(e.EndDate)
	if end == "" {
		end = "Present"
	}
	return FormatDate(e.StartDate) + " - " + end
}

func degree(e Education) string {
	if e.Field == "" {
		return e.Degree
	}
	return e.Degree + " in " + e.Field
}

func contact(p PersonalInfo, class string) []*vdom.VNode {
	var out []*vdom.VNode
	for _, v := range []struct{ kind, value string }{
		{"email", p.Email},
		{"phone", p.Phone},
		{"address", p.Address},
	} {
		if v.value != "" {
			out = append(out, vdom.Span(vdom.Class(class, class+"--"+v.kind), v.value))
		}
	}
	return out
}

func avatar(p PersonalInfo, size int) *vdom.VNode {
	if p.ProfilePicture == "" {
		return nil
	}
	return vdom.Img(vdom.Class("cv-avatar"), vdom.Src(p.ProfilePicture), vdom.Alt(p.FullName()),
		vdom.AttrKV("width", size), vdom.AttrKV("height", size))
}

func modern(c CV) *vdom.VNode {
	p := c.PersonalInfo
	categories, groups := GroupSkills(c.Skills)

	return vdom.Article(vdom.Class("cv", "cv--modern"),
		vdom.Header(vdom.Class("cv-header"),
			avatar(p, 100),
			vdom.Div(
				vdom.H1(p.FullName()),
				vdom.Div(vdom.Class("cv-contact"), contact(p, "cv-contact-item")),
			),
		),
		vdom.When(p.Summary != "", func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Professional Summary"),
				vdom.P(p.Summary),
			)
		}),
		vdom.When(len(c.WorkExperience) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Work Experience"),
				vdom.Range(c.WorkExperience, func(w WorkExperience, _ int) *vdom.VNode {
					company := w.Company
					if w.Location != "" {
						company += ", " + w.Location
					}
					return vdom.Div(vdom.Class("cv-entry"), vdom.Data("id", string(w.ID)),
						vdom.H3(w.Title),
						vdom.Div(vdom.Class("cv-entry-org"), company),
						vdom.Div(vdom.Class("cv-entry-dates"), jobDates(w)),
						vdom.If(w.Description != "", vdom.P(w.Description)),
					)
				}),
			)
		}),
		vdom.When(len(c.Education) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Education"),
				vdom.Range(c.Education, func(e Education, _ int) *vdom.VNode {
					inst := e.Institution
					if e.Location != "" {
						inst += ", " + e.Location
					}
					return vdom.Div(vdom.Class("cv-entry"), vdom.Data("id", string(e.ID)),
						vdom.H3(degree(e)),
						vdom.Div(vdom.Class("cv-entry-org"), inst),
						vdom.If(e.GPA != "", vdom.Div(vdom.Class("cv-entry-gpa"), "GPA: "+e.GPA)),
						vdom.Div(vdom.Class("cv-entry-dates"), educationDates(e)),
						vdom.If(e.Description != "", vdom.P(e.Description)),
					)
				}),
			)
		}),
		vdom.When(len(c.Skills) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Skills & Competencies"),
				vdom.Range(categories, func(cat string, _ int) *vdom.VNode {
					return vdom.Div(vdom.Class("cv-skill-group"),
						vdom.H4(cat),
						vdom.Range(groups[cat], func(s Skill, _ int) *vdom.VNode {
							level := strconv.Itoa(s.Proficiency)
							return vdom.Div(vdom.Class("cv-skill", "cv-skill--"+ProficiencyLevel(s.Proficiency)),
								vdom.Span(vdom.Class("cv-skill-name"), s.Name),
								vdom.Progress(vdom.Value(level), vdom.Max("5")),
								vdom.Span(vdom.Class("cv-skill-level"), level),
							)
						}),
					)
				}),
			)
		}),
	)
}

func minimal(c CV) *vdom.VNode {
	p := c.PersonalInfo
	return vdom.Article(vdom.Class("cv", "cv--minimal"),
		vdom.Header(vdom.Class("cv-header", "cv-header--centered"),
			avatar(p, 80),
			vdom.H1(p.FullName()),
			vdom.Div(vdom.Class("cv-contact"), contact(p, "cv-contact-item")),
		),
		vdom.If(p.Summary != "", vdom.P(vdom.Class("cv-summary"), p.Summary)),
		vdom.Hr(),
		vdom.When(len(c.WorkExperience) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Experience"),
				vdom.Range(c.WorkExperience, func(w WorkExperience, _ int) *vdom.VNode {
					return vdom.Div(vdom.Class("cv-entry"),
						vdom.H3(w.Title+" • "+w.Company),
						vdom.Div(vdom.Class("cv-entry-dates"), jobDates(w)),
						vdom.If(w.Description != "", vdom.P(w.Description)),
					)
				}),
			)
		}),
		vdom.When(len(c.Education) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Education"),
				vdom.Range(c.Education, func(e Education, _ int) *vdom.VNode {
					return vdom.Div(vdom.Class("cv-entry"),
						vdom.H3(degree(e)),
						vdom.Div(vdom.Class("cv-entry-org"), e.Institution+" • "+educationDates(e)),
					)
				}),
			)
		}),
		vdom.When(len(c.Skills) > 0, func() *vdom.VNode {
			return vdom.Section(vdom.Class("cv-section"),
				vdom.H2("Skills"),
				vdom.Div(vdom.Class("cv-chips"),
					vdom.Range(c.Skills, func(s Skill, _ int) *vdom.VNode {
						return vdom.Span(vdom.Class("cv-chip"), s.Name)
					}),
				),
			)
		}),
	)
}
