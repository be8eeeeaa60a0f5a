package cv

import (
	"strings"
	"testing"

	"github.com/vango-dev/admindash/pkg/render"
)

func renderPreview(t *testing.T, c CV) string {
	t.Helper()
	html, err := render.NewRenderer(render.RendererConfig{}).RenderToString(Preview(c))
	if err != nil {
		t.Fatalf("RenderToString() error = %v", err)
	}
	return html
}

func TestPreview_Empty(t *testing.T) {
	html := renderPreview(t, New())
	if !strings.Contains(html, "Start filling out your information to see the preview") {
		t.Errorf("empty preview = %s", html)
	}
}

func TestPreview_Templates(t *testing.T) {
	tests := []struct {
		template string
		class    string
		heading  string
	}{
		{"modern", "cv--modern", "Skills &amp; Competencies"},
		{"minimal", "cv--minimal", "Experience"},
		{"creative", "cv--modern", "Work Experience"},
		{"executive", "cv--modern", "Professional Summary"},
		{"", "cv--modern", "Education"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			c := sampleCV()
			c.SelectedTemplate = tt.template
			html := renderPreview(t, c)
			if !strings.Contains(html, tt.class) {
				t.Errorf("missing class %q in %s", tt.class, html)
			}
			if !strings.Contains(html, tt.heading) {
				t.Errorf("missing heading %q", tt.heading)
			}
			if !strings.Contains(html, "Ada Lovelace") {
				t.Error("missing name")
			}
		})
	}
}

func TestPreview_ModernDetails(t *testing.T) {
	html := renderPreview(t, sampleCV())
	for _, want := range []string{
		"Engines Ltd, London",
		"Jan 1842 - Present",
		"Private tuition in Mathematics",
		"GPA: 4.0",
		"Jan 1830 - Present",
		"cv-skill--success",
		"cv-skill--info",
		"<h4>Math</h4>",
		"<h4>Other</h4>",
		"ada@example.com",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("modern preview missing %q", want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"", ""},
		{"2024-03", "Mar 2024"},
		{"2024-03-15", "Mar 2024"},
		{"2024-03-15T10:00:00Z", "Mar 2024"},
		{"sometime", "sometime"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProficiencyLevel(t *testing.T) {
	want := map[int]string{1: "error", 2: "warning", 3: "info", 4: "success", 5: "success"}
	for level, color := range want {
		if got := ProficiencyLevel(level); got != color {
			t.Errorf("ProficiencyLevel(%d) = %q, want %q", level, got, color)
		}
	}
}

func TestGroupSkills(t *testing.T) {
	cats, groups := GroupSkills([]Skill{
		{Name: "Go", Category: "Languages"},
		{Name: "Speaking"},
		{Name: "Rust", Category: "Languages"},
	})
	if strings.Join(cats, ",") != "Languages,Other" {
		t.Errorf("categories = %v", cats)
	}
	if len(groups["Languages"]) != 2 || len(groups["Other"]) != 1 {
		t.Errorf("groups = %v", groups)
	}
}
