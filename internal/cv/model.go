// Package cv implements the CV builder's data model, persistence and
// preview templates.
//
// A CV is saved as one JSON document per session under StorageKey and is
// always overwritten wholesale. Stores never merge or version documents.
package cv

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// StorageKey names the saved document in every backend.
const StorageKey = "cvGeneratorData"

// DefaultTemplate is selected for a new CV.
const DefaultTemplate = "modern"

// ID identifies an entry of a CV section. It decodes from a JSON string or
// number, since documents saved by older clients carry numeric ids.
type ID string

// NewID returns a fresh random ID.
func NewID() ID { return ID(uuid.NewString()) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("cv: id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// PersonalInfo is the CV header.
type PersonalInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Summary        string `json:"summary"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// FullName joins the first and last name.
func (p PersonalInfo) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// WorkExperience is one job.
type WorkExperience struct {
	ID           ID     `json:"id"`
	Title        string `json:"title"`
	Company      string `json:"company"`
	Location     string `json:"location"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate"`
	IsCurrentJob bool   `json:"isCurrentJob"`
	Description  string `json:"description"`
}

// Education is one degree.
type Education struct {
	ID          ID     `json:"id"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Location    string `json:"location"`
	GPA         string `json:"gpa"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

// Skill is one rated skill. Proficiency runs from 1 to 5.
type Skill struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Proficiency int    `json:"proficiency"`
}

// CV is the whole saved document.
type CV struct {
	PersonalInfo     PersonalInfo     `json:"personalInfo"`
	WorkExperience   []WorkExperience `json:"workExperience"`
	Education        []Education      `json:"education"`
	Skills           []Skill          `json:"skills"`
	SelectedTemplate string           `json:"selectedTemplate"`
}

// New returns an empty CV with the default template.
func New() CV {
	return CV{
		WorkExperience:   []WorkExperience{},
		Education:        []Education{},
		Skills:           []Skill{},
		SelectedTemplate: DefaultTemplate,
	}
}

// IsEmpty reports whether no name has been entered yet.
func (c CV) IsEmpty() bool {
	return c.PersonalInfo.FirstName == "" && c.PersonalInfo.LastName == ""
}

// Normalize fills missing ids and the template, and replaces nil sections
// with empty ones.
func (c *CV) Normalize() {
	if c.SelectedTemplate == "" {
		c.SelectedTemplate = DefaultTemplate
	}
	if c.WorkExperience == nil {
		c.WorkExperience = []WorkExperience{}
	}
	if c.Education == nil {
		c.Education = []Education{}
	}
	if c.Skills == nil {
		c.Skills = []Skill{}
	}
	for i := range c.WorkExperience {
		if c.WorkExperience[i].ID == "" {
			c.WorkExperience[i].ID = NewID()
		}
	}
	for i := range c.Education {
		if c.Education[i].ID == "" {
			c.Education[i].ID = NewID()
		}
	}
	for i := range c.Skills {
		if c.Skills[i].ID == "" {
			c.Skills[i].ID = NewID()
		}
	}
}

// FieldError reports one invalid field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Message }

// Validate checks the template and skill ratings.
func (c CV) Validate() error {
	t, ok := LookupTemplate(c.SelectedTemplate)
	if !ok {
		return &FieldError{Field: "selectedTemplate", Message: "unknown template " + strconv.Quote(c.SelectedTemplate)}
	}
	if t.ComingSoon {
		return &FieldError{Field: "selectedTemplate", Message: t.Name + " is not available yet"}
	}
	for i, s := range c.Skills {
		if s.Proficiency < 1 || s.Proficiency > 5 {
			return &FieldError{
				Field:   fmt.Sprintf("skills[%d].proficiency", i),
				Message: fmt.Sprintf("must be between 1 and 5, got %d", s.Proficiency),
			}
		}
	}
	return nil
}

// Marshal encodes c as stored.
func Marshal(c CV) ([]byte, error) {
	return json.Marshal(c)
}

// Unmarshal decodes a stored document. Failures are ErrCorrupt.
func Unmarshal(data []byte) (CV, error) {
	var c CV
	if err := json.Unmarshal(data, &c); err != nil {
		return CV{}, corrupt(err)
	}
	c.Normalize()
	return c, nil
}
