// Package cascade implements the dependent department → yearLevel →
// subject selector shared by the browse and admin edit flows. Choosing a
// value at one level constrains the options below it and resets any
// choices already made there, so the held triple can never disagree with
// the catalog.
package cascade

import (
	"fmt"

	"edustore/internal/domain"
)

type State int

const (
	NoDepartment State = iota
	DepartmentChosen
	YearChosen
	SubjectChosen
)

func (s State) String() string {
	switch s {
	case DepartmentChosen:
		return "department chosen"
	case YearChosen:
		return "year chosen"
	case SubjectChosen:
		return "subject chosen"
	default:
		return "no department"
	}
}

// Engine filters one subject catalog. Not safe for concurrent use; each
// view owns its engine.
type Engine struct {
	catalog []domain.SubjectInfo

	department   string
	yearLevel    string
	subjectID    string
	subjectTitle string
}

func New(catalog []domain.SubjectInfo) *Engine {
	return &Engine{catalog: catalog}
}

func (e *Engine) State() State {
	switch {
	case e.subjectID != "":
		return SubjectChosen
	case e.yearLevel != "":
		return YearChosen
	case e.department != "":
		return DepartmentChosen
	default:
		return NoDepartment
	}
}

// Departments lists the distinct departments in first-appearance order.
// Blank values are skipped.
func (e *Engine) Departments() []string {
	return e.distinct(func(s domain.SubjectInfo) string { return s.Department })
}

// YearLevels lists the distinct year levels under the chosen department.
func (e *Engine) YearLevels() []string {
	if e.department == "" {
		return nil
	}
	return e.distinct(func(s domain.SubjectInfo) string {
		if s.Department != e.department {
			return ""
		}
		return s.YearLevel
	})
}

// SubjectOptions lists the subjects matching the chosen department and
// year level, in catalog order.
func (e *Engine) SubjectOptions() []domain.SubjectInfo {
	if e.department == "" || e.yearLevel == "" {
		return nil
	}
	var out []domain.SubjectInfo
	for _, s := range e.catalog {
		if s.Department == e.department && s.YearLevel == e.yearLevel {
			out = append(out, s)
		}
	}
	return out
}

// SetDepartment chooses a department and resets the year level and subject.
// The value must be one of Departments().
func (e *Engine) SetDepartment(department string) error {
	if !contains(e.Departments(), department) {
		return fmt.Errorf("cascade: unknown department %q", department)
	}
	e.department = department
	e.yearLevel = ""
	e.subjectID = ""
	e.subjectTitle = ""
	return nil
}

// SetYearLevel chooses a year level under the current department and
// resets the subject. It requires a chosen department and a value from
// YearLevels().
func (e *Engine) SetYearLevel(yearLevel string) error {
	if e.department == "" {
		return fmt.Errorf("cascade: year level requires a department")
	}
	if !contains(e.YearLevels(), yearLevel) {
		return fmt.Errorf("cascade: year level %q not offered under department %q", yearLevel, e.department)
	}
	e.yearLevel = yearLevel
	e.subjectID = ""
	e.subjectTitle = ""
	return nil
}

// SetSubject chooses a subject from SubjectOptions() and resolves its
// title for display. It requires a chosen year level.
func (e *Engine) SetSubject(subjectID string) error {
	if e.yearLevel == "" {
		return fmt.Errorf("cascade: subject requires a year level")
	}
	for _, s := range e.SubjectOptions() {
		if s.ID == subjectID {
			e.subjectID = s.ID
			e.subjectTitle = s.Title
			return nil
		}
	}
	return fmt.Errorf("cascade: subject %q not offered under %s / %s", subjectID, e.department, e.yearLevel)
}

// Seed pre-fills all three levels from an existing subject id (the admin
// edit form opens on a video that already belongs somewhere).
func (e *Engine) Seed(subjectID string) error {
	for _, s := range e.catalog {
		if s.ID == subjectID {
			e.department = s.Department
			e.yearLevel = s.YearLevel
			e.subjectID = s.ID
			e.subjectTitle = s.Title
			return nil
		}
	}
	return fmt.Errorf("cascade: subject %q not in catalog", subjectID)
}

// Reset returns the engine to NoDepartment.
func (e *Engine) Reset() {
	e.department = ""
	e.yearLevel = ""
	e.subjectID = ""
	e.subjectTitle = ""
}

// Selection returns the current (department, yearLevel, subjectID) triple.
func (e *Engine) Selection() (department, yearLevel, subjectID string) {
	return e.department, e.yearLevel, e.subjectID
}

// SubjectTitle is the display title resolved by SetSubject or Seed.
func (e *Engine) SubjectTitle() string {
	return e.subjectTitle
}

func (e *Engine) distinct(key func(domain.SubjectInfo) string) []string {
	var out []string
	seen := map[string]bool{}
	for _, s := range e.catalog {
		v := key(s)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
