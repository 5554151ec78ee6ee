package domain

// Course is the canonical representation of a course inside this service.
// The remote store groups subjects under department + year level; all raw
// records should map into this model before reaching any other package.
type Course struct {
	ID         string
	Title      string
	Department string
	YearLevel  string
	Subjects   []Subject
}

// Subject looks up a subject by id. Subject ids are unique within a course
// (the catalog client drops later duplicates on read).
func (c Course) Subject(id string) (Subject, bool) {
	for _, s := range c.Subjects {
		if s.ID == id {
			return s, true
		}
	}
	return Subject{}, false
}

// Subject is a purchasable unit within a Course, priced individually in
// integer currency units (TK).
type Subject struct {
	ID          string
	Title       string
	Description string
	Icon        string

	Price int

	// OriginalPrice is the pre-discount price shown struck through.
	// 0 means no discount is displayed.
	OriginalPrice int
}

// SubjectInfo is the admin catalog row: the subject plus the department and
// year level it is filed under. The cascading filter works over these rows.
type SubjectInfo struct {
	ID         string
	Code       string
	Title      string
	Department string
	YearLevel  string
}
