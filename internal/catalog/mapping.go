package catalog

import (
	"encoding/json"

	"edustore/internal/domain"
)

// Raw wire shapes as the remote store serves them. The store is a document
// database behind a thin API: ids are "_id", descriptive fields may be
// absent, and video subject references arrive either as a plain id or as a
// populated subject object. Everything normalizes here, in one place.

const (
	// Values used when the store has no descriptive fields for a subject.
	placeholderDescription = "Comprehensive subject module"
	placeholderIcon        = "book"
)

type rawCourse struct {
	ID         string       `json:"_id"`
	Title      string       `json:"title"`
	Department string       `json:"department"`
	YearLevel  string       `json:"yearLevel"`
	Subjects   []rawSubject `json:"subjects"`
}

type rawSubject struct {
	ID            string `json:"_id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	OfferPrice    int    `json:"offerPrice"`
	OriginalPrice int    `json:"originalPrice"`
}

type rawSubjectInfo struct {
	ID         string `json:"_id"`
	Code       string `json:"code"`
	Title      string `json:"title"`
	Department string `json:"department"`
	YearLevel  string `json:"yearLevel"`
}

type rawVideo struct {
	ID           string     `json:"_id"`
	SubjectID    subjectRef `json:"subjectId"`
	SubjectTitle string     `json:"subjectTitle"`
	Title        string     `json:"title"`
	ChapterName  string     `json:"chapterName"`
	PartNumber   int        `json:"partNumber"`
	VideoURL     string     `json:"videoUrl"`
	NoteLink     string     `json:"noteLink"`
	IsFree       bool       `json:"isFree"`
}

// subjectRef accepts both "sub1" and {"_id":"sub1",...} for subjectId.
type subjectRef string

func (s *subjectRef) UnmarshalJSON(b []byte) error {
	var id string
	if err := json.Unmarshal(b, &id); err == nil {
		*s = subjectRef(id)
		return nil
	}
	var obj struct {
		ID string `json:"_id"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*s = subjectRef(obj.ID)
	return nil
}

func mapCourse(raw rawCourse) domain.Course {
	course := domain.Course{
		ID:         raw.ID,
		Title:      raw.Title,
		Department: raw.Department,
		YearLevel:  raw.YearLevel,
		Subjects:   make([]domain.Subject, 0, len(raw.Subjects)),
	}

	seen := map[string]bool{}
	for _, rs := range raw.Subjects {
		// Subject ids must be unique within a course; keep the first
		// record, drop the rest.
		if seen[rs.ID] {
			continue
		}
		seen[rs.ID] = true
		course.Subjects = append(course.Subjects, mapSubject(rs))
	}
	return course
}

func mapSubject(rs rawSubject) domain.Subject {
	s := domain.Subject{
		ID:            rs.ID,
		Title:         rs.Title,
		Description:   rs.Description,
		Icon:          rs.Icon,
		Price:         rs.OfferPrice,
		OriginalPrice: rs.OriginalPrice,
	}
	if s.Description == "" {
		s.Description = placeholderDescription
	}
	if s.Icon == "" {
		s.Icon = placeholderIcon
	}
	if s.Price < 0 {
		s.Price = 0
	}
	// The struck-through price only makes sense above the offer price.
	if s.OriginalPrice < s.Price {
		s.OriginalPrice = 0
	}
	return s
}

func mapVideo(rv rawVideo) domain.Video {
	return domain.Video{
		ID:           rv.ID,
		SubjectID:    string(rv.SubjectID),
		SubjectTitle: rv.SubjectTitle,
		Title:        rv.Title,
		ChapterName:  rv.ChapterName,
		PartNumber:   rv.PartNumber,
		VideoURL:     rv.VideoURL,
		NoteLink:     rv.NoteLink,
		IsFree:       rv.IsFree,
	}
}
