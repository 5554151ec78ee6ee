package domain

import "sort"

// Video is a single lesson part. Chapter membership is carried on the
// record itself (ChapterName); chapters are not persisted on their own.
type Video struct {
	ID           string
	SubjectID    string
	SubjectTitle string
	Title        string
	ChapterName  string
	PartNumber   int
	VideoURL     string
	NoteLink     string

	// IsFree unlocks the part for everyone, owned subject or not
	// (free sample parts).
	IsFree bool
}

// Chapter is a named grouping of parts under one subject, derived from the
// videos' ChapterName field.
type Chapter struct {
	Name  string
	Parts []Video
}

// GroupChapters derives the chapter list from a flat video sequence.
// Chapters keep first-appearance order; parts within a chapter are sorted
// by part number. Part numbers are not required to be unique (see
// PartTaken), ties keep input order.
func GroupChapters(videos []Video) []Chapter {
	var order []string
	byName := map[string][]Video{}
	for _, v := range videos {
		if _, ok := byName[v.ChapterName]; !ok {
			order = append(order, v.ChapterName)
		}
		byName[v.ChapterName] = append(byName[v.ChapterName], v)
	}

	chapters := make([]Chapter, 0, len(order))
	for _, name := range order {
		parts := byName[name]
		sort.SliceStable(parts, func(i, j int) bool {
			return parts[i].PartNumber < parts[j].PartNumber
		})
		chapters = append(chapters, Chapter{Name: name, Parts: parts})
	}
	return chapters
}

// PartTaken reports whether another video already uses v's part number in
// the same subject+chapter. The store does not enforce uniqueness; callers
// that care should check before a create/update.
func PartTaken(videos []Video, v Video) bool {
	for _, other := range videos {
		if other.ID == v.ID {
			continue
		}
		if other.SubjectID == v.SubjectID &&
			other.ChapterName == v.ChapterName &&
			other.PartNumber == v.PartNumber {
			return true
		}
	}
	return false
}
