package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"edustore/internal/domain"
)

var videoHeader = []string{
	"VIDEO_ID",
	"SUBJECT_ID",
	"SUBJECT_TITLE",
	"CHAPTER",
	"PART",
	"TITLE",
	"VIDEO_URL",
	"NOTE_LINK",
	"IS_FREE",
}

// WriteVideoCatalog writes the content library report, one row per part.
func WriteVideoCatalog(w io.Writer, videos []domain.Video) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(videoHeader); err != nil {
		return err
	}

	for _, v := range videos {
		row := []string{
			v.ID,
			v.SubjectID,
			v.SubjectTitle,
			v.ChapterName,
			strconv.Itoa(v.PartNumber),
			v.Title,
			v.VideoURL,
			v.NoteLink,
			strconv.FormatBool(v.IsFree),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
