package export

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"edustore/internal/domain"
)

// Student roster CSV. Keep header order EXACT: downstream spreadsheets
// key on position.
var rosterHeader = []string{
	"USER_ID",
	"EMAIL",
	"DISPLAY_NAME",
	"ROLE",
	"PURCHASED_SUBJECTS",
	"PURCHASED_COUNT",
}

// WriteStudentRoster writes the registered-users report.
func WriteStudentRoster(w io.Writer, users []domain.User) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(rosterHeader); err != nil {
		return err
	}

	for _, u := range users {
		row := []string{
			u.ID,
			u.Email,
			u.DisplayName,
			string(u.Role),
			strings.Join(u.PurchasedSubjects, ";"),
			strconv.Itoa(len(u.PurchasedSubjects)),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
