package domain

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the authenticated account as seen by this module. Identity and
// token issuance live in an external collaborator; we only carry the fields
// the catalog and entitlement logic need.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Role        Role

	// PurchasedSubjects is the ownership boundary: subject ids the user
	// has paid for.
	PurchasedSubjects []string
}

// Owns reports whether the user has purchased the subject.
func (u User) Owns(subjectID string) bool {
	for _, id := range u.PurchasedSubjects {
		if id == subjectID {
			return true
		}
	}
	return false
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Stats is the admin dashboard overview payload.
type Stats struct {
	TotalUsers   int `json:"totalUsers"`
	TotalCourses int `json:"totalCourses"`
	TotalVideos  int `json:"totalVideos"`
}
