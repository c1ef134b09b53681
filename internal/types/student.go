package types

// StudentResponse is the student snapshot returned by the auth and team
// endpoints. TeamID is the single field the client watches for membership
// changes, so every operation that mutates membership responds with a fresh
// copy.
type StudentResponse struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	StudentID  string  `json:"student_id"`
	Department string  `json:"department"`
	Section    string  `json:"section"`
	TeamID     *string `json:"team_id"`
}
