package models

// Profile is the zero-or-one personal record owned by a user. DOB is kept
// as the submitted "YYYY-MM-DD" string.
type Profile struct {
	ID      int64
	UserID  int64
	Name    string
	DOB     string
	Address string
	Gender  string
}
