package domain

// User is the full user record.
// Password is write-only: it is accepted by Append and never returned.
type User struct {
	UserID    int64  `json:"userId,omitempty" yaml:"userId,omitempty"`
	Username  string `json:"username" yaml:"username"`
	Firstname string `json:"firstname,omitempty" yaml:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty" yaml:"lastname,omitempty"`
	Email     string `json:"email,omitempty" yaml:"email,omitempty"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	DOB       string `json:"dob,omitempty" yaml:"dob,omitempty"`
	Password  string `json:"-" yaml:"-"`
}

// Summary returns the list form of the user
func (u *User) Summary() UserSummary {
	return UserSummary{
		Username:  u.Username,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
	}
}

// UserSummary is the user record returned by list operations
type UserSummary struct {
	Username  string `json:"username" yaml:"username"`
	Firstname string `json:"firstname,omitempty" yaml:"firstname,omitempty"`
	Lastname  string `json:"lastname,omitempty" yaml:"lastname,omitempty"`
}
