package domain

import "time"

// Profile holds optional personal fields, one-to-one with User. It is created
// in the same transaction as the user and removed by cascade on deletion.
type Profile struct {
	UserID             string     `json:"user_id"`
	FirstName          string     `json:"first_name,omitempty"`
	LastName           string     `json:"last_name,omitempty"`
	Title              string     `json:"title,omitempty"`
	Bio                string     `json:"bio,omitempty"`
	Location           string     `json:"location,omitempty"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Website            string     `json:"website,omitempty"`
	Avatar             string     `json:"avatar,omitempty"`
	EmailNotifications bool       `json:"email_notifications"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// DisplayName falls back to the username when no name fields are set.
func (p *Profile) DisplayName(username string) string {
	if p == nil {
		return username
	}
	switch {
	case p.FirstName != "" && p.LastName != "":
		return p.FirstName + " " + p.LastName
	case p.FirstName != "":
		return p.FirstName
	default:
		return username
	}
}
