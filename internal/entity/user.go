package entity

import "time"

// User is identified by its case-sensitive name.
type User struct {
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (that *User) HasEmail() bool {
	return that.Email != ""
}
