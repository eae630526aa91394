package models

import "time"

// User mirrors the backend user document (password never leaves the backend)
// Collection (backend side): users
type User struct {
	ID             string    `json:"_id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture"`
	IsAdmin        bool      `json:"isAdmin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserUpdate carries the profile fields a user may change. Empty fields are omitted.
type UserUpdate struct {
	Username       string `json:"username,omitempty"`
	Email          string `json:"email,omitempty"`
	Password       string `json:"password,omitempty"`
	ProfilePicture string `json:"profilePicture,omitempty"`
}

// Empty reports whether the update changes nothing.
func (u UserUpdate) Empty() bool {
	return u.Username == "" && u.Email == "" && u.Password == "" && u.ProfilePicture == ""
}
