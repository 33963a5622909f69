// Package models holds the persistent entities shared by repositories,
// services and the GraphQL layer.
package models

import "time"

// User is a registered account. Password always holds a bcrypt hash.
type User struct {
	ID        string
	Username  string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time

	// LatestMessage is filled only by the contact-list query and is never stored.
	LatestMessage *Message
}

// Field exposes filterable attributes by their filter names.
func (u *User) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "username":
		return u.Username, true
	case "email":
		return u.Email, true
	}
	return nil, false
}
