package models

import "time"

// Message is a chat message between two users, addressed by username.
type Message struct {
	ID        string
	UUID      string
	Content   string
	From      string
	To        string
	CreatedAt time.Time
}

func (m *Message) Field(name string) (any, bool) {
	switch name {
	case "uuid":
		return m.UUID, true
	case "from":
		return m.From, true
	case "to":
		return m.To, true
	}
	return nil, false
}

// Counterpart returns the other participant of m from username's point of view.
func (m *Message) Counterpart(username string) string {
	if m.From == username {
		return m.To
	}
	return m.From
}
