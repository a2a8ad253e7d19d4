package model

import "time"

// Meta holds the fields every document carries.
type Meta struct {
	Id        string    `firestore:"id" json:"id"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt" json:"updatedAt"`
}

func (m *Meta) SetIdIfEmpty(id string) {
	if m.Id == "" {
		m.Id = id
	}
}

// Touch stamps UpdatedAt and, on first write, CreatedAt.
func (m *Meta) Touch(now time.Time) {
	now = now.UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
