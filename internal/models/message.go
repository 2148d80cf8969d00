package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message statuses. A message is answered exactly when its reply is non-empty;
// the reply operation sets both in a single update.
const (
	StatusPending  = "pending"
	StatusAnswered = "answered"
)

// Message is a contact-form submission. UserID is nil for guest submissions;
// Name and Email are the free-text sender identity and are kept independently
// of any linked account.
type Message struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    *string   `gorm:"size:36;index" json:"user,omitempty"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null;index" json:"email"`
	Body      string    `gorm:"column:message;not null" json:"message"`
	Reply     string    `gorm:"not null;default:''" json:"reply"`
	Status    string    `gorm:"not null;default:'pending'" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
