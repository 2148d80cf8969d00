package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/wanderly/travel-api/internal/models"
)

// ErrMessageNotFound signals a reply to a message id that does not resolve.
var ErrMessageNotFound = errors.New("message_not_found")

// MessageService is the contact-message store: submission, the two dashboard
// listings and the admin reply.
type MessageService interface {
	// Submit stores a new contact message. userID is nil for guest
	// submissions and links the message to an account otherwise.
	Submit(name, email, body string, userID *string) (*models.Message, error)
	// ListByEmail returns the messages whose sender email equals the given
	// email, newest first.
	ListByEmail(email string) ([]models.Message, error)
	// ListPending returns all unanswered messages, newest first.
	ListPending() ([]models.Message, error)
	// Reply sets the reply text and flips the message to answered in a
	// single update, then returns the updated record.
	Reply(id, reply string) (*models.Message, error)
}

type messageService struct {
	db *gorm.DB
}

// NewMessageService creates a new instance of MessageService
func NewMessageService(db *gorm.DB) MessageService {
	return &messageService{db: db}
}

func (s *messageService) Submit(name, email, body string, userID *string) (*models.Message, error) {
	msg := &models.Message{
		UserID: userID,
		Name:   name,
		Email:  email,
		Body:   body,
		Reply:  "",
		Status: models.StatusPending,
	}
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *messageService) ListByEmail(email string) ([]models.Message, error) {
	// Ownership is matched on the free-text sender email, not the account
	// back-reference. Guest messages submitted with an email that later
	// registers an account stay visible to that account. Kept for
	// compatibility with existing data.
	var messages []models.Message
	err := s.db.Where("email = ?", email).
		Order("created_at DESC, id").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *messageService) ListPending() ([]models.Message, error) {
	var messages []models.Message
	err := s.db.Where("status = ?", models.StatusPending).
		Order("created_at DESC, id").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *messageService) Reply(id, reply string) (*models.Message, error) {
	// Reply text and status move together in one UPDATE so no reader can
	// observe an answered message with an empty reply or the reverse.
	res := s.db.Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reply":  reply,
			"status": models.StatusAnswered,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrMessageNotFound
	}

	var msg models.Message
	if err := s.db.Where("id = ?", id).First(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}
