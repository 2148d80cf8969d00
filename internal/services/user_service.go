package services

import (
	"errors"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/wanderly/travel-api/internal/models"
)

var (
	// ErrEmailTaken signals a signup with an already registered email
	// (comparison is case-insensitive).
	ErrEmailTaken = errors.New("email_already_registered")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong
	// password so login failures cannot be used to enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// UserService is the credential store: registration, login verification and
// the idempotent default-admin seed.
type UserService interface {
	// Register creates a new account with role "user". The email is
	// lowercased before the uniqueness check and storage.
	Register(name, email, password string) (*models.User, error)
	// Authenticate verifies email+password and returns the matching user.
	Authenticate(email, password string) (*models.User, error)
	// GetUserByID resolves a user by its opaque id.
	GetUserByID(id string) (*models.User, error)
	// EnsureDefaultAdmin creates the default administrator unless an admin
	// record already exists. Safe to run on every process start.
	EnsureDefaultAdmin(name, email, password string) error
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

// normalizeEmail lowercases and trims an email for storage and lookups.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(name, email, password string) (*models.User, error) {
	email = normalizeEmail(email)

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		Name:  strings.TrimSpace(name),
		Email: email,
		Role:  models.RoleUser, // signup never elevates
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	var user models.User
	err := s.db.Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func (s *userService) GetUserByID(id string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userService) EnsureDefaultAdmin(name, email, password string) error {
	var existing models.User
	err := s.db.Where("role = ?", models.RoleAdmin).First(&existing).Error
	if err == nil {
		log.WithField("email", existing.Email).Debug("Admin account already present, skipping seed")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	admin := &models.User{
		Name:  name,
		Email: normalizeEmail(email),
		Role:  models.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.WithField("email", admin.Email).Info("Default admin account created")
	return nil
}
