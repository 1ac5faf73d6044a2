package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/sunnykids/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMessageNameTooShort    = errors.New("contact name is too short")
	ErrMessageEmailInvalid    = errors.New("contact email is invalid")
	ErrMessagePhoneMissing    = errors.New("contact phone is required")
	ErrMessageContentTooShort = errors.New("contact message is too short")
	ErrMessageStatusInvalid   = errors.New("contact message status is invalid")
)

// MessageService handles contact message CRUD.
type MessageService struct {
	db        *gorm.DB
	sanitizer *bluemonday.Policy
}

// MessageInput represents fields accepted when creating a contact message.
type MessageInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
	IP      string
}

// NewMessageService creates a MessageService instance.
func NewMessageService(gdb *gorm.DB) *MessageService {
	return &MessageService{
		db:        gdb,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

// Create inserts a contact message submitted via the public form.
// Status is always forced to new regardless of input.
func (s *MessageService) Create(input MessageInput) (*db.ContactMessage, error) {
	if err := validateMessageInput(input); err != nil {
		return nil, err
	}

	row := db.ContactMessage{
		Name:    s.sanitizer.Sanitize(strings.TrimSpace(input.Name)),
		Email:   strings.TrimSpace(input.Email),
		Phone:   strings.TrimSpace(input.Phone),
		Message: s.sanitizer.Sanitize(strings.TrimSpace(input.Message)),
		Status:  db.MessageStatusNew,
		IP:      strings.TrimSpace(input.IP),
	}

	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAll returns all contact messages, newest first.
func (s *MessageService) ListAll() ([]db.ContactMessage, error) {
	rows := make([]db.ContactMessage, 0)
	if err := s.db.Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Get fetches a contact message by id, returning nil when it does not exist.
func (s *MessageService) Get(id uint) (*db.ContactMessage, error) {
	var row db.ContactMessage
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// UpdateStatus sets the read/new flag of a message.
// A missing id is a silent no-op and returns nil without error.
func (s *MessageService) UpdateStatus(id uint, status string) (*db.ContactMessage, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != db.MessageStatusNew && status != db.MessageStatusRead {
		return nil, ErrMessageStatusInvalid
	}

	var row db.ContactMessage
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	row.Status = status
	if err := s.db.Save(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a contact message. Deleting a missing id is not an error.
func (s *MessageService) Delete(id uint) error {
	return s.db.Delete(&db.ContactMessage{}, id).Error
}

func validateMessageInput(input MessageInput) error {
	if len([]rune(strings.TrimSpace(input.Name))) < 2 {
		return ErrMessageNameTooShort
	}
	email := strings.TrimSpace(input.Email)
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return ErrMessageEmailInvalid
	}
	if strings.TrimSpace(input.Phone) == "" {
		return ErrMessagePhoneMissing
	}
	if len([]rune(strings.TrimSpace(input.Message))) < 5 {
		return ErrMessageContentTooShort
	}
	return nil
}
