package service

import (
	"errors"
	"strings"

	"github.com/sunnykids/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTestimonialNameMissing    = errors.New("testimonial name is required")
	ErrTestimonialContentMissing = errors.New("testimonial content is required")
)

// TestimonialService handles testimonial CRUD.
type TestimonialService struct {
	db *gorm.DB
}

// TestimonialInput represents fields accepted when creating a testimonial.
// Rating bounds are a UI convention and are deliberately not enforced here.
type TestimonialInput struct {
	Name      string
	Role      string
	Content   string
	Rating    int
	AvatarURL *string
}

// TestimonialPatch carries a partial update; nil fields are left untouched.
type TestimonialPatch struct {
	Name      *string
	Role      *string
	Content   *string
	Rating    *int
	AvatarURL *string
	IsActive  *bool
}

// NewTestimonialService creates a TestimonialService instance.
func NewTestimonialService(gdb *gorm.DB) *TestimonialService {
	return &TestimonialService{db: gdb}
}

// ListActive returns publicly visible testimonials, newest first.
func (s *TestimonialService) ListActive() ([]db.Testimonial, error) {
	rows := make([]db.Testimonial, 0)
	if err := s.db.Where("is_active = ?", true).
		Order("created_at desc").Order("id desc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every testimonial including inactive ones, newest first.
func (s *TestimonialService) ListAll() ([]db.Testimonial, error) {
	rows := make([]db.Testimonial, 0)
	if err := s.db.Order("created_at desc").Order("id desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new testimonial. New rows are active by default.
func (s *TestimonialService) Create(input TestimonialInput) (*db.Testimonial, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrTestimonialNameMissing
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrTestimonialContentMissing
	}

	row := db.Testimonial{
		Name:      strings.TrimSpace(input.Name),
		Role:      strings.TrimSpace(input.Role),
		Content:   strings.TrimSpace(input.Content),
		Rating:    input.Rating,
		AvatarURL: input.AvatarURL,
		IsActive:  true,
	}

	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial update to a testimonial.
// A missing id is a silent no-op and returns nil without error.
func (s *TestimonialService) Update(id uint, patch TestimonialPatch) (*db.Testimonial, error) {
	var row db.Testimonial
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = strings.TrimSpace(*patch.Name)
	}
	if patch.Role != nil {
		updates["role"] = strings.TrimSpace(*patch.Role)
	}
	if patch.Content != nil {
		updates["content"] = strings.TrimSpace(*patch.Content)
	}
	if patch.Rating != nil {
		updates["rating"] = *patch.Rating
	}
	if patch.AvatarURL != nil {
		updates["avatar_url"] = *patch.AvatarURL
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}
	if len(updates) == 0 {
		return &row, nil
	}

	if err := s.db.Model(&row).Updates(updates).Error; err != nil {
		return nil, err
	}
	if err := s.db.First(&row, id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes a testimonial. Deleting a missing id is not an error.
// The avatar file referenced by the row is left on disk.
func (s *TestimonialService) Delete(id uint) error {
	return s.db.Delete(&db.Testimonial{}, id).Error
}
