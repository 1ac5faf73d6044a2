package service

import (
	"errors"
	"strings"

	"github.com/sunnykids/internal/db"
	"gorm.io/gorm"
)

var ErrGalleryImageMissing = errors.New("gallery image url is required")

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating a gallery image.
// DisplayOrder 为 nil 时按当前数量加一分配展示顺序。
type GalleryInput struct {
	URL          string
	Title        *string
	Description  *string
	DisplayOrder *int
}

// GalleryPatch carries a partial update; nil fields are left untouched.
type GalleryPatch struct {
	URL          *string
	Title        *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// ListActive returns publicly visible images ordered for display.
func (s *GalleryService) ListActive() ([]db.GalleryImage, error) {
	rows := make([]db.GalleryImage, 0)
	if err := s.db.Where("is_active = ?", true).
		Order("display_order asc").Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll returns every gallery image including inactive ones, same ordering.
func (s *GalleryService) ListAll() ([]db.GalleryImage, error) {
	rows := make([]db.GalleryImage, 0)
	if err := s.db.Order("display_order asc").Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a new gallery image. New rows are active by default.
// 展示顺序默认取当前数量加一；读取与写入之间没有事务保护，并发创建可能重号。
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryImage, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, ErrGalleryImageMissing
	}

	displayOrder := 0
	if input.DisplayOrder != nil {
		displayOrder = *input.DisplayOrder
	} else {
		var count int64
		if err := s.db.Model(&db.GalleryImage{}).Count(&count).Error; err != nil {
			return nil, err
		}
		displayOrder = int(count) + 1
	}

	row := db.GalleryImage{
		URL:          strings.TrimSpace(input.URL),
		Title:        input.Title,
		Description:  input.Description,
		DisplayOrder: displayOrder,
		IsActive:     true,
	}

	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Update applies a partial update to a gallery image.
// A missing id is a silent no-op and returns nil without error.
func (s *GalleryService) Update(id uint, patch GalleryPatch) (*db.GalleryImage, error) {
	var row db.GalleryImage
	if err := s.db.First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.URL != nil {
		if strings.TrimSpace(*patch.URL) == "" {
			return nil, ErrGalleryImageMissing
		}
		updates["url"] = strings.TrimSpace(*patch.URL)
	}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.DisplayOrder != nil {
		updates["display_order"] = *patch.DisplayOrder
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

// Delete removes a gallery image row. Deleting a missing id is not an error.
// The backing file under the upload directory is left on disk.
func (s *GalleryService) Delete(id uint) error {
	return s.db.Delete(&db.GalleryImage{}, id).Error
}
