package db

import "time"

// GalleryImage 定义园所相册图片模型
type GalleryImage struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	URL          string    `gorm:"not null" json:"url"`
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	DisplayOrder int       `gorm:"default:0" json:"displayOrder"`
	IsActive     bool      `gorm:"default:true" json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
}
