package db

import "time"

// Testimonial 定义家长评价模型
type Testimonial struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Role      string    `json:"role"`
	Content   string    `gorm:"not null" json:"content"`
	Rating    int       `json:"rating"`
	AvatarURL *string   `json:"avatarUrl"`
	IsActive  bool      `gorm:"default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
