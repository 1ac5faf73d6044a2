package db

import "time"

const (
	MessageStatusNew  = "new"
	MessageStatusRead = "read"
)

// ContactMessage 定义公开联系表单提交的留言模型
type ContactMessage struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `gorm:"not null" json:"phone"`
	Message   string    `gorm:"not null" json:"message"`
	Status    string    `gorm:"default:new" json:"status"` // new, read
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}
