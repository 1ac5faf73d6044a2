package handler

import (
	"github.com/sunnykids/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	messages      *service.MessageService
	testimonials  *service.TestimonialService
	galleries     *service.GalleryService
	uploadDir     string
	uploadURL     string
	adminPassword string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL, adminPassword string) *API {
	return &API{
		db:            gdb,
		messages:      service.NewMessageService(gdb),
		testimonials:  service.NewTestimonialService(gdb),
		galleries:     service.NewGalleryService(gdb),
		uploadDir:     uploadDir,
		uploadURL:     uploadURL,
		adminPassword: adminPassword,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
