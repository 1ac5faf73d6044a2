package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sunnykids/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAdminPassword = "test-admin-secret"

func setupHandlerTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := gdb.AutoMigrate(&db.ContactMessage{}, &db.Testimonial{}, &db.GalleryImage{}, &db.AdminUser{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

// setupHandlerTest 构造一个与生产路由等价的测试路由（不含限流器）。
func setupHandlerTest(t *testing.T) (*API, *gin.Engine, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, cleanup := setupHandlerTestDB(t)
	api := NewAPI(gdb, t.TempDir(), "/uploads", testAdminPassword)

	r := gin.New()
	store := cookie.NewStore([]byte("test-session-secret"))
	store.Options(sessions.Options{Path: "/", MaxAge: 86400, HttpOnly: true})
	r.Use(sessions.Sessions("sunnykids_session", store))

	r.GET("/api/testimonials", api.ListActiveTestimonials)
	r.GET("/api/gallery", api.ListActiveGalleryImages)
	r.POST("/api/contact", api.SubmitContactMessage)
	r.POST("/api/upload", api.UploadImage)

	r.POST("/api/admin/login", api.Login)
	r.POST("/api/admin/logout", api.Logout)
	r.GET("/api/admin/check", api.CheckAdmin)

	auth := r.Group("/api/admin")
	auth.Use(AuthRequired())
	{
		auth.GET("/messages", api.ListContactMessages)
		auth.PATCH("/messages/:id", api.UpdateContactMessageStatus)
		auth.DELETE("/messages/:id", api.DeleteContactMessage)

		auth.GET("/testimonials", api.ListAllTestimonials)
		auth.POST("/testimonials", api.CreateTestimonial)
		auth.PATCH("/testimonials/:id", api.UpdateTestimonial)
		auth.DELETE("/testimonials/:id", api.DeleteTestimonial)

		auth.GET("/gallery", api.ListAllGalleryImages)
		auth.POST("/gallery", api.CreateGalleryImage)
		auth.PATCH("/gallery/:id", api.UpdateGalleryImage)
		auth.DELETE("/gallery/:id", api.DeleteGalleryImage)
	}

	return api, r, cleanup
}

func performJSON(r *gin.Engine, method, target string, body interface{}, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, target, reader)
	request.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		request.AddCookie(c)
	}

	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, request)
	return recorder
}

// loginAsAdmin 执行登录并返回会话 Cookie。
func loginAsAdmin(t *testing.T, r *gin.Engine) []*http.Cookie {
	t.Helper()

	recorder := performJSON(r, http.MethodPost, "/api/admin/login", gin.H{"password": testAdminPassword}, nil)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected login to succeed, got status %d", recorder.Code)
	}

	cookies := recorder.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie after login")
	}
	return cookies
}

func decodeJSON(t *testing.T, recorder *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(recorder.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", recorder.Body.String(), err)
	}
}
