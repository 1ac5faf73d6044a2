package handler

import (
	"bytes"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sunnykids/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps()),
	)
	contentSanitizer = bluemonday.UGCPolicy()
)

type testimonialPayload struct {
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Content   string  `json:"content"`
	Rating    int     `json:"rating"`
	AvatarURL *string `json:"avatarUrl"`
}

type testimonialPatchPayload struct {
	Name      *string `json:"name"`
	Role      *string `json:"role"`
	Content   *string `json:"content"`
	Rating    *int    `json:"rating"`
	AvatarURL *string `json:"avatarUrl"`
	IsActive  *bool   `json:"isActive"`
}

type publicTestimonial struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Role        string    `json:"role"`
	Content     string    `json:"content"`
	ContentHTML string    `json:"contentHtml"`
	Rating      int       `json:"rating"`
	AvatarURL   *string   `json:"avatarUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// renderTestimonialHTML 将评价内容按 Markdown 渲染并消毒，渲染失败时退回转义的纯文本。
func renderTestimonialHTML(content string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return template.HTMLEscapeString(content)
	}
	return contentSanitizer.Sanitize(buf.String())
}

// ListActiveTestimonials returns publicly visible testimonials only.
func (a *API) ListActiveTestimonials(c *gin.Context) {
	rows, err := a.testimonials.ListActive()
	if err != nil {
		log.Printf("failed to list active testimonials: %v", err)
		respondError(c, http.StatusInternalServerError, "获取评价失败")
		return
	}

	views := make([]publicTestimonial, 0, len(rows))
	for _, row := range rows {
		views = append(views, publicTestimonial{
			ID:          row.ID,
			Name:        row.Name,
			Role:        row.Role,
			Content:     row.Content,
			ContentHTML: renderTestimonialHTML(row.Content),
			Rating:      row.Rating,
			AvatarURL:   row.AvatarURL,
			CreatedAt:   row.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, views)
}

// ListAllTestimonials returns every testimonial including inactive ones.
func (a *API) ListAllTestimonials(c *gin.Context) {
	rows, err := a.testimonials.ListAll()
	if err != nil {
		log.Printf("failed to list testimonials: %v", err)
		respondError(c, http.StatusInternalServerError, "获取评价失败")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateTestimonial creates a new testimonial.
func (a *API) CreateTestimonial(c *gin.Context) {
	var payload testimonialPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	row, err := a.testimonials.Create(service.TestimonialInput{
		Name:      payload.Name,
		Role:      payload.Role,
		Content:   payload.Content,
		Rating:    payload.Rating,
		AvatarURL: payload.AvatarURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestimonialNameMissing),
			errors.Is(err, service.ErrTestimonialContentMissing):
			respondError(c, http.StatusBadRequest, "请求参数不合法")
		default:
			log.Printf("failed to create testimonial: %v", err)
			respondError(c, http.StatusInternalServerError, "创建评价失败")
		}
		return
	}

	c.JSON(http.StatusCreated, row)
}

// UpdateTestimonial applies a partial update to a testimonial.
func (a *API) UpdateTestimonial(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评价ID")
		return
	}

	var payload testimonialPatchPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	row, err := a.testimonials.Update(id, service.TestimonialPatch{
		Name:      payload.Name,
		Role:      payload.Role,
		Content:   payload.Content,
		Rating:    payload.Rating,
		AvatarURL: payload.AvatarURL,
		IsActive:  payload.IsActive,
	})
	if err != nil {
		log.Printf("failed to update testimonial %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "更新评价失败")
		return
	}

	// 记录不存在时视为无操作成功，返回 null
	c.JSON(http.StatusOK, row)
}

// DeleteTestimonial removes a testimonial; deleting a missing id succeeds.
func (a *API) DeleteTestimonial(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评价ID")
		return
	}

	if err := a.testimonials.Delete(id); err != nil {
		log.Printf("failed to delete testimonial %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除评价失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
