package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunnykids/internal/service"
)

type galleryPayload struct {
	URL          string  `json:"url"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
}

type galleryPatchPayload struct {
	URL          *string `json:"url"`
	Title        *string `json:"title"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// ListActiveGalleryImages returns publicly visible images ordered for display.
func (a *API) ListActiveGalleryImages(c *gin.Context) {
	rows, err := a.galleries.ListActive()
	if err != nil {
		log.Printf("failed to list active gallery images: %v", err)
		respondError(c, http.StatusInternalServerError, "获取相册失败")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ListAllGalleryImages returns every gallery image including inactive ones.
func (a *API) ListAllGalleryImages(c *gin.Context) {
	rows, err := a.galleries.ListAll()
	if err != nil {
		log.Printf("failed to list gallery images: %v", err)
		respondError(c, http.StatusInternalServerError, "获取相册失败")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// CreateGalleryImage creates a gallery entry referencing an uploaded image URL.
func (a *API) CreateGalleryImage(c *gin.Context) {
	var payload galleryPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	row, err := a.galleries.Create(service.GalleryInput{
		URL:          payload.URL,
		Title:        payload.Title,
		Description:  payload.Description,
		DisplayOrder: payload.DisplayOrder,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "请先上传图片")
		default:
			log.Printf("failed to create gallery image: %v", err)
			respondError(c, http.StatusInternalServerError, "创建相册图片失败")
		}
		return
	}

	c.JSON(http.StatusCreated, row)
}

// UpdateGalleryImage applies a partial update to a gallery image.
func (a *API) UpdateGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	var payload galleryPatchPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	row, err := a.galleries.Update(id, service.GalleryPatch{
		URL:          payload.URL,
		Title:        payload.Title,
		Description:  payload.Description,
		DisplayOrder: payload.DisplayOrder,
		IsActive:     payload.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGalleryImageMissing):
			respondError(c, http.StatusBadRequest, "图片地址不能为空")
		default:
			log.Printf("failed to update gallery image %d: %v", id, err)
			respondError(c, http.StatusInternalServerError, "更新相册图片失败")
		}
		return
	}

	// 记录不存在时视为无操作成功，返回 null
	c.JSON(http.StatusOK, row)
}

// DeleteGalleryImage removes a gallery row; the backing file stays on disk.
func (a *API) DeleteGalleryImage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的图片ID")
		return
	}

	if err := a.galleries.Delete(id); err != nil {
		log.Printf("failed to delete gallery image %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除相册图片失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
