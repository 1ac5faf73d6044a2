package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sunnykids/internal/service"
)

type contactPayload struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Message  string `json:"message"`
	Honeypot string `json:"honeypot"`
}

type messageStatusPayload struct {
	Status string `json:"status"`
}

// SubmitContactMessage 处理公开联系表单提交。
// 隐藏的 honeypot 字段一旦非空即按垃圾提交处理，响应与普通校验失败一致。
func (a *API) SubmitContactMessage(c *gin.Context) {
	var payload contactPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if payload.Honeypot != "" {
		respondError(c, http.StatusBadRequest, "请求参数不合法")
		return
	}

	_, err := a.messages.Create(service.MessageInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Phone:   payload.Phone,
		Message: payload.Message,
		IP:      c.ClientIP(),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageNameTooShort),
			errors.Is(err, service.ErrMessageEmailInvalid),
			errors.Is(err, service.ErrMessagePhoneMissing),
			errors.Is(err, service.ErrMessageContentTooShort):
			respondError(c, http.StatusBadRequest, "请求参数不合法")
		default:
			log.Printf("failed to create contact message: %v", err)
			respondError(c, http.StatusInternalServerError, "提交失败，请稍后重试")
		}
		return
	}

	// 不回显已存储的记录
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "感谢您的留言，我们会尽快与您联系"})
}

// ListContactMessages returns all contact messages for the admin console.
func (a *API) ListContactMessages(c *gin.Context) {
	rows, err := a.messages.ListAll()
	if err != nil {
		log.Printf("failed to list contact messages: %v", err)
		respondError(c, http.StatusInternalServerError, "获取留言失败")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// UpdateContactMessageStatus toggles a message between new and read.
func (a *API) UpdateContactMessageStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	var payload messageStatusPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	row, err := a.messages.UpdateStatus(id, payload.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMessageStatusInvalid):
			respondError(c, http.StatusBadRequest, "留言状态无效")
		default:
			log.Printf("failed to update contact message %d: %v", id, err)
			respondError(c, http.StatusInternalServerError, "更新留言失败")
		}
		return
	}

	// 记录不存在时视为无操作成功，返回 null
	c.JSON(http.StatusOK, row)
}

// DeleteContactMessage removes a message; deleting a missing id succeeds.
func (a *API) DeleteContactMessage(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的留言ID")
		return
	}

	if err := a.messages.Delete(id); err != nil {
		log.Printf("failed to delete contact message %d: %v", id, err)
		respondError(c, http.StatusInternalServerError, "删除留言失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
