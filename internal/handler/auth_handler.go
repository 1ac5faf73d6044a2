package handler

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const sessionIsAdminKey = "is_admin"

type loginPayload struct {
	Password string `json:"password"`
}

// Login 处理管理员登录请求，口令与配置中的共享密钥精确匹配即通过
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	if subtle.ConstantTimeCompare([]byte(payload.Password), []byte(a.adminPassword)) != 1 {
		respondError(c, http.StatusUnauthorized, "密码错误")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionIsAdminKey, true)
	if err := session.Save(); err != nil {
		log.Printf("failed to save session: %v", err)
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout 处理管理员登出，销毁会话
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		log.Printf("failed to clear session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CheckAdmin 返回当前会话的管理员状态，任何调用方都可访问
func (a *API) CheckAdmin(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"isAdmin": isAdminSession(c)})
}

// AuthRequired 保护后台 API：缺少有效会话时返回 401 且不执行后续处理
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isAdminSession(c) {
			respondError(c, http.StatusUnauthorized, "未登录或会话已过期")
			c.Abort()
			return
		}
		c.Next()
	}
}

func isAdminSession(c *gin.Context) bool {
	session := sessions.Default(c)
	isAdmin, ok := session.Get(sessionIsAdminKey).(bool)
	return ok && isAdmin
}
