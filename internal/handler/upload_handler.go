package handler

import (
	"fmt"
	"image"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxUploadSize 限制单个上传文件为 5 MiB
const maxUploadSize = 5 << 20

// UploadImage 处理图片上传请求。
// 文件以"日期-随机串.扩展名"落盘到上传目录，目录不存在时首次使用前创建。
// 已上传的文件从不在此删除，引用它的数据库记录被删除时文件会成为孤儿。
func (a *API) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "未找到上传的图片")
		return
	}

	if file.Size > maxUploadSize {
		respondError(c, http.StatusBadRequest, "图片大小不能超过 5MB")
		return
	}

	// 仅检查客户端声明的类型，不做内容级校验
	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		respondError(c, http.StatusBadRequest, "只允许上传图片文件")
		return
	}

	if err := os.MkdirAll(a.uploadDir, 0o755); err != nil {
		log.Printf("failed to create upload dir %s: %v", a.uploadDir, err)
		respondError(c, http.StatusInternalServerError, "创建上传目录失败")
		return
	}

	ext := filepath.Ext(file.Filename)
	newFilename := fmt.Sprintf("%s-%s%s", time.Now().Format("20060102"), uuid.New().String(), ext)
	filePath := filepath.Join(a.uploadDir, newFilename)

	if err := c.SaveUploadedFile(file, filePath); err != nil {
		log.Printf("failed to save uploaded file: %v", err)
		respondError(c, http.StatusInternalServerError, "保存文件失败")
		return
	}

	width, height := probeImageSize(filePath)

	c.JSON(http.StatusOK, gin.H{
		"url":    strings.TrimRight(a.uploadURL, "/") + "/" + newFilename,
		"width":  width,
		"height": height,
	})
}

// probeImageSize 尽力读取图片尺寸，无法解码时返回零值。
func probeImageSize(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
