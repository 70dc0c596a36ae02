package handler

import (
	"ariavt-server/internal/common/httpx"
	moduledto "ariavt-server/internal/modules/image/dto"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *Handler) UploadImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择文件"})
		return
	}

	meta := moduledto.UploadMeta{
		Title: c.PostForm("title"),
		Text:  c.PostForm("text"),
	}
	if raw := strings.TrimSpace(c.PostForm("patient_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "patient_id 参数错误"})
			return
		}
		pid := uint(id)
		meta.PatientID = &pid
	}

	image, err := h.imageService.Upload(c.Request.Context(), actor, file, meta)
	if err != nil {
		httpx.WriteServiceError(c, err, "上传失败，请稍后重试")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"msg": "上传成功",
		"id":  image.ID,
	})
}

func (h *Handler) BatchUploadImages(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请选择文件"})
		return
	}

	ids, err := h.imageService.BatchUpload(c.Request.Context(), actor, form.File["files"])
	if err != nil {
		httpx.WriteServiceError(c, err, "上传失败，请稍后重试")
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

func (h *Handler) ListImages(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	ids, ok := parseIDList(c.QueryArray("ids"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids 参数错误"})
		return
	}

	var userID *uint
	if raw := c.Query("user_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || parsed == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user_id 参数错误"})
			return
		}
		uid := uint(parsed)
		userID = &uid
	}

	res, err := h.imageService.List(c.Request.Context(), actor, moduledto.ImageListRequest{
		PaginationRequest: moduledto.PaginationRequest{Page: page, PageSize: pageSize},
		IDs:               ids,
		UserID:            userID,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图片列表失败")
		return
	}
	c.JSON(http.StatusOK, res)
}

// GetImageFile 返回图片原始字节
func (h *Handler) GetImageFile(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	image, data, err := h.imageService.ReadFile(c.Request.Context(), actor, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "读取图片失败")
		return
	}
	c.Data(http.StatusOK, image.MimeType, data)
}

func (h *Handler) GetImageInfo(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	image, err := h.imageService.Get(c.Request.Context(), actor, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取图片信息失败")
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) GetImageBase64(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	res, err := h.imageService.Base64(c.Request.Context(), actor, id)
	if err != nil {
		httpx.WriteServiceError(c, err, "读取图片失败")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) UpdateImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	var req moduledto.UpdateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	image, err := h.imageService.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新失败")
		return
	}
	c.JSON(http.StatusOK, image)
}

func (h *Handler) DeleteImage(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.imageService.Delete(c.Request.Context(), actor, id); err != nil {
		httpx.WriteServiceError(c, err, "删除失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// parseIDList 同时支持 ids=1&ids=2 与 ids=1,2
func parseIDList(values []string) ([]uint, bool) {
	var ids []uint
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, false
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, true
}
