package handler

import (
	"ariavt-server/internal/common/httpx"
	moduledto "ariavt-server/internal/modules/analysis/dto"
	analysisservice "ariavt-server/internal/modules/analysis/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheHeader 标记分析结果是否来自缓存
const CacheHeader = "X-Analysis-Cache"

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.registry.List(c.Request.Context())
	if err != nil {
		httpx.WriteServiceError(c, err, "获取服务列表失败")
		return
	}
	c.JSON(http.StatusOK, services)
}

// GetService 不带 image_id 时返回服务描述，带 image_id 时返回该图片的分析结果。
func (h *Handler) GetService(c *gin.Context) {
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	var query moduledto.AnalyzeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	if query.ImageID == nil {
		svc, err := h.registry.Get(c.Request.Context(), id)
		if err != nil {
			httpx.WriteServiceError(c, err, "获取服务失败")
			return
		}
		c.JSON(http.StatusOK, svc)
		return
	}

	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	outcome, err := h.orchestrator.Analyze(c.Request.Context(), analysisservice.AnalyzeRequest{
		ImageID:   *query.ImageID,
		ServiceID: id,
		Actor:     actor,
		Force:     query.ForceAnalysis,
	})
	if err != nil {
		httpx.WriteServiceError(c, err, "分析失败")
		return
	}

	c.Header(CacheHeader, strconv.FormatBool(outcome.Cached))
	c.Data(http.StatusOK, outcome.Payload.ContentType(), outcome.Payload.Bytes())
}

func (h *Handler) CreateService(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	var req moduledto.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	svc, err := h.registry.Create(c.Request.Context(), actor, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建服务失败")
		return
	}
	c.JSON(http.StatusCreated, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	var req moduledto.UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	svc, err := h.registry.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新服务失败")
		return
	}
	c.JSON(http.StatusOK, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}

	if err := h.registry.Delete(c.Request.Context(), actor, id); err != nil {
		httpx.WriteServiceError(c, err, "删除服务失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// DiscardResult 删除某图片在该服务下的缓存结果，下次请求会重新分析。
func (h *Handler) DiscardResult(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	serviceID, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	imageID, ok := httpx.PathID(c, "image_id")
	if !ok {
		return
	}

	if err := h.orchestrator.Discard(c.Request.Context(), actor, serviceID, imageID); err != nil {
		httpx.WriteServiceError(c, err, "删除结果失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
