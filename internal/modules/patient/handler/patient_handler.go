package handler

import (
	"ariavt-server/internal/common/httpx"
	moduledto "ariavt-server/internal/modules/patient/dto"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreatePatient(c *gin.Context) {
	var req moduledto.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "参数错误"})
		return
	}

	patient, err := h.patientService.Create(c.Request.Context(), req)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建患者失败")
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *Handler) ListPatients(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	res, err := h.patientService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取患者列表失败")
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	patient, err := h.patientService.Get(c.Request.Context(), id)
	if err != nil {
		httpx.WriteServiceError(c, err, "获取患者失败")
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	actor, ok := httpx.CurrentActor(c)
	if !ok {
		return
	}
	id, ok := httpx.PathID(c, "id")
	if !ok {
		return
	}
	if err := h.patientService.Delete(c.Request.Context(), actor, id); err != nil {
		httpx.WriteServiceError(c, err, "删除患者失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}
