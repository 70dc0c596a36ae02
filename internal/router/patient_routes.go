package router

import (
	patienthandler "ariavt-server/internal/modules/patient/handler"

	"github.com/gin-gonic/gin"
)

func registerPatientRoutes(authed *gin.RouterGroup, h *patienthandler.Handler) {
	patients := authed.Group("/patients")

	patients.POST("/", h.CreatePatient)
	patients.GET("/", h.ListPatients)
	patients.GET("/:id", h.GetPatient)
	patients.DELETE("/:id", h.DeletePatient)
}
