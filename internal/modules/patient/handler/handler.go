package handler

import patientservice "ariavt-server/internal/modules/patient/service"

type Handler struct {
	patientService *patientservice.Service
}

func New(patientService *patientservice.Service) *Handler {
	return &Handler{patientService: patientService}
}
