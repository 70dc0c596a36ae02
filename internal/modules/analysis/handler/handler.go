package handler

import analysisservice "ariavt-server/internal/modules/analysis/service"

type Handler struct {
	registry     *analysisservice.Registry
	orchestrator *analysisservice.Orchestrator
}

func New(registry *analysisservice.Registry, orchestrator *analysisservice.Orchestrator) *Handler {
	return &Handler{registry: registry, orchestrator: orchestrator}
}
