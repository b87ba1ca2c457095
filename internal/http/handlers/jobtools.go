package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type JobToolsHandler struct {
	svc services.JobToolsService
}

func NewJobToolsHandler(svc services.JobToolsService) *JobToolsHandler {
	return &JobToolsHandler{svc: svc}
}

// POST /jobtools/resume/preview
func (h *JobToolsHandler) ResumePreview(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
	}
	if !bindJSON(c, &req) {
		return
	}
	response.RespondOK(c, h.svc.PreviewResume(req.Content))
}

// POST /jobtools/interview/simulate
func (h *JobToolsHandler) InterviewSimulate(c *gin.Context) {
	var req struct {
		Role  string `json:"role"`
		Level string `json:"level"`
	}
	if !bindJSON(c, &req) {
		return
	}
	sim := h.svc.SimulateInterview(req.Role, req.Level)
	response.RespondOK(c, gin.H{"questions": sim.Questions})
}
