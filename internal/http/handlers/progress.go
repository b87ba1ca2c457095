package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type ProgressHandler struct {
	progress     services.ProgressService
	certificates services.CertificateService
}

func NewProgressHandler(progress services.ProgressService, certificates services.CertificateService) *ProgressHandler {
	return &ProgressHandler{progress: progress, certificates: certificates}
}

type progressOut struct {
	ModuleID        int64   `json:"module_id"`
	Status          string  `json:"status"`
	ProgressPercent float64 `json:"progress_percent"`
	CurrentLessonID *int64  `json:"current_lesson_id"`
}

// POST /lessons/:id/complete
func (h *ProgressHandler) CompleteLesson(c *gin.Context) {
	lessonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	res, err := h.progress.CompleteLesson(c.Request.Context(), currentUserID(c), lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	body := gin.H{
		"status":           "ok",
		"progress_percent": res.ProgressPercent,
		"progress_status":  res.Status,
	}
	if res.CertificateID != nil {
		body["certificate_id"] = *res.CertificateID
	}
	response.RespondOK(c, body)
}

// GET /progress
func (h *ProgressHandler) ListProgress(c *gin.Context) {
	rows, err := h.progress.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]progressOut, 0, len(rows))
	for _, p := range rows {
		out = append(out, progressOut{
			ModuleID:        p.ModuleID,
			Status:          p.Status,
			ProgressPercent: p.ProgressPercent,
			CurrentLessonID: p.CurrentLessonID,
		})
	}
	response.RespondOK(c, out)
}

// GET /certificates
func (h *ProgressHandler) ListCertificates(c *gin.Context) {
	certs, err := h.certificates.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, certs)
}

// GET /certificates/:id/image
func (h *ProgressHandler) CertificateImage(c *gin.Context) {
	certID, ok := pathID(c, "id")
	if !ok {
		return
	}
	png, err := h.certificates.RenderPNG(c.Request.Context(), currentUserID(c), certID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
