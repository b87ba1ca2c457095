package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type ContentHandler struct {
	svc services.ContentService
}

func NewContentHandler(svc services.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

type moduleOut struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

type lessonOut struct {
	ID         int64   `json:"id"`
	ModuleID   int64   `json:"module_id"`
	Title      string  `json:"title"`
	Content    *string `json:"content"`
	OrderIndex int     `json:"order_index"`
}

func toModuleOut(m *types.Module) moduleOut {
	return moduleOut{ID: m.ID, Title: m.Title, Description: m.Description}
}

func toLessonOut(l *types.Lesson) lessonOut {
	return lessonOut{ID: l.ID, ModuleID: l.ModuleID, Title: l.Title, Content: l.Content, OrderIndex: l.OrderIndex}
}

// GET /modules
func (h *ContentHandler) ListModules(c *gin.Context) {
	modules, err := h.svc.ListModules(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]moduleOut, 0, len(modules))
	for _, m := range modules {
		out = append(out, toModuleOut(m))
	}
	response.RespondOK(c, out)
}

// GET /modules/:id
func (h *ContentHandler) GetModule(c *gin.Context) {
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	m, err := h.svc.GetModule(c.Request.Context(), moduleID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toModuleOut(m))
}

// GET /modules/:id/lessons
func (h *ContentHandler) ListModuleLessons(c *gin.Context) {
	moduleID, ok := pathID(c, "id")
	if !ok {
		return
	}
	lessons, err := h.svc.ListLessons(c.Request.Context(), moduleID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]lessonOut, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, toLessonOut(l))
	}
	response.RespondOK(c, out)
}

// GET /lessons/:id
func (h *ContentHandler) GetLesson(c *gin.Context) {
	lessonID, ok := pathID(c, "id")
	if !ok {
		return
	}
	l, err := h.svc.GetLesson(c.Request.Context(), lessonID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toLessonOut(l))
}
