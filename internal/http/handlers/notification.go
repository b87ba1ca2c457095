package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type NotificationHandler struct {
	svc services.NotificationService
}

func NewNotificationHandler(svc services.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type notificationOut struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
	IsRead  bool   `json:"is_read"`
}

// GET /notifications
func (h *NotificationHandler) List(c *gin.Context) {
	notes, err := h.svc.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]notificationOut, 0, len(notes))
	for _, n := range notes {
		out = append(out, notificationOut{ID: n.ID, Message: n.Message, IsRead: n.IsRead})
	}
	response.RespondOK(c, out)
}

// PATCH /notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.MarkRead(c.Request.Context(), currentUserID(c), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
