package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type MentorshipHandler struct {
	svc services.MentorshipService
}

func NewMentorshipHandler(svc services.MentorshipService) *MentorshipHandler {
	return &MentorshipHandler{svc: svc}
}

type mentorOut struct {
	ID        int64   `json:"id"`
	FullName  *string `json:"full_name"`
	Expertise *string `json:"expertise"`
	Bio       *string `json:"bio"`
}

type mentorshipRequestOut struct {
	ID       int64   `json:"id"`
	UserID   int64   `json:"user_id"`
	MentorID int64   `json:"mentor_id"`
	Status   string  `json:"status"`
	Message  *string `json:"message"`
}

func toRequestOut(r *types.MentorshipRequest) mentorshipRequestOut {
	return mentorshipRequestOut{ID: r.ID, UserID: r.UserID, MentorID: r.MentorID, Status: r.Status, Message: r.Message}
}

func toRequestOuts(in []*types.MentorshipRequest) []mentorshipRequestOut {
	out := make([]mentorshipRequestOut, 0, len(in))
	for _, r := range in {
		out = append(out, toRequestOut(r))
	}
	return out
}

// GET /mentorship/mentors
func (h *MentorshipHandler) ListMentors(c *gin.Context) {
	profiles, err := h.svc.ListMentors(c.Request.Context())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]mentorOut, 0, len(profiles))
	for _, p := range profiles {
		m := mentorOut{ID: p.UserID, Expertise: p.Expertise, Bio: p.Bio}
		if p.User != nil {
			m.FullName = p.User.FullName
		}
		out = append(out, m)
	}
	response.RespondOK(c, out)
}

// POST /mentorship/requests
// body: { "mentor_id": 2, "message": "..." }
func (h *MentorshipHandler) CreateRequest(c *gin.Context) {
	var req struct {
		MentorID int64   `json:"mentor_id"`
		Message  *string `json:"message"`
	}
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.svc.CreateRequest(c.Request.Context(), currentUserID(c), req.MentorID, req.Message)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toRequestOut(created))
}

// GET /mentorship/requests
func (h *MentorshipHandler) ListRequests(c *gin.Context) {
	lists, err := h.svc.ListRequests(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"sent":     toRequestOuts(lists.Sent),
		"received": toRequestOuts(lists.Received),
	})
}

// PATCH /mentorship/requests/:id
// body: { "status": "accepted" | "rejected" }
func (h *MentorshipHandler) Respond(c *gin.Context) {
	requestID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.svc.Respond(c.Request.Context(), currentUserID(c), requestID, req.Status)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toRequestOut(updated))
}
