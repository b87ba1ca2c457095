package handlers

import (
	"github.com/gin-gonic/gin"

	types "github.com/yungbote/skillbridge-backend/internal/domain"
	"github.com/yungbote/skillbridge-backend/internal/http/response"
	"github.com/yungbote/skillbridge-backend/internal/services"
)

type PortfolioHandler struct {
	svc services.PortfolioService
}

func NewPortfolioHandler(svc services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{svc: svc}
}

type portfolioItemOut struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

type portfolioItemIn struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	URL         *string `json:"url"`
}

func (in portfolioItemIn) input() services.PortfolioInput {
	return services.PortfolioInput{Title: in.Title, Description: in.Description, URL: in.URL}
}

func toPortfolioOut(p *types.PortfolioItem) portfolioItemOut {
	return portfolioItemOut{ID: p.ID, Title: p.Title, Description: p.Description, URL: p.URL}
}

// GET /portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	out := make([]portfolioItemOut, 0, len(items))
	for _, p := range items {
		out = append(out, toPortfolioOut(p))
	}
	response.RespondOK(c, out)
}

// POST /portfolio
func (h *PortfolioHandler) Create(c *gin.Context) {
	var req portfolioItemIn
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), currentUserID(c), req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toPortfolioOut(item))
}

// PUT /portfolio/:id
func (h *PortfolioHandler) Update(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req portfolioItemIn
	if !bindJSON(c, &req) {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), currentUserID(c), itemID, req.input())
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, toPortfolioOut(item))
}

// DELETE /portfolio/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), currentUserID(c), itemID); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "ok"})
}
