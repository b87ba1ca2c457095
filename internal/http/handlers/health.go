package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler { return &HealthHandler{db: db} }

// GET /
func (h *HealthHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Healthy"})
}

// GET /healthcheck
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	database := "down"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if sqlDB, err := h.db.DB(); err == nil && sqlDB.PingContext(ctx) == nil {
			database = "up"
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": database})
}
