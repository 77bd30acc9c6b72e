package api

import (
	"net/http"

	"github.com/Domenick1991/flightdb/internal/service/dashboard"
	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	service dashboard.DashboardUseCase
}

func NewDashboardHandler(service dashboard.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Register(router *gin.RouterGroup) {
	router.GET("/dashboard", h.stats)
}

func (h *DashboardHandler) stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": h.service.Stats(c.Request.Context())})
}
