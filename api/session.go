package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/middleware"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the advisory role of the caller's session. It
// enforces nothing.
type SessionHandler struct{}

type loginRequest struct {
	Role string `json:"role" binding:"required"`
}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.GET("/session", h.get)
	router.POST("/session", h.login)
	router.DELETE("/session", h.logout)
}

func (h *SessionHandler) get(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.SessionFrom(c).State())
}

func (h *SessionHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	s := middleware.SessionFrom(c)
	if err := s.Login(c.Request.Context(), domain.Role(req.Role)); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, session.ErrInvalidRole) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.State())
}

func (h *SessionHandler) logout(c *gin.Context) {
	s := middleware.SessionFrom(c)
	if err := s.Logout(c.Request.Context()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, s.State())
}
