package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Domenick1991/flightdb/config"
	"github.com/Domenick1991/flightdb/internal/middleware"
	"github.com/Domenick1991/flightdb/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	manager := session.NewManager(session.NewMemoryStorage(), zerolog.Nop())
	group := router.Group("/api/v1", middleware.Session(manager, config.SessionConfig{CookieName: "flightdb_sid"}))
	NewSessionHandler().Register(group)
	return router
}

func TestSessionHandler_loginLogout(t *testing.T) {
	router := newSessionRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(`{"role":"passenger"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":true,"role":"passenger"}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":true,"role":"passenger"}`, w.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"authenticated":false,"role":""}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/session", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.JSONEq(t, `{"authenticated":false,"role":""}`, w.Body.String())
}

func TestSessionHandler_loginInvalidRole(t *testing.T) {
	router := newSessionRouter()

	for _, body := range []string{`{"role":"root"}`, `{}`, `not json`} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/session", strings.NewReader(body)))
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
}
