package api

import (
	"errors"
	"net/http"

	"github.com/Domenick1991/flightdb/internal/domain"
	"github.com/Domenick1991/flightdb/internal/service/listing"
	"github.com/gin-gonic/gin"
)

type RecordCatalog interface {
	Get(table domain.Table) (listing.Entry, error)
}

type RecordHandler struct {
	catalog RecordCatalog
}

func NewRecordHandler(catalog RecordCatalog) *RecordHandler {
	return &RecordHandler{catalog: catalog}
}

func (h *RecordHandler) Register(router *gin.RouterGroup) {
	router.GET("/records/:table", h.list)
	router.POST("/records/:table", h.create)
}

// list returns 200 even when the refetch failed; the response is then
// flagged stale and carries the previous rows.
func (h *RecordHandler) list(c *gin.Context) {
	entry, err := h.catalog.Get(domain.Table(c.Param("table")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry.List(c.Request.Context(), c.Query("q")))
}

func (h *RecordHandler) create(c *gin.Context) {
	entry, err := h.catalog.Get(domain.Table(c.Param("table")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := entry.CreateJSON(c.Request.Context(), raw)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "store unavailable"})
		return
	}

	c.JSON(http.StatusCreated, record)
}
