package handlers

import (
	"io"
	"net/http"
	"strings"

	"lostfound/internal/services"

	"github.com/gin-gonic/gin"
)

// MediaHandler streams stored item photos.
type MediaHandler struct {
	store services.ImageStore
}

func NewMediaHandler(store services.ImageStore) *MediaHandler {
	return &MediaHandler{store: store}
}

// Serve handles GET /media/*key.
func (h *MediaHandler) Serve(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	reader, contentType, err := h.store.Get(c.Request.Context(), key)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer reader.Close()

	if contentType != "" {
		c.Header("Content-Type", contentType)
	}
	// Keys are immutable, cache for 7 days.
	c.Header("Cache-Control", "public, max-age=604800")

	c.Status(http.StatusOK)
	io.Copy(c.Writer, reader)
}
