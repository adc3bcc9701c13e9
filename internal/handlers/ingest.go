package handlers

import (
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/models"
	"lostfound/internal/services"

	"github.com/gin-gonic/gin"
)

// IngestHandler accepts student lost reports forwarded by the inbound mail
// gateway. Guarded by a shared bearer token; an empty token disables the
// endpoint.
type IngestHandler struct {
	token string
	store services.ImageStore
}

func NewIngestHandler(token string, store services.ImageStore) *IngestHandler {
	return &IngestHandler{token: token, store: store}
}

type ingestImage struct {
	DataB64     string `json:"data_b64"`
	ContentType string `json:"content_type"`
}

type ingestRequest struct {
	Subject     string        `json:"subject"`
	From        string        `json:"from"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Images      []ingestImage `json:"images"`
}

// validateIngest returns the reason a payload is rejected, or "".
func validateIngest(req *ingestRequest) string {
	if strings.TrimSpace(req.Title) == "" {
		return "title is required"
	}
	if len(req.Title) > 255 {
		return "title is too long"
	}
	if strings.TrimSpace(req.From) == "" {
		return "sender address is required"
	}
	return ""
}

// LostReport handles POST /api/ingest/lost-report.
func (h *IngestHandler) LostReport(c *gin.Context) {
	if h.token == "" || c.GetHeader("Authorization") != "Bearer "+h.token {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if reason := validateIngest(&req); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	report := models.StudentLostItem{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		EmailSubject:   req.Subject,
		EmailFrom:      strings.TrimSpace(req.From),
		SubmittedAt:    time.Now(),
		ApprovalStatus: models.ApprovalPending,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store report"})
		return
	}

	for _, img := range req.Images {
		data, err := base64.StdEncoding.DecodeString(img.DataB64)
		if err != nil {
			logger.Log.Warnf("Skipping undecodable image on report %d: %v", report.ID, err)
			continue
		}

		processed, err := services.ProcessImage(data)
		if err != nil {
			logger.Log.Warnf("Skipping image on report %d: %v", report.ID, err)
			continue
		}

		key := services.NewImageKey("reports", "report.jpg")
		if err := services.PutBytes(c.Request.Context(), h.store, key, processed.Data, processed.ContentType); err != nil {
			logger.Log.Errorf("Failed to store image for report %d: %v", report.ID, err)
			continue
		}

		db.DB.Create(&models.StudentLostItemImage{
			StudentLostItemID: report.ID,
			ObjectKey:         key,
			ContentType:       processed.ContentType,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"id": report.ID})
}
