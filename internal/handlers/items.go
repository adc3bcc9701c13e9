package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"lostfound/internal/db"
	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/services"
	"lostfound/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ItemHandler struct {
	mail *services.MailService
}

func NewItemHandler(mail *services.MailService) *ItemHandler {
	return &ItemHandler{mail: mail}
}

// segmentFromQuery maps ?segment= onto an audience segment, defaulting to
// the senior school.
func segmentFromQuery(c *gin.Context) models.ItemType {
	if c.Query("segment") == "primary" {
		return models.ItemTypePrimary
	}
	return models.ItemTypeSenior
}

// Landing shows the public entry page with a couple of counts.
func (h *ItemHandler) Landing(c *gin.Context) {
	cacheKey := "landing:stats"
	var stats gin.H
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		stats, _ = cached.(gin.H)
	}

	if stats == nil {
		now := time.Now()
		var seniorCount, primaryCount int64
		services.PublicItems(db.DB.Model(&models.Item{}), models.ItemTypeSenior, now).Count(&seniorCount)
		services.PublicItems(db.DB.Model(&models.Item{}), models.ItemTypePrimary, now).Count(&primaryCount)

		stats = gin.H{
			"SeniorCount":  seniorCount,
			"PrimaryCount": primaryCount,
		}
		utils.GetCache().Set(cacheKey, stats, 1*time.Minute)
	}

	Render(c, http.StatusOK, "items/landing.html", gin.H{
		"Title":        "Lost & Found",
		"SeniorCount":  stats["SeniorCount"],
		"PrimaryCount": stats["PrimaryCount"],
	})
}

// Browse is the public listing: approved items for the requested segment,
// FOUND or recently claimed, with optional composable filters.
func (h *ItemHandler) Browse(c *gin.Context) {
	segment := segmentFromQuery(c)
	now := time.Now()

	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}
	perPage := 20
	offset := (page - 1) * perPage

	filters := services.ItemFilters{
		Query:    c.Query("q"),
		Category: c.Query("category"),
		Location: c.Query("location"),
		DateFrom: utils.ParseDate(c.Query("date_from")),
		DateTo:   utils.ParseDate(c.Query("date_to")),
	}

	base := services.ApplyItemFilters(
		services.PublicItems(db.DB.Model(&models.Item{}), segment, now),
		filters,
	)

	var total int64
	base.Count(&total)

	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var items []models.Item
	services.ApplyItemFilters(
		services.PublicItems(db.DB.Preload("Images"), segment, now),
		filters,
	).
		Order("date_found DESC, created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&items)

	Render(c, http.StatusOK, "items/list.html", gin.H{
		"Title":           "Browse found items",
		"Items":           items,
		"Segment":         string(segment),
		"CurrentPage":     page,
		"TotalPages":      totalPages,
		"SearchQuery":     filters.Query,
		"CurrentCategory": filters.Category,
		"Location":        filters.Location,
		"DateFrom":        c.Query("date_from"),
		"DateTo":          c.Query("date_to"),
		"AllCategories":   models.Categories,
	})
}

// Detail shows one item. Unapproved items stay hidden from the public; staff
// can always inspect them.
func (h *ItemHandler) Detail(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var item models.Item
	if err := db.DB.Preload("Images").Preload("Claims").First(&item, id).Error; err != nil {
		NotFound(c)
		return
	}

	if !services.DetailVisible(&item, middleware.Caps(c)) {
		NotFound(c)
		return
	}

	Render(c, http.StatusOK, "items/detail.html", gin.H{
		"Title":           item.Title,
		"Item":            &item,
		"DescriptionHTML": utils.RenderMarkdown(item.Description),
		"Claimed":         c.Query("claimed") == "1",
	})
}

// Claim records a claim. Every valid claim is stored; only the first flips
// the status. Invalid names re-render the detail page with a field error and
// no state change.
func (h *ItemHandler) Claim(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	var item models.Item
	if err := db.DB.Preload("Images").Preload("Claims").First(&item, id).Error; err != nil {
		NotFound(c)
		return
	}
	// Claiming follows the detail page visibility rule, so an unapproved
	// item can neither collect claims nor leak through the error re-render.
	if !services.DetailVisible(&item, middleware.Caps(c)) {
		NotFound(c)
		return
	}

	claim, err := services.Claim(item.ID, c.PostForm("claimant_name"))
	if err != nil {
		if errors.Is(err, services.ErrClaimantNameRequired) || errors.Is(err, services.ErrClaimantNameTooLong) {
			Render(c, http.StatusBadRequest, "items/detail.html", gin.H{
				"Title":           item.Title,
				"Item":            &item,
				"DescriptionHTML": utils.RenderMarkdown(item.Description),
				"ClaimError":      err.Error(),
			})
			return
		}
		if errors.Is(err, services.ErrItemNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
			NotFound(c)
			return
		}
		RenderError(c, http.StatusInternalServerError, "Claim failed, please retry")
		return
	}

	h.mail.SendClaimAlert(superUserEmails(), &item, claim)
	c.Redirect(http.StatusFound, fmt.Sprintf("/items/%d?claimed=1", id))
}
