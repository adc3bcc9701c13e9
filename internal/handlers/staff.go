package handlers

import (
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"strings"

	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/services"
	"lostfound/internal/utils"

	"github.com/gin-gonic/gin"
)

const maxImageSize = 10 * 1024 * 1024

type StaffHandler struct {
	policy *services.AuthzPolicy
	vision *services.VisionService
	store  services.ImageStore
	mail   *services.MailService
}

func NewStaffHandler(policy *services.AuthzPolicy, vision *services.VisionService, store services.ImageStore, mail *services.MailService) *StaffHandler {
	return &StaffHandler{policy: policy, vision: vision, store: store, mail: mail}
}

func (h *StaffHandler) ShowUpload(c *gin.Context) {
	Render(c, http.StatusOK, "staff/upload.html", gin.H{
		"Title":         "Upload found item",
		"AllCategories": models.Categories,
	})
}

// uploadForm collects and validates the item fields.
type uploadForm struct {
	Title         string
	Description   string
	Category      string
	LocationFound string
	DateFound     string
	ItemType      string
}

func (f *uploadForm) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(f.Title) == "" {
		errs["title"] = "Title is required"
	} else if len(f.Title) > 255 {
		errs["title"] = "Title is too long (max 255 characters)"
	}
	if !models.ValidCategory(f.Category) {
		errs["category"] = "Pick one of the listed categories"
	}
	if utils.ParseDate(f.DateFound) == nil {
		errs["date_found"] = "Date found is required (YYYY-MM-DD)"
	}
	if f.ItemType != string(models.ItemTypeSenior) && f.ItemType != string(models.ItemTypePrimary) {
		errs["item_type"] = "Pick the school section"
	}
	if len(f.LocationFound) > 255 {
		errs["location_found"] = "Location is too long (max 255 characters)"
	}
	return errs
}

// Upload persists a new found item with its photos. The creating actor's
// capabilities decide the initial approval state.
func (h *StaffHandler) Upload(c *gin.Context) {
	form := uploadForm{
		Title:         c.PostForm("title"),
		Description:   c.PostForm("description"),
		Category:      c.PostForm("category"),
		LocationFound: c.PostForm("location_found"),
		DateFound:     c.PostForm("date_found"),
		ItemType:      c.PostForm("item_type"),
	}

	if errs := form.validate(); len(errs) > 0 {
		Render(c, http.StatusBadRequest, "staff/upload.html", gin.H{
			"Title":         "Upload found item",
			"AllCategories": models.Categories,
			"Form":          form,
			"FieldErrors":   errs,
		})
		return
	}

	user := middleware.CurrentUser(c)
	caps := middleware.Caps(c)

	item := models.Item{
		Title:          strings.TrimSpace(form.Title),
		Description:    form.Description,
		Category:       models.Category(form.Category),
		LocationFound:  strings.TrimSpace(form.LocationFound),
		DateFound:      *utils.ParseDate(form.DateFound),
		Status:         models.StatusFound,
		ApprovalStatus: h.policy.InitialApproval(caps),
		ItemType:       models.ItemType(form.ItemType),
		CreatedByID:    &user.ID,
	}
	if err := db.DB.Create(&item).Error; err != nil {
		RenderError(c, http.StatusInternalServerError, "Upload failed, please retry")
		return
	}

	for _, file := range uploadedImageFiles(c) {
		img, err := readProcessedImage(file)
		if err != nil {
			logger.Log.Warnf("Skipping image for item %d: %v", item.ID, err)
			continue
		}

		key := services.NewImageKey("items", file.Filename)
		if err := services.PutBytes(c.Request.Context(), h.store, key, img.Data, img.ContentType); err != nil {
			logger.Log.Errorf("Failed to store image for item %d: %v", item.ID, err)
			continue
		}

		db.DB.Create(&models.ItemImage{
			ItemID:      item.ID,
			ObjectKey:   key,
			ContentType: img.ContentType,
		})
	}

	if item.ApprovalStatus == models.ApprovalPending {
		h.mail.SendPendingAlert(superUserEmails(), item.Title)
	}

	utils.GetCache().Delete("landing:stats")
	c.Redirect(http.StatusFound, fmt.Sprintf("/items/%d", item.ID))
}

// Analyze is the AJAX endpoint behind the upload form: it sends the selected
// photos to the vision model and returns the {title, description, category}
// suggestion. Always answers 200 with a (possibly empty) suggestion.
func (h *StaffHandler) Analyze(c *gin.Context) {
	images := make([]services.ImageInput, 0)
	for _, file := range uploadedImageFiles(c) {
		if file.Size > maxImageSize {
			continue
		}
		f, err := file.Open()
		if err != nil {
			continue
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			continue
		}
		images = append(images, services.ImageInput{
			Data:        data,
			ContentType: file.Header.Get("Content-Type"),
		})
	}

	suggestion := h.vision.AnalyzeImages(c.Request.Context(), images)
	c.JSON(http.StatusOK, suggestion)
}

// Dashboard lists every item for staff, with outstanding claim notices and
// multi-claimant flags.
func (h *StaffHandler) Dashboard(c *gin.Context) {
	page := 1
	if p := utils.StringToInt(c.Query("page")); p > 0 {
		page = p
	}
	perPage := 50
	offset := (page - 1) * perPage

	var total int64
	db.DB.Model(&models.Item{}).Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var items []models.Item
	db.DB.Preload("Images").
		Order("date_found DESC, created_at DESC").
		Limit(perPage).
		Offset(offset).
		Find(&items)
	services.FillClaimCounts(db.DB, items)

	user := middleware.CurrentUser(c)
	notices, err := services.EnsureClaimNotices(user.ID)
	if err != nil {
		logger.Log.Errorf("Failed to load claim notices: %v", err)
	}

	// Titles for notice display, fetched in one query.
	noticeItems := map[uint]string{}
	if ids := noticeItemIDs(notices); len(ids) > 0 {
		var rows []models.Item
		db.DB.Select("id, title").Where("id IN ?", ids).Find(&rows)
		for _, it := range rows {
			noticeItems[it.ID] = it.Title
		}
	}

	multiClaim, err := services.MultiClaimItemIDs()
	if err != nil {
		logger.Log.Errorf("Failed to load multi-claim flags: %v", err)
	}

	Render(c, http.StatusOK, "staff/dashboard.html", gin.H{
		"Title":       "Staff dashboard",
		"Items":       items,
		"Notices":     notices,
		"NoticeItems": noticeItems,
		"MultiClaim":  multiClaim,
		"CurrentPage": page,
		"TotalPages":  totalPages,
	})
}

// DismissNotice hides one claim notice for the current viewer.
func (h *StaffHandler) DismissNotice(c *gin.Context) {
	user := middleware.CurrentUser(c)
	id := utils.StringToInt(c.Param("id"))

	if err := services.DismissClaimNotice(uint(id), user.ID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// uploadedImageFiles collects multipart files posted under image_0, image_1,
// ... plus any under the plain "images" field.
func uploadedImageFiles(c *gin.Context) []*multipart.FileHeader {
	form, err := c.MultipartForm()
	if err != nil {
		return nil
	}

	var files []*multipart.FileHeader
	for key, headers := range form.File {
		if key == "images" || strings.HasPrefix(key, "image_") {
			files = append(files, headers...)
		}
	}
	return files
}

// readProcessedImage opens, bounds and normalizes one uploaded photo.
func readProcessedImage(file *multipart.FileHeader) (*services.ProcessedImage, error) {
	if file.Size > maxImageSize {
		return nil, fmt.Errorf("image exceeds 10MB")
	}

	f, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return services.ProcessImage(data)
}

// noticeItemIDs returns the distinct item IDs behind a notice list. Claims
// must have been preloaded.
func noticeItemIDs(notices []models.ClaimNotice) []uint {
	seen := make(map[uint]bool, len(notices))
	var ids []uint
	for _, n := range notices {
		if !seen[n.Claim.ItemID] {
			seen[n.Claim.ItemID] = true
			ids = append(ids, n.Claim.ItemID)
		}
	}
	return ids
}

// superUserEmails lists the addresses of all Super Users for alerts.
func superUserEmails() []string {
	var emails []string
	db.DB.Model(&models.User{}).
		Joins("JOIN user_profiles ON user_profiles.user_id = users.id").
		Where("user_profiles.is_super_user = ?", true).
		Pluck("users.email", &emails)
	return emails
}
