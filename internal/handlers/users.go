package handlers

import (
	"net/http"

	"lostfound/internal/db"
	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/utils"

	"github.com/gin-gonic/gin"
)

// UserAdminHandler lets Super Users grant and revoke staff and Super User
// rights. Routes are guarded by SuperUserRequired.
type UserAdminHandler struct{}

func NewUserAdminHandler() *UserAdminHandler {
	return &UserAdminHandler{}
}

func (h *UserAdminHandler) List(c *gin.Context) {
	var users []models.User
	db.DB.Preload("Profile").Order("created_at ASC").Find(&users)

	Render(c, http.StatusOK, "staff/users.html", gin.H{
		"Title": "User management",
		"Users": users,
	})
}

// UpdateRoles applies the posted is_staff / is_super_user flags to one user.
// A Super User cannot strip their own approval rights, so the school can
// never lock itself out.
func (h *UserAdminHandler) UpdateRoles(c *gin.Context) {
	id := uint(utils.StringToInt(c.Param("id")))
	actor := middleware.CurrentUser(c)

	isStaff := c.PostForm("is_staff") == "on"
	isSuper := c.PostForm("is_super_user") == "on"

	if id == actor.ID && !isSuper {
		RenderError(c, http.StatusBadRequest, "You cannot revoke your own Super User rights")
		return
	}

	var user models.User
	if err := db.DB.First(&user, id).Error; err != nil {
		NotFound(c)
		return
	}

	// Super Users are always staff.
	if isSuper {
		isStaff = true
	}

	db.DB.Model(&user).Update("is_staff", isStaff)

	var profile models.UserProfile
	db.DB.Where(models.UserProfile{UserID: user.ID}).FirstOrCreate(&profile)
	db.DB.Model(&profile).Update("is_super_user", isSuper)

	c.Redirect(http.StatusFound, "/staff/users")
}
