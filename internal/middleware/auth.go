package middleware

import (
	"net/http"

	"lostfound/internal/db"
	"lostfound/internal/models"
	"lostfound/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const CheckUserKey = "user"
const ProfileKey = "profile"
const CapsKey = "caps"

// LoadUser retrieves the account from the session and resolves its
// capability set into the request context. The profile is created lazily the
// first time an account is seen.
func LoadUser(policy *services.AuthzPolicy) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")

		var user *models.User
		var profile *models.UserProfile

		if userID != nil {
			var u models.User
			if err := db.DB.First(&u, userID).Error; err == nil {
				user = &u

				var p models.UserProfile
				if err := db.DB.Where(models.UserProfile{UserID: u.ID}).
					FirstOrCreate(&p).Error; err == nil {
					profile = &p
				}

				c.Set(CheckUserKey, user)
				if profile != nil {
					c.Set(ProfileKey, profile)
				}
			}
		}

		c.Set(CapsKey, policy.For(user, profile))
		c.Next()
	}
}

// AuthRequired ensures a user is logged in.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, exists := c.Get(CheckUserKey); !exists {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// StaffRequired rejects actors without upload rights before any business
// logic runs.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := Caps(c)
		if !caps.CanUpload {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// SuperUserRequired guards the approval and user-management surfaces.
func SuperUserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		caps := Caps(c)
		if !caps.CanApprove {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// Caps returns the resolved capability set for the request (zero set for
// anonymous visitors).
func Caps(c *gin.Context) services.Capabilities {
	if v, exists := c.Get(CapsKey); exists {
		if caps, ok := v.(services.Capabilities); ok {
			return caps
		}
	}
	return services.Capabilities{}
}

// CurrentUser returns the logged-in account, or nil.
func CurrentUser(c *gin.Context) *models.User {
	if v, exists := c.Get(CheckUserKey); exists {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}
