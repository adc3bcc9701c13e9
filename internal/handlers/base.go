package handlers

import (
	"net/http"

	"lostfound/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Render helper to inject common variables like the current user and their
// capabilities.
func Render(c *gin.Context, code int, name string, obj gin.H) {
	if obj == nil {
		obj = gin.H{}
	}

	if user, exists := c.Get(middleware.CheckUserKey); exists {
		obj["CurrentUser"] = user
	}
	obj["Caps"] = middleware.Caps(c)
	obj["CurrentPath"] = c.Request.URL.Path

	c.HTML(code, name, obj)
}

// RenderError renders the shared error page.
func RenderError(c *gin.Context, code int, message string) {
	Render(c, code, "error.html", gin.H{"Error": message})
}

// NotFound is the shared 404 response.
func NotFound(c *gin.Context) {
	RenderError(c, http.StatusNotFound, "Page not found")
}
