package main

import (
	"fmt"
	"html/template"
	"path/filepath"
	"time"

	"lostfound/internal/config"
	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/router"
	"lostfound/internal/services"

	"github.com/gin-contrib/multitemplate"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		logger.Log.Info("No .env file found, reading env vars from system")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Config error: %v", err)
	}
	logger.Init(cfg.LogLevel)

	// Initialize Database
	db.Init(cfg.DatabaseURL)
	db.SeedSuperUser(cfg.AdminEmail, cfg.AdminPassword)

	// Services
	policy := services.NewAuthzPolicy()
	vision := services.NewVisionService(cfg.Vision)
	mail := services.NewMailService(cfg.SMTP)
	store, err := services.NewImageStore(cfg.Store)
	if err != nil {
		logger.Log.Fatalf("Image store error: %v", err)
	}

	// Initialize Gin
	r := gin.Default()

	// Setup Sessions
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("lostfound_session", sessionStore))

	// Load Templates using Multitemplate to avoid collision and allow handler names
	r.HTMLRender = loadTemplates("./web/templates")

	// Static Assets
	r.Static("/static", "./web/static")

	// Middleware
	r.Use(middleware.LoadUser(policy))

	router.RegisterRoutes(r, cfg, policy, vision, store, mail)

	logger.Log.Infof("Lost & Found server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Log.Fatal(err)
	}
}

func loadTemplates(templatesDir string) multitemplate.Renderer {
	r := multitemplate.NewRenderer()

	layouts, err := filepath.Glob(templatesDir + "/layouts/*.html")
	if err != nil {
		panic(err)
	}

	includes, err := filepath.Glob(templatesDir + "/includes/*.html")
	if err != nil {
		panic(err)
	}

	// Helper to assemble files
	assemble := func(view string) []string {
		files := make([]string, 0)
		files = append(files, layouts...)
		files = append(files, includes...)
		files = append(files, view)
		return files
	}

	funcMap := template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"timeAgo": func(t interface{}) string {
			var timeVal time.Time
			switch v := t.(type) {
			case time.Time:
				timeVal = v
			case *time.Time:
				if v == nil {
					return ""
				}
				timeVal = *v
			default:
				return ""
			}

			duration := time.Since(timeVal)
			seconds := int(duration.Seconds())

			if seconds < 60 {
				return fmt.Sprintf("%ds ago", seconds)
			} else if seconds < 3600 {
				return fmt.Sprintf("%dm ago", seconds/60)
			} else if seconds < 86400 {
				return fmt.Sprintf("%dh ago", seconds/3600)
			}
			return fmt.Sprintf("%dd ago", seconds/86400)
		},
		"date": func(t time.Time) string {
			return t.Format("02 Jan 2006")
		},
		"categoryLabel": func(c models.Category) string {
			return c.Label()
		},
		"safeHTML": func(s string) template.HTML {
			return template.HTML(s)
		},
	}

	// Auth
	r.AddFromFilesFuncs("auth/login.html", funcMap, assemble(templatesDir+"/views/auth/login.html")...)
	r.AddFromFilesFuncs("auth/register.html", funcMap, assemble(templatesDir+"/views/auth/register.html")...)

	// Public items
	r.AddFromFilesFuncs("items/landing.html", funcMap, assemble(templatesDir+"/views/items/landing.html")...)
	r.AddFromFilesFuncs("items/list.html", funcMap, assemble(templatesDir+"/views/items/list.html")...)
	r.AddFromFilesFuncs("items/detail.html", funcMap, assemble(templatesDir+"/views/items/detail.html")...)

	// Staff
	r.AddFromFilesFuncs("staff/upload.html", funcMap, assemble(templatesDir+"/views/staff/upload.html")...)
	r.AddFromFilesFuncs("staff/dashboard.html", funcMap, assemble(templatesDir+"/views/staff/dashboard.html")...)
	r.AddFromFilesFuncs("staff/approvals.html", funcMap, assemble(templatesDir+"/views/staff/approvals.html")...)
	r.AddFromFilesFuncs("staff/users.html", funcMap, assemble(templatesDir+"/views/staff/users.html")...)

	// Error
	r.AddFromFilesFuncs("error.html", funcMap, assemble(templatesDir+"/views/error.html")...)

	return r
}
