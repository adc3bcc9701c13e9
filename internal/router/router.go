package router

import (
	"lostfound/internal/config"
	"lostfound/internal/handlers"
	"lostfound/internal/middleware"
	"lostfound/internal/services"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every handler. Services are injected here so the
// whole authorization and storage setup lives in one place.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, policy *services.AuthzPolicy, vision *services.VisionService, store services.ImageStore, mail *services.MailService) {
	authHandler := handlers.NewAuthHandler()
	itemHandler := handlers.NewItemHandler(mail)
	staffHandler := handlers.NewStaffHandler(policy, vision, store, mail)
	approvalHandler := handlers.NewApprovalHandler(policy)
	userAdminHandler := handlers.NewUserAdminHandler()
	mediaHandler := handlers.NewMediaHandler(store)
	ingestHandler := handlers.NewIngestHandler(cfg.Ingest.Token, store)

	// Public routes
	r.GET("/", itemHandler.Landing)
	r.GET("/browse", itemHandler.Browse)
	r.GET("/items/:id", itemHandler.Detail)
	r.POST("/items/:id/claim", itemHandler.Claim)
	r.GET("/media/*key", mediaHandler.Serve)

	r.GET("/signup", authHandler.ShowRegister)
	r.POST("/signup", authHandler.Register)
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// Staff routes: upload, suggestion endpoint, dashboard
	staff := r.Group("/staff")
	staff.Use(middleware.AuthRequired(), middleware.StaffRequired())
	{
		staff.GET("/upload", staffHandler.ShowUpload)
		staff.POST("/upload", staffHandler.Upload)
		staff.POST("/analyze", staffHandler.Analyze)
		staff.GET("/dashboard", staffHandler.Dashboard)
		staff.POST("/notices/:id/dismiss", staffHandler.DismissNotice)
	}

	// Super User routes: approval queue and user management
	admin := r.Group("/staff")
	admin.Use(middleware.AuthRequired(), middleware.SuperUserRequired())
	{
		admin.GET("/approvals", approvalHandler.Queue)
		admin.POST("/items/:id/approve", approvalHandler.ApproveItem)
		admin.POST("/items/:id/reject", approvalHandler.RejectItem)
		admin.POST("/lost-reports/:id/approve", approvalHandler.ApproveReport)
		admin.POST("/lost-reports/:id/reject", approvalHandler.RejectReport)
		admin.GET("/users", userAdminHandler.List)
		admin.POST("/users/:id/roles", userAdminHandler.UpdateRoles)
	}

	// Inbound mail gateway
	r.POST("/api/ingest/lost-report", ingestHandler.LostReport)
}
