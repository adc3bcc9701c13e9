package handlers

import (
	"errors"
	"net/http"

	"lostfound/internal/middleware"
	"lostfound/internal/models"
	"lostfound/internal/services"
	"lostfound/internal/utils"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	policy *services.AuthzPolicy
}

func NewApprovalHandler(policy *services.AuthzPolicy) *ApprovalHandler {
	return &ApprovalHandler{policy: policy}
}

// Queue shows every pending submission, found items and student lost reports
// merged, newest first.
func (h *ApprovalHandler) Queue(c *gin.Context) {
	entries, err := services.PendingQueue()
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Could not load the approval queue")
		return
	}

	Render(c, http.StatusOK, "staff/approvals.html", gin.H{
		"Title":   "Approval queue",
		"Entries": entries,
	})
}

func (h *ApprovalHandler) decideItem(c *gin.Context, decision models.ApprovalStatus) {
	id := utils.StringToInt(c.Param("id"))
	caps := middleware.Caps(c)

	err := services.DecideItem(uint(id), decision, caps)
	if errors.Is(err, services.ErrNotPending) {
		RenderError(c, http.StatusConflict, "This item is no longer pending; someone else already processed it.")
		return
	}
	if errors.Is(err, services.ErrApprovalForbidden) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Approval failed, please retry")
		return
	}

	utils.GetCache().Delete("landing:stats")
	c.Redirect(http.StatusFound, "/staff/approvals")
}

func (h *ApprovalHandler) ApproveItem(c *gin.Context) {
	h.decideItem(c, models.ApprovalApproved)
}

func (h *ApprovalHandler) RejectItem(c *gin.Context) {
	h.decideItem(c, models.ApprovalRejected)
}

func (h *ApprovalHandler) decideReport(c *gin.Context, decision models.ApprovalStatus) {
	id := utils.StringToInt(c.Param("id"))
	user := middleware.CurrentUser(c)
	caps := middleware.Caps(c)

	err := services.DecideStudentItem(uint(id), decision, user, caps)
	if errors.Is(err, services.ErrNotPending) {
		RenderError(c, http.StatusConflict, "This report is no longer pending; someone else already processed it.")
		return
	}
	if errors.Is(err, services.ErrApprovalForbidden) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err != nil {
		RenderError(c, http.StatusInternalServerError, "Approval failed, please retry")
		return
	}

	c.Redirect(http.StatusFound, "/staff/approvals")
}

func (h *ApprovalHandler) ApproveReport(c *gin.Context) {
	h.decideReport(c, models.ApprovalApproved)
}

func (h *ApprovalHandler) RejectReport(c *gin.Context) {
	h.decideReport(c, models.ApprovalRejected)
}
