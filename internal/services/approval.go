package services

import (
	"errors"
	"sort"
	"time"

	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrNotPending means the item already left the PENDING state, usually
	// because another Super User processed it first.
	ErrNotPending = errors.New("item is no longer pending")

	ErrApprovalForbidden = errors.New("approval requires Super User rights")
)

// PendingEntry is one row of the merged approval queue.
type PendingEntry struct {
	Item        *models.Item
	StudentItem *models.StudentLostItem
	SubmittedAt time.Time
}

// pendingDecisionUpdate builds the guarded transition out of PENDING. The
// approval_status guard makes the decision a compare-and-set; a concurrent
// decision leaves RowsAffected at zero.
func pendingDecisionUpdate(tx *gorm.DB, itemID uint, decision models.ApprovalStatus) *gorm.DB {
	return tx.Model(&models.Item{}).
		Where("id = ? AND approval_status = ?", itemID, models.ApprovalPending).
		Update("approval_status", decision)
}

// DecideItem moves a PENDING item to APPROVED or REJECTED. The transition is
// a single guarded UPDATE; losing the guard surfaces ErrNotPending instead of
// silently double-processing.
func DecideItem(itemID uint, decision models.ApprovalStatus, caps Capabilities) error {
	if !caps.CanApprove {
		return ErrApprovalForbidden
	}

	result := pendingDecisionUpdate(db.DB, itemID, decision)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}

	logger.Log.Infof("Item %d marked %s", itemID, decision)
	return nil
}

// DecideStudentItem resolves a pending student lost report, stamping who
// decided and when.
func DecideStudentItem(reportID uint, decision models.ApprovalStatus, actor *models.User, caps Capabilities) error {
	if !caps.CanApprove {
		return ErrApprovalForbidden
	}

	now := time.Now()
	result := db.DB.Model(&models.StudentLostItem{}).
		Where("id = ? AND approval_status = ?", reportID, models.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_status": decision,
			"approved_by_id":  actor.ID,
			"approved_at":     now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotPending
	}

	logger.Log.Infof("Student report %d marked %s by user %d", reportID, decision, actor.ID)
	return nil
}

// PendingQueue merges pending found items and pending student reports into
// one queue, most recent submission first.
func PendingQueue() ([]PendingEntry, error) {
	var items []models.Item
	if err := db.DB.Preload("Images").Preload("CreatedBy").
		Where("approval_status = ?", models.ApprovalPending).
		Find(&items).Error; err != nil {
		return nil, err
	}

	var reports []models.StudentLostItem
	if err := db.DB.Preload("Images").
		Where("approval_status = ?", models.ApprovalPending).
		Find(&reports).Error; err != nil {
		return nil, err
	}

	entries := make([]PendingEntry, 0, len(items)+len(reports))
	for i := range items {
		entries = append(entries, PendingEntry{Item: &items[i], SubmittedAt: items[i].CreatedAt})
	}
	for i := range reports {
		entries = append(entries, PendingEntry{StudentItem: &reports[i], SubmittedAt: reports[i].SubmittedAt})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].SubmittedAt.After(entries[j].SubmittedAt)
	})
	return entries, nil
}
