package services

import (
	"strings"
	"time"

	"lostfound/internal/models"

	"gorm.io/gorm"
)

// ItemFilters are the optional, composable public listing filters.
type ItemFilters struct {
	Query    string // case-insensitive substring over title+description
	Category string // exact category match
	Location string // substring match on location found
	DateFrom *time.Time
	DateTo   *time.Time
}

// claimedVisibleCondition builds the status clause of the public listing:
// FOUND items always, CLAIMED items only while inside their category's claim
// window. Returned as SQL + args so it stays testable without a database.
func claimedVisibleCondition(now time.Time) (string, []interface{}) {
	var parts []string
	var args []interface{}

	parts = append(parts, "status = ?")
	args = append(args, models.StatusFound)

	for _, cat := range models.Categories {
		cutoff := now.Add(-models.ClaimWindow(cat))
		parts = append(parts, "(status = ? AND category = ? AND claimed_at IS NOT NULL AND claimed_at >= ?)")
		args = append(args, models.StatusClaimed, cat, cutoff)
	}

	return "(" + strings.Join(parts, " OR ") + ")", args
}

// PublicItems narrows a query to the items visible in the public browse view
// for one audience segment: approved, segment-matched, and either still FOUND
// or claimed within the category claim window.
func PublicItems(q *gorm.DB, segment models.ItemType, now time.Time) *gorm.DB {
	cond, args := claimedVisibleCondition(now)
	return q.
		Where("approval_status = ?", models.ApprovalApproved).
		Where("item_type = ?", segment).
		Where(cond, args...)
}

// DetailVisible reports whether an actor may see one item outside the public
// listing. Non-approved items stay hidden from the public; anyone with upload
// rights can inspect them.
func DetailVisible(item *models.Item, caps Capabilities) bool {
	return item.ApprovalStatus == models.ApprovalApproved || caps.CanUpload
}

// ApplyItemFilters adds the optional search filters on top of a listing query.
func ApplyItemFilters(q *gorm.DB, f ItemFilters) *gorm.DB {
	if f.Query != "" {
		pattern := "%" + f.Query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if f.Category != "" && models.ValidCategory(f.Category) {
		q = q.Where("category = ?", f.Category)
	}
	if f.Location != "" {
		q = q.Where("location_found ILIKE ?", "%"+f.Location+"%")
	}
	if f.DateFrom != nil {
		q = q.Where("date_found >= ?", *f.DateFrom)
	}
	if f.DateTo != nil {
		q = q.Where("date_found <= ?", *f.DateTo)
	}
	return q
}

// FillClaimCounts batch-fills the derived claim count on listed items.
func FillClaimCounts(db *gorm.DB, items []models.Item) {
	if len(items) == 0 {
		return
	}

	itemIDs := make([]uint, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID
	}

	type countResult struct {
		ItemID uint
		Count  int
	}
	var results []countResult
	db.Model(&models.Claim{}).
		Select("item_id, COUNT(*) as count").
		Where("item_id IN ?", itemIDs).
		Group("item_id").
		Scan(&results)

	countMap := make(map[uint]int)
	for _, r := range results {
		countMap[r.ItemID] = r.Count
	}

	for i := range items {
		items[i].ClaimCount = countMap[items[i].ID]
	}
}
