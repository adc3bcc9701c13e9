package models

import (
	"time"
)

type ItemStatus string

const (
	StatusFound   ItemStatus = "FOUND"
	StatusClaimed ItemStatus = "CLAIMED"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

type ItemType string

const (
	ItemTypeSenior  ItemType = "SENIOR"
	ItemTypePrimary ItemType = "PRIMARY"
)

type Category string

const (
	CategoryElectronics          Category = "ELECTRONICS"
	CategoryBagsAndCarry         Category = "BAGS_AND_CARRY"
	CategorySportsAndClothing    Category = "SPORTS_AND_CLOTHING"
	CategoryBottlesAndContainers Category = "BOTTLES_AND_CONTAINERS"
	CategoryDocumentsAndIDs      Category = "DOCUMENTS_AND_IDS"
	CategoryNotebooksAndBooks    Category = "NOTEBOOKS_AND_BOOKS"
	CategoryOtherMisc            Category = "OTHER_MISC"
)

// Categories in display order, used by forms and filters.
var Categories = []Category{
	CategoryElectronics,
	CategoryBagsAndCarry,
	CategorySportsAndClothing,
	CategoryBottlesAndContainers,
	CategoryDocumentsAndIDs,
	CategoryNotebooksAndBooks,
	CategoryOtherMisc,
}

var categoryLabels = map[Category]string{
	CategoryElectronics:          "Electronics",
	CategoryBagsAndCarry:         "Bags & Carry",
	CategorySportsAndClothing:    "Sports & Clothing",
	CategoryBottlesAndContainers: "Bottles & Containers",
	CategoryDocumentsAndIDs:      "Documents & IDs",
	CategoryNotebooksAndBooks:    "Notebooks/Books",
	CategoryOtherMisc:            "Other/Misc",
}

func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ValidCategory reports whether the value is one of the fixed categories.
func ValidCategory(value string) bool {
	_, ok := categoryLabels[Category(value)]
	return ok
}

// ClaimWindow returns how long a claimed item stays publicly listed after
// being claimed. Higher-value categories get a longer grace window so the
// "claimed, pending pickup" notice stays up.
func ClaimWindow(c Category) time.Duration {
	switch c {
	case CategoryElectronics:
		return 7 * 24 * time.Hour
	case CategorySportsAndClothing:
		return 3 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

type Item struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	Category       Category       `gorm:"type:varchar(40);not null;default:'OTHER_MISC';index" json:"category"`
	LocationFound  string         `gorm:"size:255" json:"location_found"`
	DateFound      time.Time      `gorm:"type:date;not null;index" json:"date_found"`
	Status         ItemStatus     `gorm:"type:varchar(20);not null;default:'FOUND';index" json:"status"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"approval_status"`
	ItemType       ItemType       `gorm:"type:varchar(20);not null;default:'SENIOR';index" json:"item_type"`
	CreatedByID    *uint          `gorm:"index" json:"created_by_id"`
	CreatedBy      *User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"created_by,omitempty"`

	// Legacy single-claimant fields. The first claim stamps these once;
	// later claims only add Claim rows.
	ClaimedByName string     `gorm:"size:255" json:"claimed_by_name"`
	ClaimedAt     *time.Time `gorm:"index" json:"claimed_at"`

	Images []ItemImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
	Claims []Claim     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"claims"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled by queries, not stored.
	ClaimCount int `gorm:"-" json:"claim_count"`
}

// LatestClaim returns the most recent claim, or nil when unclaimed.
// Claims must have been preloaded.
func (i *Item) LatestClaim() *Claim {
	var latest *Claim
	for idx := range i.Claims {
		c := &i.Claims[idx]
		if latest == nil || c.ClaimedAt.After(latest.ClaimedAt) {
			latest = c
		}
	}
	return latest
}

type ItemImage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ItemID      uint      `gorm:"not null;index" json:"item_id"`
	ObjectKey   string    `gorm:"size:255;not null" json:"object_key"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type Claim struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ItemID       uint      `gorm:"not null;index" json:"item_id"`
	ClaimantName string    `gorm:"size:255;not null" json:"claimant_name"`
	ClaimedAt    time.Time `gorm:"not null;index" json:"claimed_at"`
}
