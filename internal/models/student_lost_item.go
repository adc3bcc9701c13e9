package models

import (
	"time"
)

// StudentLostItem is a report of a lost item submitted by a student through
// the inbound mail channel. It only needs staff approval before it shows up
// in the approval queue alongside found items.
type StudentLostItem struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Title          string         `gorm:"size:255;not null" json:"title"`
	Description    string         `gorm:"type:text" json:"description"`
	EmailSubject   string         `gorm:"size:255" json:"email_subject"`
	EmailFrom      string         `gorm:"size:255" json:"email_from"`
	SubmittedAt    time.Time      `gorm:"not null;index" json:"submitted_at"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"approval_status"`
	ApprovedByID   *uint          `gorm:"index" json:"approved_by_id"`
	ApprovedBy     *User          `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"approved_by,omitempty"`
	ApprovedAt     *time.Time     `json:"approved_at"`

	Images []StudentLostItemImage `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"images"`
}

type StudentLostItemImage struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	StudentLostItemID uint      `gorm:"not null;index" json:"student_lost_item_id"`
	ObjectKey         string    `gorm:"size:255;not null" json:"object_key"`
	ContentType       string    `gorm:"size:100" json:"content_type"`
	CreatedAt         time.Time `json:"created_at"`
}
