package models

import (
	"time"
)

// ClaimNotice is the staff-facing notification ledger for claims. One row per
// (claim, viewer); the unique index keeps a claim from notifying the same
// viewer twice. Dismissal is per viewer and survives sessions.
type ClaimNotice struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClaimID   uint      `gorm:"not null;uniqueIndex:idx_claim_viewer" json:"claim_id"`
	Claim     Claim     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"claim"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_claim_viewer" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Dismissed bool      `gorm:"default:false;index" json:"dismissed"`
	CreatedAt time.Time `json:"created_at"`
}
