package services

import (
	"errors"
	"strings"
	"time"

	"lostfound/internal/db"
	"lostfound/internal/logger"
	"lostfound/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrClaimantNameRequired = errors.New("claimant name is required")
	ErrClaimantNameTooLong  = errors.New("claimant name is too long (max 255 characters)")
	ErrItemNotFound         = errors.New("item not found")
)

// ValidateClaimantName normalizes and checks the claimant name. Returns the
// trimmed name on success.
func ValidateClaimantName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrClaimantNameRequired
	}
	if len(name) > 255 {
		return "", ErrClaimantNameTooLong
	}
	return name, nil
}

// Claim records a claim against an item. Every valid claim appends a Claim
// row; only the first one flips the item to CLAIMED and stamps the legacy
// claimed_by_name/claimed_at fields. The row lock keeps two concurrent first
// claims from both winning the stamp.
func Claim(itemID uint, claimantName string) (*models.Claim, error) {
	name, err := ValidateClaimantName(claimantName)
	if err != nil {
		return nil, err
	}

	var claim models.Claim
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		var item models.Item
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		now := time.Now()
		claim = models.Claim{
			ItemID:       item.ID,
			ClaimantName: name,
			ClaimedAt:    now,
		}
		if err := tx.Create(&claim).Error; err != nil {
			return err
		}

		if item.Status == models.StatusFound {
			if err := stampFirstClaim(tx, item.ID, name, now).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Infof("Item %d claimed by %q (claim %d)", itemID, name, claim.ID)
	return &claim, nil
}

// stampFirstClaim flips a FOUND item to CLAIMED and records the first
// claimant. The status guard in the WHERE clause keeps a racing claim from
// overwriting an earlier stamp.
func stampFirstClaim(tx *gorm.DB, itemID uint, name string, now time.Time) *gorm.DB {
	return tx.Model(&models.Item{}).
		Where("id = ? AND status = ?", itemID, models.StatusFound).
		Updates(map[string]interface{}{
			"status":          models.StatusClaimed,
			"claimed_by_name": name,
			"claimed_at":      now,
		})
}

// EnsureClaimNotices backfills the viewer's missing notice rows, then returns
// their undismissed notices, newest first.
func EnsureClaimNotices(viewerID uint) ([]models.ClaimNotice, error) {
	if err := backfillClaimNotices(db.DB, viewerID).Error; err != nil {
		return nil, err
	}

	var notices []models.ClaimNotice
	err := db.DB.Preload("Claim").
		Where("user_id = ? AND dismissed = ?", viewerID, false).
		Order("created_at DESC").
		Find(&notices).Error
	return notices, err
}

// backfillClaimNotices inserts the (claim, viewer) notice rows the viewer has
// not seen yet, in one statement. The unique (claim_id, user_id) index
// absorbs concurrent dashboard loads.
func backfillClaimNotices(tx *gorm.DB, viewerID uint) *gorm.DB {
	return tx.Exec(`INSERT INTO claim_notices (claim_id, user_id, dismissed, created_at)
		SELECT id, ?, false, NOW() FROM claims
		ON CONFLICT (claim_id, user_id) DO NOTHING`, viewerID)
}

// DismissClaimNotice marks one notice as dismissed for its viewer.
func DismissClaimNotice(noticeID, viewerID uint) error {
	result := db.DB.Model(&models.ClaimNotice{}).
		Where("id = ? AND user_id = ?", noticeID, viewerID).
		Update("dismissed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MultiClaimItemIDs returns the IDs of items with more than one claim, for
// the dashboard to flag.
func MultiClaimItemIDs() (map[uint]bool, error) {
	type row struct {
		ItemID uint
	}
	var rows []row
	err := db.DB.Model(&models.Claim{}).
		Select("item_id").
		Group("item_id").
		Having("COUNT(*) > 1").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make(map[uint]bool, len(rows))
	for _, r := range rows {
		ids[r.ItemID] = true
	}
	return ids, nil
}
