package services

import (
	"errors"
	"strings"
	"testing"

	"lostfound/internal/db"
	"lostfound/internal/models"
)

func TestPendingDecisionUpdateGuard(t *testing.T) {
	result := pendingDecisionUpdate(newDryRunDB(t), 7, models.ApprovalRejected)
	if result.Error != nil {
		t.Fatalf("pendingDecisionUpdate: %v", result.Error)
	}

	sql := result.Statement.SQL.String()
	if !strings.Contains(sql, "UPDATE") || !strings.Contains(sql, "approval_status") {
		t.Errorf("expected an approval_status update, got %q", sql)
	}

	var guardsOnPending, setsDecision bool
	for _, v := range result.Statement.Vars {
		switch v {
		case models.ApprovalPending:
			guardsOnPending = true
		case models.ApprovalRejected:
			setsDecision = true
		}
	}
	if !guardsOnPending {
		t.Error("expected the update to guard on PENDING")
	}
	if !setsDecision {
		t.Error("expected the update to set the decision")
	}
}

func TestDecideItemLosesRace(t *testing.T) {
	orig := db.DB
	db.DB = newDryRunDB(t)
	defer func() { db.DB = orig }()

	// A dry-run update matches no rows, which is exactly what the loser of
	// a concurrent decision sees: the guard must surface ErrNotPending.
	caps := Capabilities{CanApprove: true}
	if err := DecideItem(7, models.ApprovalApproved, caps); !errors.Is(err, ErrNotPending) {
		t.Errorf("DecideItem = %v, want ErrNotPending", err)
	}
}

func TestDecideItemRequiresApprovalRights(t *testing.T) {
	if err := DecideItem(7, models.ApprovalApproved, Capabilities{CanUpload: true}); !errors.Is(err, ErrApprovalForbidden) {
		t.Errorf("DecideItem = %v, want ErrApprovalForbidden", err)
	}
}

func TestDecideStudentItemLosesRace(t *testing.T) {
	orig := db.DB
	db.DB = newDryRunDB(t)
	defer func() { db.DB = orig }()

	actor := &models.User{ID: 1}
	caps := Capabilities{CanApprove: true}
	if err := DecideStudentItem(3, models.ApprovalApproved, actor, caps); !errors.Is(err, ErrNotPending) {
		t.Errorf("DecideStudentItem = %v, want ErrNotPending", err)
	}
}
