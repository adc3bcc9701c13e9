package services

import (
	"strings"
	"testing"
	"time"

	"lostfound/internal/models"
)

func TestClaimedVisibleCondition(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	cond, args := claimedVisibleCondition(now)

	// FOUND clause plus one claimed clause per category.
	wantClauses := 1 + len(models.Categories)
	if got := strings.Count(cond, "status = ?"); got != wantClauses {
		t.Errorf("expected %d status clauses, got %d in %q", wantClauses, got, cond)
	}

	// First arg is FOUND, then (CLAIMED, category, cutoff) triples.
	if args[0] != models.StatusFound {
		t.Fatalf("expected first arg FOUND, got %v", args[0])
	}
	if len(args) != 1+3*len(models.Categories) {
		t.Fatalf("expected %d args, got %d", 1+3*len(models.Categories), len(args))
	}

	for i, cat := range models.Categories {
		base := 1 + i*3
		if args[base] != models.StatusClaimed {
			t.Errorf("category %s: expected CLAIMED arg, got %v", cat, args[base])
		}
		if args[base+1] != cat {
			t.Errorf("expected category %s, got %v", cat, args[base+1])
		}
		cutoff, ok := args[base+2].(time.Time)
		if !ok {
			t.Fatalf("category %s: cutoff is not a time", cat)
		}
		if want := now.Add(-models.ClaimWindow(cat)); !cutoff.Equal(want) {
			t.Errorf("category %s: cutoff = %v, want %v", cat, cutoff, want)
		}
	}
}

func TestClaimedVisibleConditionWindows(t *testing.T) {
	now := time.Now()
	_, args := claimedVisibleCondition(now)

	// Electronics keep a 7 day window, sports & clothing 3 days, rest 1 day.
	cutoffFor := func(want models.Category) time.Time {
		for i, cat := range models.Categories {
			if cat == want {
				return args[1+i*3+2].(time.Time)
			}
		}
		t.Fatalf("category %s not in condition", want)
		return time.Time{}
	}

	if got := now.Sub(cutoffFor(models.CategoryElectronics)); got != 7*24*time.Hour {
		t.Errorf("electronics window = %v", got)
	}
	if got := now.Sub(cutoffFor(models.CategorySportsAndClothing)); got != 3*24*time.Hour {
		t.Errorf("sports & clothing window = %v", got)
	}
	if got := now.Sub(cutoffFor(models.CategoryOtherMisc)); got != 24*time.Hour {
		t.Errorf("other/misc window = %v", got)
	}
}

func TestDetailVisible(t *testing.T) {
	approved := &models.Item{ApprovalStatus: models.ApprovalApproved}
	pending := &models.Item{ApprovalStatus: models.ApprovalPending}
	rejected := &models.Item{ApprovalStatus: models.ApprovalRejected}

	public := Capabilities{}
	staff := Capabilities{CanUpload: true}

	if !DetailVisible(approved, public) {
		t.Error("approved items are public")
	}
	if DetailVisible(pending, public) {
		t.Error("pending items must stay hidden from the public")
	}
	if DetailVisible(rejected, public) {
		t.Error("rejected items must stay hidden from the public")
	}
	if !DetailVisible(pending, staff) {
		t.Error("staff can inspect pending items")
	}
	if !DetailVisible(rejected, staff) {
		t.Error("staff can inspect rejected items")
	}
}
