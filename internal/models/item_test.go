package models

import (
	"testing"
	"time"
)

func TestClaimWindow(t *testing.T) {
	cases := []struct {
		category Category
		want     time.Duration
	}{
		{CategoryElectronics, 7 * 24 * time.Hour},
		{CategorySportsAndClothing, 3 * 24 * time.Hour},
		{CategoryBagsAndCarry, 24 * time.Hour},
		{CategoryBottlesAndContainers, 24 * time.Hour},
		{CategoryDocumentsAndIDs, 24 * time.Hour},
		{CategoryNotebooksAndBooks, 24 * time.Hour},
		{CategoryOtherMisc, 24 * time.Hour},
	}

	for _, tc := range cases {
		if got := ClaimWindow(tc.category); got != tc.want {
			t.Errorf("ClaimWindow(%s) = %v, want %v", tc.category, got, tc.want)
		}
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(string(c)) {
			t.Errorf("expected %s to be valid", c)
		}
	}
	if ValidCategory("WEAPONS") {
		t.Error("unknown category accepted")
	}
	if ValidCategory("") {
		t.Error("empty category accepted")
	}
}

func TestLatestClaim(t *testing.T) {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	item := Item{
		Claims: []Claim{
			{ID: 1, ClaimantName: "First", ClaimedAt: base},
			{ID: 3, ClaimantName: "Third", ClaimedAt: base.Add(2 * time.Hour)},
			{ID: 2, ClaimantName: "Second", ClaimedAt: base.Add(time.Hour)},
		},
	}

	latest := item.LatestClaim()
	if latest == nil || latest.ClaimantName != "Third" {
		t.Errorf("LatestClaim() = %+v, want the third claim", latest)
	}

	empty := Item{}
	if empty.LatestClaim() != nil {
		t.Error("expected nil for an unclaimed item")
	}
}
