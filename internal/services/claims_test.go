package services

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lostfound/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB builds a gorm session that renders statements without a
// connection, so the guarded SQL can be asserted directly.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return gdb
}

func TestValidateClaimantName(t *testing.T) {
	cases := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{"plain", "Alex Tan", "Alex Tan", nil},
		{"trimmed", "  Alex Tan  ", "Alex Tan", nil},
		{"empty", "", "", ErrClaimantNameRequired},
		{"whitespace only", "   ", "", ErrClaimantNameRequired},
		{"max length", strings.Repeat("a", 255), strings.Repeat("a", 255), nil},
		{"too long", strings.Repeat("a", 256), "", ErrClaimantNameTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateClaimantName(tc.in)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if got != tc.want {
				t.Errorf("name = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStampFirstClaimGuardsOnStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	result := stampFirstClaim(newDryRunDB(t), 42, "Alex Tan", now)
	if result.Error != nil {
		t.Fatalf("stampFirstClaim: %v", result.Error)
	}

	sql := result.Statement.SQL.String()
	if !strings.Contains(sql, "UPDATE") || !strings.Contains(sql, "status") {
		t.Errorf("expected a status update, got %q", sql)
	}

	// Three stamped columns plus the id and status guards. The FOUND guard
	// is what keeps a second claim from overwriting the first stamp.
	vars := result.Statement.Vars
	if len(vars) != 5 {
		t.Fatalf("expected 5 statement vars, got %d: %v", len(vars), vars)
	}
	var guardsOnFound, stampsClaimed, stampsName bool
	for _, v := range vars {
		switch v {
		case models.StatusFound:
			guardsOnFound = true
		case models.StatusClaimed:
			stampsClaimed = true
		case "Alex Tan":
			stampsName = true
		}
	}
	if !guardsOnFound {
		t.Error("expected the update to guard on FOUND")
	}
	if !stampsClaimed {
		t.Error("expected the update to set CLAIMED")
	}
	if !stampsName {
		t.Error("expected the update to stamp the claimant name")
	}
}

func TestBackfillClaimNoticesIsOneIdempotentInsert(t *testing.T) {
	result := backfillClaimNotices(newDryRunDB(t), 9)
	if result.Error != nil {
		t.Fatalf("backfillClaimNotices: %v", result.Error)
	}

	sql := result.Statement.SQL.String()
	if !strings.Contains(sql, "INSERT INTO claim_notices") || !strings.Contains(sql, "SELECT") {
		t.Errorf("expected a single insert-select, got %q", sql)
	}
	if !strings.Contains(sql, "ON CONFLICT (claim_id, user_id) DO NOTHING") {
		t.Errorf("expected the conflict clause, got %q", sql)
	}
	if len(result.Statement.Vars) != 1 || result.Statement.Vars[0] != uint(9) {
		t.Errorf("expected the viewer ID as the only var, got %v", result.Statement.Vars)
	}
}
