package services

import (
	"testing"

	"lostfound/internal/models"
)

func TestCapabilities(t *testing.T) {
	policy := NewAuthzPolicy()

	staff := &models.User{ID: 1, IsStaff: true}
	plain := &models.User{ID: 2}
	superProfile := &models.UserProfile{UserID: 3, IsSuperUser: true}
	superUser := &models.User{ID: 3, IsStaff: true}

	cases := []struct {
		name    string
		user    *models.User
		profile *models.UserProfile
		want    Capabilities
	}{
		{"anonymous", nil, nil, Capabilities{}},
		{"plain account", plain, &models.UserProfile{UserID: 2}, Capabilities{}},
		{"staff", staff, &models.UserProfile{UserID: 1}, Capabilities{CanUpload: true}},
		{"staff without profile", staff, nil, Capabilities{CanUpload: true}},
		{"super user", superUser, superProfile, Capabilities{
			CanUpload: true, CanApprove: true, AutoApprove: true, CanManageUsers: true,
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := policy.For(tc.user, tc.profile); got != tc.want {
				t.Errorf("For() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestInitialApproval(t *testing.T) {
	policy := NewAuthzPolicy()

	if got := policy.InitialApproval(Capabilities{AutoApprove: true}); got != models.ApprovalApproved {
		t.Errorf("super user upload should start APPROVED, got %s", got)
	}
	if got := policy.InitialApproval(Capabilities{CanUpload: true}); got != models.ApprovalPending {
		t.Errorf("staff upload should start PENDING, got %s", got)
	}
}
