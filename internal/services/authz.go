package services

import (
	"lostfound/internal/models"
)

// Capabilities is the resolved permission set for a request actor. Handlers
// and services branch on these values instead of re-checking roles.
type Capabilities struct {
	CanUpload      bool // may submit found items
	CanApprove     bool // may approve/reject pending submissions
	AutoApprove    bool // own uploads skip the approval queue
	CanManageUsers bool // may grant staff / Super User rights
}

// AuthzPolicy maps accounts to capabilities. Injected into handlers so role
// rules live in one place.
type AuthzPolicy struct{}

func NewAuthzPolicy() *AuthzPolicy {
	return &AuthzPolicy{}
}

// For resolves the capability set for a user and their profile. Either may be
// nil (anonymous visitors get the zero set: browse and claim only).
func (p *AuthzPolicy) For(user *models.User, profile *models.UserProfile) Capabilities {
	if user == nil {
		return Capabilities{}
	}

	super := profile != nil && profile.IsSuperUser
	if super {
		return Capabilities{
			CanUpload:      true,
			CanApprove:     true,
			AutoApprove:    true,
			CanManageUsers: true,
		}
	}

	if user.IsStaff {
		return Capabilities{CanUpload: true}
	}

	return Capabilities{}
}

// InitialApproval returns the approval state a new item is created in:
// Super User uploads go straight to APPROVED, everyone else starts PENDING.
func (p *AuthzPolicy) InitialApproval(caps Capabilities) models.ApprovalStatus {
	if caps.AutoApprove {
		return models.ApprovalApproved
	}
	return models.ApprovalPending
}
