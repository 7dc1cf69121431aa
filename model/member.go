package model

import (
	"time"

	"github.com/sprintdeck/api/authz"
)

// OrganizationMember ties one user identity to one organization. The
// role and the optional permission set reference are the inputs to every
// authorization decision made on the member's behalf.
type OrganizationMember struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	OrganizationID  string     `json:"organization_id"`
	Role            authz.Role `json:"role"`
	PermissionSetID string     `json:"permission_set_id,omitempty"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Title           string     `json:"title,omitempty"`
	Phone           string     `json:"phone,omitempty"`
	HourlyRate      float64    `json:"hourly_rate,omitempty"`
	AvatarURL       string     `json:"avatar_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ProfileVisibility controls which member profile fields are shown to
// viewers below admin. Unmapped fields stay admin-only.
var ProfileVisibility = map[string]authz.Visibility{
	"id":          authz.VisibilityMember,
	"user_id":     authz.VisibilityMember,
	"name":        authz.VisibilityMember,
	"email":       authz.VisibilityMember,
	"title":       authz.VisibilityMember,
	"avatar_url":  authz.VisibilityMember,
	"role":        authz.VisibilityMember,
	"phone":       authz.VisibilityAdmin,
	"hourly_rate": authz.VisibilityAdmin,
}

type MemberSearchCriteria struct {
	OrganizationID string     `json:"organization_id,omitempty"`
	Role           authz.Role `json:"role,omitempty"`
	Limit          int        `json:"limit,omitempty"`
	Offset         int        `json:"offset,omitempty"`
}
