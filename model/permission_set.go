package model

import (
	"time"

	"github.com/sprintdeck/api/authz"
)

// PermissionSet is a named, reusable capability grid that organization
// admins create and attach to members. Owners bypass it; guests cannot
// be elevated by it.
type PermissionSet struct {
	ID             string                 `json:"id"`
	OrganizationID string                 `json:"organization_id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description,omitempty"`
	Matrix         authz.PermissionMatrix `json:"matrix"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}
