package audit

import (
	"time"

	"github.com/sprintdeck/api/sanitize"
)

// Entry is one immutable audit record of an authorized action. Details
// are sanitized at construction; the entry is never mutated afterwards.
type Entry struct {
	UserID         string         `json:"user_id"`
	OrganizationID string         `json:"organization_id"`
	Action         string         `json:"action"`
	ResourceType   string         `json:"resource_type"`
	ResourceID     string         `json:"resource_id,omitempty"`
	Details        map[string]any `json:"details,omitempty"`
	IPAddress      string         `json:"ip_address,omitempty"`
	UserAgent      string         `json:"user_agent,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Params names the inputs to NewEntry.
type Params struct {
	UserID         string
	OrganizationID string
	Action         string
	ResourceType   string
	ResourceID     string
	Details        map[string]any
	IPAddress      string
	UserAgent      string
}

// NewEntry builds an audit entry: details are run through the sanitizer
// and the current UTC time is stamped. It performs no I/O; persisting
// the entry is the repository's concern, and a persistence failure must
// never fail the action that produced the entry.
func NewEntry(p Params) Entry {
	return Entry{
		UserID:         p.UserID,
		OrganizationID: p.OrganizationID,
		Action:         p.Action,
		ResourceType:   p.ResourceType,
		ResourceID:     p.ResourceID,
		Details:        sanitize.Map(p.Details),
		IPAddress:      sanitize.Input(p.IPAddress),
		UserAgent:      sanitize.Input(p.UserAgent),
		Timestamp:      time.Now().UTC(),
	}
}
