package audit

import (
	"strings"
	"testing"
	"time"
)

func TestNewEntryStampsTimestamp(t *testing.T) {
	before := time.Now().UTC()
	entry := NewEntry(Params{
		UserID:         "u-1",
		OrganizationID: "org-1",
		Action:         "UPDATE_MEMBER_ROLE",
		ResourceType:   "member",
		ResourceID:     "m-2",
	})
	after := time.Now().UTC()

	if entry.Timestamp.Before(before) || entry.Timestamp.After(after) {
		t.Fatalf("timestamp %v outside [%v, %v]", entry.Timestamp, before, after)
	}
}

func TestNewEntrySanitizesDetails(t *testing.T) {
	entry := NewEntry(Params{
		UserID:         "u-1",
		OrganizationID: "org-1",
		Action:         "CREATE_PROJECT",
		ResourceType:   "project",
		Details: map[string]any{
			"name":     "<script>alert(1)</script>Roadmap",
			"priority": 2,
			"labels":   []any{"javascript:x", "ok"},
		},
		UserAgent: "Mozilla onload=evil",
	})

	if entry.Details["name"] != "Roadmap" {
		t.Errorf("name = %q", entry.Details["name"])
	}
	if entry.Details["priority"] != 2 {
		t.Error("non-string detail changed")
	}
	labels := entry.Details["labels"].([]any)
	if strings.Contains(labels[0].(string), "javascript:") {
		t.Errorf("labels[0] = %q", labels[0])
	}
	if labels[1] != "ok" {
		t.Errorf("labels[1] = %q", labels[1])
	}
	if strings.Contains(entry.UserAgent, "onload=") {
		t.Errorf("user agent = %q", entry.UserAgent)
	}
}

func TestNewEntryDoesNotAliasDetails(t *testing.T) {
	details := map[string]any{"key": "value"}
	entry := NewEntry(Params{Details: details})

	details["key"] = "mutated"
	if entry.Details["key"] != "value" {
		t.Fatal("entry must not share the caller's details map")
	}
}
