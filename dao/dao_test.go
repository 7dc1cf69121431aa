package dao

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sprintdeck/api/audit"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	sd_mock "github.com/sprintdeck/api/test/mock"
)

func TestRecordAuditSwallowsWriteFailures(t *testing.T) {
	logger.InitLogger()
	defer logger.Sync()

	auditService := new(sd_mock.MockAuditService)
	auditService.On("Record", mock.Anything, mock.Anything).
		Return(errors.New("audit store unavailable")).Once()

	entry := audit.NewEntry(audit.Params{
		UserID: "user-1",
		Action: "UPDATE_MEMBER_ROLE",
	})
	recordAudit(context.Background(), auditService, entry)

	auditService.AssertExpectations(t)
}

func TestRecordAuditNilServiceIsNoOp(t *testing.T) {
	recordAudit(context.Background(), nil, audit.Entry{})
}

func TestRequestingUserID(t *testing.T) {
	ctx := context.WithValue(context.Background(), "requestingUserID", "user-9")
	if got := requestingUserID(ctx); got != "user-9" {
		t.Fatalf("requestingUserID = %q, want %q", got, "user-9")
	}
	if got := requestingUserID(context.Background()); got != "" {
		t.Fatalf("requestingUserID on empty context = %q, want empty", got)
	}
}

func TestChangeDetails(t *testing.T) {
	old := model.Project{ID: "p-1", Name: "Before"}
	updated := model.Project{ID: "p-1", Name: "After"}

	details := changeDetails(old, updated)
	assert.Contains(t, details, "old")
	assert.Contains(t, details, "new")

	oldMap := details["old"].(map[string]any)
	assert.Equal(t, "Before", oldMap["name"])
}
