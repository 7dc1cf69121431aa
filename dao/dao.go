package dao

import (
	"context"
	"encoding/json"

	"github.com/sprintdeck/api/audit"
	"go.uber.org/zap"

	logger "github.com/sprintdeck/api/logging"
)

// requestingUserID pulls the acting user's id from the request context.
// The auth middleware is responsible for setting it.
func requestingUserID(ctx context.Context) string {
	if id, ok := ctx.Value("requestingUserID").(string); ok {
		return id
	}
	return ""
}

// recordAudit persists an audit entry. A failed write is logged and
// swallowed so the mutation that produced it still succeeds.
func recordAudit(ctx context.Context, svc audit.Service, entry audit.Entry) {
	if svc == nil {
		return
	}
	if err := svc.Record(ctx, entry); err != nil {
		logger.Error("Failed to record audit entry",
			zap.Error(err),
			zap.String("action", entry.Action),
			zap.String("resourceID", entry.ResourceID))
	}
}

func changeDetails(old, new any) map[string]any {
	details := make(map[string]any, 2)
	if old != nil {
		if data, err := json.Marshal(old); err == nil {
			var m map[string]any
			if json.Unmarshal(data, &m) == nil {
				details["old"] = m
			}
		}
	}
	if new != nil {
		if data, err := json.Marshal(new); err == nil {
			var m map[string]any
			if json.Unmarshal(data, &m) == nil {
				details["new"] = m
			}
		}
	}
	return details
}
