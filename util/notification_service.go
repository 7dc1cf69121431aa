package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sprintdeck/api/authz"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
)

// NotificationService dispatches member-facing notices. Delivery is a
// collaborator concern; this implementation logs the notice so a queue
// or mail client can be wired in without touching callers.
type NotificationService struct{}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

func (n *NotificationService) NotifyRoleChange(ctx context.Context, member model.OrganizationMember, oldRole authz.Role) error {
	logger.Info("NOTIFICATION: Member role changed",
		zap.String("memberID", member.ID),
		zap.String("oldRole", string(oldRole)),
		zap.String("newRole", string(member.Role)))

	subject := "Your role has changed"
	body := fmt.Sprintf("Your role was changed from %s to %s.", oldRole, member.Role)
	return n.SendEmail(ctx, member.Email, subject, body)
}

func (n *NotificationService) NotifyPermissionSetChange(ctx context.Context, changeType string, set model.PermissionSet) error {
	logger.Info("NOTIFICATION: Permission set changed",
		zap.String("changeType", changeType),
		zap.String("setID", set.ID),
		zap.String("setName", set.Name))
	return nil
}

func (n *NotificationService) NotifyProjectAssignment(ctx context.Context, projectID, memberID string) error {
	logger.Info("NOTIFICATION: Member assigned to project",
		zap.String("projectID", projectID),
		zap.String("memberID", memberID))
	return nil
}

func (n *NotificationService) SendEmail(ctx context.Context, recipient, subject, body string) error {
	logger.Info("Sending email",
		zap.String("recipient", recipient),
		zap.String("subject", subject))
	return nil
}
