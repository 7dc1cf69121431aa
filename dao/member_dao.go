package dao

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	"github.com/sprintdeck/api/audit"
	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
	sd_neo4j "github.com/sprintdeck/api/model/neo4j"
)

type MemberDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewMemberDAO(driver neo4j.Driver, auditService audit.Service) *MemberDAO {
	dao := &MemberDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Member", zap.Error(err))
	}
	return dao
}

func (dao *MemberDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_member_id IF NOT EXISTS
        FOR (m:` + sd_neo4j.LabelMember + `) REQUIRE m.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

// CreateMember records a user joining an organization.
func (dao *MemberDAO) CreateMember(ctx context.Context, member model.OrganizationMember) (string, error) {
	start := time.Now()
	logger.Info("Creating organization member",
		zap.String("userID", member.UserID),
		zap.String("orgID", member.OrganizationID),
		zap.String("role", string(member.Role)))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if member.ID == "" {
		member.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        MERGE (m:` + sd_neo4j.LabelMember + ` {id: $id})
        ON CREATE SET m += $props
        MERGE (m)-[:` + sd_neo4j.RelMemberOf + `]->(o)
        RETURN m.id as id
        `
		params := map[string]interface{}{
			"id":    member.ID,
			"orgID": member.OrganizationID,
			"props": map[string]interface{}{
				"userId":         member.UserID,
				"organizationId": member.OrganizationID,
				"role":           string(member.Role),
				"name":           member.Name,
				"email":          member.Email,
				"title":          member.Title,
				"phone":          member.Phone,
				"hourlyRate":     member.HourlyRate,
				"avatarUrl":      member.AvatarURL,
				"createdAt":      time.Now().Format(time.RFC3339),
				"updatedAt":      time.Now().Format(time.RFC3339),
			},
		}

		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrOrganizationNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create member",
			zap.Error(err),
			zap.String("userID", member.UserID),
			zap.Duration("duration", duration))
		return "", err
	}

	memberID := fmt.Sprintf("%v", result)
	logger.Info("Member created successfully",
		zap.String("memberID", memberID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: member.OrganizationID,
		Action:         "CREATE_MEMBER",
		ResourceType:   "member",
		ResourceID:     memberID,
		Details:        changeDetails(nil, member),
	}))

	return memberID, nil
}

// GetMember loads a member including the id of any attached permission set.
func (dao *MemberDAO) GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $id})
        OPTIONAL MATCH (m)-[:` + sd_neo4j.RelHasPermissionSet + `]->(p:` + sd_neo4j.LabelPermissionSet + `)
        RETURN m, p.id as permissionSetId
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": memberID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			record := result.Record()
			node := record.Values[0].(neo4j.Node)
			member := parseMemberNode(node.Props)
			if setID, ok := record.Values[1].(string); ok {
				member.PermissionSetID = setID
			}
			return member, nil
		}
		return nil, sd_errors.ErrMemberNotFound
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.OrganizationMember), nil
}

func (dao *MemberDAO) ListMembers(ctx context.Context, organizationID string, limit, offset int) ([]*model.OrganizationMember, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + `)-[:` + sd_neo4j.RelMemberOf + `]->(o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        OPTIONAL MATCH (m)-[:` + sd_neo4j.RelHasPermissionSet + `]->(p:` + sd_neo4j.LabelPermissionSet + `)
        RETURN m, p.id as permissionSetId
        ORDER BY m.name
        SKIP $offset LIMIT $limit
        `
		params := map[string]interface{}{
			"orgID":  organizationID,
			"offset": offset,
			"limit":  limit,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}

		var members []*model.OrganizationMember
		for result.Next() {
			record := result.Record()
			node := record.Values[0].(neo4j.Node)
			member := parseMemberNode(node.Props)
			if setID, ok := record.Values[1].(string); ok {
				member.PermissionSetID = setID
			}
			members = append(members, member)
		}
		return members, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.OrganizationMember), nil
}

// SearchMembers finds members matching the criteria. Empty criteria
// fields do not constrain the search.
func (dao *MemberDAO) SearchMembers(ctx context.Context, criteria model.MemberSearchCriteria) ([]*model.OrganizationMember, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	limit := criteria.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := criteria.Offset
	if offset < 0 {
		offset = 0
	}

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + `)-[:` + sd_neo4j.RelMemberOf + `]->(o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        WHERE ($role = '' OR m.role = $role)
        OPTIONAL MATCH (m)-[:` + sd_neo4j.RelHasPermissionSet + `]->(p:` + sd_neo4j.LabelPermissionSet + `)
        RETURN m, p.id as permissionSetId
        ORDER BY m.name
        SKIP $offset LIMIT $limit
        `
		params := map[string]interface{}{
			"orgID":  criteria.OrganizationID,
			"role":   string(criteria.Role),
			"offset": offset,
			"limit":  limit,
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}

		var members []*model.OrganizationMember
		for result.Next() {
			record := result.Record()
			node := record.Values[0].(neo4j.Node)
			member := parseMemberNode(node.Props)
			if setID, ok := record.Values[1].(string); ok {
				member.PermissionSetID = setID
			}
			members = append(members, member)
		}
		return members, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.OrganizationMember), nil
}

// UpdateMemberRole changes a member's role.
func (dao *MemberDAO) UpdateMemberRole(ctx context.Context, memberID string, role authz.Role) (*model.OrganizationMember, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $id})
        SET m.role = $role, m.updatedAt = $updatedAt
        RETURN m.id as id
        `
		params := map[string]interface{}{
			"id":        memberID,
			"role":      string(role),
			"updatedAt": time.Now().Format(time.RFC3339),
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrMemberNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to update member role",
			zap.Error(err),
			zap.String("memberID", memberID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Member role updated successfully",
		zap.String("memberID", memberID),
		zap.String("oldRole", string(old.Role)),
		zap.String("newRole", string(role)),
		zap.Duration("duration", duration))

	updated := *old
	updated.Role = role
	updated.UpdatedAt = time.Now()

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "UPDATE_MEMBER_ROLE",
		ResourceType:   "member",
		ResourceID:     memberID,
		Details: map[string]any{
			"old_role": string(old.Role),
			"new_role": string(role),
		},
	}))

	return &updated, nil
}

// AttachPermissionSet links a member to a permission set, replacing any
// previous attachment.
func (dao *MemberDAO) AttachPermissionSet(ctx context.Context, memberID, setID string) error {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetMember(ctx, memberID)
	if err != nil {
		return err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $memberID})
        MATCH (p:` + sd_neo4j.LabelPermissionSet + ` {id: $setID})
        OPTIONAL MATCH (m)-[r:` + sd_neo4j.RelHasPermissionSet + `]->()
        DELETE r
        MERGE (m)-[:` + sd_neo4j.RelHasPermissionSet + `]->(p)
        SET m.updatedAt = $updatedAt
        RETURN m.id as id
        `
		params := map[string]interface{}{
			"memberID":  memberID,
			"setID":     setID,
			"updatedAt": time.Now().Format(time.RFC3339),
		}
		result, err := transaction.Run(query, params)
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			return result.Record().Values[0], nil
		}
		return nil, sd_errors.ErrPermissionSetNotFound
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to attach permission set",
			zap.Error(err),
			zap.String("memberID", memberID),
			zap.String("setID", setID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Permission set attached successfully",
		zap.String("memberID", memberID),
		zap.String("setID", setID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "ATTACH_PERMISSION_SET",
		ResourceType:   "member",
		ResourceID:     memberID,
		Details: map[string]any{
			"old_permission_set_id": old.PermissionSetID,
			"new_permission_set_id": setID,
		},
	}))

	return nil
}

// DeleteMember removes a member from their organization.
func (dao *MemberDAO) DeleteMember(ctx context.Context, memberID string) error {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetMember(ctx, memberID)
	if err != nil {
		return err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (m:` + sd_neo4j.LabelMember + ` {id: $id})
        DETACH DELETE m
        `
		_, err := transaction.Run(query, map[string]interface{}{"id": memberID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete member",
			zap.Error(err),
			zap.String("memberID", memberID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Member deleted successfully",
		zap.String("memberID", memberID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "DELETE_MEMBER",
		ResourceType:   "member",
		ResourceID:     memberID,
		Details:        changeDetails(old, nil),
	}))

	return nil
}

func parseMemberNode(props map[string]interface{}) *model.OrganizationMember {
	member := &model.OrganizationMember{}
	member.ID, _ = props["id"].(string)
	member.UserID, _ = props["userId"].(string)
	member.OrganizationID, _ = props["organizationId"].(string)
	member.Name, _ = props["name"].(string)
	member.Email, _ = props["email"].(string)
	member.Title, _ = props["title"].(string)
	member.Phone, _ = props["phone"].(string)
	member.AvatarURL, _ = props["avatarUrl"].(string)
	if rate, ok := props["hourlyRate"].(float64); ok {
		member.HourlyRate = rate
	}
	if role, ok := props["role"].(string); ok {
		if parsed, err := authz.ParseRole(role); err == nil {
			member.Role = parsed
		}
	}
	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			member.CreatedAt = t
		}
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			member.UpdatedAt = t
		}
	}
	return member
}
