package dao

import (
	"context"
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

type OrganizationDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewOrganizationDAO(driver neo4j.Driver, auditService audit.Service) *OrganizationDAO {
	dao := &OrganizationDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Organization", zap.Error(err))
	}
	return dao
}

func (dao *OrganizationDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_organization_id IF NOT EXISTS
        FOR (o:` + sd_neo4j.LabelOrganization + `) REQUIRE o.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

// CreateOrganization creates the organization together with its owner
// member in one transaction, so a tenant never exists without an owner.
func (dao *OrganizationDAO) CreateOrganization(ctx context.Context, org model.Organization, owner model.OrganizationMember) (string, error) {
	start := time.Now()
	logger.Info("Creating organization", zap.String("name", org.Name))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if org.ID == "" {
		org.ID = uuid.New().String()
	}
	if owner.ID == "" {
		owner.ID = uuid.New().String()
	}
	owner.Role = authz.RoleOwner
	owner.OrganizationID = org.ID

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MERGE (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        ON CREATE SET o += $orgProps
        MERGE (m:` + sd_neo4j.LabelMember + ` {id: $ownerID})
        ON CREATE SET m += $ownerProps
        MERGE (m)-[:` + sd_neo4j.RelMemberOf + `]->(o)
        RETURN o.id as id
        `
		params := map[string]interface{}{
			"orgID": org.ID,
			"orgProps": map[string]interface{}{
				"name":      org.Name,
				"logoUrl":   org.LogoURL,
				"createdAt": time.Now().Format(time.RFC3339),
				"updatedAt": time.Now().Format(time.RFC3339),
			},
			"ownerID": owner.ID,
			"ownerProps": map[string]interface{}{
				"userId":         owner.UserID,
				"organizationId": org.ID,
				"role":           string(owner.Role),
				"name":           owner.Name,
				"email":          owner.Email,
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
		return nil, sd_errors.ErrOrganizationConflict
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to create organization",
			zap.Error(err),
			zap.String("name", org.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	logger.Info("Organization created successfully",
		zap.String("orgID", org.ID),
		zap.String("ownerID", owner.ID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: org.ID,
		Action:         "CREATE_ORGANIZATION",
		ResourceType:   "organization",
		ResourceID:     org.ID,
		Details:        changeDetails(nil, org),
	}))

	return org.ID, nil
}

func (dao *OrganizationDAO) GetOrganization(ctx context.Context, organizationID string) (*model.Organization, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $id})
        RETURN o
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": organizationID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			return parseOrganizationNode(node.Props), nil
		}
		return nil, sd_errors.ErrOrganizationNotFound
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.Organization), nil
}

func (dao *OrganizationDAO) UpdateOrganization(ctx context.Context, org model.Organization) (*model.Organization, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetOrganization(ctx, org.ID)
	if err != nil {
		return nil, err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $id})
        SET o.name = $name,
            o.logoUrl = $logoUrl,
            o.updatedAt = $updatedAt
        RETURN o.id as id
        `
		params := map[string]interface{}{
			"id":        org.ID,
			"name":      org.Name,
			"logoUrl":   org.LogoURL,
			"updatedAt": time.Now().Format(time.RFC3339),
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
		logger.Error("Failed to update organization",
			zap.Error(err),
			zap.String("orgID", org.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Organization updated successfully",
		zap.String("orgID", org.ID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: org.ID,
		Action:         "UPDATE_ORGANIZATION",
		ResourceType:   "organization",
		ResourceID:     org.ID,
		Details:        changeDetails(old, org),
	}))

	updated := org
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = time.Now()
	return &updated, nil
}

func parseOrganizationNode(props map[string]interface{}) *model.Organization {
	org := &model.Organization{}
	org.ID, _ = props["id"].(string)
	org.Name, _ = props["name"].(string)
	org.LogoURL, _ = props["logoUrl"].(string)

	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			org.CreatedAt = t
		}
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			org.UpdatedAt = t
		}
	}
	return org
}
