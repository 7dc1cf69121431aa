package dao

import (
	"context"
	"encoding/json"
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

type PermissionSetDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewPermissionSetDAO(driver neo4j.Driver, auditService audit.Service) *PermissionSetDAO {
	dao := &PermissionSetDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for PermissionSet", zap.Error(err))
	}
	return dao
}

func (dao *PermissionSetDAO) EnsureUniqueConstraint(ctx context.Context) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_permission_set_id IF NOT EXISTS
        FOR (p:` + sd_neo4j.LabelPermissionSet + `) REQUIRE p.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	return err
}

func (dao *PermissionSetDAO) CreatePermissionSet(ctx context.Context, set model.PermissionSet) (string, error) {
	start := time.Now()
	logger.Info("Creating permission set",
		zap.String("name", set.Name),
		zap.String("orgID", set.OrganizationID))
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if set.ID == "" {
		set.ID = uuid.New().String()
	}
	matrixJSON, err := json.Marshal(set.Matrix)
	if err != nil {
		return "", fmt.Errorf("failed to marshal permission matrix: %w", err)
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})
        MERGE (p:` + sd_neo4j.LabelPermissionSet + ` {id: $id})
        ON CREATE SET p += $props
        MERGE (o)-[:` + sd_neo4j.RelOwns + `]->(p)
        RETURN p.id as id
        `
		params := map[string]interface{}{
			"id":    set.ID,
			"orgID": set.OrganizationID,
			"props": map[string]interface{}{
				"name":           set.Name,
				"description":    set.Description,
				"organizationId": set.OrganizationID,
				"matrix":         string(matrixJSON),
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
		logger.Error("Failed to create permission set",
			zap.Error(err),
			zap.String("name", set.Name),
			zap.Duration("duration", duration))
		return "", err
	}

	setID := fmt.Sprintf("%v", result)
	logger.Info("Permission set created successfully",
		zap.String("setID", setID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: set.OrganizationID,
		Action:         "CREATE_PERMISSION_SET",
		ResourceType:   "permission_set",
		ResourceID:     setID,
		Details:        changeDetails(nil, set),
	}))

	return setID, nil
}

func (dao *PermissionSetDAO) UpdatePermissionSet(ctx context.Context, set model.PermissionSet) (*model.PermissionSet, error) {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetPermissionSet(ctx, set.ID)
	if err != nil {
		return nil, err
	}

	matrixJSON, err := json.Marshal(set.Matrix)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal permission matrix: %w", err)
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelPermissionSet + ` {id: $id})
        SET p.name = $name,
            p.description = $description,
            p.matrix = $matrix,
            p.updatedAt = $updatedAt
        RETURN p.id as id
        `
		params := map[string]interface{}{
			"id":          set.ID,
			"name":        set.Name,
			"description": set.Description,
			"matrix":      string(matrixJSON),
			"updatedAt":   time.Now().Format(time.RFC3339),
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
		logger.Error("Failed to update permission set",
			zap.Error(err),
			zap.String("setID", set.ID),
			zap.Duration("duration", duration))
		return nil, err
	}

	logger.Info("Permission set updated successfully",
		zap.String("setID", set.ID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "UPDATE_PERMISSION_SET",
		ResourceType:   "permission_set",
		ResourceID:     set.ID,
		Details:        changeDetails(old, set),
	}))

	updated := set
	updated.OrganizationID = old.OrganizationID
	updated.CreatedAt = old.CreatedAt
	updated.UpdatedAt = time.Now()
	return &updated, nil
}

func (dao *PermissionSetDAO) GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (p:` + sd_neo4j.LabelPermissionSet + ` {id: $id})
        RETURN p
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": setID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		if result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			return parsePermissionSetNode(node.Props)
		}
		return nil, sd_errors.ErrPermissionSetNotFound
	})
	if err != nil {
		return nil, err
	}
	return result.(*model.PermissionSet), nil
}

func (dao *PermissionSetDAO) ListPermissionSets(ctx context.Context, organizationID string, limit, offset int) ([]*model.PermissionSet, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	result, err := session.ReadTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (o:` + sd_neo4j.LabelOrganization + ` {id: $orgID})-[:` + sd_neo4j.RelOwns + `]->(p:` + sd_neo4j.LabelPermissionSet + `)
        RETURN p
        ORDER BY p.name
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

		var sets []*model.PermissionSet
		for result.Next() {
			node := result.Record().Values[0].(neo4j.Node)
			set, err := parsePermissionSetNode(node.Props)
			if err != nil {
				return nil, err
			}
			sets = append(sets, set)
		}
		return sets, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]*model.PermissionSet), nil
}

func (dao *PermissionSetDAO) DeletePermissionSet(ctx context.Context, setID string) error {
	start := time.Now()
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	old, err := dao.GetPermissionSet(ctx, setID)
	if err != nil {
		return err
	}

	_, err = session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		// Members referencing the set fall back to their role defaults.
		query := `
        MATCH (p:` + sd_neo4j.LabelPermissionSet + ` {id: $id})
        DETACH DELETE p
        `
		_, err := transaction.Run(query, map[string]interface{}{"id": setID})
		if err != nil {
			return nil, sd_errors.ErrDatabaseOperation
		}
		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to delete permission set",
			zap.Error(err),
			zap.String("setID", setID),
			zap.Duration("duration", duration))
		return err
	}

	logger.Info("Permission set deleted successfully",
		zap.String("setID", setID),
		zap.Duration("duration", duration))

	recordAudit(ctx, dao.AuditService, audit.NewEntry(audit.Params{
		UserID:         requestingUserID(ctx),
		OrganizationID: old.OrganizationID,
		Action:         "DELETE_PERMISSION_SET",
		ResourceType:   "permission_set",
		ResourceID:     setID,
		Details:        changeDetails(old, nil),
	}))

	return nil
}

func parsePermissionSetNode(props map[string]interface{}) (*model.PermissionSet, error) {
	set := &model.PermissionSet{}
	set.ID, _ = props["id"].(string)
	set.Name, _ = props["name"].(string)
	set.Description, _ = props["description"].(string)
	set.OrganizationID, _ = props["organizationId"].(string)

	if raw, ok := props["matrix"].(string); ok && raw != "" {
		var matrix authz.PermissionMatrix
		if err := json.Unmarshal([]byte(raw), &matrix); err != nil {
			return nil, fmt.Errorf("failed to unmarshal permission matrix: %w", err)
		}
		set.Matrix = matrix
	}

	if createdAt, ok := props["createdAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			set.CreatedAt = t
		}
	}
	if updatedAt, ok := props["updatedAt"].(string); ok {
		if t, err := time.Parse(time.RFC3339, updatedAt); err == nil {
			set.UpdatedAt = t
		}
	}
	return set, nil
}
