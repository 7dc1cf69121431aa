package util

import (
	"context"

	"github.com/sprintdeck/api/db"
	"github.com/sprintdeck/api/model"
)

type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetMember(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	return db.GetCachedMember(ctx, memberID)
}

func (c *CacheService) SetMember(ctx context.Context, member model.OrganizationMember) error {
	return db.CacheMember(ctx, &member)
}

func (c *CacheService) DeleteMember(ctx context.Context, memberID string) error {
	return db.DeleteCachedMember(ctx, memberID)
}

func (c *CacheService) GetPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	return db.GetCachedPermissionSet(ctx, setID)
}

func (c *CacheService) SetPermissionSet(ctx context.Context, set model.PermissionSet) error {
	return db.CachePermissionSet(ctx, &set)
}

func (c *CacheService) DeletePermissionSet(ctx context.Context, setID string) error {
	return db.DeleteCachedPermissionSet(ctx, setID)
}
