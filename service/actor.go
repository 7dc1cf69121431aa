package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sprintdeck/api/authz"
	sd_errors "github.com/sprintdeck/api/errors"
	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
)

// actorResolver builds the authz.Member view of the caller: the member
// record plus the matrix of the attached permission set, cache first,
// store on miss. Cache errors are treated as misses.
type actorResolver struct {
	members MemberStore
	sets    PermissionSetStore
	cache   Cache
}

func (r *actorResolver) member(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	if cached, err := r.cache.GetMember(ctx, memberID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn("Member cache read failed", zap.String("memberID", memberID), zap.Error(err))
	}

	member, err := r.members.GetMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetMember(ctx, *member); err != nil {
		logger.Warn("Member cache write failed", zap.String("memberID", memberID), zap.Error(err))
	}
	return member, nil
}

func (r *actorResolver) permissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	if cached, err := r.cache.GetPermissionSet(ctx, setID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Warn("Permission set cache read failed", zap.String("setID", setID), zap.Error(err))
	}

	set, err := r.sets.GetPermissionSet(ctx, setID)
	if err != nil {
		return nil, err
	}
	if err := r.cache.SetPermissionSet(ctx, *set); err != nil {
		logger.Warn("Permission set cache write failed", zap.String("setID", setID), zap.Error(err))
	}
	return set, nil
}

// resolve returns the acting member's record together with its
// authorization view. A missing actor or a dangling permission set
// reference denies the request rather than failing open.
func (r *actorResolver) resolve(ctx context.Context, actorID string) (*model.OrganizationMember, authz.Member, error) {
	member, err := r.member(ctx, actorID)
	if err != nil {
		logger.Error("Failed to resolve acting member", zap.String("actorID", actorID), zap.Error(err))
		return nil, authz.Member{}, sd_errors.ErrForbidden
	}

	actor := authz.Member{Role: member.Role}
	if member.PermissionSetID != "" {
		set, err := r.permissionSet(ctx, member.PermissionSetID)
		if err != nil {
			logger.Error("Failed to resolve attached permission set",
				zap.String("actorID", actorID),
				zap.String("setID", member.PermissionSetID),
				zap.Error(err))
			return nil, authz.Member{}, sd_errors.ErrForbidden
		}
		matrix := set.Matrix
		actor.Matrix = &matrix
	}
	return member, actor, nil
}
