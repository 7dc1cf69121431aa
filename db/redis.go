package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/sprintdeck/api/logging"
	"github.com/sprintdeck/api/model"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		} else {
			logger.Info("Redis connection closed successfully")
		}
	}
}

func cacheTTL() time.Duration {
	ttl := viper.GetDuration("redis.defaultCacheTTL")
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return ttl
}

// CachePermissionSet stores a permission set under its id.
func CachePermissionSet(ctx context.Context, set *model.PermissionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal permission set: %w", err)
	}
	key := fmt.Sprintf("permissionset:%s", set.ID)
	if err := RedisClient.Set(ctx, key, data, cacheTTL()).Err(); err != nil {
		return fmt.Errorf("failed to cache permission set: %w", err)
	}
	return nil
}

// GetCachedPermissionSet returns the cached permission set or nil on a miss.
func GetCachedPermissionSet(ctx context.Context, setID string) (*model.PermissionSet, error) {
	key := fmt.Sprintf("permissionset:%s", setID)
	data, err := RedisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached permission set: %w", err)
	}
	var set model.PermissionSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached permission set: %w", err)
	}
	return &set, nil
}

func DeleteCachedPermissionSet(ctx context.Context, setID string) error {
	key := fmt.Sprintf("permissionset:%s", setID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached permission set: %w", err)
	}
	return nil
}

// CacheMember stores an organization member under its id.
func CacheMember(ctx context.Context, member *model.OrganizationMember) error {
	data, err := json.Marshal(member)
	if err != nil {
		return fmt.Errorf("failed to marshal member: %w", err)
	}
	key := fmt.Sprintf("member:%s", member.ID)
	if err := RedisClient.Set(ctx, key, data, cacheTTL()).Err(); err != nil {
		return fmt.Errorf("failed to cache member: %w", err)
	}
	return nil
}

// GetCachedMember returns the cached member or nil on a miss.
func GetCachedMember(ctx context.Context, memberID string) (*model.OrganizationMember, error) {
	key := fmt.Sprintf("member:%s", memberID)
	data, err := RedisClient.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached member: %w", err)
	}
	var member model.OrganizationMember
	if err := json.Unmarshal(data, &member); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached member: %w", err)
	}
	return &member, nil
}

func DeleteCachedMember(ctx context.Context, memberID string) error {
	key := fmt.Sprintf("member:%s", memberID)
	if err := RedisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete cached member: %w", err)
	}
	return nil
}
