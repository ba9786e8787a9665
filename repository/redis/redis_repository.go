package redis

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	redisclient "github.com/muhammadheryan/marketplace/cmd/redis"
	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

// Repository covers the two Redis concerns of this service: auth sessions
// (jti -> user id + role) and the product detail cache. All methods are
// no-ops when the client is not configured, so tests and local runs work
// without Redis.
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, role constant.Role, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, constant.Role, error)
	DeleteSession(ctx context.Context, sessionID string) error
	CacheProduct(ctx context.Context, p *model.ProductEntity, ttl time.Duration) error
	GetCachedProduct(ctx context.Context, productID uint64) (*model.ProductEntity, error)
	InvalidateProduct(ctx context.Context, productID uint64) error
}

type redis struct{}

// NewRepository returns a Redis Repository implementation
func NewRepository() Repository {
	return &redis{}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

func productKey(productID uint64) string {
	return "product:" + strconv.FormatUint(productID, 10)
}

func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, role constant.Role, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	value := strconv.FormatUint(userID, 10) + ":" + string(role)
	return client.Set(ctx, sessionKey(sessionID), value, ttl).Err()
}

func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, constant.Role, error) {
	client := redisclient.Get()
	if client == nil {
		return 0, "", nil
	}
	val, err := client.Get(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return 0, "", err
	}
	idStr, roleStr, found := splitSessionValue(val)
	if !found {
		return 0, "", errInvalidSession
	}
	userID, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil {
		return 0, "", errInvalidSession
	}
	return userID, constant.Role(roleStr), nil
}

func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, sessionKey(sessionID)).Err()
}

func (r *redis) CacheProduct(ctx context.Context, p *model.ProductEntity, ttl time.Duration) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return client.Set(ctx, productKey(p.ID), raw, ttl).Err()
}

func (r *redis) GetCachedProduct(ctx context.Context, productID uint64) (*model.ProductEntity, error) {
	client := redisclient.Get()
	if client == nil {
		return nil, nil
	}
	raw, err := client.Get(ctx, productKey(productID)).Bytes()
	if err != nil {
		return nil, err
	}
	var p model.ProductEntity
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *redis) InvalidateProduct(ctx context.Context, productID uint64) error {
	client := redisclient.Get()
	if client == nil {
		return nil
	}
	return client.Del(ctx, productKey(productID)).Err()
}

type sessionError string

func (e sessionError) Error() string { return string(e) }

const errInvalidSession = sessionError("malformed session value")

func splitSessionValue(val string) (id, role string, ok bool) {
	for i := 0; i < len(val); i++ {
		if val[i] == ':' {
			return val[:i], val[i+1:], true
		}
	}
	return "", "", false
}
