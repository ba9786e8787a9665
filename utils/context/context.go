package context

import (
	"context"

	"github.com/muhammadheryan/marketplace/constant"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetUserRole(ctx context.Context) (constant.Role, bool) {
	v := ctx.Value(constant.UserRoleKey)
	if v == nil {
		return "", false
	}
	role, ok := v.(constant.Role)
	return role, ok
}

func SetUser(ctx context.Context, userID uint64, role constant.Role) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, userID)
	return context.WithValue(ctx, constant.UserRoleKey, role)
}
