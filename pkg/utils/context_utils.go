package utils

import (
	"context"

	"medical-inventory/internal/authz"
	"medical-inventory/internal/session"
	"medical-inventory/pkg/contextkeys"
	apperrors "medical-inventory/pkg/errors"
)

func GetSessionFromContext(ctx context.Context) (*session.Session, error) {
	sess, ok := ctx.Value(contextkeys.SessionKey).(*session.Session)
	if !ok || sess == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return sess, nil
}

// HasPermission проверяет право по роли текущей сессии.
func HasPermission(ctx context.Context, permission string) bool {
	sess, err := GetSessionFromContext(ctx)
	if err != nil {
		return false
	}
	return authz.Can(sess.Role, permission)
}
