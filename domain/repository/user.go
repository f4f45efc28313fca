package repository

import (
	"context"

	"content-ops/domain/model"
)

// IUser provides dashboard account lookups for login and the auth middleware.
type IUser interface {
	GetById(ctx context.Context, id int) (model.User, error)
	GetByUserName(ctx context.Context, userName string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
}
