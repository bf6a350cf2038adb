package repository

import (
	"context"

	"TravelPlanner-App/internal/domain/model"
)

// UserRepository はユーザー情報の永続化を担当する
type UserRepository interface {
	// Create はメールアドレスが既に登録済みの場合 model.ErrEmailAlreadyExists を返す
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}
