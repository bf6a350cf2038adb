package repository

import (
	"context"

	"TravelPlanner-App/internal/domain/model"
)

// TravelPlanRepository は保存済み旅行プランの永続化を担当する
type TravelPlanRepository interface {
	Save(ctx context.Context, plan *model.SavedPlan) error
	GetByID(ctx context.Context, id string) (*model.SavedPlan, error)
	// ListByUser は作成日時の新しい順でユーザーのプランを返す
	ListByUser(ctx context.Context, userID string) ([]model.SavedPlan, error)
	UpdateByID(ctx context.Context, plan *model.SavedPlan) error
	DeleteByID(ctx context.Context, id string) error
}
