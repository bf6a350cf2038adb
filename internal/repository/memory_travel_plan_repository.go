package repository

import (
	"context"
	"sort"
	"sync"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
)

// MemoryTravelPlanRepository はプロセス内に保存済みプランを保持するリポジトリ
// 開発環境とテストで使用する
type MemoryTravelPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]model.SavedPlan
}

// NewMemoryTravelPlanRepository 新しいMemoryTravelPlanRepositoryインスタンスを作成
func NewMemoryTravelPlanRepository() *MemoryTravelPlanRepository {
	return &MemoryTravelPlanRepository{
		plans: make(map[string]model.SavedPlan),
	}
}

var _ repository.TravelPlanRepository = (*MemoryTravelPlanRepository)(nil)

func (r *MemoryTravelPlanRepository) Save(ctx context.Context, plan *model.SavedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.plans[plan.ID] = plan.Clone()
	return nil
}

func (r *MemoryTravelPlanRepository) GetByID(ctx context.Context, id string) (*model.SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[id]
	if !ok {
		return nil, model.ErrPlanNotFound
	}
	cloned := plan.Clone()
	return &cloned, nil
}

func (r *MemoryTravelPlanRepository) ListByUser(ctx context.Context, userID string) ([]model.SavedPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plans := []model.SavedPlan{}
	for _, plan := range r.plans {
		if plan.UserID == userID {
			plans = append(plans, plan.Clone())
		}
	}
	sortNewestFirst(plans)
	return plans, nil
}

func (r *MemoryTravelPlanRepository) UpdateByID(ctx context.Context, plan *model.SavedPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; !ok {
		return model.ErrPlanNotFound
	}
	r.plans[plan.ID] = plan.Clone()
	return nil
}

func (r *MemoryTravelPlanRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[id]; !ok {
		return model.ErrPlanNotFound
	}
	delete(r.plans, id)
	return nil
}

// sortNewestFirst は作成日時の新しい順に並べる（同時刻はID順）
func sortNewestFirst(plans []model.SavedPlan) {
	sort.SliceStable(plans, func(i, j int) bool {
		if plans[i].CreatedAt.Equal(plans[j].CreatedAt) {
			return plans[i].ID < plans[j].ID
		}
		return plans[i].CreatedAt.After(plans[j].CreatedAt)
	})
}
