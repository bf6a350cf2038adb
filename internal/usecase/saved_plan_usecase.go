package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/logger"
)

type SavedPlanUseCase interface {
	// SavePlan はユーザーの旅行プランを保存する
	SavePlan(ctx context.Context, userID string, req *model.SavePlanRequest) (*model.SavedPlan, error)

	// ListPlans はユーザーの保存済みプランを新しい順に返す
	ListPlans(ctx context.Context, userID string) ([]model.SavedPlan, error)

	// UpdatePlan は所有者のみがプランを部分更新できる
	UpdatePlan(ctx context.Context, userID, planID string, patch *model.PlanPatch) (*model.SavedPlan, error)

	// DeletePlan は所有者のみがプランを削除できる
	DeletePlan(ctx context.Context, userID, planID string) error
}

// savedPlanUseCaseImpl はSavedPlanUseCaseの実装
type savedPlanUseCaseImpl struct {
	travelPlanRepository repository.TravelPlanRepository
	now                  func() time.Time
}

// NewSavedPlanUseCase は新しいSavedPlanUseCaseインスタンスを作成
func NewSavedPlanUseCase(planRepo repository.TravelPlanRepository) SavedPlanUseCase {
	return &savedPlanUseCaseImpl{
		travelPlanRepository: planRepo,
		now:                  time.Now,
	}
}

func (u *savedPlanUseCaseImpl) SavePlan(ctx context.Context, userID string, req *model.SavePlanRequest) (*model.SavedPlan, error) {
	if req.Plan == nil {
		return nil, &model.ValidationError{Errors: []string{"Plan is required"}}
	}

	overview := req.Plan.TripOverview
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = defaultPlanTitle(overview)
	}

	now := u.now().UTC()
	plan := &model.SavedPlan{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Destination: overview.Destination,
		StartDate:   overview.StartDate,
		EndDate:     overview.EndDate,
		Plan:        *req.Plan,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := u.travelPlanRepository.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("プランの保存に失敗: %w", err)
	}
	logger.GetLogger().Infow("💾 旅行プランを保存", "plan_id", plan.ID, "user_id", userID)
	return plan, nil
}

func (u *savedPlanUseCaseImpl) ListPlans(ctx context.Context, userID string) ([]model.SavedPlan, error) {
	plans, err := u.travelPlanRepository.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗: %w", err)
	}
	return plans, nil
}

func (u *savedPlanUseCaseImpl) UpdatePlan(ctx context.Context, userID, planID string, patch *model.PlanPatch) (*model.SavedPlan, error) {
	if patch.IsEmpty() {
		return nil, &model.ValidationError{Errors: []string{"Nothing to update"}}
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, &model.ValidationError{Errors: []string{"Title must not be empty"}}
	}

	plan, err := u.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}

	patch.Apply(plan, u.now().UTC())
	if err := u.travelPlanRepository.UpdateByID(ctx, plan); err != nil {
		return nil, fmt.Errorf("プランの更新に失敗: %w", err)
	}
	return plan, nil
}

func (u *savedPlanUseCaseImpl) DeletePlan(ctx context.Context, userID, planID string) error {
	if _, err := u.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	if err := u.travelPlanRepository.DeleteByID(ctx, planID); err != nil {
		return fmt.Errorf("プランの削除に失敗: %w", err)
	}
	logger.GetLogger().Infow("🗑️ 旅行プランを削除", "plan_id", planID, "user_id", userID)
	return nil
}

// ownedPlan はプランを取得し、所有者を確認する
func (u *savedPlanUseCaseImpl) ownedPlan(ctx context.Context, userID, planID string) (*model.SavedPlan, error) {
	plan, err := u.travelPlanRepository.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, model.ErrPlanNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("プランの取得に失敗: %w", err)
	}
	if plan.UserID != userID {
		return nil, model.ErrPlanForbidden
	}
	return plan, nil
}

func defaultPlanTitle(o model.TripOverview) string {
	switch {
	case o.Destination != "" && o.StartDate != "":
		return fmt.Sprintf("%s (%s)", o.Destination, o.StartDate)
	case o.Destination != "":
		return o.Destination
	default:
		return "Untitled trip"
	}
}
