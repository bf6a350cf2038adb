package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/logger"
)

const travelPlansCollection = "travelPlans"

// firestoreSavedPlan はFirestoreに保存するドキュメントの形
type firestoreSavedPlan struct {
	UserID      string           `firestore:"userId"`
	Title       string           `firestore:"title"`
	Destination string           `firestore:"destination"`
	StartDate   string           `firestore:"startDate"`
	EndDate     string           `firestore:"endDate"`
	Plan        model.TravelPlan `firestore:"plan"`
	CreatedAt   time.Time        `firestore:"createdAt"`
	UpdatedAt   time.Time        `firestore:"updatedAt"`
}

func toFirestoreSavedPlan(p *model.SavedPlan) *firestoreSavedPlan {
	return &firestoreSavedPlan{
		UserID:      p.UserID,
		Title:       p.Title,
		Destination: p.Destination,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Plan:        p.Plan,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (d *firestoreSavedPlan) toSavedPlan(id string) *model.SavedPlan {
	return &model.SavedPlan{
		ID:          id,
		UserID:      d.UserID,
		Title:       d.Title,
		Destination: d.Destination,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Plan:        d.Plan,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// FirestoreTravelPlanRepository Firestoreを使用した保存済みプランリポジトリ
type FirestoreTravelPlanRepository struct {
	client *firestore.Client
}

// NewFirestoreTravelPlanRepository 新しいFirestoreTravelPlanRepositoryインスタンスを作成
func NewFirestoreTravelPlanRepository(client *firestore.Client) *FirestoreTravelPlanRepository {
	return &FirestoreTravelPlanRepository{
		client: client,
	}
}

var _ repository.TravelPlanRepository = (*FirestoreTravelPlanRepository)(nil)

// Save は保存済みプランをFirestoreに保存する
func (r *FirestoreTravelPlanRepository) Save(ctx context.Context, plan *model.SavedPlan) error {
	_, err := r.client.Collection(travelPlansCollection).Doc(plan.ID).Set(ctx, toFirestoreSavedPlan(plan))
	if err != nil {
		logger.GetLogger().Errorw("❌ プランの保存に失敗", "plan_id", plan.ID, "error", err)
		return fmt.Errorf("プランの保存に失敗しました: %w", err)
	}
	logger.GetLogger().Infow("💾 プランを保存しました", "plan_id", plan.ID)
	return nil
}

// GetByID は指定されたIDのプランを取得する
func (r *FirestoreTravelPlanRepository) GetByID(ctx context.Context, id string) (*model.SavedPlan, error) {
	doc, err := r.client.Collection(travelPlansCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrPlanNotFound
		}
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}

	var data firestoreSavedPlan
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return data.toSavedPlan(doc.Ref.ID), nil
}

// ListByUser はユーザーのプランを作成日時の新しい順で返す
// 複合インデックスを不要にするため並び替えはアプリ側で行う
func (r *FirestoreTravelPlanRepository) ListByUser(ctx context.Context, userID string) ([]model.SavedPlan, error) {
	iter := r.client.Collection(travelPlansCollection).Where("userId", "==", userID).Documents(ctx)
	defer iter.Stop()

	plans := []model.SavedPlan{}
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
		}
		var data firestoreSavedPlan
		if err := doc.DataTo(&data); err != nil {
			return nil, fmt.Errorf("データの変換に失敗しました (%s): %w", doc.Ref.ID, err)
		}
		plans = append(plans, *data.toSavedPlan(doc.Ref.ID))
	}

	sortNewestFirst(plans)
	return plans, nil
}

// UpdateByID は既存のプランを上書きする
func (r *FirestoreTravelPlanRepository) UpdateByID(ctx context.Context, plan *model.SavedPlan) error {
	ref := r.client.Collection(travelPlansCollection).Doc(plan.ID)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			return err
		}
		return tx.Set(ref, toFirestoreSavedPlan(plan))
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.ErrPlanNotFound
		}
		return fmt.Errorf("プランの更新に失敗しました: %w", err)
	}
	logger.GetLogger().Infow("💾 プランを更新しました", "plan_id", plan.ID)
	return nil
}

// DeleteByID はプランを削除する
func (r *FirestoreTravelPlanRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.client.Collection(travelPlansCollection).Doc(id).Delete(ctx, firestore.Exists)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return model.ErrPlanNotFound
		}
		return fmt.Errorf("プランの削除に失敗しました: %w", err)
	}
	logger.GetLogger().Infow("🗑️ プランを削除しました", "plan_id", id)
	return nil
}
