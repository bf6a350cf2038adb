package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/logger"
)

const MongoTravelPlansCollection = "travel_plans"

// mongoSavedPlan はMongoDBに保存するドキュメントの形
type mongoSavedPlan struct {
	ID          string           `bson:"_id"`
	UserID      string           `bson:"user_id"`
	Title       string           `bson:"title"`
	Destination string           `bson:"destination"`
	StartDate   string           `bson:"start_date"`
	EndDate     string           `bson:"end_date"`
	Plan        model.TravelPlan `bson:"plan"`
	CreatedAt   time.Time        `bson:"created_at"`
	UpdatedAt   time.Time        `bson:"updated_at"`
}

func toMongoSavedPlan(p *model.SavedPlan) *mongoSavedPlan {
	return &mongoSavedPlan{
		ID:          p.ID,
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

func (d *mongoSavedPlan) toSavedPlan() model.SavedPlan {
	return model.SavedPlan{
		ID:          d.ID,
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

// MongoTravelPlanRepository MongoDBを使用した保存済みプランリポジトリ
type MongoTravelPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoTravelPlanRepository 新しいMongoTravelPlanRepositoryインスタンスを作成
func NewMongoTravelPlanRepository(collection *mongo.Collection) *MongoTravelPlanRepository {
	return &MongoTravelPlanRepository{
		collection: collection,
	}
}

var _ repository.TravelPlanRepository = (*MongoTravelPlanRepository)(nil)

// EnsureIndexes はユーザー別一覧用のインデックスを作成する
func (r *MongoTravelPlanRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("インデックスの作成に失敗しました: %w", err)
	}
	return nil
}

func (r *MongoTravelPlanRepository) Save(ctx context.Context, plan *model.SavedPlan) error {
	if _, err := r.collection.InsertOne(ctx, toMongoSavedPlan(plan)); err != nil {
		logger.GetLogger().Errorw("❌ プランの保存に失敗", "plan_id", plan.ID, "error", err)
		return fmt.Errorf("プランの保存に失敗しました: %w", err)
	}
	logger.GetLogger().Infow("💾 プランを保存しました", "plan_id", plan.ID)
	return nil
}

func (r *MongoTravelPlanRepository) GetByID(ctx context.Context, id string) (*model.SavedPlan, error) {
	var doc mongoSavedPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, model.ErrPlanNotFound
		}
		return nil, fmt.Errorf("プランの取得に失敗しました: %w", err)
	}
	plan := doc.toSavedPlan()
	return &plan, nil
}

func (r *MongoTravelPlanRepository) ListByUser(ctx context.Context, userID string) ([]model.SavedPlan, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
	}
	defer cursor.Close(ctx)

	plans := []model.SavedPlan{}
	for cursor.Next(ctx) {
		var doc mongoSavedPlan
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
		}
		plans = append(plans, doc.toSavedPlan())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("プラン一覧の取得に失敗しました: %w", err)
	}
	return plans, nil
}

func (r *MongoTravelPlanRepository) UpdateByID(ctx context.Context, plan *model.SavedPlan) error {
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID}, toMongoSavedPlan(plan))
	if err != nil {
		return fmt.Errorf("プランの更新に失敗しました: %w", err)
	}
	if result.MatchedCount == 0 {
		return model.ErrPlanNotFound
	}
	logger.GetLogger().Infow("💾 プランを更新しました", "plan_id", plan.ID)
	return nil
}

func (r *MongoTravelPlanRepository) DeleteByID(ctx context.Context, id string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("プランの削除に失敗しました: %w", err)
	}
	if result.DeletedCount == 0 {
		return model.ErrPlanNotFound
	}
	logger.GetLogger().Infow("🗑️ プランを削除しました", "plan_id", id)
	return nil
}
