package repository

import (
	"context"

	"TravelPlanner-App/internal/domain/model"
)

// ModelGateway は外部の生成モデルとの通信を担当するインターフェース
type ModelGateway interface {
	// Complete はプロンプトを送信し、モデルが返した生テキストを返す
	Complete(ctx context.Context, prompt string) (string, error)
}

// PlanGenerationRepository は生成モデルを使った旅行プラン生成の責務を持つリポジトリインターフェース
type PlanGenerationRepository interface {
	// GeneratePlan はプロンプト構築からレスポンス修復までを行いプランを返す
	GeneratePlan(ctx context.Context, in *model.NormalizedInput) (*model.TravelPlan, error)
}
