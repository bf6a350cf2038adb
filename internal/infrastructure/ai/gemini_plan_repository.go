package ai

import (
	"context"
	"fmt"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/domain/service"
	"TravelPlanner-App/internal/logger"
)

// geminiPlanRepository は生成モデルを使用してPlanGenerationRepositoryを実装
type geminiPlanRepository struct {
	gateway repository.ModelGateway
}

// NewGeminiPlanRepository は新しいgeminiPlanRepositoryインスタンスを作成
func NewGeminiPlanRepository(gateway repository.ModelGateway) repository.PlanGenerationRepository {
	return &geminiPlanRepository{
		gateway: gateway,
	}
}

// GeneratePlan はプロンプトを送信し、応答をTravelPlanに変換する
// 失敗時のフォールバックは呼び出し側の責務
func (g *geminiPlanRepository) GeneratePlan(ctx context.Context, in *model.NormalizedInput) (*model.TravelPlan, error) {
	log := logger.GetLogger()
	prompt := service.BuildTravelPlanPrompt(in)

	log.Infow("🤖 生成モデルで旅行プランを生成中...", "destination", in.Destination, "duration", in.Duration, "prompt_length", len(prompt))

	raw, err := g.gateway.Complete(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("生成モデルの呼び出しに失敗: %w", err)
	}

	plan, err := service.RepairTravelPlanResponse(raw)
	if err != nil {
		log.Warnw("⚠️ 生成モデルの応答をパースできませんでした", "error", err, "response_length", len(raw))
		return nil, err
	}

	log.Infow("✅ 旅行プラン生成完了", "destination", in.Destination, "days", len(plan.DailyItinerary))
	return plan, nil
}
