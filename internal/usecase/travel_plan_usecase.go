package usecase

import (
	"context"
	"time"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/domain/service"
	"TravelPlanner-App/internal/logger"
)

type TravelPlanUseCase interface {
	// GeneratePlan はリクエストを検証し、生成モデルまたはフォールバックで旅行プランを作成する
	// 返すエラーは *model.ValidationError のみ
	GeneratePlan(ctx context.Context, req *model.TripRequest) (*model.TravelPlan, error)

	// SafetyNotes は目的地と旅行タイプに応じた安全情報を返す
	SafetyNotes(destination, travelType string) string
}

// travelPlanUseCaseImpl はTravelPlanUseCaseの実装
type travelPlanUseCaseImpl struct {
	planGenerationRepository repository.PlanGenerationRepository
	fallbackGenerator        service.FallbackGenerator
	safetyResolver           service.SafetyNotesResolver
	aiTimeout                time.Duration
}

// NewTravelPlanUseCase は新しいTravelPlanUseCaseインスタンスを作成
// planRepoがnilの場合は常にフォールバックで生成する
func NewTravelPlanUseCase(
	planRepo repository.PlanGenerationRepository,
	fallback service.FallbackGenerator,
	safety service.SafetyNotesResolver,
	aiTimeout time.Duration,
) TravelPlanUseCase {
	return &travelPlanUseCaseImpl{
		planGenerationRepository: planRepo,
		fallbackGenerator:        fallback,
		safetyResolver:           safety,
		aiTimeout:                aiTimeout,
	}
}

func (u *travelPlanUseCaseImpl) GeneratePlan(ctx context.Context, req *model.TripRequest) (*model.TravelPlan, error) {
	log := logger.GetLogger()

	// Step 1: 入力検証
	result := service.ValidateTripRequest(req)
	if !result.IsValid {
		log.Infow("⚠️ 旅行リクエストの検証に失敗", "errors", result.Errors)
		return nil, &model.ValidationError{Errors: result.Errors}
	}

	// Step 2: 正規化
	in := service.NormalizeTripRequest(req)
	log.Infow("🚀 旅行プラン生成開始", "destination", in.Destination, "duration", in.Duration, "style", in.TravelStyle)

	// Step 3: 生成モデル（失敗時はフォールバック）
	plan, source := u.generate(ctx, in)

	// Step 4: 安全情報のマージ
	safetyNotes := u.safetyResolver.Resolve(in.DisplayDestination, in.TravelType)
	if plan.SafetyNotes != "" {
		plan.SafetyNotes = plan.SafetyNotes + "\n\n" + safetyNotes
	} else {
		plan.SafetyNotes = safetyNotes
	}

	log.Infow("✅ 旅行プラン生成完了", "destination", in.Destination, "source", source, "days", len(plan.DailyItinerary))
	return plan, nil
}

func (u *travelPlanUseCaseImpl) SafetyNotes(destination, travelType string) string {
	return u.safetyResolver.Resolve(destination, travelType)
}

// generate は生成モデルを一度だけ呼び出し、失敗した場合はフォールバックを返す
func (u *travelPlanUseCaseImpl) generate(ctx context.Context, in *model.NormalizedInput) (*model.TravelPlan, string) {
	log := logger.GetLogger()

	if u.planGenerationRepository == nil {
		log.Info("📋 生成モデルが無効のためフォールバックで生成します")
		return u.fallbackGenerator.Generate(in), "fallback"
	}

	aiCtx, cancel := context.WithTimeout(ctx, u.aiTimeout)
	defer cancel()

	plan, err := u.planGenerationRepository.GeneratePlan(aiCtx, in)
	if err != nil {
		log.Warnw("❌ 生成モデルでのプラン生成に失敗。フォールバックに切り替えます", "error", err)
		return u.fallbackGenerator.Generate(in), "fallback"
	}

	completeOverview(plan, in)
	return plan, "ai"
}

// completeOverview はモデルが省略した概要項目と空のコレクションを入力値で補う
func completeOverview(plan *model.TravelPlan, in *model.NormalizedInput) {
	o := &plan.TripOverview
	if o.Destination == "" {
		o.Destination = in.DisplayDestination
	}
	if o.Duration == 0 {
		o.Duration = in.Duration
	}
	if o.StartDate == "" {
		o.StartDate = in.StartDate
	}
	if o.EndDate == "" {
		o.EndDate = in.EndDate
	}
	if o.TravelStyle == "" {
		o.TravelStyle = in.TravelStyle
	}
	if o.TravelType == "" {
		o.TravelType = in.TravelType
	}
	if o.TotalBudget == 0 {
		o.TotalBudget = in.Budget
	}
	if o.Currency == "" {
		o.Currency = in.Currency
	}
	if o.Highlights == nil {
		o.Highlights = []string{}
	}
	if plan.BudgetBreakdown == nil {
		plan.BudgetBreakdown = map[string]model.BudgetItem{}
	}
	if plan.DailyItinerary == nil {
		plan.DailyItinerary = []model.DayPlan{}
	}
}
