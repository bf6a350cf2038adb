package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPlanner-App/internal/domain/catalog"
	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/service"
	"TravelPlanner-App/internal/logger"
)

func init() {
	logger.IsTest = true
}

// fakePlanGenerationRepository はテスト用のPlanGenerationRepository
type fakePlanGenerationRepository struct {
	plan  *model.TravelPlan
	err   error
	calls int
	wait  bool
}

func (f *fakePlanGenerationRepository) GeneratePlan(ctx context.Context, in *model.NormalizedInput) (*model.TravelPlan, error) {
	f.calls++
	if f.wait {
		<-ctx.Done()
		return nil, &model.GatewayError{Err: ctx.Err()}
	}
	return f.plan, f.err
}

func newTravelPlanUseCase(repo *fakePlanGenerationRepository, timeout time.Duration) TravelPlanUseCase {
	cat := catalog.Default()
	if repo == nil {
		return NewTravelPlanUseCase(nil, service.NewFallbackGenerator(cat), service.NewSafetyNotesResolver(cat), timeout)
	}
	return NewTravelPlanUseCase(repo, service.NewFallbackGenerator(cat), service.NewSafetyNotesResolver(cat), timeout)
}

func jaipurTrip() *model.TripRequest {
	return &model.TripRequest{
		Destination: "Jaipur, India",
		StartDate:   "2026-03-27",
		EndDate:     "2026-03-29",
		Budget:      json.Number("15000"),
		TravelStyle: model.TravelStyleBalanced,
	}
}

func TestTravelPlanUseCase_ValidationError(t *testing.T) {
	repo := &fakePlanGenerationRepository{}
	uc := newTravelPlanUseCase(repo, time.Second)

	req := jaipurTrip()
	req.Destination = ""
	plan, err := uc.GeneratePlan(context.Background(), req)

	assert.Nil(t, plan)
	var validationErr *model.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Contains(t, validationErr.Errors, "Destination is required")
	assert.Equal(t, 0, repo.calls, "検証エラー時は生成モデルを呼ばない")
}

func TestTravelPlanUseCase_AISuccessMergesSafetyNotes(t *testing.T) {
	repo := &fakePlanGenerationRepository{plan: &model.TravelPlan{
		TripOverview:    model.TripOverview{Destination: "Jaipur"},
		BudgetBreakdown: map[string]model.BudgetItem{model.BudgetFood: {Amount: 4000, Description: "Thalis"}},
		DailyItinerary:  []model.DayPlan{{Day: 1, Activities: []string{"Amber Fort"}}},
		SafetyNotes:     "Carry water.",
	}}
	uc := newTravelPlanUseCase(repo, time.Second)

	plan, err := uc.GeneratePlan(context.Background(), jaipurTrip())

	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.Equal(t, "Jaipur", plan.TripOverview.Destination)
	assert.Equal(t, 3, plan.TripOverview.Duration, "省略された項目は入力値で補う")
	assert.Equal(t, "INR", plan.TripOverview.Currency)
	assert.True(t, strings.HasPrefix(plan.SafetyNotes, "Carry water.\n\n"))
	assert.Contains(t, plan.SafetyNotes, "Emergency contacts for India:")
}

func TestTravelPlanUseCase_FallbackOnFailure(t *testing.T) {
	tests := []struct {
		name string
		repo *fakePlanGenerationRepository
	}{
		{"ゲートウェイエラー", &fakePlanGenerationRepository{err: &model.GatewayError{StatusCode: 429, Err: errors.New("quota")}}},
		{"不正な応答", &fakePlanGenerationRepository{err: model.ErrMalformedResponse}},
		{"タイムアウト", &fakePlanGenerationRepository{wait: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTravelPlanUseCase(tt.repo, 20*time.Millisecond)

			plan, err := uc.GeneratePlan(context.Background(), jaipurTrip())

			require.NoError(t, err)
			assert.Equal(t, 1, tt.repo.calls, "再試行しない")
			require.Len(t, plan.DailyItinerary, 3)
			assert.Equal(t, 6000.0, plan.BudgetBreakdown[model.BudgetAccommodation].Amount)
			assert.Contains(t, plan.SafetyNotes, "Emergency contacts for India:")
			assert.False(t, strings.HasPrefix(plan.SafetyNotes, "\n"))
		})
	}
}

func TestTravelPlanUseCase_NoModelConfigured(t *testing.T) {
	uc := newTravelPlanUseCase(nil, time.Second)

	plan, err := uc.GeneratePlan(context.Background(), jaipurTrip())

	require.NoError(t, err)
	assert.Len(t, plan.DailyItinerary, 3)
	assert.NotEmpty(t, plan.SafetyNotes)
}

func TestTravelPlanUseCase_SafetyNotes(t *testing.T) {
	uc := newTravelPlanUseCase(nil, time.Second)

	notes := uc.SafetyNotes("Tokyo", model.TravelTypeSolo)

	assert.Contains(t, notes, "Emergency contacts for Japan:")
	assert.Contains(t, notes, "Solo traveller tips:")
}
