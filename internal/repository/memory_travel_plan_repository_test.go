package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPlanner-App/internal/domain/model"
)

func newSavedPlan(id, userID string, createdAt time.Time) *model.SavedPlan {
	return &model.SavedPlan{
		ID:          id,
		UserID:      userID,
		Title:       "Trip " + id,
		Destination: "Jaipur, India",
		StartDate:   "2026-03-27",
		EndDate:     "2026-03-29",
		Plan: model.TravelPlan{
			TripOverview:    model.TripOverview{Destination: "Jaipur, India", Duration: 3},
			BudgetBreakdown: map[string]model.BudgetItem{},
			DailyItinerary:  []model.DayPlan{},
		},
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestMemoryTravelPlanRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTravelPlanRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Save(ctx, newSavedPlan("p1", "u1", base)))
	require.NoError(t, repo.Save(ctx, newSavedPlan("p2", "u1", base.Add(time.Hour))))
	require.NoError(t, repo.Save(ctx, newSavedPlan("p3", "u2", base)))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Trip p1", got.Title)

	plans, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, "p2", plans[0].ID, "新しい順に並ぶ")
	assert.Equal(t, "p1", plans[1].ID)

	got.Title = "Renamed"
	require.NoError(t, repo.UpdateByID(ctx, got))
	updated, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	require.NoError(t, repo.DeleteByID(ctx, "p1"))
	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, model.ErrPlanNotFound)
}

func TestMemoryTravelPlanRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTravelPlanRepository()

	assert.ErrorIs(t, repo.UpdateByID(ctx, newSavedPlan("missing", "u1", time.Now())), model.ErrPlanNotFound)
	assert.ErrorIs(t, repo.DeleteByID(ctx, "missing"), model.ErrPlanNotFound)

	plans, err := repo.ListByUser(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, plans)
	assert.Empty(t, plans)
}

func TestMemoryTravelPlanRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTravelPlanRepository()
	require.NoError(t, repo.Save(ctx, newSavedPlan("p1", "u1", time.Now())))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Title = "changed without update"

	again, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "Trip p1", again.Title)
}

func TestMemoryTravelPlanRepository_DeepCopiesPlan(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryTravelPlanRepository()
	saved := newSavedPlan("p1", "u1", time.Now())
	saved.Plan.BudgetBreakdown[model.BudgetFood] = model.BudgetItem{Amount: 3750, Description: "Thalis"}
	saved.Plan.DailyItinerary = []model.DayPlan{{Day: 1, Activities: []string{"Amber Fort"}}}
	require.NoError(t, repo.Save(ctx, saved))

	// 保存後に呼び出し元の値を書き換えてもストアには影響しない
	saved.Plan.BudgetBreakdown[model.BudgetFood] = model.BudgetItem{Amount: 1}
	saved.Plan.DailyItinerary[0].Activities[0] = "changed"

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	got.Plan.BudgetBreakdown[model.BudgetTransport] = model.BudgetItem{Amount: 99}
	got.Plan.DailyItinerary[0].Activities[0] = "changed again"

	listed, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	plan := listed[0].Plan
	assert.Equal(t, 3750.0, plan.BudgetBreakdown[model.BudgetFood].Amount)
	assert.NotContains(t, plan.BudgetBreakdown, model.BudgetTransport)
	assert.Equal(t, "Amber Fort", plan.DailyItinerary[0].Activities[0])
}
