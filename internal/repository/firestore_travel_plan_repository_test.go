package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/infrastructure/firestore"
	"TravelPlanner-App/internal/logger"
)

// FIRESTORE_EMULATOR_HOSTが設定されている場合のみ実行する
func TestFirestoreTravelPlanRepository_Integration(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOSTが設定されていないためスキップします")
	}
	logger.IsTest = true
	ctx := context.Background()

	fc, err := firestore.NewFirestoreClient(ctx, "travel-planner-test")
	require.NoError(t, err)
	defer fc.Close()

	repo := NewFirestoreTravelPlanRepository(fc.GetClient())
	userID := uuid.New().String()
	plan := newSavedPlan(uuid.New().String(), userID, time.Now().UTC())

	require.NoError(t, repo.Save(ctx, plan))
	got, err := repo.GetByID(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, plan.Title, got.Title)
	assert.Equal(t, 3, got.Plan.TripOverview.Duration)

	plans, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, plans, 1)

	require.NoError(t, repo.DeleteByID(ctx, plan.ID))
	_, err = repo.GetByID(ctx, plan.ID)
	assert.ErrorIs(t, err, model.ErrPlanNotFound)
	assert.ErrorIs(t, repo.UpdateByID(ctx, plan), model.ErrPlanNotFound)
}

func TestFirestoreUserRepository_Integration(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOSTが設定されていないためスキップします")
	}
	logger.IsTest = true
	ctx := context.Background()

	fc, err := firestore.NewFirestoreClient(ctx, "travel-planner-test")
	require.NoError(t, err)
	defer fc.Close()

	repo := NewFirestoreUserRepository(fc.GetClient())
	email := uuid.New().String() + "@example.com"
	user := &model.User{ID: uuid.New().String(), Name: "Test", Email: email, PasswordHash: "hash", CreatedAt: time.Now().UTC()}

	require.NoError(t, repo.Create(ctx, user))
	assert.ErrorIs(t, repo.Create(ctx, &model.User{ID: uuid.New().String(), Email: email}), model.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
}
