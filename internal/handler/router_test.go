package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"TravelPlanner-App/internal/auth"
	"TravelPlanner-App/internal/domain/catalog"
	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/service"
	"TravelPlanner-App/internal/logger"
	"TravelPlanner-App/internal/middleware"
	"TravelPlanner-App/internal/repository"
	"TravelPlanner-App/internal/usecase"
)

func init() {
	logger.IsTest = true
	gin.SetMode(gin.TestMode)
}

// newTestRouter はインメモリのストアとフォールバック生成で構成したルーターを返す
func newTestRouter(t *testing.T, limiter *middleware.RateLimiter) *gin.Engine {
	t.Helper()
	cat := catalog.Default()
	tokens := auth.NewTokenManager("0123456789abcdef0123456789abcdef", "travel-planner", time.Hour)

	travelPlanUseCase := usecase.NewTravelPlanUseCase(nil, service.NewFallbackGenerator(cat), service.NewSafetyNotesResolver(cat), time.Second)
	savedPlanUseCase := usecase.NewSavedPlanUseCase(repository.NewMemoryTravelPlanRepository())
	authUseCase := usecase.NewAuthUseCase(repository.NewMemoryUserRepository(), tokens, bcrypt.MinCost)

	return NewRouter(RouterConfig{
		TravelPlanHandler: NewTravelPlanHandler(travelPlanUseCase),
		SavedPlanHandler:  NewSavedPlanHandler(savedPlanUseCase),
		AuthHandler:       NewAuthHandler(authUseCase),
		Tokens:            tokens,
		PlanRateLimiter:   limiter,
	})
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, r http.Handler, email string) string {
	t.Helper()
	w := doRequest(t, r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name: "Traveller", Email: email, Password: "password123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp model.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(t, r, http.MethodGet, "/api/health", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}

func TestPostTravelPlan(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(t, r, http.MethodPost, "/api/travel/plan", "", map[string]interface{}{
		"destination": "Jaipur, India",
		"startDate":   "2026-03-27",
		"endDate":     "2026-03-29",
		"budget":      15000,
		"travelStyle": "balanced",
	})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var plan model.TravelPlan
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plan))
	assert.Len(t, plan.DailyItinerary, 3)
	assert.Equal(t, 3, plan.TripOverview.Duration)
	assert.LessOrEqual(t, plan.TotalAllocated(), 15000.0)
	assert.Contains(t, plan.SafetyNotes, "Emergency contacts for India:")
}

func TestPostTravelPlan_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    map[string]interface{}
		message string
	}{
		{
			name:    "目的地なし",
			body:    map[string]interface{}{"destination": "", "startDate": "2026-03-27", "endDate": "2026-03-29", "budget": 100},
			message: "Destination is required",
		},
		{
			name: "不明な制約",
			body: map[string]interface{}{
				"destination": "Goa", "startDate": "2026-03-27", "endDate": "2026-03-29", "budget": 100,
				"constraints": []string{"vegetarian", "not-a-real-constraint"},
			},
			message: "not-a-real-constraint",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, nil)

			w := doRequest(t, r, http.MethodPost, "/api/travel/plan", "", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			var resp struct {
				Error   string   `json:"error"`
				Details []string `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			require.NotEmpty(t, resp.Details)
			assert.Contains(t, resp.Details[0], tt.message)
		})
	}
}

func TestPostTravelPlan_MalformedBody(t *testing.T) {
	r := newTestRouter(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/travel/plan", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostTravelPlan_RateLimited(t *testing.T) {
	r := newTestRouter(t, middleware.NewRateLimiter(1, 1))
	body := map[string]interface{}{"destination": "", "startDate": "2026-03-27", "endDate": "2026-03-29", "budget": 100}

	first := doRequest(t, r, http.MethodPost, "/api/travel/plan", "", body)
	second := doRequest(t, r, http.MethodPost, "/api/travel/plan", "", body)

	assert.Equal(t, http.StatusBadRequest, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestGetSafetyNotes(t *testing.T) {
	r := newTestRouter(t, nil)

	w := doRequest(t, r, http.MethodGet, "/api/travel/safety?destination=Tokyo&travelType=solo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["safetyNotes"], "Emergency contacts for Japan:")
	assert.Contains(t, resp["safetyNotes"], "Solo traveller tips:")

	missing := doRequest(t, r, http.MethodGet, "/api/travel/safety", "", nil)
	assert.Equal(t, http.StatusBadRequest, missing.Code)
}

func TestAuthEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)
	registerUser(t, r, "asha@example.com")

	dup := doRequest(t, r, http.MethodPost, "/api/auth/register", "", model.RegisterRequest{
		Name: "Other", Email: "ASHA@example.com", Password: "password123",
	})
	assert.Equal(t, http.StatusConflict, dup.Code)

	ok := doRequest(t, r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "asha@example.com", Password: "password123"})
	assert.Equal(t, http.StatusOK, ok.Code)

	bad := doRequest(t, r, http.MethodPost, "/api/auth/login", "", model.LoginRequest{Email: "asha@example.com", Password: "nope-nope"})
	assert.Equal(t, http.StatusUnauthorized, bad.Code)
}

func TestSavedPlanEndpoints(t *testing.T) {
	r := newTestRouter(t, nil)
	owner := registerUser(t, r, "owner@example.com")
	other := registerUser(t, r, "other@example.com")

	plan := model.TravelPlan{
		TripOverview:    model.TripOverview{Destination: "Goa, India", StartDate: "2026-11-01"},
		BudgetBreakdown: map[string]model.BudgetItem{},
		DailyItinerary:  []model.DayPlan{},
	}

	unauthorized := doRequest(t, r, http.MethodGet, "/api/plans", "", nil)
	assert.Equal(t, http.StatusUnauthorized, unauthorized.Code)

	created := doRequest(t, r, http.MethodPost, "/api/plans", owner, model.SavePlanRequest{Plan: &plan})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var saved model.SavedPlan
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &saved))
	assert.Equal(t, "Goa, India (2026-11-01)", saved.Title)

	listed := doRequest(t, r, http.MethodGet, "/api/plans", owner, nil)
	require.Equal(t, http.StatusOK, listed.Code)
	var list model.PlanListResponse
	require.NoError(t, json.Unmarshal(listed.Body.Bytes(), &list))
	require.Len(t, list.Plans, 1)

	title := "Beach week"
	forbidden := doRequest(t, r, http.MethodPut, "/api/plans/"+saved.ID, other, model.PlanPatch{Title: &title})
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	updated := doRequest(t, r, http.MethodPut, "/api/plans/"+saved.ID, owner, model.PlanPatch{Title: &title})
	require.Equal(t, http.StatusOK, updated.Code)
	assert.Contains(t, updated.Body.String(), title)

	notFound := doRequest(t, r, http.MethodDelete, "/api/plans/missing", owner, nil)
	assert.Equal(t, http.StatusNotFound, notFound.Code)

	deleted := doRequest(t, r, http.MethodDelete, "/api/plans/"+saved.ID, owner, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	invalidToken := doRequest(t, r, http.MethodGet, "/api/plans", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, invalidToken.Code)
}
