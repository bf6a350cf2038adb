package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/auth"
	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/usecase"
)

// SavedPlanHandler は保存済みプランAPIのハンドラー（要認証）
type SavedPlanHandler struct {
	savedPlanUseCase usecase.SavedPlanUseCase
}

// NewSavedPlanHandler は新しいSavedPlanHandlerインスタンスを作成
func NewSavedPlanHandler(savedPlanUseCase usecase.SavedPlanUseCase) *SavedPlanHandler {
	return &SavedPlanHandler{
		savedPlanUseCase: savedPlanUseCase,
	}
}

// CreatePlan POST /api/plans
func (h *SavedPlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req model.SavePlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.savedPlanUseCase.SavePlan(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, "プランの保存に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListPlans GET /api/plans
func (h *SavedPlanHandler) ListPlans(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	plans, err := h.savedPlanUseCase.ListPlans(c.Request.Context(), userID)
	if err != nil {
		respondError(c, "プラン一覧の取得に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, model.PlanListResponse{Plans: plans})
}

// UpdatePlan PUT /api/plans/:id
func (h *SavedPlanHandler) UpdatePlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var patch model.PlanPatch
	if !bindJSON(c, &patch) {
		return
	}

	plan, err := h.savedPlanUseCase.UpdatePlan(c.Request.Context(), userID, c.Param("id"), &patch)
	if err != nil {
		respondError(c, "プランの更新に失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// DeletePlan DELETE /api/plans/:id
func (h *SavedPlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	if err := h.savedPlanUseCase.DeletePlan(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, "プランの削除に失敗しました", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func requireUser(c *gin.Context) (string, bool) {
	userID, ok := auth.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "認証が必要です",
			"details": "missing user",
		})
	}
	return userID, ok
}
