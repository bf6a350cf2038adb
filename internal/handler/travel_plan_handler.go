package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/usecase"
)

// TravelPlanHandler は旅行プラン生成APIのハンドラー
type TravelPlanHandler struct {
	travelPlanUseCase usecase.TravelPlanUseCase
}

// NewTravelPlanHandler は新しいTravelPlanHandlerインスタンスを作成
func NewTravelPlanHandler(travelPlanUseCase usecase.TravelPlanUseCase) *TravelPlanHandler {
	return &TravelPlanHandler{
		travelPlanUseCase: travelPlanUseCase,
	}
}

// PostTravelPlan は旅行プランを生成するエンドポイント
// POST /api/travel/plan
func (h *TravelPlanHandler) PostTravelPlan(c *gin.Context) {
	var req model.TripRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.travelPlanUseCase.GeneratePlan(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "旅行プランの生成に失敗しました", err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

// GetSafetyNotes は目的地の安全情報を返すエンドポイント
// GET /api/travel/safety?destination=&travelType=
func (h *TravelPlanHandler) GetSafetyNotes(c *gin.Context) {
	destination := c.Query("destination")
	if destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "パラメータが不足しています",
			"details": "destination is required",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"safetyNotes": h.travelPlanUseCase.SafetyNotes(destination, c.Query("travelType")),
	})
}
