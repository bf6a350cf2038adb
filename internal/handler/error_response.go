package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/logger"
)

// respondError はドメインエラーをHTTPステータスとエラーボディに変換する
func respondError(c *gin.Context, message string, err error) {
	var validationErr *model.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "バリデーションエラー",
			"details": validationErr.Errors,
		})
	case errors.Is(err, model.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, model.ErrPlanForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, model.ErrPlanNotFound), errors.Is(err, model.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": message, "details": err.Error()})
	case errors.Is(err, model.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, gin.H{"error": message, "details": err.Error()})
	default:
		logger.GetLogger().Errorw("❌ "+message, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "details": "internal server error"})
	}
}

// bindJSON はリクエストボディをバインドし、失敗時は400を返す
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "リクエストの形式が正しくありません",
			"details": err.Error(),
		})
		return false
	}
	return true
}
