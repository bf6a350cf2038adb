package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/usecase"
)

// AuthHandler はユーザー登録・ログインAPIのハンドラー
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
}

// NewAuthHandler は新しいAuthHandlerインスタンスを作成
func NewAuthHandler(authUseCase usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

// Register POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authUseCase.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ユーザー登録に失敗しました", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	resp, err := h.authUseCase.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, "ログインに失敗しました", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
