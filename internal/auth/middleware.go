package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// ContextKeyUserID は認証済みユーザーIDを格納するgin.Contextのキー
const ContextKeyUserID = "userID"

// RequireAuth はAuthorizationヘッダーのBearerトークンを検証するミドルウェア
func RequireAuth(tokens *TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "認証が必要です",
				"details": "Authorizationヘッダーにトークンを指定してください",
			})
			return
		}

		claims, err := tokens.Validate(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "認証に失敗しました",
				"details": err.Error(),
			})
			return
		}

		c.Set(ContextKeyUserID, claims.Subject)
		c.Next()
	}
}

// UserIDFromContext は認証済みユーザーIDを取得する
func UserIDFromContext(c *gin.Context) (string, bool) {
	userID := c.GetString(ContextKeyUserID)
	return userID, userID != ""
}
