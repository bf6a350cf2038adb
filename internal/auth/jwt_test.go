package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_IssueAndValidate(t *testing.T) {
	m := NewTokenManager(testSecret, "travel-planner", time.Hour)

	token, err := m.Issue("user-1", "asha@example.com")
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "asha@example.com", claims.Email)
}

func TestTokenManager_Validate_Rejects(t *testing.T) {
	m := NewTokenManager(testSecret, "travel-planner", time.Hour)
	valid, err := m.Issue("user-1", "asha@example.com")
	require.NoError(t, err)

	expired := NewTokenManager(testSecret, "travel-planner", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.Issue("user-1", "asha@example.com")
	require.NoError(t, err)

	otherSecret, err := NewTokenManager("another-secret-another-secret-000", "travel-planner", time.Hour).Issue("user-1", "")
	require.NoError(t, err)

	otherIssuer, err := NewTokenManager(testSecret, "someone-else", time.Hour).Issue("user-1", "")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-1", Issuer: "travel-planner"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"期限切れ":    expiredToken,
		"署名鍵が異なる": otherSecret,
		"発行者が異なる": otherIssuer,
		"署名なし":    none,
		"改ざん":     valid + "x",
		"空文字":     "",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := m.Validate(token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestRequireAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewTokenManager(testSecret, "travel-planner", time.Hour)
	token, err := m.Issue("user-1", "asha@example.com")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/me", RequireAuth(m), func(c *gin.Context) {
		userID, ok := UserIDFromContext(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"有効なトークン", "Bearer " + token, http.StatusOK},
		{"ヘッダーなし", "", http.StatusUnauthorized},
		{"Bearerなし", token, http.StatusUnauthorized},
		{"不正なトークン", "Bearer invalid", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
