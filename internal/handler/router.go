package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/auth"
	"TravelPlanner-App/internal/middleware"
)

// RouterConfig はルーター構築に必要な依存関係
type RouterConfig struct {
	TravelPlanHandler *TravelPlanHandler
	SavedPlanHandler  *SavedPlanHandler
	AuthHandler       *AuthHandler
	Tokens            *auth.TokenManager
	PlanRateLimiter   *middleware.RateLimiter
	AllowedOrigins    []string
}

// NewRouter はAPIルートを登録したginエンジンを作成する
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 || containsWildcard(cfg.AllowedOrigins) {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsConfig))

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "TravelPlanner-App"})
	})

	travel := api.Group("/travel")
	{
		planRoute := []gin.HandlerFunc{}
		if cfg.PlanRateLimiter != nil {
			planRoute = append(planRoute, cfg.PlanRateLimiter.Limit())
		}
		planRoute = append(planRoute, cfg.TravelPlanHandler.PostTravelPlan)
		travel.POST("/plan", planRoute...)
		travel.GET("/safety", cfg.TravelPlanHandler.GetSafetyNotes)
	}

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", cfg.AuthHandler.Register)
		authRoutes.POST("/login", cfg.AuthHandler.Login)
	}

	plans := api.Group("/plans", auth.RequireAuth(cfg.Tokens))
	{
		plans.POST("", cfg.SavedPlanHandler.CreatePlan)
		plans.GET("", cfg.SavedPlanHandler.ListPlans)
		plans.PUT("/:id", cfg.SavedPlanHandler.UpdatePlan)
		plans.DELETE("/:id", cfg.SavedPlanHandler.DeletePlan)
	}

	return r
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
