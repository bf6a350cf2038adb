package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"TravelPlanner-App/internal/auth"
	"TravelPlanner-App/internal/config"
	"TravelPlanner-App/internal/domain/catalog"
	domainRepo "TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/domain/service"
	"TravelPlanner-App/internal/handler"
	"TravelPlanner-App/internal/infrastructure/ai"
	"TravelPlanner-App/internal/infrastructure/firestore"
	"TravelPlanner-App/internal/infrastructure/mongodb"
	"TravelPlanner-App/internal/logger"
	"TravelPlanner-App/internal/middleware"
	"TravelPlanner-App/internal/repository"
	"TravelPlanner-App/internal/usecase"
)

func main() {
	logger.InitLogger()
	log := logger.GetLogger()
	defer logger.Close()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalw("❌ 設定の読み込みに失敗", "error", err)
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	// 永続化
	planRepo, userRepo, closeStore, err := newStores(ctx, cfg)
	if err != nil {
		log.Fatalw("❌ ストアの初期化に失敗", "store", cfg.Store.Kind, "error", err)
	}
	defer closeStore()

	// 旅行プラン生成
	cat := catalog.Default()
	var planGenerationRepo domainRepo.PlanGenerationRepository
	if cfg.AI.GeminiAPIKey != "" {
		geminiClient := ai.NewGeminiClient(cfg.AI.GeminiAPIKey,
			ai.WithBaseURL(cfg.AI.BaseURL),
			ai.WithModel(cfg.AI.Model),
			ai.WithTimeout(cfg.AI.Timeout),
		)
		planGenerationRepo = ai.NewGeminiPlanRepository(geminiClient)
	} else {
		log.Warn("⚠️ GEMINI_API_KEYが未設定のため、テンプレートによる生成のみ行います")
	}

	travelPlanUseCase := usecase.NewTravelPlanUseCase(
		planGenerationRepo,
		service.NewFallbackGenerator(cat),
		service.NewSafetyNotesResolver(cat),
		cfg.AI.Timeout,
	)
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenIssuer, cfg.Auth.TokenTTL)
	savedPlanUseCase := usecase.NewSavedPlanUseCase(planRepo)
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens, cfg.Auth.BcryptCost)

	router := handler.NewRouter(handler.RouterConfig{
		TravelPlanHandler: handler.NewTravelPlanHandler(travelPlanUseCase),
		SavedPlanHandler:  handler.NewSavedPlanHandler(savedPlanUseCase),
		AuthHandler:       handler.NewAuthHandler(authUseCase),
		Tokens:            tokens,
		PlanRateLimiter:   middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		AllowedOrigins:    cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infow("🚀 TravelPlanner-App サーバーを起動します", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("❌ サーバーの起動に失敗", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("🛑 サーバーを停止しています...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("❌ サーバーの停止に失敗", "error", err)
	}
}

// newStores は設定に応じたプランとユーザーのリポジトリを作成する
func newStores(ctx context.Context, cfg *config.Config) (domainRepo.TravelPlanRepository, domainRepo.UserRepository, func(), error) {
	log := logger.GetLogger()

	switch cfg.Store.Kind {
	case config.StoreFirestore:
		fc, err := firestore.NewFirestoreClient(ctx, cfg.Store.FirestoreProjectID)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := fc.Close(); err != nil {
				log.Warnw("⚠️ Firestoreクライアントのクローズに失敗", "error", err)
			}
		}
		return repository.NewFirestoreTravelPlanRepository(fc.GetClient()),
			repository.NewFirestoreUserRepository(fc.GetClient()), closeFn, nil

	case config.StoreMongo:
		mc, err := mongodb.NewMongoClient(ctx, cfg.Store.MongoURI, cfg.Store.MongoDatabase)
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := mc.Close(context.Background()); err != nil {
				log.Warnw("⚠️ MongoDBクライアントのクローズに失敗", "error", err)
			}
		}
		planRepo := repository.NewMongoTravelPlanRepository(mc.Collection(repository.MongoTravelPlansCollection))
		userRepo := repository.NewMongoUserRepository(mc.Collection(repository.MongoUsersCollection))
		if err := planRepo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		if err := userRepo.EnsureIndexes(ctx); err != nil {
			closeFn()
			return nil, nil, nil, err
		}
		return planRepo, userRepo, closeFn, nil

	default:
		log.Info("📦 インメモリストアを使用します（再起動でデータは失われます）")
		return repository.NewMemoryTravelPlanRepository(), repository.NewMemoryUserRepository(), func() {}, nil
	}
}
