// Package config は環境変数（と.envファイル）からアプリケーション設定を読み込む。
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"TravelPlanner-App/internal/logger"
)

const minJWTLength = 32

// 保存済みプランとユーザーの保存先
const (
	StoreMemory    = "memory"
	StoreFirestore = "firestore"
	StoreMongo     = "mongo"
)

// ServerConfig はHTTPサーバーの設定
type ServerConfig struct {
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Port           string   `mapstructure:"PORT"`
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`
}

// AuthConfig はJWTの設定
type AuthConfig struct {
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	TokenTTL    time.Duration `mapstructure:"TOKEN_TTL"`
	BcryptCost  int           `mapstructure:"BCRYPT_COST"`
	TokenIssuer string        `mapstructure:"TOKEN_ISSUER"`
}

// AIConfig は生成モデルの設定
type AIConfig struct {
	GeminiAPIKey string        `mapstructure:"GEMINI_API_KEY"`
	BaseURL      string        `mapstructure:"BASE_URL"`
	Model        string        `mapstructure:"MODEL"`
	Timeout      time.Duration `mapstructure:"TIMEOUT"`
}

// StoreConfig は永続化の設定
type StoreConfig struct {
	Kind               string `mapstructure:"KIND"`
	FirestoreProjectID string `mapstructure:"FIRESTORE_PROJECT_ID"`
	MongoURI           string `mapstructure:"MONGO_URI"`
	MongoDatabase      string `mapstructure:"MONGO_DATABASE"`
}

// RateLimitConfig はプラン生成エンドポイントのレート制限
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"REQUESTS_PER_MINUTE"`
	Burst             int `mapstructure:"BURST"`
}

// Config はアプリケーション設定全体
type Config struct {
	Server    ServerConfig    `mapstructure:"SERVER"`
	Auth      AuthConfig      `mapstructure:"AUTH"`
	AI        AIConfig        `mapstructure:"AI"`
	Store     StoreConfig     `mapstructure:"STORE"`
	RateLimit RateLimitConfig `mapstructure:"RATE_LIMIT"`
}

// IsProduction は本番環境かどうかを返す
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// LoadConfig は.envと環境変数から設定を読み込み、検証する
func LoadConfig() (*Config, error) {
	log := logger.GetLogger()

	if err := godotenv.Load(); err != nil {
		log.Warn("⚠️ .envファイルが見つかりません。システム環境変数を使用します")
	}

	v := viper.New()
	v.SetDefault("SERVER.ENVIRONMENT", "development")
	v.SetDefault("SERVER.PORT", "8080")
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("AUTH.TOKEN_TTL", "24h")
	v.SetDefault("AUTH.BCRYPT_COST", 10)
	v.SetDefault("AUTH.TOKEN_ISSUER", "travel-planner")
	v.SetDefault("AI.BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("AI.MODEL", "gemini-2.5-flash")
	v.SetDefault("AI.TIMEOUT", "30s")
	v.SetDefault("STORE.KIND", StoreMemory)
	v.SetDefault("STORE.MONGO_DATABASE", "travel_planner")
	v.SetDefault("RATE_LIMIT.REQUESTS_PER_MINUTE", 10)
	v.SetDefault("RATE_LIMIT.BURST", 3)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	bindings := [][2]string{
		{"SERVER.ENVIRONMENT", "ENVIRONMENT"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"AUTH.JWT_SECRET", "JWT_SECRET"},
		{"AUTH.TOKEN_TTL", "TOKEN_TTL"},
		{"AUTH.BCRYPT_COST", "BCRYPT_COST"},
		{"AI.GEMINI_API_KEY", "GEMINI_API_KEY"},
		{"AI.BASE_URL", "GEMINI_BASE_URL"},
		{"AI.MODEL", "GEMINI_MODEL"},
		{"AI.TIMEOUT", "AI_TIMEOUT"},
		{"STORE.KIND", "STORE_KIND"},
		{"STORE.FIRESTORE_PROJECT_ID", "FIRESTORE_PROJECT_ID"},
		{"STORE.MONGO_URI", "MONGO_URI"},
		{"STORE.MONGO_DATABASE", "MONGO_DATABASE"},
		{"RATE_LIMIT.REQUESTS_PER_MINUTE", "RATE_LIMIT_REQUESTS_PER_MINUTE"},
		{"RATE_LIMIT.BURST", "RATE_LIMIT_BURST"},
	}
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return nil, fmt.Errorf("環境変数 %s のバインドに失敗: %w", b[1], err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}
	// カンマ区切りの環境変数は1要素として読まれる
	cfg.Server.AllowedOrigins = splitOrigins(cfg.Server.AllowedOrigins)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("設定の検証に失敗: %w", err)
	}

	log.Infow("✅ 設定を読み込みました",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"store", cfg.Store.Kind,
		"ai_model", cfg.AI.Model,
		"ai_enabled", cfg.AI.GeminiAPIKey != "",
		"mongo_uri", logger.MaskConnectionString(cfg.Store.MongoURI),
	)
	return &cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.Server.Port == "" {
		return fmt.Errorf("PORTは必須です")
	}
	if len(cfg.Auth.JWTSecret) < minJWTLength {
		return fmt.Errorf("JWT_SECRETは%d文字以上で指定してください", minJWTLength)
	}
	if cfg.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTLは正の値で指定してください")
	}
	if cfg.AI.Timeout <= 0 {
		return fmt.Errorf("AI_TIMEOUTは正の値で指定してください")
	}
	if cfg.RateLimit.RequestsPerMinute <= 0 || cfg.RateLimit.Burst <= 0 {
		return fmt.Errorf("レート制限の値は正の整数で指定してください")
	}
	for _, origin := range cfg.Server.AllowedOrigins {
		if origin == "*" {
			continue
		}
		if _, err := url.ParseRequestURI(origin); err != nil {
			return fmt.Errorf("ALLOWED_ORIGINSの値 %q が不正です: %w", origin, err)
		}
	}

	switch cfg.Store.Kind {
	case StoreMemory:
	case StoreFirestore:
		if cfg.Store.FirestoreProjectID == "" {
			return fmt.Errorf("STORE_KIND=firestoreにはFIRESTORE_PROJECT_IDが必要です")
		}
	case StoreMongo:
		if cfg.Store.MongoURI == "" {
			return fmt.Errorf("STORE_KIND=mongoにはMONGO_URIが必要です")
		}
	default:
		return fmt.Errorf("STORE_KINDは memory, firestore, mongo のいずれかです: %s", cfg.Store.Kind)
	}
	return nil
}

func splitOrigins(origins []string) []string {
	result := make([]string, 0, len(origins))
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
	}
	return result
}
