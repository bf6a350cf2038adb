// Package logger はアプリケーション全体で共有するzapのSugaredLoggerを提供する。
// LOG_LEVELとENVIRONMENTの環境変数で出力形式とレベルを切り替える。
package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	once   sync.Once
)

// IsTest はテスト実行時にtrueにする（標準出力に開発用フォーマットで出す）
var IsTest bool

func initLoggerInternal() {
	var zapLogger *zap.Logger
	var err error

	var level zapcore.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		level = zapcore.InfoLevel
	}

	switch {
	case IsTest:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stdout"}
		zapLogger, err = cfg.Build()
	case os.Getenv("ENVIRONMENT") == "production":
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		cfg.OutputPaths = []string{"stdout"}
		cfg.ErrorOutputPaths = []string{"stderr"}
		zapLogger, err = cfg.Build()
	default:
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		zapLogger, err = cfg.Build()
	}

	if err != nil {
		panic(fmt.Sprintf("ロガーの初期化に失敗: %v", err))
	}
	logger = zapLogger.Sugar()
}

// InitLogger はグローバルロガーを一度だけ初期化する
func InitLogger() {
	once.Do(initLoggerInternal)
}

// GetLogger は共有ロガーを返す（未初期化なら初期化する）
func GetLogger() *zap.SugaredLogger {
	once.Do(initLoggerInternal)
	return logger
}

// Close はバッファされたログをフラッシュする
func Close() error {
	if logger != nil && !IsTest {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "ロガーのSyncに失敗: %v\n", err)
			return err
		}
	}
	return nil
}

// MaskEmail はメールアドレスのユーザー名部分を伏せる
func MaskEmail(email string) string {
	if email == "" {
		return ""
	}
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return strings.Repeat("*", len(email))
	}
	user := email[:at]
	if len(user) <= 2 {
		return strings.Repeat("*", len(user)) + email[at:]
	}
	return user[:2] + "***" + email[at:]
}

// MaskConnectionString は接続文字列に含まれるパスワードを伏せる
func MaskConnectionString(connStr string) string {
	idx := strings.Index(connStr, "://")
	if idx == -1 {
		return connStr
	}
	rest := connStr[idx+3:]
	credIdx := strings.Index(rest, "@")
	if credIdx == -1 {
		return connStr
	}
	userInfo := rest[:credIdx]
	passIdx := strings.Index(userInfo, ":")
	if passIdx == -1 {
		return connStr
	}
	return connStr[:idx+3] + userInfo[:passIdx] + ":***" + rest[credIdx:]
}
