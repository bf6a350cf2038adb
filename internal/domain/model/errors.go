package model

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError は入力ルール違反の一覧を保持するエラー
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Errors, "; ")
}

// ErrMalformedResponse は修復処理を行ってもAI応答をパースできない場合のエラー
var ErrMalformedResponse = errors.New("malformed model response")

// GatewayError は外部AIサービス呼び出しの失敗を表す
type GatewayError struct {
	StatusCode int // HTTPステータス（通信エラーの場合は0）
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("model gateway error (status: %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("model gateway error: %v", e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// 保存済みプラン・ユーザー操作のエラー
var (
	ErrPlanNotFound       = errors.New("plan not found")
	ErrPlanForbidden      = errors.New("plan belongs to another user")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
