package model

import "time"

// User は登録ユーザー
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// RegisterRequest はユーザー登録APIのリクエスト
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest はログインAPIのリクエスト
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse は登録・ログイン成功時のレスポンス
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
