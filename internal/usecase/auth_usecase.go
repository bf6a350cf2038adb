package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"TravelPlanner-App/internal/auth"
	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
	"TravelPlanner-App/internal/logger"
)

const minPasswordLength = 8

type AuthUseCase interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)
}

// authUseCaseImpl はAuthUseCaseの実装
type authUseCaseImpl struct {
	userRepository repository.UserRepository
	tokens         *auth.TokenManager
	bcryptCost     int
}

// NewAuthUseCase は新しいAuthUseCaseインスタンスを作成
func NewAuthUseCase(userRepo repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) AuthUseCase {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authUseCaseImpl{
		userRepository: userRepo,
		tokens:         tokens,
		bcryptCost:     bcryptCost,
	}
}

func (u *authUseCaseImpl) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var errs []string
	if name == "" {
		errs = append(errs, "Name is required")
	}
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		errs = append(errs, "Email must be a valid address")
	}
	if len(req.Password) < minPasswordLength {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	if len(errs) > 0 {
		return nil, &model.ValidationError{Errors: errs}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), u.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("パスワードのハッシュ化に失敗: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := u.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("ユーザーの登録に失敗: %w", err)
	}

	logger.GetLogger().Infow("✅ ユーザーを登録しました", "user_id", user.ID, "email", logger.MaskEmail(email))
	return u.issue(user)
}

func (u *authUseCaseImpl) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := u.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("ユーザーの取得に失敗: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		logger.GetLogger().Infow("⚠️ ログインに失敗しました", "email", logger.MaskEmail(email))
		return nil, model.ErrInvalidCredentials
	}

	return u.issue(user)
}

func (u *authUseCaseImpl) issue(user *model.User) (*model.AuthResponse, error) {
	token, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Token: token, User: user}, nil
}
