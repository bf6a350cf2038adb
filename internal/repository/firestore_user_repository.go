package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"TravelPlanner-App/internal/domain/model"
	"TravelPlanner-App/internal/domain/repository"
)

const (
	usersCollection      = "users"
	userEmailsCollection = "userEmails"
)

type firestoreUser struct {
	Name         string    `firestore:"name"`
	Email        string    `firestore:"email"`
	PasswordHash string    `firestore:"passwordHash"`
	CreatedAt    time.Time `firestore:"createdAt"`
}

// メールアドレスの一意性を保証するためのインデックスドキュメント
type firestoreUserEmail struct {
	UserID string `firestore:"userId"`
}

// FirestoreUserRepository Firestoreを使用したユーザーリポジトリ
type FirestoreUserRepository struct {
	client *firestore.Client
}

// NewFirestoreUserRepository 新しいFirestoreUserRepositoryインスタンスを作成
func NewFirestoreUserRepository(client *firestore.Client) *FirestoreUserRepository {
	return &FirestoreUserRepository{
		client: client,
	}
}

var _ repository.UserRepository = (*FirestoreUserRepository)(nil)

// Create はユーザーとメールアドレスのインデックスを同一トランザクションで作成する
func (r *FirestoreUserRepository) Create(ctx context.Context, user *model.User) error {
	userRef := r.client.Collection(usersCollection).Doc(user.ID)
	emailRef := r.client.Collection(userEmailsCollection).Doc(strings.ToLower(user.Email))

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(emailRef, firestoreUserEmail{UserID: user.ID}); err != nil {
			return err
		}
		return tx.Create(userRef, firestoreUser{
			Name:         user.Name,
			Email:        user.Email,
			PasswordHash: user.PasswordHash,
			CreatedAt:    user.CreatedAt,
		})
	})
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return model.ErrEmailAlreadyExists
		}
		return fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}
	return nil
}

func (r *FirestoreUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	doc, err := r.client.Collection(userEmailsCollection).Doc(strings.ToLower(email)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	var index firestoreUserEmail
	if err := doc.DataTo(&index); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return r.GetByID(ctx, index.UserID)
}

func (r *FirestoreUserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	doc, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	var data firestoreUser
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("データの変換に失敗しました: %w", err)
	}
	return &model.User{
		ID:           id,
		Name:         data.Name,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		CreatedAt:    data.CreatedAt,
	}, nil
}
