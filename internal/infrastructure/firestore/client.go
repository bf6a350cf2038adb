package firestore

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	"TravelPlanner-App/internal/logger"
)

// FirestoreClient は保存済みプランとユーザーを格納するFirestoreクライアント
type FirestoreClient struct {
	client *firestore.Client
}

// NewFirestoreClient は実行環境に応じた認証方法でFirestoreクライアントを作成する
func NewFirestoreClient(ctx context.Context, projectID string) (*FirestoreClient, error) {
	log := logger.GetLogger()

	var client *firestore.Client
	var err error

	// Cloud Run環境の検出
	isCloudRun := os.Getenv("K_SERVICE") != ""

	switch {
	case os.Getenv("FIRESTORE_EMULATOR_HOST") != "":
		log.Infow("🧪 Firestoreエミュレータに接続します", "host", os.Getenv("FIRESTORE_EMULATOR_HOST"))
		client, err = firestore.NewClient(ctx, projectID)
	case isCloudRun:
		log.Info("☁️ Cloud Run環境: デフォルト認証を使用")
		client, err = firestore.NewClient(ctx, projectID)
	default:
		credentialsFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
		if credentialsFile == "" {
			credentialsFile = "travel-planner-firestore-key.json"
		}

		if _, statErr := os.Stat(credentialsFile); statErr != nil {
			log.Warnw("⚠️ 認証ファイルが見つかりません。デフォルト認証を試します", "file", credentialsFile)
			client, err = firestore.NewClient(ctx, projectID)
		} else {
			log.Infow("📄 認証ファイルを使用します", "file", credentialsFile)
			client, err = firestore.NewClient(ctx, projectID, option.WithCredentialsFile(credentialsFile))
		}
	}
	if err != nil {
		return nil, fmt.Errorf("Firestoreクライアントの作成に失敗: %w", err)
	}

	log.Infow("✅ Firestoreクライアントを初期化しました", "project", projectID)
	return &FirestoreClient{client: client}, nil
}

func (fc *FirestoreClient) Close() error {
	return fc.client.Close()
}

func (fc *FirestoreClient) GetClient() *firestore.Client {
	return fc.client
}
