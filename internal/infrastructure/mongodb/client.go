package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"TravelPlanner-App/internal/logger"
)

const connectTimeout = 10 * time.Second

// MongoClient は保存済みプランとユーザーを格納するMongoDBクライアント
type MongoClient struct {
	client   *mongo.Client
	database *mongo.Database
}

// NewMongoClient はMongoDBに接続し、疎通を確認する
func NewMongoClient(ctx context.Context, uri, database string) (*MongoClient, error) {
	log := logger.GetLogger()

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("MongoDBへの接続に失敗: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("MongoDBの疎通確認に失敗: %w", err)
	}

	log.Infow("✅ MongoDBクライアントを初期化しました", "uri", logger.MaskConnectionString(uri), "database", database)
	return &MongoClient{client: client, database: client.Database(database)}, nil
}

// Collection は指定したコレクションを返す
func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.database.Collection(name)
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.client.Disconnect(ctx)
}
