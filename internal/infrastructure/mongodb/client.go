package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/internal/config"
)

// NewClient creates a MongoDB client and verifies connectivity. An
// unreachable server is not fatal: the client is returned anyway so the
// process can keep serving stateless endpoints while data operations fail
// until the store comes back.
func NewClient(ctx context.Context, cfg config.MongoConfig, logger *zap.Logger) (*mongo.Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		logger.Warn("mongodb unreachable, starting without database connection",
			zap.String("uri", cfg.URI), zap.Error(err))
		return client, nil
	}

	logger.Info("connected to mongodb", zap.String("database", cfg.Database))
	return client, nil
}

// Close disconnects the client with a bounded timeout.
func Close(client *mongo.Client, logger *zap.Logger) error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := client.Disconnect(ctx)
	if err == nil && logger != nil {
		logger.Info("mongodb connection closed")
	}
	return err
}
