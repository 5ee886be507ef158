package config

import (
	"context"
	"fmt"
	"time"

	"github.com/akeren/referrly/internal/log"
	"github.com/akeren/referrly/pkg/utils"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocStoreConfig points at the MongoDB deployment used by the mongo waitlist backend.
type DocStoreConfig struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

func NewDocStoreConfig() *DocStoreConfig {
	return &DocStoreConfig{
		URI:            sanitizeEnv(utils.GetEnvTrimmed("MONGO_URI")),
		Database:       utils.GetEnvTrimmedOrDefault("MONGO_DATABASE", "referrly"),
		ConnectTimeout: utils.GetEnvDurationOrDefault("MONGO_CONNECT_TIMEOUT", 10*time.Second),
	}
}

func (dc *DocStoreConfig) IsConfigured() bool {
	return dc.URI != ""
}

// Connect dials MongoDB and verifies the primary is reachable.
func (dc *DocStoreConfig) Connect(logger *log.Logger) (*mongo.Client, *mongo.Database, error) {
	if !dc.IsConfigured() {
		logger.Error("Document store (MongoDB) configuration is missing")
		return nil, nil, fmt.Errorf("MONGO_URI is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), dc.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(dc.URI))
	if err != nil {
		logger.Error("Failed to connect to document store", "error", err)
		return nil, nil, fmt.Errorf("failed to connect to document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("Document store ping failed", "error", err)
		return nil, nil, fmt.Errorf("document store ping failed: %w", err)
	}

	logger.Info("Document store (MongoDB) connected successfully", "database", dc.Database)
	return client, client.Database(dc.Database), nil
}

func CloseDocStore(client *mongo.Client, logger *log.Logger) {
	if client == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Disconnect(ctx); err != nil {
		logger.Error("Failed to disconnect document store", "error", err)
		return
	}

	logger.Info("Document store connection closed")
}
