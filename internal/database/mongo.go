package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/interviewly/interview-server-go/internal/config"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

func Connect(uri, database string) (*DB, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(config.MongoMaxPoolSize).
		SetMinPoolSize(config.MongoMinPoolSize)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	return &DB{client: client, db: client.Database(database)}, nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

func (d *DB) Database() *mongo.Database {
	return d.db
}

func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
