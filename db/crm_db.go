package db

import (
	"context"

	"github.com/Kotlang/leadsGo/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type CrmDbInterface interface {
	Leads() LeadRepositoryInterface
	Users() UserRepositoryInterface
	EnsureIndexes(ctx context.Context) error
	Disconnect(ctx context.Context) error
}

type CrmDb struct {
	client   *mongo.Client
	database *mongo.Database
}

func Connect(ctx context.Context, mongoURI, databaseName string) (*CrmDb, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	logger.Info("Connected to mongo", zap.String("database", databaseName))
	return &CrmDb{
		client:   client,
		database: client.Database(databaseName),
	}, nil
}

func (d *CrmDb) Leads() LeadRepositoryInterface {
	return &LeadRepository{collection: d.database.Collection("leads")}
}

func (d *CrmDb) Users() UserRepositoryInterface {
	return &UserRepository{collection: d.database.Collection("users")}
}

// EnsureIndexes creates the unique email indexes both collections rely on.
func (d *CrmDb) EnsureIndexes(ctx context.Context) error {
	emailIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{"leads", "users"} {
		if _, err := d.database.Collection(name).Indexes().CreateOne(ctx, emailIndex); err != nil {
			return err
		}
	}
	return nil
}

// Reset drops both collections. Used by the dev seeder only.
func (d *CrmDb) Reset(ctx context.Context) error {
	for _, name := range []string{"leads", "users"} {
		if err := d.database.Collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (d *CrmDb) Disconnect(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}
