package db

import (
	"context"
	"errors"
	"time"

	"github.com/Kotlang/leadsGo/logger"
	"github.com/Kotlang/leadsGo/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type LeadRepositoryInterface interface {
	Save(ctx context.Context, lead *models.LeadModel) error
	FindOneById(ctx context.Context, id string) (*models.LeadModel, error)
	Update(ctx context.Context, id string, patch *models.LeadPatch) (*models.LeadModel, error)
	DeleteById(ctx context.Context, id string) error
	GetLeads(ctx context.Context, filters *LeadFilters, page, limit int64) (leads []models.LeadModel, totalCount int64, err error)
}

type LeadRepository struct {
	collection *mongo.Collection
}

// Save validates and inserts a new lead, stamping id and timestamps.
func (l *LeadRepository) Save(ctx context.Context, lead *models.LeadModel) error {
	lead.Id()

	now := time.Now().UTC()
	lead.CreatedAt = now
	lead.UpdatedAt = now

	if err := lead.Validate(); err != nil {
		return err
	}

	_, err := l.collection.InsertOne(ctx, lead)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (l *LeadRepository) FindOneById(ctx context.Context, id string) (*models.LeadModel, error) {
	lead := &models.LeadModel{}
	err := l.collection.FindOne(ctx, bson.M{"_id": id}).Decode(lead)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

// Update applies the patch to the stored lead, re-validates the merged
// record and refreshes updated_at.
func (l *LeadRepository) Update(ctx context.Context, id string, patch *models.LeadPatch) (*models.LeadModel, error) {
	lead, err := l.FindOneById(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(lead)
	lead.UpdatedAt = time.Now().UTC()

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	_, err = l.collection.ReplaceOne(ctx, bson.M{"_id": id}, lead)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (l *LeadRepository) DeleteById(ctx context.Context, id string) error {
	result, err := l.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetLeads runs the counted, sorted, paginated query. The count and the
// page fetch run concurrently against the same filter document.
func (l *LeadRepository) GetLeads(ctx context.Context, filters *LeadFilters, page, limit int64) ([]models.LeadModel, int64, error) {
	filter := filters.Filter()
	skip := (page - 1) * limit

	// sort by created at, most recent first
	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	countChan := make(chan int64, 1)
	countErrChan := make(chan error, 1)
	go func() {
		count, err := l.collection.CountDocuments(ctx, filter)
		if err != nil {
			countErrChan <- err
			return
		}
		countChan <- count
	}()

	cursor, err := l.collection.Find(ctx, filter, findOptions)
	if err != nil {
		logger.Error("Error fetching leads", zap.Error(err))
		return nil, 0, err
	}

	leads := []models.LeadModel{}
	if err := cursor.All(ctx, &leads); err != nil {
		logger.Error("Error decoding leads", zap.Error(err))
		return nil, 0, err
	}

	var totalCount int64
	select {
	case totalCount = <-countChan:
	case err := <-countErrChan:
		logger.Error("Error fetching lead count", zap.Error(err))
		return nil, 0, err
	}

	return leads, totalCount, nil
}
