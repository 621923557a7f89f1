package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"hotelier/pkg/config"
	"hotelier/pkg/model"
)

const (
	AdditionalServiceCollectionName = "Additional_services"
)

type AdditionalServiceRepository interface {
	// FindByIDs resolves the given service ids. Unknown or malformed ids are
	// omitted from the result, not errored; callers treat the returned set as
	// the effective selection.
	FindByIDs(ctx context.Context, ids []string) ([]*model.AdditionalService, error)
}

type mongoAdditionalServiceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoAdditionalServiceRepository(cfg *config.Config) AdditionalServiceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoAdditionalServiceRepository{
		cfg:        cfg,
		collection: db.Collection(AdditionalServiceCollectionName),
	}
}

func (r *mongoAdditionalServiceRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.AdditionalService, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		objectIDs = append(objectIDs, objectID)
	}
	if len(objectIDs) == 0 {
		return nil, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find additional services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []*model.AdditionalService
	if err = cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode additional services: %w", err)
	}

	return services, nil
}
