package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionRepository gives raw document access to named Mongo collections.
// Callers are responsible for restricting which collections are reachable.
type CollectionRepository interface {
	Find(ctx context.Context, collection string, filter bson.M, fields []string, limit int64) ([]bson.M, error)
	Insert(ctx context.Context, collection string, docs []any) ([]any, error)
	DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error)
	SetMany(ctx context.Context, collection string, filter, fields bson.M) (int64, error)
}

// MongoCollectionRepository implements CollectionRepository
type MongoCollectionRepository struct {
	db *mongo.Database
}

func NewMongoCollectionRepository(db *mongo.Database) *MongoCollectionRepository {
	return &MongoCollectionRepository{db: db}
}

func (r *MongoCollectionRepository) Find(ctx context.Context, collection string, filter bson.M, fields []string, limit int64) ([]bson.M, error) {
	findOptions := options.Find().SetLimit(limit)
	if len(fields) > 0 {
		projection := bson.M{}
		for _, f := range fields {
			projection[f] = 1
		}
		findOptions.SetProjection(projection)
	}

	cursor, err := r.db.Collection(collection).Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	docs := []bson.M{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *MongoCollectionRepository) Insert(ctx context.Context, collection string, docs []any) ([]any, error) {
	res, err := r.db.Collection(collection).InsertMany(ctx, docs)
	if err != nil {
		return nil, translate(err)
	}
	return res.InsertedIDs, nil
}

func (r *MongoCollectionRepository) DeleteMany(ctx context.Context, collection string, filter bson.M) (int64, error) {
	res, err := r.db.Collection(collection).DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *MongoCollectionRepository) SetMany(ctx context.Context, collection string, filter, fields bson.M) (int64, error) {
	res, err := r.db.Collection(collection).UpdateMany(ctx, filter, bson.M{"$set": fields})
	if err != nil {
		return 0, translate(err)
	}
	return res.ModifiedCount, nil
}
