package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/anonto42/shayari-hub/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ShayariQuery selects a newest-first listing. Zero fields do not filter.
type ShayariQuery struct {
	AuthorIDs []uint
	Mood      string
	Language  string
	// Search is matched as a case-insensitive literal substring of the content.
	Search string
	Limit  int64
}

// ShayariRepository defines the interface for shayari data operations
type ShayariRepository interface {
	CreateShayari(ctx context.Context, shayari *models.Shayari) error
	GetShayariByID(ctx context.Context, id string) (*models.Shayari, error)
	GetShayarisByIDs(ctx context.Context, ids []string) ([]models.Shayari, error)
	ListShayaris(ctx context.Context, q ShayariQuery) ([]models.Shayari, error)
	ListShayariIDs(ctx context.Context) ([]string, error)
	CountByAuthor(ctx context.Context, userID uint) (int64, error)
	UpdateShayari(ctx context.Context, shayari *models.Shayari) error
	DeleteShayari(ctx context.Context, id string) error
	SetLikesCount(ctx context.Context, id string, count int64) error
	SetCommentsCount(ctx context.Context, id string, count int64) error
}

// MongoShayariRepository implements ShayariRepository for MongoDB
type MongoShayariRepository struct {
	collection *mongo.Collection
}

// NewMongoShayariRepository creates a new MongoShayariRepository
func NewMongoShayariRepository(db *mongo.Database) *MongoShayariRepository {
	return &MongoShayariRepository{collection: db.Collection("shayaris")}
}

// EnsureIndexes creates the listing indexes. It is idempotent.
func (r *MongoShayariRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "mood", Value: 1}, {Key: "language", Value: 1}, {Key: "created_at", Value: -1}}},
	})
	return err
}

func (r *MongoShayariRepository) CreateShayari(ctx context.Context, shayari *models.Shayari) error {
	now := time.Now().UTC()
	shayari.ID = primitive.NewObjectID()
	shayari.CreatedAt = now
	shayari.UpdatedAt = now
	_, err := r.collection.InsertOne(ctx, shayari)
	return translate(err)
}

// GetShayariByID returns ErrNotFound for malformed ids as well as missing ones.
func (r *MongoShayariRepository) GetShayariByID(ctx context.Context, id string) (*models.Shayari, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var shayari models.Shayari
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&shayari); err != nil {
		return nil, translate(err)
	}
	return &shayari, nil
}

// GetShayarisByIDs returns the shayaris that still exist, in no particular order.
func (r *MongoShayariRepository) GetShayarisByIDs(ctx context.Context, ids []string) ([]models.Shayari, error) {
	objIDs := objectIDs(ids)
	if len(objIDs) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objIDs}}, options.Find())
}

func (r *MongoShayariRepository) ListShayaris(ctx context.Context, q ShayariQuery) ([]models.Shayari, error) {
	filter := bson.M{}
	if q.AuthorIDs != nil {
		filter["user_id"] = bson.M{"$in": q.AuthorIDs}
	}
	if q.Mood != "" {
		filter["mood"] = q.Mood
	}
	if q.Language != "" {
		filter["language"] = q.Language
	}
	if q.Search != "" {
		filter["content"] = primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if q.Limit > 0 {
		findOptions.SetLimit(q.Limit)
	}
	return r.find(ctx, filter, findOptions)
}

func (r *MongoShayariRepository) ListShayariIDs(ctx context.Context) ([]string, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ids []string
	for cursor.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		ids = append(ids, doc.ID.Hex())
	}
	return ids, cursor.Err()
}

func (r *MongoShayariRepository) CountByAuthor(ctx context.Context, userID uint) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"user_id": userID})
}

// UpdateShayari rewrites the editable fields of an existing shayari.
func (r *MongoShayariRepository) UpdateShayari(ctx context.Context, shayari *models.Shayari) error {
	shayari.UpdatedAt = time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"content":    shayari.Content,
			"mood":       shayari.Mood,
			"language":   shayari.Language,
			"updated_at": shayari.UpdatedAt,
		},
	}
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": shayari.ID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoShayariRepository) DeleteShayari(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoShayariRepository) SetLikesCount(ctx context.Context, id string, count int64) error {
	return r.setField(ctx, id, "likes_count", count)
}

func (r *MongoShayariRepository) SetCommentsCount(ctx context.Context, id string, count int64) error {
	return r.setField(ctx, id, "comments_count", count)
}

func (r *MongoShayariRepository) setField(ctx context.Context, id, field string, value any) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	_, err = r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$set": bson.M{field: value}})
	return err
}

func (r *MongoShayariRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Shayari, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var shayaris []models.Shayari
	if err := cursor.All(ctx, &shayaris); err != nil {
		return nil, err
	}
	return shayaris, nil
}

// objectIDs drops ids that are not valid ObjectID hex strings.
func objectIDs(ids []string) []primitive.ObjectID {
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if objID, err := primitive.ObjectIDFromHex(id); err == nil {
			out = append(out, objID)
		}
	}
	return out
}
