package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mamadbah2/farmsim/internal/config"
	"github.com/mamadbah2/farmsim/internal/domain/models"
)

// Repository defines the interface for report storage.
type Repository interface {
	SaveDayReport(ctx context.Context, report models.DayReport) error
	RecentDayReports(ctx context.Context, limit int) ([]models.DayReport, error)
}

// MongoDBRepository implements the Repository interface for MongoDB.
type MongoDBRepository struct {
	client   *mongo.Client
	dbName   string
	collName string
}

// NewMongoDBRepository creates a new MongoDB repository.
func NewMongoDBRepository(ctx context.Context, cfg config.MongoDBConfig) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return newRepository(client, cfg.DBName, cfg.Collection), nil
}

func newRepository(client *mongo.Client, dbName, collName string) *MongoDBRepository {
	return &MongoDBRepository{client: client, dbName: dbName, collName: collName}
}

func (r *MongoDBRepository) collection() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(r.collName)
}

// SaveDayReport appends a day report. Reports are a log: a replayed day is
// stored again rather than overwritten.
func (r *MongoDBRepository) SaveDayReport(ctx context.Context, report models.DayReport) error {
	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		return fmt.Errorf("failed to insert day report %d: %w", report.Day, err)
	}
	return nil
}

// RecentDayReports returns up to limit reports, newest first.
func (r *MongoDBRepository) RecentDayReports(ctx context.Context, limit int) ([]models.DayReport, error) {
	if limit <= 0 {
		limit = 10
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection().Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query day reports: %w", err)
	}
	defer cursor.Close(ctx)

	var reports []models.DayReport
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, fmt.Errorf("failed to decode day reports: %w", err)
	}
	return reports, nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
