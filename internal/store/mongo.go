package store

import (
	"context"
	"fmt"
	"time"

	"boilerInspector/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoStore keeps one document per record. Each insert takes the next
// value of a per-collection counter, and the history is read back in
// descending seq order so processes sharing a database agree on it.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
	counters   *mongo.Collection
	logger     *zap.Logger
}

// mongoRecord is the stored document: the record inline plus its position.
type mongoRecord struct {
	Seq                     int64 `bson:"seq"`
	models.InspectionRecord `bson:",inline"`
}

const countersCollection = "counters"

func NewMongoStore(uri, dbName, collection string, logger *zap.Logger) (*MongoStore, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db := client.Database(dbName)
	coll := db.Collection(collection)
	_, err = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "seq", Value: -1}}},
	})
	if err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	logger.Info("Connected to MongoDB",
		zap.String("database", dbName), zap.String("collection", collection))

	return &MongoStore{
		client:     client,
		collection: coll,
		counters:   db.Collection(countersCollection),
		logger:     logger,
	}, nil
}

// nextSeq atomically increments the counter for this collection and
// returns the new value, creating the counter on first use.
func (m *MongoStore) nextSeq(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := m.counters.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: m.collection.Name()}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "seq", Value: int64(1)}}}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

func (m *MongoStore) LoadAll(ctx context.Context) []models.InspectionRecord {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "seq", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		m.logger.Warn("Reading history failed, treating as empty", zap.Error(err))
		return []models.InspectionRecord{}
	}
	defer cursor.Close(ctx)

	var docs []mongoRecord
	if err := cursor.All(ctx, &docs); err != nil {
		m.logger.Warn("Decoding history failed, treating as empty", zap.Error(err))
		return []models.InspectionRecord{}
	}
	records := make([]models.InspectionRecord, 0, len(docs))
	for _, doc := range docs {
		doc.Normalize()
		records = append(records, doc.InspectionRecord)
	}
	return records
}

func (m *MongoStore) Append(ctx context.Context, rec models.InspectionRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	seq, err := m.nextSeq(ctx)
	if err != nil {
		return persistErr("mongo", "reserve sequence", err)
	}

	doc := mongoRecord{Seq: seq, InspectionRecord: rec.Clone()}
	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			err = fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
		return persistErr("mongo", "insert record", err)
	}

	m.logger.Debug("Appended record", zap.String("id", rec.ID), zap.Int64("seq", seq))
	return nil
}

func (m *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}
