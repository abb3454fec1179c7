package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	vocerrors "github.com/vocamap/vocamap/pkg/errors"
	"github.com/vocamap/vocamap/pkg/ontology"
)

// MongoStore is a MongoDB-backed snapshot store for production deployments.
// Each project is one document in the snapshots collection, keyed by
// project ID.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// snapshotDoc is the MongoDB document shape for a stored snapshot.
type snapshotDoc struct {
	Project   string            `bson:"_id"`
	Snapshot  ontology.Snapshot `bson:"snapshot"`
	UpdatedAt time.Time         `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection with a ping.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	return &MongoStore{
		client:     client,
		collection: client.Database(database).Collection("snapshots"),
	}, nil
}

func (s *MongoStore) GetSnapshot(ctx context.Context, project string) (ontology.Snapshot, error) {
	if err := vocerrors.ValidateProjectID(project); err != nil {
		return ontology.Snapshot{}, err
	}

	var doc snapshotDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": project}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ontology.Snapshot{}, ErrNotFound
	}
	if err != nil {
		return ontology.Snapshot{}, fmt.Errorf("mongo find: %w", err)
	}
	return doc.Snapshot, nil
}

func (s *MongoStore) PutSnapshot(ctx context.Context, snap ontology.Snapshot) error {
	if err := vocerrors.ValidateProjectID(snap.Project); err != nil {
		return err
	}

	doc := snapshotDoc{
		Project:   snap.Project,
		Snapshot:  snap,
		UpdatedAt: time.Now(),
	}
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"_id": snap.Project}, doc, opts); err != nil {
		return fmt.Errorf("mongo upsert: %w", err)
	}
	return nil
}

func (s *MongoStore) DeleteSnapshot(ctx context.Context, project string) error {
	if err := vocerrors.ValidateProjectID(project); err != nil {
		return err
	}

	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": project})
	if err != nil {
		return fmt.Errorf("mongo delete: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListProjects(ctx context.Context) ([]ProjectInfo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo list: %w", err)
	}
	defer cur.Close(ctx)

	var infos []ProjectInfo
	for cur.Next(ctx) {
		var doc snapshotDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("mongo decode: %w", err)
		}
		infos = append(infos, ProjectInfo{
			Project:   doc.Project,
			Classes:   len(doc.Snapshot.Classes),
			UpdatedAt: doc.UpdatedAt,
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("mongo cursor: %w", err)
	}
	return infos, nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
