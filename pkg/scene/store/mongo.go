package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edawolf/city-lines-sub002/pkg/errors"
	"github.com/edawolf/city-lines-sub002/pkg/scene"
)

// MongoStore is a MongoDB-backed scene store for multi-instance
// server deployments. Scenes live in one collection, keyed by a
// unique index on the name field.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the MongoDB connection string
	// (for example "mongodb://localhost:27017").
	URI string

	// Database is the database name. Defaults to "citylines".
	Database string

	// Collection is the collection name. Defaults to "scenes".
	Collection string
}

// NewMongoStore connects to MongoDB and ensures the name index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "citylines"
	}
	if cfg.Collection == "" {
		cfg.Collection = "scenes"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := coll.Indexes().CreateOne(ctx, indexModel); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create scene name index")
	}

	return &MongoStore{client: client, collection: coll}, nil
}

// Get retrieves a scene by name.
func (s *MongoStore) Get(ctx context.Context, name string) (*scene.Scene, error) {
	if err := errors.ValidateSceneName(name); err != nil {
		return nil, err
	}

	var sc scene.Scene
	err := s.collection.FindOne(ctx, bson.M{"name": name}).Decode(&sc)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "find scene %q", name)
	}
	return &sc, nil
}

// Put stores a scene under the given name, replacing any existing one.
func (s *MongoStore) Put(ctx context.Context, name string, sc *scene.Scene) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}
	if err := sc.Validate(); err != nil {
		return err
	}

	sc.Name = name
	opts := options.Replace().SetUpsert(true)
	if _, err := s.collection.ReplaceOne(ctx, bson.M{"name": name}, sc, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store scene %q", name)
	}
	return nil
}

// Delete removes a scene.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	if err := errors.ValidateSceneName(name); err != nil {
		return err
	}

	if _, err := s.collection.DeleteOne(ctx, bson.M{"name": name}); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete scene %q", name)
	}
	return nil
}

// List returns all stored scene names in sorted order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"name": 1}).
		SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list scenes")
	}
	defer cursor.Close(ctx)

	names := []string{}
	for cursor.Next(ctx) {
		var doc struct {
			Name string `bson:"name"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode scene name")
		}
		names = append(names, doc.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "iterate scenes")
	}
	return names, nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
