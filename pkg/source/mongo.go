package source

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/crawlviz/pkg/crawl"
	errs "github.com/matzehuels/crawlviz/pkg/errors"
)

// Mongo defaults.
const (
	DefaultMongoDatabase   = "crawler"
	DefaultMongoCollection = "graphs"
	mongoConnectTimeout    = 10 * time.Second
)

// MongoOptions configures a [MongoSource].
type MongoOptions struct {
	URI        string
	Database   string
	Collection string
}

// MongoSource reads job documents shaped {_id: jobID, nodes: [...], edges: [...]}.
type MongoSource struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoSource connects to MongoDB and verifies the connection.
func NewMongoSource(ctx context.Context, opts MongoOptions) (*MongoSource, error) {
	if opts.URI == "" {
		return nil, errs.New(errs.ErrCodeInvalidSource, "mongo uri is required")
	}
	if opts.Database == "" {
		opts.Database = DefaultMongoDatabase
	}
	if opts.Collection == "" {
		opts.Collection = DefaultMongoCollection
	}

	ctx, cancel := context.WithTimeout(ctx, mongoConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSource, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "ping mongo")
	}

	return &MongoSource{
		client: client,
		coll:   client.Database(opts.Database).Collection(opts.Collection),
	}, nil
}

func (s *MongoSource) Load(ctx context.Context, jobID string) (*crawl.Graph, error) {
	if err := errs.ValidateJobID(jobID); err != nil {
		return nil, err
	}

	var raw crawl.RawGraph
	err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: jobID}}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(jobID)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errs.Wrap(errs.ErrCodeTimeout, err, "load job %s", jobID)
		}
		return nil, errs.Wrap(errs.ErrCodeNetwork, err, "load job %s", jobID)
	}
	if raw.JobID == "" {
		raw.JobID = jobID
	}
	return raw.Graph()
}

func (s *MongoSource) Name() string { return KindMongo }

func (s *MongoSource) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

var _ Source = (*MongoSource)(nil)
