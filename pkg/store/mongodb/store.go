package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/observability/metrics"
	"github.com/docshape/docshape/pkg/paginate"
)

// countField is the key the trailing $count stage writes the total under.
const countField = "totalResults"

// CollectionStore implements paginate.Store over a single MongoDB
// collection.
type CollectionStore struct {
	adapter    *Adapter
	collection string
	metrics    *metrics.Registry
}

// StoreOption configures a CollectionStore.
type StoreOption func(*CollectionStore)

// WithMetrics enables operation instrumentation.
func WithMetrics(r *metrics.Registry) StoreOption {
	return func(s *CollectionStore) { s.metrics = r }
}

// NewCollectionStore binds a store to a collection of the adapter's
// database.
func NewCollectionStore(adapter *Adapter, collection string, opts ...StoreOption) (*CollectionStore, error) {
	if adapter == nil {
		return nil, fmt.Errorf("mongodb adapter is required")
	}
	if collection == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	s := &CollectionStore{adapter: adapter, collection: collection}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Count returns the number of documents matching filter.
func (s *CollectionStore) Count(ctx context.Context, filter document.Document) (count int64, err error) {
	defer s.observe("count", time.Now(), &err)
	opCtx, cancel := s.adapter.withOperationTimeout(ctx)
	defer cancel()

	if filter == nil {
		filter = document.Document{}
	}
	return s.adapter.Collection(s.collection).CountDocuments(opCtx, toBSON(filter))
}

// Find executes a filtered, sorted, paginated fetch. A populate plan turns
// the fetch into an aggregation carrying $lookup stages; otherwise it runs
// as a plain driver find.
func (s *CollectionStore) Find(ctx context.Context, q paginate.FindQuery) (docs []document.Document, err error) {
	defer s.observe("find", time.Now(), &err)
	opCtx, cancel := s.adapter.withOperationTimeout(ctx)
	defer cancel()

	if len(q.Populate) > 0 {
		return s.runPipeline(opCtx, pipelineToInterfaces(findPipeline(q)))
	}

	findOpts := options.Find()
	if len(q.Sort) > 0 {
		findOpts.SetSort(sortDoc(q.Sort))
	}
	if q.Skip > 0 {
		findOpts.SetSkip(q.Skip)
	}
	if !q.Unbounded {
		findOpts.SetLimit(q.Limit)
	}
	if len(q.Projection) > 0 {
		findOpts.SetProjection(projectionDoc(q.Projection))
	}

	filter := q.Filter
	if filter == nil {
		filter = document.Document{}
	}
	cursor, err := s.adapter.Collection(s.collection).Find(opCtx, toBSON(filter), findOpts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(opCtx)

	var raw []bson.M
	if err := cursor.All(opCtx, &raw); err != nil {
		return nil, err
	}
	return normalizeDocs(raw), nil
}

// Aggregate runs the caller pipeline with the query's paging tail appended.
func (s *CollectionStore) Aggregate(ctx context.Context, pipeline []document.Document, q paginate.FindQuery) (docs []document.Document, err error) {
	defer s.observe("aggregate", time.Now(), &err)
	opCtx, cancel := s.adapter.withOperationTimeout(ctx)
	defer cancel()

	stages := stagesToPipeline(pipeline)
	for _, stage := range pagingStages(q) {
		stages = append(stages, stage)
	}
	return s.runPipeline(opCtx, stages)
}

// AggregateCount runs the caller pipeline with a trailing $count stage. An
// empty result set counts as zero.
func (s *CollectionStore) AggregateCount(ctx context.Context, pipeline []document.Document) (count int64, err error) {
	defer s.observe("aggregate_count", time.Now(), &err)
	opCtx, cancel := s.adapter.withOperationTimeout(ctx)
	defer cancel()

	stages := stagesToPipeline(pipeline)
	stages = append(stages, bson.D{{Key: "$count", Value: countField}})

	docs, err := s.runPipeline(opCtx, stages)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	return toInt64(docs[0][countField])
}

func (s *CollectionStore) runPipeline(ctx context.Context, stages []interface{}) ([]document.Document, error) {
	cursor, err := s.adapter.Collection(s.collection).Aggregate(ctx, stages)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, err
	}
	return normalizeDocs(raw), nil
}

func (s *CollectionStore) observe(operation string, start time.Time, err *error) {
	if s.metrics != nil {
		s.metrics.ObserveOperation(operation, *err, time.Since(start))
	}
}

func pipelineToInterfaces(stages []bson.D) []interface{} {
	out := make([]interface{}, 0, len(stages))
	for _, stage := range stages {
		out = append(out, stage)
	}
	return out
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case int32:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected count value %v (%T)", v, v)
	}
}
