package paginate

import (
	"context"

	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/populate"
)

// FindQuery carries everything a store needs to execute a filtered,
// sorted, paginated fetch. Unbounded overrides Limit for "get everything"
// requests.
type FindQuery struct {
	Filter     document.Document
	Sort       []SortField
	Skip       int64
	Limit      int64
	Unbounded  bool
	Projection []string
	Populate   []populate.Node
}

// Store is the document store collaborator the paginator drives. Timeouts
// and retries are the store's responsibility; errors propagate to the caller
// unchanged.
type Store interface {
	// Count returns the number of documents matching filter.
	Count(ctx context.Context, filter document.Document) (int64, error)

	// Find executes a filtered, sorted, paginated fetch.
	Find(ctx context.Context, q FindQuery) ([]document.Document, error)

	// Aggregate runs the caller-supplied pipeline with the query's
	// sort/skip/limit appended as trailing stages.
	Aggregate(ctx context.Context, pipeline []document.Document, q FindQuery) ([]document.Document, error)

	// AggregateCount runs the caller-supplied pipeline with a trailing
	// count stage and returns the total.
	AggregateCount(ctx context.Context, pipeline []document.Document) (int64, error)
}
