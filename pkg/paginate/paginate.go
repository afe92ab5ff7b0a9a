// Package paginate assembles paginated query results from a document store.
// It computes page arithmetic, dispatches to a filtered find or an
// aggregation pipeline, and shapes the fetched page into a result envelope.
package paginate

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/docshape/docshape/pkg/document"
	"github.com/docshape/docshape/pkg/observability/logger"
	"github.com/docshape/docshape/pkg/populate"
	"github.com/docshape/docshape/pkg/transform"
)

const (
	// DefaultPage is used when the request names no page.
	DefaultPage = 1
	// DefaultLimit is used when the request names no limit.
	DefaultLimit = 10
	// AllPages is the sentinel page meaning "return every matching
	// document and report them as a single page".
	AllPages = -1

	idField        = "_id"
	renamedIDField = "id"
)

// Options shapes a single pagination request. The zero value asks for the
// first page of ten documents, unsorted and unshaped.
type Options struct {
	// Sort is a comma-separated list of key:direction pairs.
	Sort string
	// Page is 1-based; AllPages returns everything.
	Page int
	// Limit is the page size.
	Limit int
	// Fields restricts returned fields to this comma-separated list.
	Fields string
	// Populate names related documents to join, in the populate grammar.
	Populate string
	// Aliases are applied to each fetched document, after shuffling.
	Aliases []transform.Rule
	// Pipeline, when non-empty, switches the request to aggregation mode.
	Pipeline []document.Document
	// Shuffle permutes the fetched page in memory.
	Shuffle bool
}

// Result is the envelope returned for every pagination request.
type Result struct {
	Results      []document.Document `json:"results"`
	Page         int                 `json:"page"`
	Limit        int                 `json:"limit"`
	TotalPages   int                 `json:"totalPages"`
	TotalResults int64               `json:"totalResults"`
}

// Paginator executes pagination requests against a Store.
type Paginator struct {
	store Store
	log   logger.Logger
	rng   *rand.Rand
}

// Option configures a Paginator.
type Option func(*Paginator)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l logger.Logger) Option {
	return func(p *Paginator) { p.log = l }
}

// WithRand sets the randomness source used for shuffling, so tests can
// assert permutations deterministically.
func WithRand(r *rand.Rand) Option {
	return func(p *Paginator) { p.rng = r }
}

// New creates a Paginator over the given store.
func New(store Store, opts ...Option) (*Paginator, error) {
	if store == nil {
		return nil, fmt.Errorf("document store is required")
	}
	p := &Paginator{
		store: store,
		log:   logger.Nop(),
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Paginate runs one request and assembles the result envelope. The count and
// the fetch are issued concurrently and joined; if either fails the whole
// request fails, with the store error passed through unchanged.
func (p *Paginator) Paginate(ctx context.Context, filter document.Document, opts Options) (*Result, error) {
	sort, err := ParseSort(opts.Sort)
	if err != nil {
		return nil, err
	}

	page := opts.Page
	if page == 0 {
		page = DefaultPage
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	q := FindQuery{
		Filter:     filter,
		Sort:       sort,
		Limit:      int64(limit),
		Projection: splitFields(opts.Fields),
		Populate:   populate.Parse(opts.Populate),
	}
	if page == AllPages {
		q.Skip = 0
		q.Unbounded = true
	} else {
		q.Skip = int64(page-1) * int64(limit)
	}

	var (
		docs  []document.Document
		total int64
	)
	if len(opts.Pipeline) > 0 {
		docs, total, err = p.runAggregate(ctx, opts.Pipeline, q)
	} else {
		docs, total, err = p.runFind(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	if opts.Shuffle {
		p.rng.Shuffle(len(docs), func(i, j int) {
			docs[i], docs[j] = docs[j], docs[i]
		})
	}
	for _, doc := range docs {
		transform.ApplyRules(doc, opts.Aliases)
		renameID(doc)
	}

	result := &Result{
		Results:      docs,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages(page, limit, total),
		TotalResults: total,
	}
	if page == AllPages {
		result.Limit = int(total)
	}
	return result, nil
}

// runFind issues the count and the fetch concurrently and joins them.
func (p *Paginator) runFind(ctx context.Context, q FindQuery) ([]document.Document, int64, error) {
	var (
		docs  []document.Document
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := p.store.Count(gctx, q.Filter)
		total = n
		return err
	})
	g.Go(func() error {
		found, err := p.store.Find(gctx, q)
		docs = found
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	p.log.WithContext(ctx).Debug("find page fetched", "results", len(docs), "total", total)
	return docs, total, nil
}

// runAggregate executes the caller pipeline twice, concurrently: once with
// the paging tail for the data, once with a count stage for the total.
func (p *Paginator) runAggregate(ctx context.Context, pipeline []document.Document, q FindQuery) ([]document.Document, int64, error) {
	var (
		docs  []document.Document
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		fetched, err := p.store.Aggregate(gctx, pipeline, q)
		docs = fetched
		return err
	})
	g.Go(func() error {
		n, err := p.store.AggregateCount(gctx, pipeline)
		total = n
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	p.log.WithContext(ctx).Debug("aggregation page fetched", "results", len(docs), "total", total)
	return docs, total, nil
}

// totalPages reports a single page for AllPages requests, otherwise
// ceil(total/limit).
func totalPages(page, limit int, total int64) int {
	if page == AllPages {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// renameID surfaces the store identity field as "id" and drops the original.
func renameID(doc document.Document) {
	if v, ok := doc[idField]; ok {
		doc[renamedIDField] = v
		delete(doc, idField)
	}
}

func splitFields(spec string) []string {
	if spec == "" {
		return nil
	}
	var fields []string
	for _, f := range strings.Split(spec, ",") {
		if f = strings.TrimSpace(f); f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}
