package assist

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/poiesic/helpdesk/ai"
	"github.com/poiesic/helpdesk/core"
	"github.com/poiesic/helpdesk/storage"
)

const defaultCallTimeout = 30 * time.Second

// SearchService retrieves documents similar to a query, restricted to a
// metadata filter. Implemented by search.Searcher.
type SearchService interface {
	Search(ctx context.Context, query string, topK int, filter storage.Filter) ([]*core.SearchResult, error)
}

// QueryRecorder persists queries the cascade could not answer.
// Implemented by querylog.Log.
type QueryRecorder interface {
	// Record appends an unrecognized query.
	Record(query string) error
	// RecordFallback appends a query the caller explicitly flagged as unanswered.
	RecordFallback(query string) error
}

// Responder runs the tiered answer cascade: IT-service catalog, then the
// general knowledge base, then department routing, then the default
// fallback. Each stage short-circuits on success; later stages are
// strictly more expensive fallbacks, so lookups are issued sequentially
// and stage N is never queried once stage N-1 has answered.
type Responder struct {
	searcher    SearchService
	completer   ai.Completer
	recorder    QueryRecorder
	knowledge   Thresholds
	routing     Thresholds
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Responder.
type Option func(*Responder) error

// WithKnowledgeThresholds overrides the catalog/knowledge-stage thresholds.
func WithKnowledgeThresholds(th Thresholds) Option {
	return func(r *Responder) error {
		r.knowledge = th
		return nil
	}
}

// WithRoutingThresholds overrides the routing-stage thresholds.
func WithRoutingThresholds(th Thresholds) Option {
	return func(r *Responder) error {
		r.routing = th
		return nil
	}
}

// WithCallTimeout bounds each search and completion call.
// Default is 30s; expiry is treated as an upstream service failure.
func WithCallTimeout(d time.Duration) Option {
	return func(r *Responder) error {
		if d > 0 {
			r.callTimeout = d
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Responder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewResponder creates a new cascade responder.
func NewResponder(searcher SearchService, completer ai.Completer, recorder QueryRecorder, opts ...Option) (*Responder, error) {
	if searcher == nil {
		return nil, ErrSearchServiceRequired
	}
	if completer == nil {
		return nil, ErrCompleterRequired
	}
	if recorder == nil {
		return nil, ErrQueryRecorderRequired
	}

	r := &Responder{
		searcher:    searcher,
		completer:   completer,
		recorder:    recorder,
		knowledge:   DefaultKnowledgeThresholds,
		routing:     DefaultRoutingThresholds,
		callTimeout: defaultCallTimeout,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// stage describes one cascade tier: which corpus to address, how many
// results to retrieve, which thresholds to classify against, and how to
// turn a non-NoMatch batch into a response. A respond func returning a
// nil response falls through to the next tier.
type stage struct {
	name       string
	filter     storage.Filter
	topK       int
	thresholds Thresholds
	respond    func(ctx context.Context, query string, results []*core.SearchResult) (*Response, error)
}

func (r *Responder) stages() []stage {
	return []stage{
		{
			name:       "catalog",
			filter:     storage.Eq(storage.FieldCategory, core.CatalogCategory),
			topK:       1,
			thresholds: r.knowledge,
			respond:    r.respondCatalog,
		},
		{
			name: "knowledge",
			filter: storage.And(
				storage.DocTypeIs(core.DocTypeKnowledge),
				storage.Neq(storage.FieldCategory, core.CatalogCategory),
			),
			topK:       3,
			thresholds: r.knowledge,
			respond:    r.respondKnowledge,
		},
		{
			name:       "routing",
			filter:     storage.DocTypeIs(core.DocTypeRoutingExample),
			topK:       3,
			thresholds: r.routing,
			respond:    r.respondRouting,
		},
	}
}

// Ask runs the cascade for a query. Upstream failures (search, completion,
// timeouts) propagate to the caller; everything else resolves to a
// well-formed Response, terminally via the default fallback.
func (r *Responder) Ask(ctx context.Context, query string) (*Response, error) {
	r.logger.Info("handling query", "query", query)

	for _, st := range r.stages() {
		results, err := r.search(ctx, query, st)
		if err != nil {
			return nil, fmt.Errorf("%s lookup: %w", st.name, err)
		}

		class := Classify(results, st.thresholds)
		r.logger.Debug("stage classified",
			"stage", st.name,
			"classification", class.String(),
			"hits", len(results))

		if class == ClassificationNoMatch {
			continue
		}

		resp, err := st.respond(ctx, query, results)
		if err != nil {
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		if resp != nil {
			return resp, nil
		}
	}

	return r.respondDefaultFallback(ctx, query)
}

// Fallback handles the explicit "I did not get an answer" signal: the
// query is logged with the fallback marker and the default-fallback
// response shape is returned without re-running the cascade.
func (r *Responder) Fallback(ctx context.Context, query string) (*Response, error) {
	r.logger.Info("explicit fallback", "query", query)

	if err := r.recorder.RecordFallback(query); err != nil {
		r.logger.Error("failed to record fallback query", "query", query, "err", err)
	}

	// Empty prompt: the completion only returns the support contacts.
	answer, err := r.complete(ctx, ai.CompletionRequest{Confident: false})
	if err != nil {
		return nil, err
	}

	resp := newResponse()
	resp.Answer = answer
	resp.Source = SourceNotFound
	return resp, nil
}

// respondCatalog handles a catalog hit. Only a confident, version-resolved
// match answers from this stage; near misses fall through silently. The
// catalog never produces suggestions; those are only surfaced from the
// knowledge base onward.
func (r *Responder) respondCatalog(ctx context.Context, query string, results []*core.SearchResult) (*Response, error) {
	resolved := ResolveLatestVersions(results)
	r.logger.Debug("catalog version resolution", "before", len(results), "after", len(resolved))

	if Classify(resolved, r.knowledge) != ClassificationConfident {
		return nil, nil
	}

	doc := resolved[0].Document
	answer, err := r.complete(ctx, ai.CompletionRequest{
		Prompt:    query,
		Context:   []string{doc.Contents},
		Confident: true,
	})
	if err != nil {
		return nil, err
	}

	service := doc.ServiceName
	if service == "" {
		service = "this service"
	}

	resp := newResponse()
	resp.Answer = fmt.Sprintf(catalogPreambleFormat, service) + "\n\n---\n\n" + answer
	resp.Source = doc.Source
	resp.Confident = true
	resp.ShowFallbackButton = true
	return resp, nil
}

// respondKnowledge handles a knowledge-base batch: version-resolve the
// retrieved chunks, answer from every chunk that clears the confidence
// cutoff, or fall back to topic suggestions drawn from the suggestible ones.
func (r *Responder) respondKnowledge(ctx context.Context, query string, results []*core.SearchResult) (*Response, error) {
	resolved := ResolveLatestVersions(results)
	r.logger.Debug("knowledge version resolution", "before", len(results), "after", len(resolved))

	var confident []*core.SearchResult
	for _, res := range resolved {
		if res.Score >= r.knowledge.Confidence {
			confident = append(confident, res)
		}
	}

	if len(confident) > 0 {
		docs := make([]string, len(confident))
		for i, res := range confident {
			docs[i] = res.Document.Contents
		}
		answer, err := r.complete(ctx, ai.CompletionRequest{
			Prompt:    query,
			Context:   docs,
			Confident: true,
		})
		if err != nil {
			return nil, err
		}

		resp := newResponse()
		resp.Answer = answer
		resp.Source = confident[0].Document.Source
		resp.Confident = true
		resp.ShowFallbackButton = true
		return resp, nil
	}

	var categories []string
	for _, res := range resolved {
		if res.Score >= r.knowledge.Suggestion {
			category := res.Document.Category
			if category == "" {
				category = uncategorizedTopic
			}
			categories = append(categories, category)
		}
	}
	suggestions := distinctSorted(categories)
	if len(suggestions) == 0 {
		// Version resolution dropped everything usable; try the next tier.
		return nil, nil
	}

	resp := newResponse()
	resp.Answer = suggestTopicsAnswer
	resp.Suggestions = suggestions
	return resp, nil
}

// respondRouting handles the routing-example batch: a sufficiently strong
// top match with a department yields a confident hand-off, weaker matches
// yield department suggestions. Routing examples are not versioned
// documents, so no version resolution is applied here.
func (r *Responder) respondRouting(ctx context.Context, query string, results []*core.SearchResult) (*Response, error) {
	top := results[0]

	if top.Score >= r.routing.Confidence && top.Document.Department != "" {
		department := top.Document.Department
		r.logger.Info("query routed", "department", department)

		answer, err := r.complete(ctx, ai.CompletionRequest{
			Prompt:    query,
			Confident: false,
			Routing:   &ai.RoutingHint{Department: department},
		})
		if err != nil {
			return nil, err
		}

		resp := newResponse()
		resp.Answer = answer
		resp.Source = fmt.Sprintf(routedSourceFormat, department)
		resp.Confident = true
		resp.ShowFallbackButton = true
		return resp, nil
	}

	var departments []string
	for _, res := range results {
		if res.Score >= r.routing.Suggestion && res.Document.Department != "" {
			departments = append(departments, res.Document.Department)
		}
	}
	suggestions := distinctSorted(departments)
	if len(suggestions) == 0 {
		return nil, nil
	}

	resp := newResponse()
	resp.Answer = suggestDepartmentsAnswer
	resp.Suggestions = suggestions
	return resp, nil
}

// respondDefaultFallback is the terminal stage: record the unrecognized
// query and return the support-contact answer. A query-log write failure
// is logged but never prevents answering.
func (r *Responder) respondDefaultFallback(ctx context.Context, query string) (*Response, error) {
	r.logger.Info("no stage matched, falling back", "query", query)

	if err := r.recorder.Record(query); err != nil {
		r.logger.Error("failed to record unrecognized query", "query", query, "err", err)
	}

	answer, err := r.complete(ctx, ai.CompletionRequest{Prompt: query, Confident: false})
	if err != nil {
		return nil, err
	}

	resp := newResponse()
	resp.Answer = answer
	resp.Source = SourceNotFound
	return resp, nil
}

func (r *Responder) search(ctx context.Context, query string, st stage) ([]*core.SearchResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	return r.searcher.Search(ctx, query, st.topK, st.filter)
}

func (r *Responder) complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()
	return r.completer.Complete(ctx, req)
}

// distinctSorted deduplicates and alphabetically sorts a value list.
func distinctSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
