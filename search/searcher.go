package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/helpdesk/ai"
	"github.com/poiesic/helpdesk/core"
	"github.com/poiesic/helpdesk/storage"
)

// Searcher performs filtered semantic search over indexed documents.
// It embeds the query text and delegates the vector comparison to the
// document repository, returning up to topK results ordered by
// descending similarity. Scores are cosine similarities in [-1, 1];
// no threshold is applied here, classification belongs to the caller.
type Searcher struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	logger    *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	documents storage.DocumentRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Searcher, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		documents: documents,
		embedder:  provider.Embedder(),
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search returns up to topK documents matching the filter, ranked by
// similarity to the query.
func (s *Searcher) Search(ctx context.Context, query string, topK int, filter storage.Filter) ([]*core.SearchResult, error) {
	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", query, "err", err)
		return nil, err
	}

	results, err := s.documents.FindSimilar(ctx, embedding, filter, topK)
	if err != nil {
		s.logger.Error("error querying for similar documents", "filter", filter.String(), "err", err)
		return nil, err
	}

	s.logger.Debug("search complete",
		"filter", filter.String(),
		"topK", topK,
		"hits", len(results))

	return results, nil
}
