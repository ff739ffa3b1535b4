// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package helpdesk

import (
	"log/slog"

	"github.com/poiesic/helpdesk/ai"
	"github.com/poiesic/helpdesk/ai/openai"
	"github.com/poiesic/helpdesk/assist"
	"github.com/poiesic/helpdesk/ingestion"
	"github.com/poiesic/helpdesk/querylog"
	"github.com/poiesic/helpdesk/search"
	"github.com/poiesic/helpdesk/storage"
	"github.com/poiesic/helpdesk/storage/badger"
)

// Assistant bundles the storage backend, AI provider and query log, and
// hands out the services built on them.
type Assistant struct {
	backend   *badger.Backend
	documents storage.DocumentRepository
	provider  ai.AIProvider
	queries   *querylog.Log
	logger    *slog.Logger
}

// AssistantOption configures an Assistant.
type AssistantOption func(*assistantOptions)

type assistantOptions struct {
	aiConfig     *ai.Config
	queryLogPath string
}

// WithAIConfig overrides the default AI endpoint configuration.
func WithAIConfig(cfg *ai.Config) AssistantOption {
	return func(o *assistantOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithQueryLogPath sets where unanswered queries are recorded.
// Default is "unanswered_queries.log" in the working directory.
func WithQueryLogPath(path string) AssistantOption {
	return func(o *assistantOptions) {
		if path != "" {
			o.queryLogPath = path
		}
	}
}

// NewAssistant opens the document store at filePath and wires up the AI
// provider and the query log.
func NewAssistant(filePath string, opts ...AssistantOption) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig:     ai.DefaultConfig(),
		queryLogPath: "unanswered_queries.log",
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		documents.Close()
		backend.Close()
		return nil, err
	}

	queries, err := querylog.Open(options.queryLogPath)
	if err != nil {
		provider.Close()
		documents.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:   backend,
		documents: documents,
		provider:  provider,
		queries:   queries,
		logger:    slog.Default(),
	}, nil
}

func (a *Assistant) Close() error {
	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}

	if err := a.queries.Close(); err != nil {
		a.logger.Error("error closing query log", "err", err)
	}

	if err := a.documents.Close(); err != nil {
		a.logger.Error("error closing document repository", "err", err)
		return err
	}

	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (a *Assistant) DocumentRepository() storage.DocumentRepository {
	return a.documents
}

func (a *Assistant) QueryLog() *querylog.Log {
	return a.queries
}

func (a *Assistant) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(a.documents, a.provider, opts...)
}

// NewResponder builds the tiered responder over a fresh searcher.
func (a *Assistant) NewResponder(opts ...assist.Option) (*assist.Responder, error) {
	searcher, err := a.NewSearcher()
	if err != nil {
		return nil, err
	}
	return assist.NewResponder(searcher, a.provider.Completer(), a.queries, opts...)
}

func (a *Assistant) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(a.documents, a.provider, opts...)
}
