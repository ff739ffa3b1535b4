package ingestion

import (
	"context"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/helpdesk/ai"
	"github.com/poiesic/helpdesk/core"
	"github.com/poiesic/helpdesk/storage"
	"github.com/tmc/langchaingo/textsplitter"
)

// routingDirName marks a directory whose spreadsheets hold routing
// examples rather than knowledge documents.
const routingDirName = "routing_examples"

const (
	chunkSize    = 1000
	chunkOverlap = 200
)

// Stats summarizes a LoadDirectory run.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	ChunksStored   int
}

// Pipeline loads source documents, splits them into chunks, embeds the
// chunks and stores them for retrieval. Embedding work runs on a worker
// pool so large directories ingest concurrently.
type Pipeline struct {
	documents storage.DocumentRepository
	embedder  ai.Embedder
	pool      *ants.Pool
	splitter  textsplitter.RecursiveCharacter
	logger    *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(documents storage.DocumentRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if documents == nil {
		return nil, ErrDocumentRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		documents: documents,
		embedder:  provider.Embedder(),
		pool:      pool,
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
		logger: slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// LoadDirectory walks the source tree and ingests every supported file.
// The immediate parent directory of a file becomes its category;
// spreadsheets under a routing_examples directory become routing
// examples. Files that fail to parse are skipped with a warning so one
// bad document does not abort a bulk load.
func (p *Pipeline) LoadDirectory(ctx context.Context, root string) (*Stats, error) {
	stats := &Stats{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), "~") {
			return nil
		}

		category := filepath.Base(filepath.Dir(path))
		routing := category == routingDirName

		docs, chunkErr := p.chunkFile(path, category, routing)
		if chunkErr != nil {
			p.logger.Warn("skipping file", "path", path, "err", chunkErr)
			mu.Lock()
			stats.FilesSkipped++
			mu.Unlock()
			return nil
		}
		if len(docs) == 0 {
			mu.Lock()
			stats.FilesSkipped++
			mu.Unlock()
			return nil
		}

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			stored, storeErr := p.embedAndStore(ctx, docs)
			if storeErr != nil {
				p.logger.Error("error ingesting file", "path", path, "err", storeErr)
				mu.Lock()
				stats.FilesSkipped++
				mu.Unlock()
				return
			}
			mu.Lock()
			stats.FilesProcessed++
			stats.ChunksStored += stored
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			return submitErr
		}
		return nil
	})

	wg.Wait()
	if err != nil {
		return stats, err
	}

	p.logger.Info("directory loaded", "root", root,
		"files", stats.FilesProcessed, "skipped", stats.FilesSkipped, "chunks", stats.ChunksStored)
	return stats, nil
}

// LoadFile ingests a single file synchronously and returns the number of
// chunks stored. Used by the upload endpoint.
func (p *Pipeline) LoadFile(ctx context.Context, path, category string) (int, error) {
	docs, err := p.chunkFile(path, category, category == routingDirName)
	if err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, ErrEmptyDocument
	}
	return p.embedAndStore(ctx, docs)
}

// chunkFile turns one source file into unembedded documents.
func (p *Pipeline) chunkFile(path, category string, routing bool) ([]*core.Document, error) {
	loadDate := time.Now().UTC()

	if fileExt(path) == ".xlsx" {
		if routing {
			return parseRoutingXLSX(path, loadDate)
		}
		return parseCatalogXLSX(path, category, loadDate)
	}

	text, err := extractText(path, p.logger)
	if err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDocument
	}

	chunks, err := p.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	source := filepath.Base(path)
	docs := make([]*core.Document, 0, len(chunks))
	for _, chunk := range chunks {
		docs = append(docs, &core.Document{
			Contents: chunk,
			Source:   source,
			Category: category,
			DocType:  core.DocTypeKnowledge,
			LoadDate: loadDate,
		})
	}
	return docs, nil
}

// embedAndStore fills in vectors and persists the batch.
func (p *Pipeline) embedAndStore(ctx context.Context, docs []*core.Document) (int, error) {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Contents
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return 0, err
	}

	for i, doc := range docs {
		doc.Vector = vectors[i]
	}

	added, err := p.documents.AddDocuments(ctx, docs...)
	if err != nil {
		return 0, err
	}
	return len(added), nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
