package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// Document IDs are derived from chunk content so that re-ingesting
// identical text never creates duplicate records.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// DocType identifies which corpus a document belongs to.
type DocType int

const (
	// DocTypeKnowledge marks knowledge-base and IT-catalog documents.
	DocTypeKnowledge DocType = iota + 1
	// DocTypeRoutingExample marks example requests used for department routing.
	DocTypeRoutingExample
)

// String returns the wire name of the document type.
func (dt DocType) String() string {
	switch dt {
	case DocTypeKnowledge:
		return "knowledge"
	case DocTypeRoutingExample:
		return "routing_example"
	default:
		return "unknown"
	}
}

// CatalogCategory is the reserved category of the IT-service catalog corpus.
// Catalog documents carry DocTypeKnowledge but are queried separately by
// the first cascade stage.
const CatalogCategory = "it_service_catalog"

// Document represents a single indexed text chunk together with the
// metadata the cascade needs: versioning fields (Source, LoadDate),
// corpus selectors (Category, DocType), and the per-corpus optional
// fields (ServiceName for catalog rows, Department for routing examples).
type Document struct {
	Id          ID
	Contents    string
	Vector      []float32 // Unit-normalized embedding (populated at ingestion)
	Source      string    // Originating file name; required for version resolution
	Category    string
	DocType     DocType
	LoadDate    time.Time // When this version of the source was ingested; required for version resolution
	ServiceName string    // Catalog rows only
	Department  string    // Routing examples only
	InsertedAt  time.Time
}

// Versioned reports whether the document carries the metadata required
// for version resolution. Documents lacking either field are excluded
// from the deduplicated set, never silently kept.
func (d *Document) Versioned() bool {
	return d.Source != "" && !d.LoadDate.IsZero()
}

// SearchResult represents a retrieved document with its similarity score.
// Score is a cosine similarity in [-1, 1], where 1 means identical.
type SearchResult struct {
	Document *Document
	Score    float32
}
