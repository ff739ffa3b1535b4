package badger

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/helpdesk/core"
	"github.com/poiesic/helpdesk/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDoc(contents, source, category string, vector []float32) *core.Document {
	return &core.Document{
		Contents: contents,
		Source:   source,
		Category: category,
		DocType:  core.DocTypeKnowledge,
		LoadDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Vector:   vector,
	}
}

func TestAddDocuments(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	t.Run("assigns content-based IDs and timestamps", func(t *testing.T) {
		doc := testDoc("reset instructions", "passwords.docx", "accounts", nil)
		added, err := repo.AddDocuments(ctx, doc)
		require.NoError(t, err)
		require.Len(t, added, 1)
		assert.NotZero(t, added[0].Id)
		assert.False(t, added[0].InsertedAt.IsZero())
	})

	t.Run("identical chunk gets identical ID", func(t *testing.T) {
		a := testDoc("same text", "guide.docx", "misc", nil)
		b := testDoc("same text", "guide.docx", "misc", nil)
		_, err := repo.AddDocuments(ctx, a)
		require.NoError(t, err)
		_, err = repo.AddDocuments(ctx, b)
		require.NoError(t, err)
		assert.Equal(t, a.Id, b.Id)
	})

	t.Run("same text from different sources gets different IDs", func(t *testing.T) {
		a := testDoc("shared paragraph", "one.docx", "misc", nil)
		b := testDoc("shared paragraph", "two.docx", "misc", nil)
		_, err := repo.AddDocuments(ctx, a, b)
		require.NoError(t, err)
		assert.NotEqual(t, a.Id, b.Id)
	})

	t.Run("rejects invalid documents", func(t *testing.T) {
		bad := &core.Document{DocType: core.DocTypeKnowledge}
		_, err := repo.AddDocuments(ctx, bad)
		assert.ErrorIs(t, err, core.ErrEmptyContent)
	})
}

func TestGetDocument(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	doc := testDoc("vpn setup steps", "vpn.docx", "network", []float32{0.1, 0.2})
	_, err = repo.AddDocuments(ctx, doc)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.GetDocument(ctx, doc.Id)
		require.NoError(t, err)
		assert.Equal(t, doc.Contents, got.Contents)
		assert.Equal(t, doc.Source, got.Source)
		assert.Equal(t, doc.Category, got.Category)
		assert.Equal(t, doc.DocType, got.DocType)
		assert.Equal(t, doc.Vector, got.Vector)
		assert.True(t, doc.LoadDate.Equal(got.LoadDate))
	})

	t.Run("missing document", func(t *testing.T) {
		_, err := repo.GetDocument(ctx, core.ID(12345))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeleteSource(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	for _, contents := range []string{"chunk one", "chunk two", "chunk three"} {
		_, err := repo.AddDocuments(ctx, testDoc(contents, "doomed.docx", "misc", nil))
		require.NoError(t, err)
	}
	_, err = repo.AddDocuments(ctx, testDoc("survivor", "other.docx", "misc", nil))
	require.NoError(t, err)

	removed, err := repo.DeleteSource(ctx, "doomed.docx")
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	t.Run("missing source is not an error", func(t *testing.T) {
		removed, err := repo.DeleteSource(ctx, "never_loaded.docx")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})
}

func TestCountDocuments(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	count, err := repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	_, err = repo.AddDocuments(ctx,
		testDoc("a", "f.docx", "misc", nil),
		testDoc("b", "f.docx", "misc", nil),
	)
	require.NoError(t, err)

	// Source-index entries must not inflate the count.
	count, err = repo.CountDocuments(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestFindSimilar(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer backend.Close()

	ctx := context.Background()

	// Unit vectors along distinct directions; dot product with the query
	// vector yields the cosine similarity directly.
	docs := []*core.Document{
		testDoc("exact topic", "a.docx", "accounts", []float32{1, 0, 0}),
		testDoc("related topic", "b.docx", "accounts", []float32{0.8, 0.6, 0}),
		testDoc("unrelated topic", "c.docx", "network", []float32{0, 0, 1}),
	}
	_, err = repo.AddDocuments(ctx, docs...)
	require.NoError(t, err)

	// Unembedded chunks are not searchable.
	_, err = repo.AddDocuments(ctx, testDoc("no vector yet", "d.docx", "accounts", nil))
	require.NoError(t, err)

	query := []float32{1, 0, 0}

	t.Run("orders by score descending", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, query, storage.Filter{}, 10)
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.Equal(t, "exact topic", results[0].Document.Contents)
		assert.Equal(t, "related topic", results[1].Document.Contents)
		assert.InDelta(t, 1.0, results[0].Score, 1e-6)
		assert.InDelta(t, 0.8, results[1].Score, 1e-6)
		assert.InDelta(t, 0.0, results[2].Score, 1e-6)
	})

	t.Run("applies the filter", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, query, storage.Eq(storage.FieldCategory, "network"), 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "unrelated topic", results[0].Document.Contents)
	})

	t.Run("applies the limit", func(t *testing.T) {
		results, err := repo.FindSimilar(ctx, query, storage.Filter{}, 2)
		require.NoError(t, err)
		assert.Len(t, results, 2)
	})

	t.Run("no minimum score", func(t *testing.T) {
		// Even orthogonal documents come back; thresholds belong to the caller.
		results, err := repo.FindSimilar(ctx, []float32{0, 1, 0}, storage.Eq(storage.FieldCategory, "network"), 10)
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.InDelta(t, 0.0, results[0].Score, 1e-6)
	})
}
