package assist

import (
	"testing"
	"time"

	"github.com/poiesic/helpdesk/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func versioned(source string, loaded time.Time, score float32) *core.SearchResult {
	return &core.SearchResult{
		Document: &core.Document{
			Contents: "chunk from " + source,
			Source:   source,
			LoadDate: loaded,
			DocType:  core.DocTypeKnowledge,
		},
		Score: score,
	}
}

func TestResolveLatestVersions(t *testing.T) {
	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("keeps newest copy per source", func(t *testing.T) {
		old := versioned("vpn_guide.docx", older, 0.8)
		new_ := versioned("vpn_guide.docx", newer, 0.6)

		resolved := ResolveLatestVersions([]*core.SearchResult{old, new_})
		require.Len(t, resolved, 1)
		assert.Equal(t, newer, resolved[0].Document.LoadDate)
		// The kept result carries its own score, not the best one.
		assert.Equal(t, float32(0.6), resolved[0].Score)
	})

	t.Run("order independent of which copy comes first", func(t *testing.T) {
		old := versioned("vpn_guide.docx", older, 0.8)
		new_ := versioned("vpn_guide.docx", newer, 0.6)

		a := ResolveLatestVersions([]*core.SearchResult{old, new_})
		b := ResolveLatestVersions([]*core.SearchResult{new_, old})
		require.Len(t, a, 1)
		require.Len(t, b, 1)
		assert.Same(t, a[0], b[0])
	})

	t.Run("distinct sources all survive", func(t *testing.T) {
		resolved := ResolveLatestVersions([]*core.SearchResult{
			versioned("a.docx", older, 0.5),
			versioned("b.docx", older, 0.4),
			versioned("c.pdf", newer, 0.3),
		})
		require.Len(t, resolved, 3)
		assert.Equal(t, "a.docx", resolved[0].Document.Source)
		assert.Equal(t, "b.docx", resolved[1].Document.Source)
		assert.Equal(t, "c.pdf", resolved[2].Document.Source)
	})

	t.Run("drops results without versioning metadata", func(t *testing.T) {
		noSource := versioned("", older, 0.9)
		noDate := versioned("x.docx", time.Time{}, 0.9)

		resolved := ResolveLatestVersions([]*core.SearchResult{
			noSource, noDate, versioned("kept.docx", older, 0.5),
		})
		require.Len(t, resolved, 1)
		assert.Equal(t, "kept.docx", resolved[0].Document.Source)
	})

	t.Run("tied load dates keep the first seen", func(t *testing.T) {
		first := versioned("tie.docx", older, 0.7)
		second := versioned("tie.docx", older, 0.2)

		resolved := ResolveLatestVersions([]*core.SearchResult{first, second})
		require.Len(t, resolved, 1)
		assert.Same(t, first, resolved[0])
	})

	t.Run("idempotent", func(t *testing.T) {
		input := []*core.SearchResult{
			versioned("a.docx", older, 0.5),
			versioned("a.docx", newer, 0.4),
			versioned("b.docx", older, 0.3),
		}
		once := ResolveLatestVersions(input)
		twice := ResolveLatestVersions(once)
		assert.Equal(t, once, twice)
	})

	t.Run("nil entries ignored", func(t *testing.T) {
		resolved := ResolveLatestVersions([]*core.SearchResult{
			nil,
			{Document: nil, Score: 0.9},
			versioned("a.docx", older, 0.5),
		})
		require.Len(t, resolved, 1)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ResolveLatestVersions(nil))
	})
}
