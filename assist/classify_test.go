package assist

import (
	"testing"

	"github.com/poiesic/helpdesk/core"
	"github.com/stretchr/testify/assert"
)

func results(scores ...float32) []*core.SearchResult {
	out := make([]*core.SearchResult, len(scores))
	for i, s := range scores {
		out[i] = &core.SearchResult{Document: &core.Document{}, Score: s}
	}
	return out
}

func TestClassify(t *testing.T) {
	th := Thresholds{Suggestion: 0.3, Confidence: 0.5}

	tests := []struct {
		name    string
		results []*core.SearchResult
		want    Classification
	}{
		{"empty batch", nil, ClassificationNoMatch},
		{"below suggestion", results(0.1), ClassificationNoMatch},
		{"just below suggestion", results(0.29), ClassificationNoMatch},
		{"exactly at suggestion", results(0.3), ClassificationSuggestible},
		{"between thresholds", results(0.4), ClassificationSuggestible},
		{"exactly at confidence", results(0.5), ClassificationConfident},
		{"above confidence", results(0.9), ClassificationConfident},
		{"best of many decides", results(0.1, 0.62, 0.2), ClassificationConfident},
		{"many weak stay no match", results(0.1, 0.05, 0.2), ClassificationNoMatch},
		{"negative scores", results(-0.4, -0.1), ClassificationNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.results, th))
		})
	}
}

// Raising the best score must never lower the classification.
func TestClassify_Monotonic(t *testing.T) {
	th := DefaultKnowledgeThresholds

	prev := ClassificationNoMatch
	for score := float32(0.0); score <= 1.0; score += 0.01 {
		got := Classify(results(score), th)
		assert.GreaterOrEqual(t, int(got), int(prev), "score %.2f", score)
		prev = got
	}
}

func TestClassify_RoutingThresholds(t *testing.T) {
	// Routing confidence cutoff sits below the knowledge one.
	assert.Equal(t, ClassificationConfident, Classify(results(0.45), DefaultRoutingThresholds))
	assert.Equal(t, ClassificationSuggestible, Classify(results(0.45), DefaultKnowledgeThresholds))
}

func TestClassification_String(t *testing.T) {
	assert.Equal(t, "no_match", ClassificationNoMatch.String())
	assert.Equal(t, "suggestible", ClassificationSuggestible.String())
	assert.Equal(t, "confident", ClassificationConfident.String())
}
