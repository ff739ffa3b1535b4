package assist

import "github.com/poiesic/helpdesk/core"

// Classification grades a retrieval batch by the strength of its best match.
type Classification int

const (
	// ClassificationNoMatch means nothing relevant was retrieved.
	ClassificationNoMatch Classification = iota
	// ClassificationSuggestible means the best match is plausible but not
	// authoritative; it may be surfaced as a suggestion.
	ClassificationSuggestible
	// ClassificationConfident means the best match is authoritative enough
	// to answer from.
	ClassificationConfident
)

// String returns a human-readable name for logging.
func (c Classification) String() string {
	switch c {
	case ClassificationSuggestible:
		return "suggestible"
	case ClassificationConfident:
		return "confident"
	default:
		return "no_match"
	}
}

// Thresholds holds the two similarity cutoffs a cascade stage classifies
// against. Scores are cosine similarities in [-1, 1].
type Thresholds struct {
	// Suggestion is the minimum score to surface a match as a
	// possible-but-uncertain option.
	Suggestion float32
	// Confidence is the minimum score to treat a match as authoritative.
	Confidence float32
}

var (
	// DefaultKnowledgeThresholds applies to the IT-catalog and
	// knowledge-base stages.
	DefaultKnowledgeThresholds = Thresholds{Suggestion: 0.3, Confidence: 0.5}

	// DefaultRoutingThresholds applies to the routing stage. The
	// confidence cutoff is lower than the knowledge stages': picking a
	// department for a human to handle needs less certainty than issuing
	// a final answer. The two threshold sets stay independently
	// configurable.
	DefaultRoutingThresholds = Thresholds{Suggestion: 0.3, Confidence: 0.4}
)

// Classify grades a retrieval batch. The result is a pure function of the
// highest score: an empty batch or best score below the suggestion cutoff
// is NoMatch, below the confidence cutoff is Suggestible, and at or above
// it is Confident. Monotonic: raising the best score never lowers the
// classification.
func Classify(results []*core.SearchResult, th Thresholds) Classification {
	if len(results) == 0 {
		return ClassificationNoMatch
	}
	best := bestScore(results)
	switch {
	case best >= th.Confidence:
		return ClassificationConfident
	case best >= th.Suggestion:
		return ClassificationSuggestible
	default:
		return ClassificationNoMatch
	}
}

func bestScore(results []*core.SearchResult) float32 {
	best := results[0].Score
	for _, r := range results[1:] {
		if r.Score > best {
			best = r.Score
		}
	}
	return best
}
