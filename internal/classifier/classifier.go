package classifier

import (
	"math"
	"strings"

	"lectern/internal/textutil"
)

// DefaultThreshold is the inclusive score at which a transcript counts as
// educational.
const DefaultThreshold = 5.0

// Match records how a single keyword contributed to the score.
type Match struct {
	Count  int     `json:"count"`
	Weight float64 `json:"weight"`
	Score  float64 `json:"score"`
}

// Result is the outcome of scoring one transcript.
type Result struct {
	TotalScore  float64          `json:"total_score"`
	Educational bool             `json:"educational"`
	Matches     map[string]Match `json:"keywords_matched"`
}

// Classifier scores transcripts against a lexicon.
type Classifier struct {
	lexicon   *Lexicon
	threshold float64
}

// Option customizes a Classifier.
type Option func(*Classifier)

// WithThreshold overrides the educational threshold. Non-positive values are
// ignored.
func WithThreshold(threshold float64) Option {
	return func(c *Classifier) {
		if threshold > 0 {
			c.threshold = threshold
		}
	}
}

// New constructs a classifier. A nil lexicon selects DefaultLexicon.
func New(lexicon *Lexicon, opts ...Option) *Classifier {
	if lexicon == nil {
		lexicon = DefaultLexicon()
	}
	c := &Classifier{lexicon: lexicon, threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Threshold returns the configured educational threshold.
func (c *Classifier) Threshold() float64 {
	return c.threshold
}

// Lexicon returns the lexicon the classifier scores against.
func (c *Classifier) Lexicon() *Lexicon {
	return c.lexicon
}

// Classify scores the transcript lines. It never fails; an empty transcript
// scores zero and is not educational.
func (c *Classifier) Classify(lines []string) Result {
	text := textutil.Normalize(textutil.JoinLines(lines))
	result := Result{Matches: make(map[string]Match)}
	if text == "" {
		return result
	}

	var total float64
	for _, entry := range c.lexicon.entries {
		count := strings.Count(text, entry.Keyword)
		if count == 0 {
			continue
		}
		raw := float64(count) * entry.Weight
		result.Matches[entry.Keyword] = Match{
			Count:  count,
			Weight: entry.Weight,
			Score:  round2(raw),
		}
		total += raw
	}
	result.TotalScore = round2(total)
	// The gate compares the unrounded sum so rounding never flips a verdict.
	result.Educational = total >= c.threshold
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
