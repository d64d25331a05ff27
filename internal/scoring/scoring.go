// Package scoring combines the keyword, importance and semantic scores
// into one overall score with a pass verdict and a recommendation tier.
package scoring

import (
	"fmt"

	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/tfidf"
	"github.com/spigell/hh-matcher/internal/vector"
)

// Recommendation is the coarse human-facing tier derived from the overall
// score.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "excellent"
	RecommendationGood      Recommendation = "good"
	RecommendationMaybe     Recommendation = "maybe"
	RecommendationPoor      Recommendation = "poor"
)

// Weights control the contribution of each sub-score. They are normalized
// by their sum, so {1, 1, 1} and {0.33, 0.33, 0.33} are equivalent.
type Weights struct {
	Keyword float64 `mapstructure:"keyword"`
	TFIDF   float64 `mapstructure:"tfidf"`
	Vector  float64 `mapstructure:"vector"`
}

// Bands hold the lower bounds of the recommendation tiers. Scores below
// Maybe are poor.
type Bands struct {
	Excellent float64 `mapstructure:"excellent"`
	Good      float64 `mapstructure:"good"`
	Maybe     float64 `mapstructure:"maybe"`
}

// Defaults: equal thirds, a pass at the "good" bound, and the standard
// tier bands.
var (
	DefaultWeights   = Weights{Keyword: 1, TFIDF: 1, Vector: 1}
	DefaultBands     = Bands{Excellent: 0.85, Good: 0.65, Maybe: 0.45}
	DefaultThreshold = 0.65
)

// UnifiedResult is the complete verdict for one (resume, vacancy) pair.
type UnifiedResult struct {
	OverallScore     float64        `json:"overall_score"`
	KeywordScore     float64        `json:"keyword_score"`
	TFIDFScore       float64        `json:"tfidf_score"`
	VectorScore      float64        `json:"vector_score"`
	VectorSimilarity float64        `json:"vector_similarity"`
	VectorMode       vector.Mode    `json:"vector_mode"`
	MatchedSkills    []string       `json:"matched_skills"`
	MissingSkills    []string       `json:"missing_skills"`
	TFIDFMatched     []string       `json:"tfidf_matched"`
	TFIDFMissing     []string       `json:"tfidf_missing"`
	Passed           bool           `json:"passed"`
	Recommendation   Recommendation `json:"recommendation"`
}

// Scorer computes unified results under a fixed weight and band
// configuration.
type Scorer struct {
	weights   Weights
	threshold float64
	bands     Bands
}

// NewScorer validates the configuration. Weights must be non-negative with
// a positive sum; bands must be ordered excellent >= good >= maybe so a
// higher score can never land in a strictly worse tier.
func NewScorer(weights Weights, threshold float64, bands Bands) (*Scorer, error) {
	if weights.Keyword < 0 || weights.TFIDF < 0 || weights.Vector < 0 {
		return nil, fmt.Errorf("score weights must be non-negative, got %+v", weights)
	}
	if weights.Keyword+weights.TFIDF+weights.Vector <= 0 {
		return nil, fmt.Errorf("score weights must sum to a positive value")
	}
	if bands.Excellent < bands.Good || bands.Good < bands.Maybe {
		return nil, fmt.Errorf("recommendation bands must be ordered excellent >= good >= maybe, got %+v", bands)
	}
	return &Scorer{weights: weights, threshold: threshold, bands: bands}, nil
}

// NewDefaultScorer builds a scorer with the package defaults.
func NewDefaultScorer() *Scorer {
	s, err := NewScorer(DefaultWeights, DefaultThreshold, DefaultBands)
	if err != nil {
		panic(err) // defaults are statically valid
	}
	return s
}

// Score combines the three sub-results. The keyword score is the match
// percentage scaled into [0, 1].
func (s *Scorer) Score(keyword matching.MultiResult, importance tfidf.Result, semantic vector.Result) UnifiedResult {
	keywordScore := keyword.Percentage / 100

	weightSum := s.weights.Keyword + s.weights.TFIDF + s.weights.Vector
	overall := (s.weights.Keyword*keywordScore +
		s.weights.TFIDF*importance.Score +
		s.weights.Vector*semantic.Score) / weightSum

	return UnifiedResult{
		OverallScore:     overall,
		KeywordScore:     keywordScore,
		TFIDFScore:       importance.Score,
		VectorScore:      semantic.Score,
		VectorSimilarity: semantic.Similarity,
		VectorMode:       semantic.Mode,
		MatchedSkills:    keyword.Matched,
		MissingSkills:    keyword.Missing,
		TFIDFMatched:     importance.Matched,
		TFIDFMissing:     importance.Missing,
		Passed:           overall >= s.threshold,
		Recommendation:   s.tier(overall),
	}
}

func (s *Scorer) tier(score float64) Recommendation {
	switch {
	case score >= s.bands.Excellent:
		return RecommendationExcellent
	case score >= s.bands.Good:
		return RecommendationGood
	case score >= s.bands.Maybe:
		return RecommendationMaybe
	default:
		return RecommendationPoor
	}
}
