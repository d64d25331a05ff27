package scoring

import (
	"testing"

	"github.com/spigell/hh-matcher/internal/matching"
	"github.com/spigell/hh-matcher/internal/tfidf"
	"github.com/spigell/hh-matcher/internal/vector"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreEqualThirdsByDefault(t *testing.T) {
	t.Parallel()

	result := NewDefaultScorer().Score(
		matching.MultiResult{Percentage: 90},
		tfidf.Result{Score: 0.6},
		vector.Result{Score: 0.3, Mode: vector.ModeOK},
	)

	assert.InDelta(t, (0.9+0.6+0.3)/3, result.OverallScore, 1e-9)
	assert.InDelta(t, 0.9, result.KeywordScore, 1e-9)
}

func TestScoreCustomWeightsNormalized(t *testing.T) {
	t.Parallel()

	scorer, err := NewScorer(Weights{Keyword: 2, TFIDF: 1, Vector: 1}, DefaultThreshold, DefaultBands)
	require.NoError(t, err)

	result := scorer.Score(
		matching.MultiResult{Percentage: 100},
		tfidf.Result{Score: 0},
		vector.Result{Score: 0},
	)

	assert.InDelta(t, 0.5, result.OverallScore, 1e-9)
}

func TestScorePassedThreshold(t *testing.T) {
	t.Parallel()

	scorer, err := NewScorer(DefaultWeights, 0.5, DefaultBands)
	require.NoError(t, err)

	passing := scorer.Score(matching.MultiResult{Percentage: 50}, tfidf.Result{Score: 0.5}, vector.Result{Score: 0.5})
	assert.True(t, passing.Passed)

	failing := scorer.Score(matching.MultiResult{Percentage: 10}, tfidf.Result{Score: 0.1}, vector.Result{Score: 0.1})
	assert.False(t, failing.Passed)
}

func TestRecommendationTiers(t *testing.T) {
	t.Parallel()

	scorer := NewDefaultScorer()

	tests := []struct {
		score  float64
		expect Recommendation
	}{
		{score: 0.95, expect: RecommendationExcellent},
		{score: 0.85, expect: RecommendationExcellent},
		{score: 0.70, expect: RecommendationGood},
		{score: 0.65, expect: RecommendationGood},
		{score: 0.50, expect: RecommendationMaybe},
		{score: 0.10, expect: RecommendationPoor},
	}

	for _, tt := range tests {
		if got := scorer.tier(tt.score); got != tt.expect {
			t.Fatalf("tier(%v): expected %s, got %s", tt.score, tt.expect, got)
		}
	}
}

func TestRecommendationMonotonicity(t *testing.T) {
	t.Parallel()

	rank := map[Recommendation]int{
		RecommendationPoor:      0,
		RecommendationMaybe:     1,
		RecommendationGood:      2,
		RecommendationExcellent: 3,
	}

	scorer := NewDefaultScorer()

	previous := -1
	for i := 0; i <= 1000; i++ {
		score := float64(i) / 1000
		current := rank[scorer.tier(score)]
		if current < previous {
			t.Fatalf("tier rank decreased at score %v", score)
		}
		previous = current
	}
}

func TestNewScorerRejectsInvalidConfig(t *testing.T) {
	t.Parallel()

	_, err := NewScorer(Weights{Keyword: -1, TFIDF: 1, Vector: 1}, 0.5, DefaultBands)
	assert.Error(t, err)

	_, err = NewScorer(Weights{}, 0.5, DefaultBands)
	assert.Error(t, err)

	_, err = NewScorer(DefaultWeights, 0.5, Bands{Excellent: 0.4, Good: 0.6, Maybe: 0.2})
	assert.Error(t, err)
}

func TestScoreCarriesSubResultDetails(t *testing.T) {
	t.Parallel()

	result := NewDefaultScorer().Score(
		matching.MultiResult{
			Percentage: 50,
			Matched:    []string{"go"},
			Missing:    []string{"kafka"},
		},
		tfidf.Result{Score: 0.5, Matched: []string{"go"}, Missing: []string{"kafka"}},
		vector.Result{Score: 1, Mode: vector.ModeDisabled},
	)

	assert.Equal(t, []string{"go"}, result.MatchedSkills)
	assert.Equal(t, []string{"kafka"}, result.MissingSkills)
	assert.Equal(t, vector.ModeDisabled, result.VectorMode)
}
