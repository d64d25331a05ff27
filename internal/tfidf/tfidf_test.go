package tfidf

import (
	"testing"

	"github.com/spigell/hh-matcher/internal/taxonomy"
	"github.com/spigell/hh-matcher/internal/vacancy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreFullCoverage(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, nil)
	vac := &vacancy.Vacancy{
		Title:          "Go Developer",
		Description:    "Go services with PostgreSQL",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	}

	result := m.Score([]string{"Go", "PostgreSQL"}, vac, nil)

	assert.InDelta(t, 1.0, result.Score, 1e-9)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestScoreWeightsRepeatedTermsHigher(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, nil)
	vac := &vacancy.Vacancy{
		Title:          "Platform Engineer",
		Description:    "Kubernetes Kubernetes Kubernetes and some Terraform",
		RequiredSkills: []string{"Kubernetes", "Terraform"},
	}

	covered := m.Score([]string{"Kubernetes"}, vac, nil)
	require.Len(t, covered.Missing, 1)

	// Kubernetes appears four times (description plus the requirement
	// itself), Terraform twice, so covering Kubernetes alone must yield
	// more than half the mass.
	assert.Greater(t, covered.Score, 0.5)
	assert.Equal(t, "Kubernetes", covered.Matched[0])
	assert.Equal(t, "Terraform", covered.Missing[0])
}

func TestScoreSynonymAwareNotSubstring(t *testing.T) {
	t.Parallel()

	tax := taxonomy.Merge(taxonomy.Layer{"SQL": {"SQL", "PostgreSQL"}}, taxonomy.Layer{}, taxonomy.Layer{})
	m := NewMatcher(nil, nil)
	vac := &vacancy.Vacancy{Title: "DBA", RequiredSkills: []string{"SQL"}}

	viaSynonym := m.Score([]string{"PostgreSQL"}, vac, tax)
	assert.InDelta(t, 1.0, viaSynonym.Score, 1e-9)

	// "weblogic" shares no variant with SQL; nothing else may count.
	viaSubstring := m.Score([]string{"weblogic"}, vac, tax)
	assert.Zero(t, viaSubstring.Score)
	assert.Equal(t, []string{"SQL"}, viaSubstring.Missing)
}

func TestScoreMissingRankedByImportance(t *testing.T) {
	t.Parallel()

	corpus := TokenizeDocs([]string{
		"python developer with sql and docker",
		"python engineer docker compose",
		"python analyst sql reporting",
	})
	m := NewMatcher(corpus, nil)

	vac := &vacancy.Vacancy{
		Title:          "Data Engineer",
		Description:    "airflow airflow airflow pipelines with python",
		RequiredSkills: []string{"python", "airflow"},
	}

	result := m.Score(nil, vac, nil)

	require.Len(t, result.Missing, 2)
	// airflow is both more frequent in this vacancy and rarer in the
	// corpus, so it must rank above python.
	assert.Equal(t, "airflow", result.Missing[0])
	assert.Equal(t, "python", result.Missing[1])
	assert.Zero(t, result.Score)
}

func TestScoreEmptyRequirements(t *testing.T) {
	t.Parallel()

	m := NewMatcher(nil, nil)
	result := m.Score([]string{"Go"}, &vacancy.Vacancy{Title: "Anything"}, nil)

	assert.Zero(t, result.Score)
	assert.Empty(t, result.Matched)
	assert.Empty(t, result.Missing)
}

func TestTokenizeDropsSingleLetterNoise(t *testing.T) {
	t.Parallel()

	tokens := Tokenize("a Go developer with C and R experience")
	assert.Contains(t, tokens, "go")
	assert.Contains(t, tokens, "c")
	assert.Contains(t, tokens, "r")
	assert.NotContains(t, tokens, "a")
}
