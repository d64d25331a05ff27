// Package tfidf scores how much of a vacancy's term-importance mass a
// resume covers. Importance per required skill is term frequency inside
// the vacancy's title+description+required-skills text, weighted by
// inverse document frequency over an optional historical-vacancy reference
// corpus. Without a corpus every term carries IDF 1, which degrades the
// weighting to raw term frequency. This choice is fixed: callers supply
// the corpus at construction or accept frequency-only weighting.
package tfidf

import (
	"math"
	"sort"
	"strings"

	"github.com/spigell/hh-matcher/internal/skills"
	"github.com/spigell/hh-matcher/internal/taxonomy"
	"github.com/spigell/hh-matcher/internal/vacancy"
	"go.uber.org/zap"
)

// Result is the importance-weighted coverage outcome. Matched and Missing
// are ranked by descending importance.
type Result struct {
	Score   float64  `json:"tfidf_score"`
	Matched []string `json:"tfidf_matched"`
	Missing []string `json:"tfidf_missing"`
}

// Matcher holds the IDF table built from the reference corpus.
type Matcher struct {
	idf        map[string]float64
	defaultIDF float64
	logger     *zap.Logger
}

// NewMatcher builds a matcher over the reference corpus, given as one
// token list per historical vacancy document. A nil or empty corpus is
// valid and yields frequency-only weighting.
func NewMatcher(corpus [][]string, logger *zap.Logger) *Matcher {
	m := &Matcher{logger: logger, defaultIDF: 1}
	if len(corpus) == 0 {
		return m
	}

	df := map[string]int{}
	for _, doc := range corpus {
		seen := map[string]bool{}
		for _, token := range doc {
			if seen[token] {
				continue
			}
			seen[token] = true
			df[token]++
		}
	}

	m.idf = make(map[string]float64, len(df))
	for token, count := range df {
		value := math.Log(1 + float64(len(corpus))/float64(1+count))
		m.idf[token] = value
		if value > m.defaultIDF {
			m.defaultIDF = value
		}
	}

	if logger != nil {
		logger.Debug("tfidf reference corpus indexed",
			zap.Int("documents", len(corpus)),
			zap.Int("terms", len(df)),
		)
	}

	return m
}

func (m *Matcher) idfValue(token string) float64 {
	if v, ok := m.idf[token]; ok {
		return v
	}
	return m.defaultIDF
}

// Score computes the fraction of the vacancy's importance mass the resume
// covers across required skills. Required skills are matched synonym-aware
// through the taxonomy, never by substring.
func (m *Matcher) Score(resumeSkills []string, vac *vacancy.Vacancy, tax *taxonomy.Map) Result {
	out := Result{Matched: []string{}, Missing: []string{}}
	if vac == nil || len(vac.RequiredSkills) == 0 {
		return out
	}

	tf := termFrequencies(Tokenize(vac.SearchText()))
	resumeTerms := resumeTermSet(resumeSkills)

	type weighted struct {
		skill   string
		weight  float64
		covered bool
	}

	entries := make([]weighted, 0, len(vac.RequiredSkills))
	var total, covered float64

	for _, required := range vac.RequiredSkills {
		weight := m.importance(required, tf)
		matched := m.covers(resumeTerms, required, tax)

		entries = append(entries, weighted{skill: required, weight: weight, covered: matched})
		total += weight
		if matched {
			covered += weight
		}
	}

	if total > 0 {
		out.Score = covered / total
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].weight > entries[j].weight })
	for _, e := range entries {
		if e.covered {
			out.Matched = append(out.Matched, e.skill)
		} else {
			out.Missing = append(out.Missing, e.skill)
		}
	}

	if m.logger != nil {
		m.logger.Debug("tfidf coverage computed",
			zap.Float64("score", out.Score),
			zap.Int("matched", len(out.Matched)),
			zap.Int("missing", len(out.Missing)),
		)
	}

	return out
}

// importance is tf * idf summed over the skill's tokens, floored at the
// skill's plain IDF so every required skill carries mass even when the
// description never repeats it.
func (m *Matcher) importance(required string, tf map[string]int) float64 {
	tokens := Tokenize(required)
	if len(tokens) == 0 {
		tokens = []string{skills.Normalize(required)}
	}

	var weight float64
	for _, token := range tokens {
		weight += float64(tf[token]) * m.idfValue(token)
	}
	if weight == 0 {
		weight = m.idfValue(skills.Normalize(required))
	}
	return weight
}

func (m *Matcher) covers(resumeTerms map[string]bool, required string, tax *taxonomy.Map) bool {
	normalized := skills.Normalize(required)
	if resumeTerms[normalized] {
		return true
	}
	if tax == nil {
		return false
	}
	for variant := range tax.FindVariantSet(required) {
		if resumeTerms[variant] {
			return true
		}
	}
	return false
}

func resumeTermSet(resumeSkills []string) map[string]bool {
	set := map[string]bool{}
	for _, skill := range resumeSkills {
		if normalized := skills.Normalize(skill); normalized != "" {
			set[normalized] = true
		}
		for _, part := range skills.SplitCompound(skill) {
			set[part] = true
		}
	}
	return set
}

func termFrequencies(tokens []string) map[string]int {
	tf := make(map[string]int, len(tokens))
	for _, token := range tokens {
		tf[token]++
	}
	return tf
}

// Tokenize splits free text into normalized single-word terms. Used for
// vacancy text and reference corpus documents alike, so IDF lookups and
// term frequencies share one vocabulary.
func Tokenize(text string) []string {
	fields := strings.Fields(skills.Normalize(text))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 || f == "c" || f == "r" {
			out = append(out, f)
		}
	}
	return out
}

// TokenizeDocs prepares a reference corpus from raw document strings.
func TokenizeDocs(docs []string) [][]string {
	out := make([][]string, 0, len(docs))
	for _, doc := range docs {
		out = append(out, Tokenize(doc))
	}
	return out
}
