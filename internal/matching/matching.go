// Package matching decides whether a candidate's extracted skills satisfy
// a required skill. An ordered chain of strategies is evaluated per
// required skill and short-circuits on the first success: direct equality,
// compound splitting, the C-family hierarchy rules, context-scoped
// variants, taxonomy synonyms, and finally fuzzy similarity.
package matching

import (
	"math"

	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/taxonomy"
	"go.uber.org/zap"
)

// MatchType identifies which strategy produced a result.
type MatchType string

const (
	MatchDirect            MatchType = "direct"
	MatchCompound          MatchType = "compound"
	MatchLanguageHierarchy MatchType = "language_hierarchy"
	MatchContext           MatchType = "context"
	MatchSynonym           MatchType = "synonym"
	MatchFuzzy             MatchType = "fuzzy"
	MatchNone              MatchType = "none"
)

// Result is the outcome of matching one required skill against a resume.
// MatchedAs carries the resume skill (as supplied by the candidate) that
// satisfied the requirement; it is empty when nothing matched.
type Result struct {
	Matched    bool      `json:"matched"`
	Confidence float64   `json:"confidence"`
	MatchedAs  string    `json:"matched_as,omitempty"`
	Type       MatchType `json:"match_type"`
}

// Strategy is a single matching step. The boolean reports whether the
// strategy matched; the chain keeps going past strategies that did not.
type Strategy interface {
	Name() string
	Match(resumeSkills []string, required, context string, tax *taxonomy.Map) (Result, bool)
}

// Engine evaluates its strategies in order and stops at the first claim.
type Engine struct {
	strategies []Strategy
	logger     *zap.Logger
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithFuzzyThreshold overrides the default fuzzy-similarity acceptance
// threshold.
func WithFuzzyThreshold(threshold float64) Option {
	return func(e *Engine) {
		for i, s := range e.strategies {
			if _, ok := s.(*fuzzyStrategy); ok {
				e.strategies[i] = &fuzzyStrategy{threshold: threshold}
			}
		}
	}
}

// WithStrategies replaces the default chain entirely. Intended for tests
// and experiments with reordered strategies.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) { e.strategies = strategies }
}

// NewEngine builds the default strategy chain.
func NewEngine(logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		logger: logger,
		strategies: []Strategy{
			&directStrategy{},
			&compoundStrategy{},
			&languageHierarchyStrategy{},
			&contextStrategy{},
			&synonymStrategy{},
			&fuzzyStrategy{threshold: DefaultFuzzyThreshold},
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Match evaluates the chain for one required skill. Context may be empty.
func (e *Engine) Match(resumeSkills []string, required, context string, tax *taxonomy.Map) Result {
	for _, strategy := range e.strategies {
		result, ok := strategy.Match(resumeSkills, required, context, tax)
		if !ok {
			continue
		}
		if e.logger != nil {
			e.logger.Debug("skill matched",
				zap.String("required", required),
				zap.String("matched_as", result.MatchedAs),
				zap.String(logger.FieldStrategy, strategy.Name()),
				zap.Float64("confidence", result.Confidence),
			)
		}
		return result
	}

	return Result{Matched: false, Confidence: 0, Type: MatchNone}
}

// MultiResult aggregates per-skill results for a whole requirement list.
type MultiResult struct {
	Results    map[string]Result `json:"results"`
	Matched    []string          `json:"matched_skills"`
	Missing    []string          `json:"missing_skills"`
	Percentage float64           `json:"match_percentage"`
}

// MatchMultiple applies Match per required skill. The percentage is
// matched/total*100 rounded to two decimals; zero when nothing is required.
func (e *Engine) MatchMultiple(resumeSkills, requiredSkills []string, context string, tax *taxonomy.Map) MultiResult {
	out := MultiResult{
		Results: make(map[string]Result, len(requiredSkills)),
		Matched: []string{},
		Missing: []string{},
	}

	for _, required := range requiredSkills {
		result := e.Match(resumeSkills, required, context, tax)
		out.Results[required] = result
		if result.Matched {
			out.Matched = append(out.Matched, required)
		} else {
			out.Missing = append(out.Missing, required)
		}
	}

	if len(requiredSkills) > 0 {
		raw := float64(len(out.Matched)) / float64(len(requiredSkills)) * 100
		out.Percentage = math.Round(raw*100) / 100
	}

	return out
}
