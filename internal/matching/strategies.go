package matching

import (
	"strings"

	"github.com/spigell/hh-matcher/internal/skills"
	"github.com/spigell/hh-matcher/internal/taxonomy"
)

const (
	confidenceDirect      = 1.0
	confidenceCompound    = 0.9
	confidenceHierarchy   = 0.85
	confidenceExactFamily = 0.95
	confidenceContext     = 0.95
	confidenceCanonical   = 0.95
	confidenceVariant     = 0.85
)

type directStrategy struct{}

func (s *directStrategy) Name() string { return "direct" }

func (s *directStrategy) Match(resumeSkills []string, required, _ string, _ *taxonomy.Map) (Result, bool) {
	want := skills.Normalize(required)
	if want == "" {
		return Result{}, false
	}
	for _, skill := range resumeSkills {
		if skills.Normalize(skill) == want {
			return Result{Matched: true, Confidence: confidenceDirect, MatchedAs: skill, Type: MatchDirect}, true
		}
	}
	return Result{}, false
}

type compoundStrategy struct{}

func (s *compoundStrategy) Name() string { return "compound" }

func (s *compoundStrategy) Match(resumeSkills []string, required, _ string, _ *taxonomy.Map) (Result, bool) {
	want := skills.Normalize(required)
	if want == "" {
		return Result{}, false
	}
	for _, skill := range resumeSkills {
		for _, part := range skills.SplitCompound(skill) {
			if part == want {
				return Result{Matched: true, Confidence: confidenceCompound, MatchedAs: skill, Type: MatchCompound}, true
			}
		}
	}
	return Result{}, false
}

// languageHierarchyStrategy encodes the C-family rules. Requiring "c"
// accepts c++ spellings, but never anything that looks like C#: naive
// matching would otherwise conflate C# with C. Requiring c++ or c# accepts
// only the exact variant set of that language.
type languageHierarchyStrategy struct{}

var (
	cppVariants    = map[string]bool{"c++": true, "cpp": true, "cplusplus": true, "c plus plus": true}
	csharpVariants = map[string]bool{"c#": true, "csharp": true, "c sharp": true}
	csharpMarkers  = []string{"c#", "csharp", "c sharp"}
)

func (s *languageHierarchyStrategy) Name() string { return "language_hierarchy" }

func (s *languageHierarchyStrategy) Match(resumeSkills []string, required, _ string, _ *taxonomy.Map) (Result, bool) {
	want := skills.Normalize(required)

	switch {
	case want == "c":
		for _, skill := range resumeSkills {
			normalized := skills.Normalize(skill)
			if looksLikeCSharp(normalized) {
				continue
			}
			if cppVariants[normalized] || containsCPPPart(skill) {
				return Result{Matched: true, Confidence: confidenceHierarchy, MatchedAs: skill, Type: MatchLanguageHierarchy}, true
			}
		}
	case cppVariants[want]:
		return s.matchFamily(resumeSkills, cppVariants)
	case csharpVariants[want]:
		return s.matchFamily(resumeSkills, csharpVariants)
	}

	return Result{}, false
}

func (s *languageHierarchyStrategy) matchFamily(resumeSkills []string, family map[string]bool) (Result, bool) {
	for _, skill := range resumeSkills {
		if family[skills.Normalize(skill)] {
			return Result{Matched: true, Confidence: confidenceExactFamily, MatchedAs: skill, Type: MatchLanguageHierarchy}, true
		}
	}
	return Result{}, false
}

func looksLikeCSharp(normalized string) bool {
	for _, marker := range csharpMarkers {
		if strings.Contains(normalized, marker) {
			return true
		}
	}
	return false
}

func containsCPPPart(skill string) bool {
	for _, part := range skills.SplitCompound(skill) {
		if cppVariants[part] {
			return true
		}
	}
	return false
}

// contextTable scopes ambiguous short skill names to the variants they may
// stand for under a given vacancy context. Absence from the table is a
// non-match for this strategy, not an error.
var contextTable = map[string]map[string][]string{
	"frontend": {
		"js":    {"js", "javascript", "ecmascript"},
		"react": {"react", "reactjs", "react.js"},
	},
	"backend": {
		"go":   {"go", "golang"},
		"java": {"java", "jdk", "jvm"},
	},
	"data": {
		"r":      {"r", "rlang", "r language"},
		"python": {"python", "py", "python3"},
	},
	"mobile": {
		"swift":  {"swift", "swiftui"},
		"kotlin": {"kotlin", "android kotlin"},
	},
}

type contextStrategy struct{}

func (s *contextStrategy) Name() string { return "context" }

func (s *contextStrategy) Match(resumeSkills []string, required, context string, _ *taxonomy.Map) (Result, bool) {
	scoped, ok := contextTable[skills.Normalize(context)]
	if !ok {
		return Result{}, false
	}
	allowed, ok := scoped[skills.Normalize(required)]
	if !ok {
		return Result{}, false
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, v := range allowed {
		allowedSet[v] = true
	}

	for _, skill := range resumeSkills {
		if allowedSet[skills.Normalize(skill)] {
			return Result{Matched: true, Confidence: confidenceContext, MatchedAs: skill, Type: MatchContext}, true
		}
	}
	return Result{}, false
}

type synonymStrategy struct{}

func (s *synonymStrategy) Name() string { return "synonym" }

// Match resolves the required skill through the taxonomy variant set. A
// resume skill equal to the canonical name wins over plain variants, so a
// canonical hit anywhere in the resume beats an earlier variant hit.
func (s *synonymStrategy) Match(resumeSkills []string, required, _ string, tax *taxonomy.Map) (Result, bool) {
	if tax == nil {
		return Result{}, false
	}

	set := tax.FindVariantSet(required)
	if len(set) <= 1 {
		return Result{}, false
	}
	canonical, _ := tax.Canonical(required)

	variantHit := ""
	for _, skill := range resumeSkills {
		normalized := skills.Normalize(skill)
		if !set[normalized] {
			continue
		}
		if normalized == canonical {
			return Result{Matched: true, Confidence: confidenceCanonical, MatchedAs: skill, Type: MatchSynonym}, true
		}
		if variantHit == "" {
			variantHit = skill
		}
	}

	if variantHit != "" {
		return Result{Matched: true, Confidence: confidenceVariant, MatchedAs: variantHit, Type: MatchSynonym}, true
	}
	return Result{}, false
}

type fuzzyStrategy struct {
	threshold float64
}

func (s *fuzzyStrategy) Name() string { return "fuzzy" }

// Match accepts the highest-similarity resume skill at or above the
// threshold; earlier skills win ties.
func (s *fuzzyStrategy) Match(resumeSkills []string, required, _ string, _ *taxonomy.Map) (Result, bool) {
	want := skills.Normalize(required)
	if want == "" {
		return Result{}, false
	}

	best, bestSkill := 0.0, ""
	for _, skill := range resumeSkills {
		if sim := Similarity(skills.Normalize(skill), want); sim > best {
			best, bestSkill = sim, skill
		}
	}

	if bestSkill == "" || !AtLeast(best, s.threshold) {
		return Result{}, false
	}
	return Result{Matched: true, Confidence: best, MatchedAs: bestSkill, Type: MatchFuzzy}, true
}
