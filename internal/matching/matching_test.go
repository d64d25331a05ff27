package matching

import (
	"testing"

	"github.com/spigell/hh-matcher/internal/taxonomy"
)

func newTestEngine() *Engine {
	return NewEngine(nil)
}

func TestDirectMatch(t *testing.T) {
	t.Parallel()

	result := newTestEngine().Match([]string{"Python"}, "python", "", nil)

	if !result.Matched {
		t.Fatalf("expected a match")
	}
	if result.Confidence != 1.0 {
		t.Fatalf("expected confidence 1.0, got %v", result.Confidence)
	}
	if result.Type != MatchDirect {
		t.Fatalf("expected direct match, got %s", result.Type)
	}
	if result.MatchedAs != "Python" {
		t.Fatalf("expected matched_as to carry the resume spelling, got %q", result.MatchedAs)
	}
}

func TestCompoundMatch(t *testing.T) {
	t.Parallel()

	result := newTestEngine().Match([]string{"C/C++"}, "C", "", nil)

	if !result.Matched || result.Type != MatchCompound {
		t.Fatalf("expected compound match, got %+v", result)
	}
	if result.Confidence != 0.9 {
		t.Fatalf("expected confidence 0.9, got %v", result.Confidence)
	}
}

func TestLanguageHierarchy(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	plusplus := engine.Match([]string{"C++"}, "C", "", nil)
	if !plusplus.Matched || plusplus.Type != MatchLanguageHierarchy {
		t.Fatalf("expected C++ to satisfy required C, got %+v", plusplus)
	}
	if plusplus.Confidence != 0.85 {
		t.Fatalf("expected confidence 0.85, got %v", plusplus.Confidence)
	}

	sharp := engine.Match([]string{"C#"}, "C", "", nil)
	if sharp.Matched {
		t.Fatalf("C# must never satisfy required C, got %+v", sharp)
	}
	if sharp.Type != MatchNone {
		t.Fatalf("expected none, got %s", sharp.Type)
	}

	exact := engine.Match([]string{"csharp"}, "C#", "", nil)
	if !exact.Matched || exact.Confidence != 0.95 {
		t.Fatalf("expected csharp to satisfy required C# at 0.95, got %+v", exact)
	}
}

func TestContextMatch(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	scoped := engine.Match([]string{"py"}, "python", "data", nil)
	if !scoped.Matched || scoped.Type != MatchContext {
		t.Fatalf("expected context match for py under data, got %+v", scoped)
	}
	if scoped.Confidence != 0.95 {
		t.Fatalf("expected confidence 0.95, got %v", scoped.Confidence)
	}

	unscoped := engine.Match([]string{"py"}, "python", "finance", nil)
	if unscoped.Matched {
		t.Fatalf("unknown context must not match, got %+v", unscoped)
	}
}

func TestSynonymMatch(t *testing.T) {
	t.Parallel()

	tax := taxonomy.Merge(taxonomy.Layer{"SQL": {"SQL", "PostgreSQL", "MySQL"}}, taxonomy.Layer{}, taxonomy.Layer{})
	engine := newTestEngine()

	variant := engine.Match([]string{"PostgreSQL"}, "SQL", "", tax)
	if !variant.Matched || variant.Type != MatchSynonym {
		t.Fatalf("expected synonym match, got %+v", variant)
	}
	if variant.Confidence < 0.85 {
		t.Fatalf("expected confidence >= 0.85, got %v", variant.Confidence)
	}
	if variant.MatchedAs != "PostgreSQL" {
		t.Fatalf("expected matched_as PostgreSQL, got %q", variant.MatchedAs)
	}

	// A resume skill equal to the canonical name wins the higher confidence
	// even when a variant appears first.
	canonical := engine.Match([]string{"MySQL", "sql"}, "PostgreSQL", "", tax)
	if canonical.Type != MatchSynonym || canonical.Confidence != 0.95 || canonical.MatchedAs != "sql" {
		t.Fatalf("expected canonical hit at 0.95, got %+v", canonical)
	}
}

func TestFuzzyMatchBoundary(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()

	// Ten runes, three edits: similarity is exactly 0.70.
	boundary := engine.Match([]string{"abcdefgxyz"}, "abcdefghij", "", nil)
	if !boundary.Matched || boundary.Type != MatchFuzzy {
		t.Fatalf("similarity 0.70 must be accepted, got %+v", boundary)
	}
	if boundary.Confidence < 0.699 || boundary.Confidence > 0.701 {
		t.Fatalf("expected confidence ~0.70, got %v", boundary.Confidence)
	}

	// Ten runes, four edits: similarity 0.60 falls below the threshold.
	below := engine.Match([]string{"abcdefwxyz"}, "abcdefghij", "", nil)
	if below.Matched {
		t.Fatalf("similarity below the threshold must be rejected, got %+v", below)
	}
}

func TestFuzzyMatchTypoTolerance(t *testing.T) {
	t.Parallel()

	result := newTestEngine().Match([]string{"Kubernets"}, "Kubernetes", "", nil)
	if !result.Matched || result.Type != MatchFuzzy {
		t.Fatalf("expected fuzzy match for a one-letter typo, got %+v", result)
	}
}

func TestNoStrategySucceeds(t *testing.T) {
	t.Parallel()

	result := newTestEngine().Match([]string{"Photoshop"}, "Kubernetes", "", nil)
	if result.Matched || result.Confidence != 0 || result.Type != MatchNone {
		t.Fatalf("expected the empty none result, got %+v", result)
	}
}

func TestMatchMultiplePercentage(t *testing.T) {
	t.Parallel()

	engine := newTestEngine()
	multi := engine.MatchMultiple([]string{"Go", "Docker"}, []string{"go", "docker", "kafka"}, "", nil)

	if len(multi.Matched) != 2 || len(multi.Missing) != 1 {
		t.Fatalf("expected 2 matched / 1 missing, got %v / %v", multi.Matched, multi.Missing)
	}
	if multi.Percentage != 66.67 {
		t.Fatalf("expected 66.67, got %v", multi.Percentage)
	}

	empty := engine.MatchMultiple([]string{"Go"}, nil, "", nil)
	if empty.Percentage != 0 {
		t.Fatalf("expected 0 for an empty requirement list, got %v", empty.Percentage)
	}
}
