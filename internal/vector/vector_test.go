package vector

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

type stubEncoder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (s *stubEncoder) Encode(_ context.Context, text string) ([]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[text], nil
}

func TestScoreDisabledWithoutEncoder(t *testing.T) {
	t.Parallel()

	result := NewMatcher(nil, zap.NewNop()).Score(context.Background(), "resume", "vacancy")

	if result.Mode != ModeDisabled {
		t.Fatalf("expected disabled mode, got %s", result.Mode)
	}
	if result.Score != 1 {
		t.Fatalf("a missing encoder must not penalize the candidate, got score %v", result.Score)
	}
}

func TestScoreErrorOnFailedEncoding(t *testing.T) {
	t.Parallel()

	stub := &stubEncoder{err: errors.New("model unreachable")}
	result := NewMatcher(stub, zap.NewNop()).Score(context.Background(), "resume", "vacancy")

	if result.Mode != ModeError {
		t.Fatalf("expected error mode, got %s", result.Mode)
	}
	if result.Score != 0 {
		t.Fatalf("expected score 0 for a failed encoding, got %v", result.Score)
	}
}

func TestScoreIdenticalVectors(t *testing.T) {
	t.Parallel()

	stub := &stubEncoder{vectors: map[string][]float64{
		"resume":  {1, 2, 3},
		"vacancy": {1, 2, 3},
	}}
	result := NewMatcher(stub, zap.NewNop()).Score(context.Background(), "resume", "vacancy")

	if result.Mode != ModeOK {
		t.Fatalf("expected ok mode, got %s", result.Mode)
	}
	if diff := result.Similarity - 1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected cosine 1 for identical vectors, got %v", result.Similarity)
	}
	if diff := result.Score - 1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected score 1, got %v", result.Score)
	}
}

func TestScoreOppositeVectorsNormalizeToZero(t *testing.T) {
	t.Parallel()

	stub := &stubEncoder{vectors: map[string][]float64{
		"resume":  {1, 0},
		"vacancy": {-1, 0},
	}}
	result := NewMatcher(stub, zap.NewNop()).Score(context.Background(), "resume", "vacancy")

	if diff := result.Similarity + 1; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("expected cosine -1, got %v", result.Similarity)
	}
	if result.Score > 1e-9 {
		t.Fatalf("expected score 0 after (cos+1)/2 normalization, got %v", result.Score)
	}
}

func TestScoreMismatchedDimensions(t *testing.T) {
	t.Parallel()

	stub := &stubEncoder{vectors: map[string][]float64{
		"resume":  {1, 2},
		"vacancy": {1, 2, 3},
	}}
	result := NewMatcher(stub, zap.NewNop()).Score(context.Background(), "resume", "vacancy")

	if result.Mode != ModeError || result.Score != 0 {
		t.Fatalf("expected error mode for mismatched dimensions, got %+v", result)
	}
	if stub.calls != 2 {
		t.Fatalf("expected both texts to be encoded, got %d calls", stub.calls)
	}
}
