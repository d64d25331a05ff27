// Package vector scores semantic similarity between resume and vacancy
// text over externally supplied embeddings. Encoding is injected; this
// package never performs inference itself.
package vector

import (
	"context"
	"math"

	"go.uber.org/zap"
)

// Mode tags how the score was produced.
type Mode string

const (
	// ModeOK means both texts were encoded and compared.
	ModeOK Mode = "ok"
	// ModeDisabled means no encoder is configured. The score is 1.0:
	// missing semantic capability must never penalize a candidate.
	ModeDisabled Mode = "disabled"
	// ModeError means encoding was attempted and failed. The score is 0.
	ModeError Mode = "error"
)

// Result carries the normalized semantic score and the raw cosine value.
type Result struct {
	Score      float64 `json:"vector_score"`
	Similarity float64 `json:"vector_similarity"`
	Mode       Mode    `json:"vector_mode"`
}

// Encoder produces an embedding for a text. Implementations may call out
// to a remote model; the matcher treats the vectors as opaque.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float64, error)
}

// Matcher compares resume and vacancy embeddings by cosine similarity
// normalized into [0, 1] via (cos+1)/2.
type Matcher struct {
	encoder Encoder
	logger  *zap.Logger
}

// NewMatcher wraps the encoder. A nil encoder is valid and yields the
// disabled mode on every call.
func NewMatcher(encoder Encoder, logger *zap.Logger) *Matcher {
	return &Matcher{encoder: encoder, logger: logger}
}

// Score encodes both texts and compares them. Degradation is reported in
// the Mode field, never as an error.
func (m *Matcher) Score(ctx context.Context, resumeText, vacancyText string) Result {
	if m.encoder == nil {
		return Result{Score: 1, Mode: ModeDisabled}
	}

	resumeVec, err := m.encoder.Encode(ctx, resumeText)
	if err != nil {
		return m.errorResult("encoding resume text", err)
	}
	vacancyVec, err := m.encoder.Encode(ctx, vacancyText)
	if err != nil {
		return m.errorResult("encoding vacancy text", err)
	}

	cos, ok := cosine(resumeVec, vacancyVec)
	if !ok {
		return m.errorResult("comparing embeddings", errIncomparable)
	}

	return Result{
		Score:      (cos + 1) / 2,
		Similarity: cos,
		Mode:       ModeOK,
	}
}

func (m *Matcher) errorResult(step string, err error) Result {
	if m.logger != nil {
		m.logger.Warn("semantic scoring failed", zap.String("step", step), zap.Error(err))
	}
	return Result{Score: 0, Mode: ModeError}
}

type incomparableError struct{}

func (incomparableError) Error() string {
	return "embeddings have mismatched dimensions or zero magnitude"
}

var errIncomparable = incomparableError{}

// cosine returns the cosine of the angle between a and b. The second
// value is false when the vectors are incomparable: different lengths,
// empty, or zero magnitude.
func cosine(a, b []float64) (float64, bool) {
	if len(a) == 0 || len(a) != len(b) {
		return 0, false
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0, false
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), true
}
