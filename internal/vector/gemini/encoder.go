// Package gemini adapts the Google GenAI embedding API to the
// vector.Encoder interface.
package gemini

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spigell/hh-matcher/internal/logger"
	"github.com/spigell/hh-matcher/internal/utils"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const (
	defaultModel      = "gemini-embedding-001"
	defaultMaxRetries = 2
	retryBackoff      = 2 * time.Second
	logPreviewLength  = 120
)

// Encoder requests embeddings from the Gemini API. Repeated texts are
// served from an in-memory memo keyed by content hash.
type Encoder struct {
	embed      func(ctx context.Context, text string) ([]float64, error)
	modelName  string
	maxRetries int
	backoff    time.Duration
	log        *zap.Logger

	mu   sync.RWMutex
	memo map[[sha256.Size]byte][]float64
}

// NewEncoder creates an Encoder backed by the Gemini API.
func NewEncoder(ctx context.Context, apiKey, model string, maxRetries int, log *zap.Logger) (*Encoder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	e := &Encoder{
		modelName:  model,
		maxRetries: maxRetries,
		backoff:    retryBackoff,
		log:        log,
		memo:       make(map[[sha256.Size]byte][]float64),
	}
	e.embed = func(ctx context.Context, text string) ([]float64, error) {
		return embedContent(ctx, client, model, text)
	}

	return e, nil
}

// Encode returns the embedding for the text, retrying transient API
// failures with a fixed backoff.
func (e *Encoder) Encode(ctx context.Context, text string) ([]float64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text to encode must not be empty")
	}

	key := sha256.Sum256([]byte(text))

	e.mu.RLock()
	cached, ok := e.memo[key]
	e.mu.RUnlock()
	if ok {
		return cached, nil
	}

	if e.log != nil {
		e.log.Debug("gemini embed request",
			zap.String("model", e.modelName),
			zap.String("text_preview", logger.TruncateForLog(text, logPreviewLength)),
		)
	}

	var vec []float64
	var err error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			if waitErr := utils.WaitFor(ctx, e.backoff); waitErr != nil {
				return nil, waitErr
			}
			if e.log != nil {
				e.log.Debug("retrying gemini embed request",
					zap.Int("attempt", attempt),
					zap.Error(err),
				)
			}
		}
		if vec, err = e.embed(ctx, text); err == nil {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("embed content: %w", err)
	}

	e.mu.Lock()
	e.memo[key] = vec
	e.mu.Unlock()

	return vec, nil
}

// Model reports the configured embedding model name.
func (e *Encoder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}

func embedContent(ctx context.Context, client *genai.Client, model, text string) ([]float64, error) {
	resp, err := client.Models.EmbedContent(ctx, model, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if resp == nil || len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("gemini api returned no embedding")
	}

	values := resp.Embeddings[0].Values
	if len(values) == 0 {
		return nil, errors.New("gemini api returned an empty embedding")
	}

	vec := make([]float64, len(values))
	for i, v := range values {
		vec[i] = float64(v)
	}
	return vec, nil
}
