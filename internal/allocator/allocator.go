// Package allocator deterministically routes users to a control or
// experimental matcher version. Bucketing is consistent across runs and
// implementations: SHA-256 of the UTF-8 user id interpreted as a
// big-endian integer, modulo 100.
package allocator

import (
	"crypto/sha256"
	"fmt"
	"math/big"

	"go.uber.org/zap"
)

// AllocationType tags how a decision was reached.
type AllocationType string

const (
	AllocationControl    AllocationType = "control"
	AllocationExperiment AllocationType = "experiment"
	AllocationFallback   AllocationType = "fallback"
)

// FallbackVersion marks decisions taken without any active model.
const FallbackVersion = "fallback"

// ModelVersion is a read-only row from the model version registry.
type ModelVersion struct {
	ModelName        string           `json:"model_name" mapstructure:"model_name"`
	Version          string           `json:"version" mapstructure:"version"`
	IsActive         bool             `json:"is_active" mapstructure:"is_active"`
	IsExperiment     bool             `json:"is_experiment" mapstructure:"is_experiment"`
	ExperimentConfig ExperimentConfig `json:"experiment_config" mapstructure:"experiment_config"`
	PerformanceScore float64          `json:"performance_score,omitempty" mapstructure:"performance_score"`
}

// ExperimentConfig carries the experiment's traffic share in percent.
type ExperimentConfig struct {
	TrafficPercentage float64 `json:"traffic_percentage" mapstructure:"traffic_percentage"`
}

// Decision is the resolved version assignment for one (model, user) pair.
type Decision struct {
	ModelName string         `json:"model_name"`
	Version   string         `json:"version"`
	Type      AllocationType `json:"allocation_type"`
}

// Allocator resolves decisions. It holds no state; the zero value is
// usable, the constructor only attaches a logger.
type Allocator struct {
	logger *zap.Logger
}

// New creates an Allocator.
func New(logger *zap.Logger) *Allocator {
	return &Allocator{logger: logger}
}

var hundred = big.NewInt(100)

// Bucket maps a user id to its traffic bucket in [0, 99]. The hash is
// fixed so any implementation of this contract assigns identical buckets.
func Bucket(userID string) int {
	sum := sha256.Sum256([]byte(userID))
	n := new(big.Int).SetBytes(sum[:])
	return int(n.Mod(n, hundred).Int64())
}

// ValidateExperiments checks the registry invariant: active experiment
// traffic shares must not exceed 100 percent in total.
func ValidateExperiments(experiments []ModelVersion) error {
	var total float64
	for _, exp := range experiments {
		if !exp.IsActive || !exp.IsExperiment {
			continue
		}
		pct := exp.ExperimentConfig.TrafficPercentage
		if pct < 0 {
			return fmt.Errorf("experiment %s/%s has negative traffic percentage %v", exp.ModelName, exp.Version, pct)
		}
		total += pct
	}
	if total > 100 {
		return fmt.Errorf("experiment traffic percentages sum to %v, exceeding 100", total)
	}
	return nil
}

// Allocate resolves the version for a user. Experiments are scanned in
// the supplied order, each claiming the half-open cumulative bucket range
// [cum, cum+traffic); the remainder belongs to control. A missing or
// inactive active model yields a fallback decision, never an error.
func (a *Allocator) Allocate(modelName, userID string, active *ModelVersion, experiments []ModelVersion) Decision {
	if active == nil || !active.IsActive {
		return a.decided(userID, Decision{
			ModelName: modelName,
			Version:   FallbackVersion,
			Type:      AllocationFallback,
		})
	}

	control := Decision{
		ModelName: active.ModelName,
		Version:   active.Version,
		Type:      AllocationControl,
	}

	if len(experiments) == 0 {
		return a.decided(userID, control)
	}

	bucket := float64(Bucket(userID))
	var cum float64
	for _, exp := range experiments {
		if !exp.IsActive || !exp.IsExperiment {
			continue
		}
		cum += exp.ExperimentConfig.TrafficPercentage
		if bucket < cum {
			return a.decided(userID, Decision{
				ModelName: exp.ModelName,
				Version:   exp.Version,
				Type:      AllocationExperiment,
			})
		}
	}

	return a.decided(userID, control)
}

func (a *Allocator) decided(userID string, d Decision) Decision {
	if a.logger != nil {
		a.logger.Debug("model version allocated",
			zap.String("user_id", userID),
			zap.String("model_name", d.ModelName),
			zap.String("version", d.Version),
			zap.String("allocation_type", string(d.Type)),
		)
	}
	return d
}
