// Package health computes the composite portfolio-health score from
// partner revenue and capacity dispersion.
package health

import (
	"fmt"
	"math"

	"github.com/okian/baton/internal/domain/model"
)

// Scoring constants.
const (
	revenueWeight  = 0.4
	capacityWeight = 0.3
	overloadWeight = 0.3

	// defaultOverloadThreshold is the capacity percentage above which a
	// partner counts as overloaded.
	defaultOverloadThreshold = 85.0

	// neutralScore is returned when scoring fails internally.
	neutralScore = 50

	maxScore = 100
)

// Option applies a configuration option to the Scorer.
type Option func(*Scorer)

// WithOverloadThreshold sets the capacity percentage that marks a
// partner as overloaded.
func WithOverloadThreshold(threshold float64) Option {
	return func(s *Scorer) {
		if threshold > 0 {
			s.overloadThreshold = threshold
		}
	}
}

// Score is the result of one health computation. Err carries the
// diagnostic for the degraded path so callers can log or assert on it
// without the scorer ever propagating a failure.
type Score struct {
	Composite     int     `json:"composite"`
	RevenueScore  float64 `json:"revenue_score"`
	CapacityScore float64 `json:"capacity_score"`
	OverloadScore float64 `json:"overload_score"`
	Degraded      bool    `json:"degraded"`
	Err           error   `json:"-"`
}

// Scorer computes health scores from a roster.
type Scorer struct {
	overloadThreshold float64
}

// NewScorer creates a scorer with configuration options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{overloadThreshold: defaultOverloadThreshold}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute derives the 0-100 composite score.
//
// An empty roster scores 100: no partners means no concentration risk.
// Any internal panic is absorbed into a neutral score of 50 with the
// diagnostic attached; the method never propagates a failure.
func (s *Scorer) Compute(partners []model.Partner) (result Score) {
	defer func() {
		if r := recover(); r != nil {
			result = Score{
				Composite: neutralScore,
				Degraded:  true,
				Err:       fmt.Errorf("health scoring failed: %v", r),
			}
		}
	}()

	if len(partners) == 0 {
		return Score{Composite: maxScore, RevenueScore: maxScore, CapacityScore: maxScore, OverloadScore: maxScore}
	}

	rev := s.revenueScore(partners)
	capacity := s.capacityScore(partners)
	over := s.overloadScore(partners)

	composite := int(math.Round(rev*revenueWeight + capacity*capacityWeight + over*overloadWeight))
	composite = clampInt(composite, 0, maxScore)

	return Score{
		Composite:     composite,
		RevenueScore:  rev,
		CapacityScore: capacity,
		OverloadScore: over,
	}
}

// revenueScore penalizes revenue concentration using the coefficient of
// variation over partners with positive revenue. Fewer than two such
// partners means no dispersion to measure.
func (s *Scorer) revenueScore(partners []model.Partner) float64 {
	var revenues []float64
	for _, p := range partners {
		if p.TotalRevenue > 0 {
			revenues = append(revenues, p.TotalRevenue)
		}
	}
	if len(revenues) < 2 {
		return maxScore
	}
	mean, stddev := meanStddev(revenues)
	cv := stddev / mean * 100
	return math.Max(0, maxScore-cv*2)
}

// capacityScore penalizes uneven workload via the population standard
// deviation of capacityUsed across all partners.
func (s *Scorer) capacityScore(partners []model.Partner) float64 {
	if len(partners) < 2 {
		return maxScore
	}
	capacities := make([]float64, len(partners))
	for i, p := range partners {
		capacities[i] = p.CapacityUsed
	}
	_, stddev := meanStddev(capacities)
	return math.Max(0, maxScore-stddev)
}

// overloadScore scales with the share of partners over the overload
// threshold.
func (s *Scorer) overloadScore(partners []model.Partner) float64 {
	overloaded := 0
	for _, p := range partners {
		if p.CapacityUsed > s.overloadThreshold {
			overloaded++
		}
	}
	return maxScore * (1 - float64(overloaded)/float64(len(partners)))
}

// meanStddev returns the mean and population standard deviation.
func meanStddev(values []float64) (mean, stddev float64) {
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func clampInt(v, low, high int) int {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
