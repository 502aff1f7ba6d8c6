// Package succession classifies clients by relationship strength and
// intensity into succession-risk and transition-complexity bands.
package succession

import (
	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/revenue"
)

// Default report constants.
const (
	// defaultStrategicValueThreshold marks a departing partner's client
	// as revenue-at-risk when its strategic value exceeds it.
	defaultStrategicValueThreshold = 7.0
)

// StrengthBand labels a relationship-strength score.
type StrengthBand struct {
	Label string `json:"label"`
	Risk  string `json:"risk"`
}

// IntensityBand labels a relationship-intensity score.
type IntensityBand struct {
	Label      string `json:"label"`
	Complexity string `json:"complexity"`
}

// StrengthBandFor maps a 1-10 relationship-strength score to its band.
// Breakpoints: <=2, <=4, <=6, <=8, else.
func StrengthBandFor(score int) StrengthBand {
	switch {
	case score <= 2:
		return StrengthBand{Label: "Personal Relationship", Risk: "HIGH"}
	case score <= 4:
		return StrengthBand{Label: "Individual-Dependent", Risk: "MEDIUM-HIGH"}
	case score <= 6:
		return StrengthBand{Label: "Mixed Loyalty", Risk: "MEDIUM"}
	case score <= 8:
		return StrengthBand{Label: "Institutional Ties", Risk: "LOW-MEDIUM"}
	default:
		return StrengthBand{Label: "Firm-Anchored", Risk: "LOW"}
	}
}

// IntensityBandFor maps a 1-10 relationship-intensity score to its band.
// Breakpoints: <=2, <=4, <=6, <=8, else.
func IntensityBandFor(score int) IntensityBand {
	switch {
	case score <= 2:
		return IntensityBand{Label: "Minimal Contact", Complexity: "Simple"}
	case score <= 4:
		return IntensityBand{Label: "Periodic Touch", Complexity: "Standard"}
	case score <= 6:
		return IntensityBand{Label: "Regular Engagement", Complexity: "Moderate"}
	case score <= 8:
		return IntensityBand{Label: "High Touch", Complexity: "Complex"}
	default:
		return IntensityBand{Label: "Mission Critical", Complexity: "Critical planning required"}
	}
}

// ClientRisk is one at-risk client in the report.
type ClientRisk struct {
	ClientID       string        `json:"client_id"`
	ClientName     string        `json:"client_name"`
	PartnerID      string        `json:"partner_id"`
	Revenue        float64       `json:"revenue"`
	StrategicValue float64       `json:"strategic_value"`
	Strength       StrengthBand  `json:"strength"`
	Intensity      IntensityBand `json:"intensity"`
}

// Report aggregates succession exposure across a snapshot. The counts
// feed portfolio-health framing but are reported independently of the
// health score.
type Report struct {
	RiskBandCounts       map[string]int `json:"risk_band_counts"`
	ComplexityBandCounts map[string]int `json:"complexity_band_counts"`
	RevenueAtRisk        float64        `json:"revenue_at_risk"`
	ClientsAtRisk        []ClientRisk   `json:"clients_at_risk"`
}

// Option applies a configuration option to the Analyzer.
type Option func(*Analyzer)

// WithTargetYear sets the fiscal year revenue is resolved against.
func WithTargetYear(year int) Option {
	return func(a *Analyzer) {
		if year > 0 {
			a.targetYear = year
		}
	}
}

// WithStrategicValueThreshold sets the strategic value above which a
// departing partner's client counts as revenue at risk.
func WithStrategicValueThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		if threshold > 0 {
			a.strategicThreshold = threshold
		}
	}
}

// Analyzer builds succession reports.
type Analyzer struct {
	targetYear         int
	strategicThreshold float64
}

// NewAnalyzer creates an analyzer with configuration options.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{
		targetYear:         revenue.DefaultTargetYear,
		strategicThreshold: defaultStrategicValueThreshold,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// BuildReport classifies every client in the snapshot and totals the
// revenue at risk: resolved revenue of clients whose primary owner is a
// departing partner and whose strategic value exceeds the threshold.
func (a *Analyzer) BuildReport(clients []model.Client, partners []model.Partner) Report {
	departing := make(map[string]struct{})
	for _, p := range partners {
		if p.IsDeparting {
			departing[p.ID] = struct{}{}
		}
	}

	report := Report{
		RiskBandCounts:       make(map[string]int),
		ComplexityBandCounts: make(map[string]int),
		ClientsAtRisk:        []ClientRisk{},
	}

	for _, raw := range clients {
		c := model.Normalize(raw)
		strength := StrengthBandFor(c.RelationshipStrength)
		intensity := IntensityBandFor(c.RelationshipIntensity)
		report.RiskBandCounts[strength.Risk]++
		report.ComplexityBandCounts[intensity.Complexity]++

		ownerID := model.Slug(c.PrimaryOwner)
		if _, gone := departing[ownerID]; !gone {
			continue
		}
		if c.StrategicValue <= a.strategicThreshold {
			continue
		}
		rev := revenue.Resolve(c, a.targetYear)
		report.RevenueAtRisk += rev
		report.ClientsAtRisk = append(report.ClientsAtRisk, ClientRisk{
			ClientID:       c.ID,
			ClientName:     c.Name,
			PartnerID:      ownerID,
			Revenue:        rev,
			StrategicValue: c.StrategicValue,
			Strength:       strength,
			Intensity:      intensity,
		})
	}
	return report
}
