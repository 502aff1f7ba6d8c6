// Package roster builds the partner roster from a client snapshot.
//
// The roster is fully determined by the snapshot: two calls on the same
// input produce value-equal rosters. Partner iteration order is the
// order owners are first encountered, which later tie-break rules in
// the redistribution engine depend on.
package roster

import (
	"math"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/revenue"
)

// Default aggregation constants.
const (
	// defaultCapacityPerPartner is the client count that saturates a
	// partner's capacity at 100%.
	defaultCapacityPerPartner = 15
)

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCapacityPerPartner sets the client count treated as full capacity.
func WithCapacityPerPartner(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.capacityPerPartner = n
		}
	}
}

// WithTargetYear sets the fiscal year revenue is resolved against.
func WithTargetYear(year int) Option {
	return func(a *Aggregator) {
		if year > 0 {
			a.targetYear = year
		}
	}
}

// Aggregator derives partners from client ownership fields.
type Aggregator struct {
	capacityPerPartner int
	targetYear         int
}

// NewAggregator creates an aggregator with configuration options.
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{
		capacityPerPartner: defaultCapacityPerPartner,
		targetYear:         revenue.DefaultTargetYear,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// accum is the mutable shape used while scanning; partners are
// materialized from it once both passes finish.
type accum struct {
	name              string
	clients           []string
	teamMemberClients []string
	totalRevenue      float64
	clientCount       int
	totalStrategic    float64
	practiceAreas     []string
	practiceAreaSeen  map[string]struct{}
}

// Build scans the snapshot twice and returns the derived roster.
//
// Pass one attributes each client to its primary owner: revenue, count,
// strategic value and practice areas all accumulate there. Pass two
// records team membership only; a team member equal to the primary
// owner is a duplicate attribution and is skipped, and team membership
// never contributes revenue.
func (a *Aggregator) Build(clients []model.Client) []model.Partner {
	clients = model.NormalizeAll(clients)

	byID := make(map[string]*accum)
	var order []string

	ensure := func(name string) *accum {
		id := model.Slug(name)
		p, ok := byID[id]
		if !ok {
			p = &accum{name: name, practiceAreaSeen: make(map[string]struct{})}
			byID[id] = p
			order = append(order, id)
		}
		return p
	}

	// Primary-owner pass.
	for _, c := range clients {
		p := ensure(c.PrimaryOwner)
		p.clients = append(p.clients, c.ID)
		p.totalRevenue += revenue.Resolve(c, a.targetYear)
		p.clientCount++
		p.totalStrategic += c.StrategicValue
		for _, area := range c.PracticeAreas {
			if _, seen := p.practiceAreaSeen[area]; seen {
				continue
			}
			p.practiceAreaSeen[area] = struct{}{}
			p.practiceAreas = append(p.practiceAreas, area)
		}
	}

	// Team-member pass.
	for _, c := range clients {
		for _, member := range c.TeamMembers {
			if member == c.PrimaryOwner {
				continue
			}
			p := ensure(member)
			p.teamMemberClients = append(p.teamMemberClients, c.ID)
		}
	}

	partners := make([]model.Partner, 0, len(order))
	for _, id := range order {
		p := byID[id]
		partners = append(partners, model.Partner{
			ID:                  id,
			Name:                p.name,
			Clients:             emptyIfNil(p.clients),
			TeamMemberClients:   emptyIfNil(p.teamMemberClients),
			TotalRevenue:        p.totalRevenue,
			ClientCount:         p.clientCount,
			TotalStrategicValue: p.totalStrategic,
			PracticeAreas:       emptyIfNil(p.practiceAreas),
			AvgStrategicValue:   avg(p.totalStrategic, p.clientCount),
			CapacityUsed:        a.capacity(p.clientCount),
		})
	}
	return partners
}

// MarkDeparting returns a new roster with the partner's departing flag
// set. The input roster is left untouched.
func MarkDeparting(partners []model.Partner, partnerID string) ([]model.Partner, error) {
	out := model.CloneRoster(partners)
	for i := range out {
		if out[i].ID == partnerID {
			out[i].IsDeparting = true
			return out, nil
		}
	}
	return nil, ErrPartnerNotFound
}

func (a *Aggregator) capacity(clientCount int) float64 {
	return math.Min(100, float64(clientCount)/float64(a.capacityPerPartner)*100)
}

func avg(total float64, count int) float64 {
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
