// Package redistribution simulates reassigning a departing partner's
// clients to the remaining roster under one of four strategies.
//
// Every strategy is a deterministic heuristic, not an optimizer: for a
// fixed snapshot the iteration order over departing clients (partner
// order, then client order within each partner) and the documented
// tie-break rules fully determine the output.
package redistribution

import (
	"fmt"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/revenue"
)

// Strategy selects the reassignment heuristic.
type Strategy string

// Supported strategies.
const (
	StrategyBalanced     Strategy = "balanced"
	StrategyExpertise    Strategy = "expertise"
	StrategyRelationship Strategy = "relationship"
	StrategyCustom       Strategy = "custom"
)

// ParseStrategy validates a strategy selector from the wire.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyBalanced, StrategyExpertise, StrategyRelationship, StrategyCustom:
		return Strategy(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Preview is the output of one simulation. It never mutates the roster;
// committing a reassignment is a separate concern owned by the caller.
//
// UnassignedClientIDs lists departing clients the custom strategy
// dropped for lack of a mapping; for every other strategy it is empty.
type Preview struct {
	Assignments         []model.Assignment `json:"assignments"`
	UnassignedClientIDs []string           `json:"unassigned_client_ids"`
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTargetYear sets the fiscal year revenue is resolved against.
func WithTargetYear(year int) Option {
	return func(e *Engine) {
		if year > 0 {
			e.targetYear = year
		}
	}
}

// Engine runs redistribution simulations.
type Engine struct {
	targetYear int
}

// NewEngine creates an engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{targetYear: revenue.DefaultTargetYear}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Simulate previews the reassignment of all departing partners' clients.
//
// With no departing partners, or no remaining ones, the preview is
// empty. The clients slice is the same snapshot the roster was built
// from; records are resolved by id.
func (e *Engine) Simulate(partners []model.Partner, clients []model.Client, strategy Strategy, custom map[string]string) (Preview, error) {
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return Preview{}, err
	}

	var remaining []model.Partner
	var departing []model.Partner
	for _, p := range partners {
		if p.IsDeparting {
			departing = append(departing, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	if len(departing) == 0 || len(remaining) == 0 {
		return Preview{Assignments: []model.Assignment{}, UnassignedClientIDs: []string{}}, nil
	}

	departingClients := e.resolveDepartingClients(departing, clients)

	switch strategy {
	case StrategyBalanced:
		return e.balanced(remaining, departingClients), nil
	case StrategyExpertise:
		return e.expertise(remaining, departingClients), nil
	case StrategyRelationship:
		return e.relationship(remaining, departingClients), nil
	case StrategyCustom:
		return e.custom(remaining, departingClients, custom), nil
	}
	return Preview{}, ErrUnknownStrategy
}

// resolveDepartingClients flattens the departing partners' client ids
// to full records, in partner-then-client order.
func (e *Engine) resolveDepartingClients(departing []model.Partner, clients []model.Client) []model.Client {
	byID := make(map[string]model.Client, len(clients))
	for _, c := range clients {
		byID[c.ID] = model.Normalize(c)
	}
	var out []model.Client
	for _, p := range departing {
		for _, id := range p.Clients {
			if c, ok := byID[id]; ok {
				out = append(out, c)
			}
		}
	}
	return out
}

// newAssignments initializes one empty assignment per remaining
// partner, in roster iteration order.
func newAssignments(remaining []model.Partner) []model.Assignment {
	out := make([]model.Assignment, len(remaining))
	for i, p := range remaining {
		out[i] = model.Assignment{
			PartnerID:       p.ID,
			PartnerName:     p.Name,
			AssignedClients: []model.Client{},
			CurrentCapacity: p.CapacityUsed,
		}
	}
	return out
}

// balanced is a greedy least-loaded heuristic: each departing client
// goes to the partner with the lowest revenue accumulated so far, first
// index winning ties. TargetRevenue carries the informational equal
// share of the departing book, not the accumulated total.
func (e *Engine) balanced(remaining []model.Partner, departingClients []model.Client) Preview {
	assignments := newAssignments(remaining)
	share := revenue.Total(departingClients, e.targetYear) / float64(len(remaining))
	for i := range assignments {
		assignments[i].TargetRevenue = share
	}

	accumulated := make([]float64, len(remaining))
	for _, c := range departingClients {
		least := 0
		for i := 1; i < len(accumulated); i++ {
			if accumulated[i] < accumulated[least] {
				least = i
			}
		}
		assignments[least].AssignedClients = append(assignments[least].AssignedClients, c)
		accumulated[least] += revenue.Resolve(c, e.targetYear)
	}
	return Preview{Assignments: assignments, UnassignedClientIDs: []string{}}
}

// expertise assigns each client to the partner whose practice areas
// overlap the client's tags the most. Ties, and clients with no overlap
// anywhere, go to the first remaining partner.
func (e *Engine) expertise(remaining []model.Partner, departingClients []model.Client) Preview {
	assignments := newAssignments(remaining)

	areas := make([]map[string]struct{}, len(remaining))
	for i, p := range remaining {
		areas[i] = make(map[string]struct{}, len(p.PracticeAreas))
		for _, a := range p.PracticeAreas {
			areas[i][a] = struct{}{}
		}
	}

	for _, c := range departingClients {
		best := 0
		bestOverlap := 0
		for i := range remaining {
			overlap := 0
			for _, tag := range c.PracticeAreas {
				if _, ok := areas[i][tag]; ok {
					overlap++
				}
			}
			if overlap > bestOverlap {
				best = i
				bestOverlap = overlap
			}
		}
		assignments[best].AssignedClients = append(assignments[best].AssignedClients, c)
		assignments[best].TargetRevenue += revenue.Resolve(c, e.targetYear)
	}
	return Preview{Assignments: assignments, UnassignedClientIDs: []string{}}
}

// relationship prefers a partner already on the client's team; when no
// team member remains, it falls back to the partner with the fewest
// assigned clients so far, first such partner on ties.
func (e *Engine) relationship(remaining []model.Partner, departingClients []model.Client) Preview {
	assignments := newAssignments(remaining)

	for _, c := range departingClients {
		target := -1
		for i, p := range remaining {
			if containsName(c.TeamMembers, p.Name) {
				target = i
				break
			}
		}
		if target < 0 {
			target = 0
			for i := 1; i < len(assignments); i++ {
				if len(assignments[i].AssignedClients) < len(assignments[target].AssignedClients) {
					target = i
				}
			}
		}
		assignments[target].AssignedClients = append(assignments[target].AssignedClients, c)
		assignments[target].TargetRevenue += revenue.Resolve(c, e.targetYear)
	}
	return Preview{Assignments: assignments, UnassignedClientIDs: []string{}}
}

// custom follows an explicit client-id to partner-id map. A client with
// no entry, or mapped to a partner that is not remaining, is dropped
// from the assignments and reported in UnassignedClientIDs.
func (e *Engine) custom(remaining []model.Partner, departingClients []model.Client, mapping map[string]string) Preview {
	assignments := newAssignments(remaining)
	index := make(map[string]int, len(remaining))
	for i, p := range remaining {
		index[p.ID] = i
	}

	unassigned := []string{}
	for _, c := range departingClients {
		partnerID, ok := mapping[c.ID]
		if !ok {
			unassigned = append(unassigned, c.ID)
			continue
		}
		i, ok := index[partnerID]
		if !ok {
			unassigned = append(unassigned, c.ID)
			continue
		}
		assignments[i].AssignedClients = append(assignments[i].AssignedClients, c)
		assignments[i].TargetRevenue += revenue.Resolve(c, e.targetYear)
	}
	return Preview{Assignments: assignments, UnassignedClientIDs: unassigned}
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}
