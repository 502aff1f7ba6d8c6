package model

// Partner is a relationship owner derived from client ownership fields.
// Rosters are rebuilt from the full client snapshot on every
// aggregation call; a Partner is never patched incrementally.
type Partner struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	IsDeparting         bool     `json:"is_departing"`
	Clients             []string `json:"clients"`
	TeamMemberClients   []string `json:"team_member_clients"`
	TotalRevenue        float64  `json:"total_revenue"`
	ClientCount         int      `json:"client_count"`
	TotalStrategicValue float64  `json:"total_strategic_value"`
	PracticeAreas       []string `json:"practice_areas"`

	// Derived at roster-materialization time.
	AvgStrategicValue float64 `json:"avg_strategic_value"`
	CapacityUsed      float64 `json:"capacity_used"`
}

// Clone returns a deep copy so callers can hand out rosters without
// sharing slice backing arrays.
func (p Partner) Clone() Partner {
	out := p
	out.Clients = append([]string(nil), p.Clients...)
	out.TeamMemberClients = append([]string(nil), p.TeamMemberClients...)
	out.PracticeAreas = append([]string(nil), p.PracticeAreas...)
	return out
}

// CloneRoster deep-copies a roster.
func CloneRoster(partners []Partner) []Partner {
	out := make([]Partner, len(partners))
	for i, p := range partners {
		out[i] = p.Clone()
	}
	return out
}

// Assignment is one partner's share of a redistribution preview. It is
// a simulation artifact only; nothing in the engine persists it.
type Assignment struct {
	PartnerID       string   `json:"partner_id"`
	PartnerName     string   `json:"partner_name"`
	AssignedClients []Client `json:"assigned_clients"`
	TargetRevenue   float64  `json:"target_revenue"`
	// CurrentCapacity is the partner's capacity before the transition;
	// it is not updated as clients are assigned during simulation.
	CurrentCapacity float64 `json:"current_capacity"`
}
