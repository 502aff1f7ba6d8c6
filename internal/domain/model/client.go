// Package model contains domain models passed between layers.
package model

import (
	"bytes"
	"encoding/json"
	"strings"
)

// UnassignedOwner is the owner name substituted when a client record
// carries no primary owner.
const UnassignedOwner = "Unassigned"

// ConflictRisk grades how likely a client relationship is to conflict
// with another engagement.
type ConflictRisk string

// Conflict risk levels.
const (
	ConflictRiskLow    ConflictRisk = "Low"
	ConflictRiskMedium ConflictRisk = "Medium"
	ConflictRiskHigh   ConflictRisk = "High"
)

// FlexValue holds a scalar that upstream systems send either as a JSON
// string or as a bare number. It keeps the raw text so the engine can
// apply its own coercion rules at use sites.
type FlexValue string

// UnmarshalJSON accepts strings, numbers, and null.
func (v *FlexValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = FlexValue(s)
		return nil
	}
	*v = FlexValue(b)
	return nil
}

// MarshalJSON renders the raw text as a JSON string.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(v))
}

func (v FlexValue) String() string { return string(v) }

// RevenueRecord is one entry of a client's revenue history.
type RevenueRecord struct {
	Year   FlexValue `json:"year"`
	Amount FlexValue `json:"amount"`
}

// Client is a client record as supplied by the surrounding dashboard.
// The engine treats it as read-only input.
type Client struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Status                string          `json:"status"`
	Revenue               []RevenueRecord `json:"revenue"`
	StrategicValue        float64         `json:"strategic_value"`
	PracticeAreas         []string        `json:"practice_areas"`
	PrimaryOwner          string          `json:"primary_owner"`
	TeamMembers           []string        `json:"team_members"`
	RelationshipStrength  int             `json:"relationship_strength"`
	RelationshipIntensity int             `json:"relationship_intensity"`
	ConflictRisk          ConflictRisk    `json:"conflict_risk"`
	RenewalProbability    float64         `json:"renewal_probability"`
}

// ClientUpsert is the ingestion event carried through the queue.
type ClientUpsert struct {
	EventID string `json:"event_id"`
	Client  Client `json:"client"`
}

// Normalize returns a copy of c with every optional field resolved to
// its documented default: empty owner becomes UnassignedOwner and nil
// collections become empty ones. Downstream components rely on seeing
// a fully-defaulted record and never re-apply these defaults.
func Normalize(c Client) Client {
	out := c
	out.PrimaryOwner = strings.TrimSpace(c.PrimaryOwner)
	if out.PrimaryOwner == "" {
		out.PrimaryOwner = UnassignedOwner
	}
	out.Revenue = append([]RevenueRecord(nil), c.Revenue...)
	if out.Revenue == nil {
		out.Revenue = []RevenueRecord{}
	}
	out.PracticeAreas = append([]string(nil), c.PracticeAreas...)
	if out.PracticeAreas == nil {
		out.PracticeAreas = []string{}
	}
	out.TeamMembers = append([]string(nil), c.TeamMembers...)
	if out.TeamMembers == nil {
		out.TeamMembers = []string{}
	}
	return out
}

// NormalizeAll normalizes a whole snapshot, preserving order.
func NormalizeAll(clients []Client) []Client {
	out := make([]Client, len(clients))
	for i, c := range clients {
		out[i] = Normalize(c)
	}
	return out
}

// Slug derives the deterministic partner identifier from an owner name:
// lowercased with spaces replaced by underscores.
func Slug(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "_")
}
