package seedbook

import (
	"crypto/rand"
	"math/big"
	"strconv"

	"github.com/google/uuid"

	"github.com/okian/baton/internal/domain/model"
)

// Synthetic data pools.
var partnerNames = []string{
	"Helen Vargas", "Marcus Webb", "Priya Raman", "Daniel Osei",
	"Sofia Lindqvist", "James Okafor", "Mei Tanaka", "Laura Benedetti",
}

var practiceAreas = []string{
	"Healthcare", "Energy", "Technology", "Real Estate",
	"Financial Services", "Manufacturing", "Media", "Public Sector",
}

var clientStatuses = []string{"active", "active", "active", "dormant", "prospect"}

const (
	revenueBase  = 20000
	revenueRange = 480000
	scaleMax     = 10
)

// randInt returns a random int in [0, n) using crypto/rand.
func randInt(n int) int {
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

// GenerateClients builds a synthetic client book. Roughly one client in
// five gets a team beyond its primary owner, and revenue histories span
// the target year plus the two before it.
func GenerateClients(config *Config, stats *Stats) []model.ClientUpsert {
	upserts := make([]model.ClientUpsert, config.NumClients)
	for i := 0; i < config.NumClients; i++ {
		owner := partnerNames[randInt(len(partnerNames))]

		var team []string
		if randInt(5) == 0 {
			member := partnerNames[randInt(len(partnerNames))]
			team = append(team, member)
		}

		var areas []string
		for _, area := range practiceAreas {
			if randInt(len(practiceAreas)) == 0 {
				areas = append(areas, area)
			}
		}

		revenue := make([]model.RevenueRecord, 0, 3)
		for yr := config.TargetYear - 2; yr <= config.TargetYear; yr++ {
			amount := revenueBase + randInt(revenueRange)
			revenue = append(revenue, model.RevenueRecord{
				Year:   model.FlexValue(strconv.Itoa(yr)),
				Amount: model.FlexValue(strconv.Itoa(amount)),
			})
		}

		upserts[i] = model.ClientUpsert{
			EventID: uuid.NewString(),
			Client: model.Client{
				ID:                    uuid.NewString(),
				Name:                  "Client " + strconv.Itoa(i+1),
				Status:                clientStatuses[randInt(len(clientStatuses))],
				Revenue:               revenue,
				StrategicValue:        float64(randInt(scaleMax) + 1),
				PracticeAreas:         areas,
				PrimaryOwner:          owner,
				TeamMembers:           team,
				RelationshipStrength:  randInt(scaleMax) + 1,
				RelationshipIntensity: randInt(scaleMax) + 1,
				ConflictRisk:          randomConflictRisk(),
				RenewalProbability:    float64(randInt(101)) / 100,
			},
		}
	}
	stats.ClientsGenerated = len(upserts)
	return upserts
}

func randomConflictRisk() model.ConflictRisk {
	switch randInt(3) {
	case 0:
		return model.ConflictRiskLow
	case 1:
		return model.ConflictRiskMedium
	default:
		return model.ConflictRiskHigh
	}
}
