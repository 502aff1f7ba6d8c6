package roster_test

import (
	"testing"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/roster"
	. "github.com/smartystreets/goconvey/convey"
)

func rev(year, amount string) model.RevenueRecord {
	return model.RevenueRecord{Year: model.FlexValue(year), Amount: model.FlexValue(amount)}
}

func TestBuild(t *testing.T) {
	Convey("Given a snapshot with shared ownership", t, func() {
		clients := []model.Client{
			{
				ID:             "c1",
				Name:           "Acme",
				PrimaryOwner:   "Helen Vargas",
				StrategicValue: 8,
				PracticeAreas:  []string{"Energy", "Litigation"},
				TeamMembers:    []string{"Marcus Webb", "Helen Vargas"},
				Revenue:        []model.RevenueRecord{rev("2025", "100000")},
			},
			{
				ID:             "c2",
				Name:           "Globex",
				PrimaryOwner:   "Helen Vargas",
				StrategicValue: 4,
				PracticeAreas:  []string{"Energy"},
				Revenue:        []model.RevenueRecord{rev("2025", "60000")},
			},
			{
				ID:           "c3",
				Name:         "Initech",
				PrimaryOwner: "Marcus Webb",
				Revenue:      []model.RevenueRecord{rev("2024", "999")},
			},
		}
		agg := roster.NewAggregator()

		Convey("When building the roster", func() {
			partners := agg.Build(clients)

			Convey("Then partners appear in first-encounter order", func() {
				So(partners, ShouldHaveLength, 2)
				So(partners[0].ID, ShouldEqual, "helen_vargas")
				So(partners[1].ID, ShouldEqual, "marcus_webb")
			})

			Convey("Then primary ownership drives the aggregates", func() {
				helen := partners[0]
				So(helen.Clients, ShouldResemble, []string{"c1", "c2"})
				So(helen.TotalRevenue, ShouldEqual, 160000)
				So(helen.ClientCount, ShouldEqual, 2)
				So(helen.TotalStrategicValue, ShouldEqual, 12)
				So(helen.AvgStrategicValue, ShouldEqual, 6)
				So(helen.PracticeAreas, ShouldResemble, []string{"Energy", "Litigation"})
			})

			Convey("Then team membership carries no revenue", func() {
				marcus := partners[1]
				So(marcus.TeamMemberClients, ShouldResemble, []string{"c1"})
				So(marcus.TotalRevenue, ShouldEqual, 0)
				So(marcus.ClientCount, ShouldEqual, 1)
			})

			Convey("Then a team member equal to the owner is skipped", func() {
				So(partners[0].TeamMemberClients, ShouldBeEmpty)
			})
		})

		Convey("When building twice from the same snapshot", func() {
			first := agg.Build(clients)
			second := agg.Build(clients)

			Convey("Then the rosters are value-equal", func() {
				So(second, ShouldResemble, first)
			})
		})
	})

	Convey("Given clients without an owner", t, func() {
		clients := []model.Client{
			{ID: "c1", Name: "Orphan One"},
			{ID: "c2", Name: "Orphan Two", PrimaryOwner: "  "},
		}

		Convey("When building the roster", func() {
			partners := roster.NewAggregator().Build(clients)

			Convey("Then they land under the unassigned partner", func() {
				So(partners, ShouldHaveLength, 1)
				So(partners[0].Name, ShouldEqual, model.UnassignedOwner)
				So(partners[0].Clients, ShouldResemble, []string{"c1", "c2"})
			})
		})
	})

	Convey("Given an empty snapshot", t, func() {
		partners := roster.NewAggregator().Build(nil)

		So(partners, ShouldBeEmpty)
	})

	Convey("Given a custom capacity denominator", t, func() {
		clients := make([]model.Client, 0, 6)
		for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
			clients = append(clients, model.Client{ID: id, PrimaryOwner: "Helen Vargas"})
		}

		Convey("When the denominator is 5", func() {
			partners := roster.NewAggregator(roster.WithCapacityPerPartner(5)).Build(clients)

			Convey("Then capacity is capped at 100", func() {
				So(partners[0].CapacityUsed, ShouldEqual, 100)
			})
		})

		Convey("When the default denominator applies", func() {
			partners := roster.NewAggregator().Build(clients)

			So(partners[0].CapacityUsed, ShouldEqual, 40)
		})
	})

	Convey("Given a custom target year", t, func() {
		clients := []model.Client{
			{ID: "c1", PrimaryOwner: "Helen Vargas", Revenue: []model.RevenueRecord{rev("2024", "75000")}},
		}

		Convey("When aggregating against 2024", func() {
			partners := roster.NewAggregator(roster.WithTargetYear(2024)).Build(clients)

			So(partners[0].TotalRevenue, ShouldEqual, 75000)
		})
	})
}

func TestMarkDeparting(t *testing.T) {
	Convey("Given a built roster", t, func() {
		partners := roster.NewAggregator().Build([]model.Client{
			{ID: "c1", PrimaryOwner: "Helen Vargas"},
			{ID: "c2", PrimaryOwner: "Marcus Webb"},
		})

		Convey("When marking a known partner", func() {
			marked, err := roster.MarkDeparting(partners, "helen_vargas")

			Convey("Then only that partner is flagged", func() {
				So(err, ShouldBeNil)
				So(marked[0].IsDeparting, ShouldBeTrue)
				So(marked[1].IsDeparting, ShouldBeFalse)
			})

			Convey("And the input roster is unchanged", func() {
				So(partners[0].IsDeparting, ShouldBeFalse)
			})
		})

		Convey("When marking an unknown partner", func() {
			marked, err := roster.MarkDeparting(partners, "nobody")

			So(marked, ShouldBeNil)
			So(err, ShouldEqual, roster.ErrPartnerNotFound)
		})
	})
}
