package succession_test

import (
	"testing"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/roster"
	"github.com/okian/baton/internal/domain/succession"
	. "github.com/smartystreets/goconvey/convey"
)

func TestStrengthBandFor(t *testing.T) {
	Convey("Given relationship-strength scores", t, func() {
		cases := []struct {
			score int
			label string
			risk  string
		}{
			{1, "Personal Relationship", "HIGH"},
			{2, "Personal Relationship", "HIGH"},
			{3, "Individual-Dependent", "MEDIUM-HIGH"},
			{4, "Individual-Dependent", "MEDIUM-HIGH"},
			{5, "Mixed Loyalty", "MEDIUM"},
			{6, "Mixed Loyalty", "MEDIUM"},
			{7, "Institutional Ties", "LOW-MEDIUM"},
			{8, "Institutional Ties", "LOW-MEDIUM"},
			{9, "Firm-Anchored", "LOW"},
			{10, "Firm-Anchored", "LOW"},
		}

		Convey("Then each score maps to its band", func() {
			for _, tc := range cases {
				band := succession.StrengthBandFor(tc.score)
				So(band.Label, ShouldEqual, tc.label)
				So(band.Risk, ShouldEqual, tc.risk)
			}
		})
	})
}

func TestIntensityBandFor(t *testing.T) {
	Convey("Given relationship-intensity scores", t, func() {
		cases := []struct {
			score      int
			label      string
			complexity string
		}{
			{2, "Minimal Contact", "Simple"},
			{4, "Periodic Touch", "Standard"},
			{6, "Regular Engagement", "Moderate"},
			{8, "High Touch", "Complex"},
			{9, "Mission Critical", "Critical planning required"},
		}

		Convey("Then each score maps to its band", func() {
			for _, tc := range cases {
				band := succession.IntensityBandFor(tc.score)
				So(band.Label, ShouldEqual, tc.label)
				So(band.Complexity, ShouldEqual, tc.complexity)
			}
		})
	})
}

func TestBuildReport(t *testing.T) {
	Convey("Given a snapshot with one departing partner", t, func() {
		clients := []model.Client{
			{
				ID:                    "c1",
				Name:                  "Acme",
				PrimaryOwner:          "Helen Vargas",
				StrategicValue:        9,
				RelationshipStrength:  2,
				RelationshipIntensity: 9,
				Revenue:               []model.RevenueRecord{{Year: "2025", Amount: "250000"}},
			},
			{
				ID:                    "c2",
				Name:                  "Globex",
				PrimaryOwner:          "Helen Vargas",
				StrategicValue:        5,
				RelationshipStrength:  7,
				RelationshipIntensity: 3,
				Revenue:               []model.RevenueRecord{{Year: "2025", Amount: "90000"}},
			},
			{
				ID:                    "c3",
				Name:                  "Initech",
				PrimaryOwner:          "Marcus Webb",
				StrategicValue:        10,
				RelationshipStrength:  5,
				RelationshipIntensity: 5,
				Revenue:               []model.RevenueRecord{{Year: "2025", Amount: "400000"}},
			},
		}
		partners, err := roster.MarkDeparting(roster.NewAggregator().Build(clients), "helen_vargas")
		So(err, ShouldBeNil)

		Convey("When building the report", func() {
			report := succession.NewAnalyzer().BuildReport(clients, partners)

			Convey("Then band counts cover every client, departing or not", func() {
				So(report.RiskBandCounts["HIGH"], ShouldEqual, 1)
				So(report.RiskBandCounts["LOW-MEDIUM"], ShouldEqual, 1)
				So(report.RiskBandCounts["MEDIUM"], ShouldEqual, 1)
				So(report.ComplexityBandCounts["Critical planning required"], ShouldEqual, 1)
				So(report.ComplexityBandCounts["Standard"], ShouldEqual, 1)
				So(report.ComplexityBandCounts["Moderate"], ShouldEqual, 1)
			})

			Convey("Then only high-value clients of the departing partner are at risk", func() {
				So(report.RevenueAtRisk, ShouldEqual, 250000)
				So(report.ClientsAtRisk, ShouldHaveLength, 1)
				So(report.ClientsAtRisk[0].ClientID, ShouldEqual, "c1")
				So(report.ClientsAtRisk[0].PartnerID, ShouldEqual, "helen_vargas")
				So(report.ClientsAtRisk[0].Revenue, ShouldEqual, 250000)
				So(report.ClientsAtRisk[0].Strength.Risk, ShouldEqual, "HIGH")
			})
		})

		Convey("When the threshold is lowered", func() {
			report := succession.NewAnalyzer(succession.WithStrategicValueThreshold(4)).BuildReport(clients, partners)

			Convey("Then the second departing client qualifies too", func() {
				So(report.RevenueAtRisk, ShouldEqual, 340000)
				So(report.ClientsAtRisk, ShouldHaveLength, 2)
			})
		})

		Convey("When a client sits exactly on the threshold", func() {
			report := succession.NewAnalyzer(succession.WithStrategicValueThreshold(9)).BuildReport(clients, partners)

			Convey("Then it does not qualify", func() {
				So(report.ClientsAtRisk, ShouldBeEmpty)
			})
		})
	})

	Convey("Given no departing partners", t, func() {
		clients := []model.Client{
			{ID: "c1", PrimaryOwner: "Helen Vargas", StrategicValue: 10, RelationshipStrength: 1, RelationshipIntensity: 1},
		}
		partners := roster.NewAggregator().Build(clients)

		Convey("When building the report", func() {
			report := succession.NewAnalyzer().BuildReport(clients, partners)

			Convey("Then bands are counted but nothing is at risk", func() {
				So(report.RiskBandCounts["HIGH"], ShouldEqual, 1)
				So(report.RevenueAtRisk, ShouldEqual, 0)
				So(report.ClientsAtRisk, ShouldBeEmpty)
			})
		})
	})

	Convey("Given an empty snapshot", t, func() {
		report := succession.NewAnalyzer().BuildReport(nil, nil)

		So(report.RiskBandCounts, ShouldBeEmpty)
		So(report.ClientsAtRisk, ShouldBeEmpty)
		So(report.RevenueAtRisk, ShouldEqual, 0)
	})

	Convey("Given a custom target year", t, func() {
		clients := []model.Client{
			{
				ID:             "c1",
				PrimaryOwner:   "Helen Vargas",
				StrategicValue: 8,
				Revenue:        []model.RevenueRecord{{Year: "2024", Amount: "120000"}},
			},
		}
		partners, err := roster.MarkDeparting(roster.NewAggregator().Build(clients), "helen_vargas")
		So(err, ShouldBeNil)

		Convey("When analyzing against 2024", func() {
			report := succession.NewAnalyzer(succession.WithTargetYear(2024)).BuildReport(clients, partners)

			So(report.RevenueAtRisk, ShouldEqual, 120000)
		})
	})
}
