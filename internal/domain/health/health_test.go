package health_test

import (
	"testing"

	"github.com/okian/baton/internal/domain/health"
	"github.com/okian/baton/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given an empty roster", t, func() {
		score := health.NewScorer().Compute(nil)

		Convey("Then the score is a perfect 100", func() {
			So(score.Composite, ShouldEqual, 100)
			So(score.RevenueScore, ShouldEqual, 100)
			So(score.CapacityScore, ShouldEqual, 100)
			So(score.OverloadScore, ShouldEqual, 100)
			So(score.Degraded, ShouldBeFalse)
		})
	})

	Convey("Given a perfectly balanced roster", t, func() {
		partners := []model.Partner{
			{ID: "a", TotalRevenue: 100000, CapacityUsed: 40},
			{ID: "b", TotalRevenue: 100000, CapacityUsed: 40},
			{ID: "c", TotalRevenue: 100000, CapacityUsed: 40},
		}

		Convey("When computing", func() {
			score := health.NewScorer().Compute(partners)

			Convey("Then every component is maximal", func() {
				So(score.Composite, ShouldEqual, 100)
				So(score.RevenueScore, ShouldEqual, 100)
				So(score.CapacityScore, ShouldEqual, 100)
				So(score.OverloadScore, ShouldEqual, 100)
			})
		})
	})

	Convey("Given fewer than two revenue-bearing partners", t, func() {
		partners := []model.Partner{
			{ID: "a", TotalRevenue: 250000, CapacityUsed: 50},
			{ID: "b", TotalRevenue: 0, CapacityUsed: 50},
		}

		Convey("Then the revenue component defaults to 100", func() {
			score := health.NewScorer().Compute(partners)
			So(score.RevenueScore, ShouldEqual, 100)
		})
	})

	Convey("Given concentrated revenue", t, func() {
		partners := []model.Partner{
			{ID: "a", TotalRevenue: 900000, CapacityUsed: 40},
			{ID: "b", TotalRevenue: 100000, CapacityUsed: 40},
		}

		Convey("When computing", func() {
			score := health.NewScorer().Compute(partners)

			Convey("Then the revenue component is penalized", func() {
				// mean 500000, stddev 400000, CV 80%, 100 - 160 floors at 0.
				So(score.RevenueScore, ShouldEqual, 0)
				So(score.CapacityScore, ShouldEqual, 100)
				So(score.OverloadScore, ShouldEqual, 100)
				So(score.Composite, ShouldEqual, 60)
			})
		})
	})

	Convey("Given overloaded partners", t, func() {
		partners := []model.Partner{
			{ID: "a", TotalRevenue: 100, CapacityUsed: 90},
			{ID: "b", TotalRevenue: 100, CapacityUsed: 90},
			{ID: "c", TotalRevenue: 100, CapacityUsed: 90},
			{ID: "d", TotalRevenue: 100, CapacityUsed: 90},
		}

		Convey("When all are over the default threshold", func() {
			score := health.NewScorer().Compute(partners)
			So(score.OverloadScore, ShouldEqual, 0)
		})

		Convey("When the threshold is raised above them", func() {
			score := health.NewScorer(health.WithOverloadThreshold(95)).Compute(partners)
			So(score.OverloadScore, ShouldEqual, 100)
		})

		Convey("When a partner sits exactly on the threshold", func() {
			score := health.NewScorer(health.WithOverloadThreshold(90)).Compute(partners)

			Convey("Then it does not count as overloaded", func() {
				So(score.OverloadScore, ShouldEqual, 100)
			})
		})
	})

	Convey("Given a single partner", t, func() {
		score := health.NewScorer().Compute([]model.Partner{
			{ID: "a", TotalRevenue: 100000, CapacityUsed: 60},
		})

		Convey("Then dispersion components default to 100", func() {
			So(score.RevenueScore, ShouldEqual, 100)
			So(score.CapacityScore, ShouldEqual, 100)
			So(score.Composite, ShouldEqual, 100)
		})
	})

	Convey("Given repeated computations on the same roster", t, func() {
		partners := []model.Partner{
			{ID: "a", TotalRevenue: 300000, CapacityUsed: 80},
			{ID: "b", TotalRevenue: 120000, CapacityUsed: 33},
			{ID: "c", TotalRevenue: 80000, CapacityUsed: 20},
		}
		scorer := health.NewScorer()

		Convey("Then the result is stable and in range", func() {
			first := scorer.Compute(partners)
			second := scorer.Compute(partners)
			So(second, ShouldResemble, first)
			So(first.Composite, ShouldBeBetweenOrEqual, 0, 100)
		})
	})
}
