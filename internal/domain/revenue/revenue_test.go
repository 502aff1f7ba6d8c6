package revenue_test

import (
	"testing"

	"github.com/okian/baton/internal/domain/model"
	"github.com/okian/baton/internal/domain/revenue"
	. "github.com/smartystreets/goconvey/convey"
)

func TestResolve(t *testing.T) {
	Convey("Given a client with a revenue history", t, func() {
		c := model.Client{
			ID: "c1",
			Revenue: []model.RevenueRecord{
				{Year: "2023", Amount: "80000"},
				{Year: "2024", Amount: "90000"},
				{Year: "2025", Amount: "100000"},
			},
		}

		Convey("When the target year is present", func() {
			So(revenue.Resolve(c, 2025), ShouldEqual, 100000)
			So(revenue.Resolve(c, 2023), ShouldEqual, 80000)
		})

		Convey("When the target year is absent", func() {
			So(revenue.Resolve(c, 2020), ShouldEqual, 0)
		})
	})

	Convey("Given a client with no history", t, func() {
		So(revenue.Resolve(model.Client{ID: "c2"}, 2025), ShouldEqual, 0)
	})

	Convey("Given duplicate entries for the same year", t, func() {
		c := model.Client{
			Revenue: []model.RevenueRecord{
				{Year: "2025", Amount: "100"},
				{Year: "2025", Amount: "999"},
			},
		}

		Convey("Then the first entry in list order wins", func() {
			So(revenue.Resolve(c, 2025), ShouldEqual, 100)
		})
	})

	Convey("Given an unparseable amount on the matching entry", t, func() {
		c := model.Client{
			Revenue: []model.RevenueRecord{
				{Year: "2025", Amount: "n/a"},
				{Year: "2025", Amount: "500"},
			},
		}

		Convey("Then it resolves to zero; later duplicates stay ignored", func() {
			So(revenue.Resolve(c, 2025), ShouldEqual, 0)
		})
	})

	Convey("Given years that arrived as JSON numbers", t, func() {
		c := model.Client{
			Revenue: []model.RevenueRecord{
				{Year: model.FlexValue("2025"), Amount: model.FlexValue("42000.50")},
			},
		}

		Convey("Then string comparison after coercion still matches", func() {
			So(revenue.Resolve(c, 2025), ShouldEqual, 42000.50)
		})
	})
}

func TestTotal(t *testing.T) {
	Convey("Given several clients", t, func() {
		clients := []model.Client{
			{Revenue: []model.RevenueRecord{{Year: "2025", Amount: "100"}}},
			{Revenue: []model.RevenueRecord{{Year: "2025", Amount: "200"}}},
			{Revenue: []model.RevenueRecord{{Year: "2024", Amount: "999"}}},
		}

		Convey("Then Total sums only the target year", func() {
			So(revenue.Total(clients, 2025), ShouldEqual, 300)
		})
	})
}
