package model_test

import (
	"encoding/json"
	"testing"

	"github.com/okian/baton/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNormalize(t *testing.T) {
	Convey("Given a client with missing optional fields", t, func() {
		c := model.Client{ID: "c1", Name: "Acme"}

		Convey("When normalizing", func() {
			out := model.Normalize(c)

			Convey("Then documented defaults are applied", func() {
				So(out.PrimaryOwner, ShouldEqual, model.UnassignedOwner)
				So(out.PracticeAreas, ShouldNotBeNil)
				So(out.PracticeAreas, ShouldBeEmpty)
				So(out.TeamMembers, ShouldNotBeNil)
				So(out.Revenue, ShouldNotBeNil)
			})

			Convey("And the input is left untouched", func() {
				So(c.PrimaryOwner, ShouldEqual, "")
				So(c.PracticeAreas, ShouldBeNil)
			})
		})

		Convey("When the owner is only whitespace", func() {
			c.PrimaryOwner = "   "
			out := model.Normalize(c)

			Convey("Then it still defaults", func() {
				So(out.PrimaryOwner, ShouldEqual, model.UnassignedOwner)
			})
		})
	})

	Convey("Given a fully populated client", t, func() {
		c := model.Client{
			ID:            "c2",
			Name:          "Globex",
			PrimaryOwner:  "Helen Vargas",
			PracticeAreas: []string{"Energy"},
			TeamMembers:   []string{"Marcus Webb"},
		}

		Convey("When normalizing twice", func() {
			once := model.Normalize(c)
			twice := model.Normalize(once)

			Convey("Then normalization is idempotent", func() {
				So(twice, ShouldResemble, once)
			})
		})
	})
}

func TestSlug(t *testing.T) {
	Convey("Given owner names", t, func() {
		Convey("Then slugs are lowercased with spaces replaced", func() {
			So(model.Slug("Helen Vargas"), ShouldEqual, "helen_vargas")
			So(model.Slug("Unassigned"), ShouldEqual, "unassigned")
			So(model.Slug("A B C"), ShouldEqual, "a_b_c")
		})
	})
}

func TestFlexValue(t *testing.T) {
	Convey("Given revenue records on the wire", t, func() {
		Convey("When the year and amount are numbers", func() {
			var rec model.RevenueRecord
			err := json.Unmarshal([]byte(`{"year":2025,"amount":125000.5}`), &rec)

			So(err, ShouldBeNil)
			So(rec.Year.String(), ShouldEqual, "2025")
			So(rec.Amount.String(), ShouldEqual, "125000.5")
		})

		Convey("When the year and amount are strings", func() {
			var rec model.RevenueRecord
			err := json.Unmarshal([]byte(`{"year":"2025","amount":"125000"}`), &rec)

			So(err, ShouldBeNil)
			So(rec.Year.String(), ShouldEqual, "2025")
			So(rec.Amount.String(), ShouldEqual, "125000")
		})

		Convey("When a field is null", func() {
			var rec model.RevenueRecord
			err := json.Unmarshal([]byte(`{"year":null,"amount":null}`), &rec)

			So(err, ShouldBeNil)
			So(rec.Year.String(), ShouldEqual, "")
		})

		Convey("When marshaling back", func() {
			rec := model.RevenueRecord{Year: "2025", Amount: "100"}
			data, err := json.Marshal(rec)

			So(err, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"year":"2025"`)
		})
	})
}
