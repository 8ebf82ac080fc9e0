package category_test

import (
	"testing"

	"github.com/ecoperks/ecosort/internal/domain/category"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given the closed category set", t, func() {
		Convey("When parsing known names", func() {
			c, err := category.Parse("trash")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, category.Trash)

			c, err = category.Parse("recycling")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, category.Recycling)

			c, err = category.Parse("compost")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, category.Compost)
		})

		Convey("When parsing with mixed case and whitespace", func() {
			c, err := category.Parse("  ReCycling ")
			So(err, ShouldBeNil)
			So(c, ShouldEqual, category.Recycling)
		})

		Convey("When parsing an unknown name", func() {
			_, err := category.Parse("plastic")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "plastic")
		})

		Convey("Then All lists exactly the three categories", func() {
			So(category.All(), ShouldResemble, []category.Category{
				category.Trash, category.Recycling, category.Compost,
			})
			So(category.Count, ShouldEqual, 3)
		})
	})
}

func TestParseSet(t *testing.T) {
	Convey("Given a slice of category names", t, func() {
		Convey("When every name is valid", func() {
			s, err := category.ParseSet([]string{"trash", "compost", "TRASH"})
			So(err, ShouldBeNil)
			So(s.Len(), ShouldEqual, 2)
			So(s.Contains(category.Trash), ShouldBeTrue)
			So(s.Contains(category.Compost), ShouldBeTrue)
		})

		Convey("When any name is invalid the whole parse fails", func() {
			_, err := category.ParseSet([]string{"trash", "metal"})
			So(err, ShouldNotBeNil)
		})

		Convey("When the slice is empty the set is empty", func() {
			s, err := category.ParseSet(nil)
			So(err, ShouldBeNil)
			So(s.IsEmpty(), ShouldBeTrue)
		})
	})
}

func TestSetOperations(t *testing.T) {
	Convey("Given two category sets", t, func() {
		a := category.NewSet(category.Trash, category.Recycling)
		b := category.NewSet(category.Recycling, category.Compost)

		Convey("Then Intersect returns the shared categories", func() {
			So(a.Intersect(b).Equal(category.NewSet(category.Recycling)), ShouldBeTrue)
		})

		Convey("Then Diff returns the one-sided categories", func() {
			So(a.Diff(b).Equal(category.NewSet(category.Trash)), ShouldBeTrue)
			So(b.Diff(a).Equal(category.NewSet(category.Compost)), ShouldBeTrue)
		})

		Convey("Then Equal is symmetric and exact", func() {
			So(a.Equal(a), ShouldBeTrue)
			So(a.Equal(b), ShouldBeFalse)
			So(category.NewSet().Equal(category.Set{}), ShouldBeTrue)
		})

		Convey("Then Sorted and Strings are deterministic", func() {
			s := category.NewSet(category.Trash, category.Compost, category.Recycling)
			So(s.Strings(), ShouldResemble, []string{"compost", "recycling", "trash"})
			So(s.String(), ShouldEqual, "compost, recycling, trash")
		})

		Convey("Then the zero value behaves as an empty set", func() {
			var zero category.Set
			So(zero.IsEmpty(), ShouldBeTrue)
			So(zero.Contains(category.Trash), ShouldBeFalse)
			So(zero.Intersect(a).IsEmpty(), ShouldBeTrue)
		})
	})
}
