package mask_test

import (
	"strings"
	"testing"

	"github.com/selimbas/revquiz/internal/domain/mask"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMask(t *testing.T) {
	Convey("Given a review mentioning the title", t, func() {
		Convey("When the full name appears in mixed case", func() {
			out := mask.Mask("I love hollow knight, HOLLOW KNIGHT forever", "Hollow Knight")

			Convey("Then every occurrence is replaced", func() {
				So(strings.ToLower(out), ShouldNotContainSubstring, "hollow")
				So(strings.ToLower(out), ShouldNotContainSubstring, "knight")
				So(out, ShouldContainSubstring, mask.Token)
			})
		})

		Convey("When only a fragment of the name appears", func() {
			out := mask.Mask("the knight's nail is great", "Hollow Knight")

			Convey("Then the fragment is masked on its own", func() {
				So(strings.ToLower(out), ShouldNotContainSubstring, "knight")
			})
		})

		Convey("When the title contains short connector words", func() {
			out := mask.Mask("a sea of thieves tale on the sea", "Sea of Thieves")

			Convey("Then only fragments longer than three runes are masked", func() {
				So(strings.ToLower(out), ShouldNotContainSubstring, "thieves")
				// "sea" and "of" are too short to mask independently.
				So(out, ShouldContainSubstring, "sea")
			})
		})

		Convey("When the title contains regex metacharacters", func() {
			So(func() {
				mask.Mask("played S.T.A.L.K.E.R. yesterday", "S.T.A.L.K.E.R.: Shadow (Redux)")
			}, ShouldNotPanic)

			out := mask.Mask("played S.T.A.L.K.E.R. yesterday", "S.T.A.L.K.E.R.: Shadow (Redux)")
			So(out, ShouldNotContainSubstring, "S.T.A.L.K.E.R.")
		})

		Convey("When the title splits on colons and hyphens", func() {
			out := mask.Mask("portal was good but Portal is better", "Half-Life: Alyx und Portal")
			So(strings.ToLower(out), ShouldNotContainSubstring, "portal")
			So(strings.ToLower(out), ShouldNotContainSubstring, "alyx")
			So(strings.ToLower(out), ShouldNotContainSubstring, "half")
		})

		Convey("When the title is empty", func() {
			So(mask.Mask("unchanged text", "  "), ShouldEqual, "unchanged text")
		})
	})
}

func TestFragments(t *testing.T) {
	Convey("Given title fragmenting", t, func() {
		Convey("Then fragments keep only significant words", func() {
			So(mask.Fragments("The Witcher 3: Wild Hunt"), ShouldResemble, []string{"Witcher", "Wild", "Hunt"})
		})

		Convey("Then unicode titles count runes, not bytes", func() {
			// Five runes but more than five bytes.
			So(mask.Fragments("Gölge"), ShouldResemble, []string{"Gölge"})
		})
	})
}
