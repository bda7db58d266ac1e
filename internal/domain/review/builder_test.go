package review_test

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/selimbas/revquiz/internal/domain/review"
	. "github.com/smartystreets/goconvey/convey"
)

func informativeText(i int) string {
	return fmt.Sprintf("yorum %02d: %s", i,
		"haritası kocaman, yan görevleri dolu ve atmosferi insanı saatlerce içine çeken bir yapım")
}

func punchyText(i int) string {
	return fmt.Sprintf("kısa ama vurucu bir deneyim %02d", i)
}

func rawsOf(texts ...string) []review.Raw {
	out := make([]review.Raw, len(texts))
	for i, t := range texts {
		out[i] = review.Raw{Text: t, PlaytimeMinutes: 120, HelpfulVotes: i}
	}
	return out
}

func TestBuilderRejection(t *testing.T) {
	Convey("Given a builder with the default viable floor", t, func() {
		b := review.NewBuilder(review.WithRand(rand.New(rand.NewSource(1))))

		Convey("When only two of ten raw reviews are admissible", func() {
			raws := rawsOf(
				informativeText(1),
				punchyText(2),
				"kısa", "a", "b", "c", "d", "e", "f", "g",
			)
			got, _, ok := b.Build(raws, "Test Game")

			Convey("Then the title is rejected", func() {
				So(ok, ShouldBeFalse)
				So(got, ShouldBeNil)
			})
		})

		Convey("When no reviews are provided", func() {
			got, _, ok := b.Build(nil, "Test Game")

			Convey("Then the title is rejected", func() {
				So(ok, ShouldBeFalse)
				So(got, ShouldBeNil)
			})
		})
	})
}

func TestBuilderComposition(t *testing.T) {
	Convey("Given a builder capped at ten stored clues", t, func() {
		b := review.NewBuilder(
			review.WithPoolSize(10),
			review.WithRand(rand.New(rand.NewSource(7))),
		)

		Convey("When more than ten admissible reviews exist", func() {
			var texts []string
			for i := 0; i < 12; i++ {
				texts = append(texts, informativeText(i))
			}
			for i := 0; i < 6; i++ {
				texts = append(texts, punchyText(i))
			}
			got, stats, ok := b.Build(rawsOf(texts...), "Test Game")

			Convey("Then exactly ten reviews come back", func() {
				So(ok, ShouldBeTrue)
				So(len(got), ShouldEqual, 10)
			})

			Convey("And both buckets are represented", func() {
				informative, punchy := 0, 0
				for _, c := range got {
					switch c.Bucket {
					case review.BucketInformative:
						informative++
					case review.BucketPunchy:
						punchy++
					}
				}
				So(informative, ShouldEqual, 8)
				So(punchy, ShouldEqual, 2)
			})

			Convey("And the strict policy was sufficient", func() {
				So(stats.Policy, ShouldEqual, "strict")
				So(stats.Admitted, ShouldEqual, 18)
			})
		})

		Convey("When fewer admissible reviews exist than the round size", func() {
			got, _, ok := b.Build(rawsOf(
				informativeText(0), informativeText(1), punchyText(0), punchyText(1),
			), "Test Game")

			Convey("Then the result is capped at the distinct candidate count", func() {
				So(ok, ShouldBeTrue)
				So(len(got), ShouldEqual, 4)

				seen := make(map[string]int)
				for _, c := range got {
					seen[c.Text]++
				}
				for _, n := range seen {
					So(n, ShouldEqual, 1)
				}
			})
		})

		Convey("When the same review text appears several times", func() {
			got, stats, ok := b.Build(rawsOf(
				informativeText(0), informativeText(0), informativeText(0),
				punchyText(0), punchyText(1), punchyText(2),
			), "Test Game")

			Convey("Then duplicates are dropped before composition", func() {
				So(ok, ShouldBeTrue)
				So(len(got), ShouldEqual, 4)
				So(stats.Rejected[review.ReasonDuplicate], ShouldEqual, 2)
			})
		})
	})
}

func TestBuilderPoolRetention(t *testing.T) {
	Convey("Given a builder with the default pool size", t, func() {
		b := review.NewBuilder(review.WithRand(rand.New(rand.NewSource(13))))

		Convey("When twenty admissible reviews come in", func() {
			var texts []string
			for i := 0; i < 20; i++ {
				texts = append(texts, informativeText(i))
			}
			got, _, ok := b.Build(rawsOf(texts...), "Test Game")

			Convey("Then all of them are retained in the pool", func() {
				So(ok, ShouldBeTrue)
				So(len(got), ShouldEqual, 20)
			})
		})

		Convey("When more admissible reviews come in than the pool holds", func() {
			var texts []string
			for i := 0; i < 40; i++ {
				texts = append(texts, informativeText(i))
			}
			got, _, ok := b.Build(rawsOf(texts...), "Test Game")

			Convey("Then the pool is capped", func() {
				So(ok, ShouldBeTrue)
				So(len(got), ShouldEqual, 30)
			})
		})
	})
}

func TestBuilderRanking(t *testing.T) {
	Convey("Given informative reviews with distinct helpfulness votes", t, func() {
		b := review.NewBuilder(
			review.WithPoolSize(10),
			review.WithRand(rand.New(rand.NewSource(3))),
		)

		raws := []review.Raw{
			{Text: informativeText(1), HelpfulVotes: 5},
			{Text: informativeText(2), HelpfulVotes: 50},
			{Text: informativeText(3), HelpfulVotes: 1},
			{Text: informativeText(4), HelpfulVotes: 40},
			{Text: informativeText(5), HelpfulVotes: 30},
			{Text: informativeText(6), HelpfulVotes: 20},
			{Text: informativeText(7), HelpfulVotes: 10},
			{Text: informativeText(8), HelpfulVotes: 9},
			{Text: informativeText(9), HelpfulVotes: 8},
			{Text: punchyText(1), HelpfulVotes: 100},
			{Text: punchyText(2), HelpfulVotes: 90},
		}
		got, _, ok := b.Build(raws, "Test Game")

		Convey("Then the least helpful informative review is the one left out", func() {
			So(ok, ShouldBeTrue)
			So(len(got), ShouldEqual, 10)

			for _, c := range got {
				So(c.Text, ShouldNotEqual, informativeText(3))
			}
		})
	})
}

func TestBuilderMasking(t *testing.T) {
	Convey("Given reviews that name the game", t, func() {
		b := review.NewBuilder(review.WithRand(rand.New(rand.NewSource(11))))

		raws := rawsOf(
			"Hollow Knight haritası kocaman ve atmosferi inanılmaz, hollow knight oynayın",
			"knight temalı oyunların en iyisi bence, kesinlikle bakın",
			"bu yapım beni saatlerce ekrana kilitledi, müzikleri de harbiden etkileyici",
		)
		got, _, ok := b.Build(raws, "Hollow Knight")

		Convey("Then no output text contains the title or its fragments", func() {
			So(ok, ShouldBeTrue)
			for _, c := range got {
				So(strings.ToLower(c.Text), ShouldNotContainSubstring, "hollow")
				So(strings.ToLower(c.Text), ShouldNotContainSubstring, "knight")
			}
		})
	})
}

func TestBuilderRelaxation(t *testing.T) {
	Convey("Given reviews that only pass the relaxed ruleset", t, func() {
		b := review.NewBuilder(review.WithRand(rand.New(rand.NewSource(5))))

		// Stock praise below 80 runes: strict rejects, relaxed admits.
		raws := rawsOf(
			"harika oyun herkese tavsiye ederim bence",
			"güzel oyun, arkadaşlarla oynayınca daha iyi",
			"efsane oyun, yıllardır bırakamıyorum gerçekten",
		)
		got, stats, ok := b.Build(raws, "Test Game")

		Convey("Then the relaxed fallback rescues the title", func() {
			So(ok, ShouldBeTrue)
			So(len(got), ShouldEqual, 3)
			So(stats.Policy, ShouldEqual, "relaxed")
		})
	})
}
