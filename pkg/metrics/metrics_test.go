package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a fresh registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithRegistry(reg), WithNamespace("test"), WithSubsystem("quiz"))
		So(m, ShouldNotBeNil)

		Convey("Then all collectors are registered and gatherable", func() {
			m.httpRequests.WithLabelValues("quiz", "GET", "200").Inc()
			m.refreshCycles.Inc()
			m.titlesSkipped.WithLabelValues("no_reviews").Inc()
			m.snapshotSize.Set(12)

			families, err := reg.Gather()
			So(err, ShouldBeNil)
			So(len(families), ShouldBeGreaterThan, 0)
		})

		Convey("And registering the same namespace twice panics", func() {
			So(func() {
				NewManager(WithRegistry(reg), WithNamespace("test"), WithSubsystem("quiz"))
			}, ShouldPanic)
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the helpers never panic", func() {
			So(func() {
				RecordHTTPRequest("quiz", "GET", "200")
				RecordHTTPRequestDuration("quiz", "GET", 12.5)
				RecordRefreshCycle(3.0)
				RecordRefreshDiscarded()
				RecordTitleResolved()
				RecordTitleSkipped("fetch_failed")
				RecordReviewAdmitted()
				RecordReviewRejected("too_short")
				UpdateSnapshotSize(5)
				UpdateSnapshotAge(60)
				RecordColdCacheRead()
				RecordRoundServed()
				UpdateLedgerSize(3)
				RecordLedgerEviction()
			}, ShouldNotPanic)
		})

		Convey("And the registry is exposed for scraping", func() {
			So(GetRegistry(), ShouldNotBeNil)
		})
	})
}
