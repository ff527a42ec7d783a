package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should use the default namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "pitchside")
				So(manager.subsystem, ShouldEqual, "roster")
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("club"),
				WithSubsystem("squad"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"club": "Bristol City"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then the options should be applied", func() {
				So(manager.namespace, ShouldEqual, "club")
				So(manager.subsystem, ShouldEqual, "squad")
				So(manager.histogramBuckets, ShouldResemble, []float64{1, 5, 10})
				So(manager.constLabels["club"], ShouldEqual, "Bristol City")
			})
		})

		Convey("When empty options are passed", func() {
			manager := NewManager(
				WithNamespace(""),
				WithSubsystem(""),
				WithHistogramBuckets(nil),
				WithPrometheusRegistry(prometheus.NewRegistry()),
			)

			Convey("Then defaults are kept", func() {
				So(manager.namespace, ShouldEqual, "pitchside")
				So(manager.subsystem, ShouldEqual, "roster")
				So(manager.histogramBuckets, ShouldResemble, prometheus.DefBuckets)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given an isolated manager installed as the global", t, func() {
		previous := Current()
		registry := prometheus.NewRegistry()
		manager := NewManager(WithPrometheusRegistry(registry))
		So(Use(manager), ShouldBeNil)
		Reset(func() { _ = Use(previous) })

		Convey("When recording pipeline metrics", func() {
			RecordPipelineRun("ok")
			RecordPipelineRun("ok")
			RecordPipelineRun("missing_source")
			RecordPipelineDuration(12.5)
			UpdateRosterSize(18)
			UpdateFilteredSize(7)
			RecordUnmappedPosition("SW")
			RecordDuplicatePlayerID()
			RecordSourceLoadError("bench")
			RecordExport()

			Convey("Then counters and gauges reflect the calls", func() {
				So(testutil.ToFloat64(manager.pipelineRuns.WithLabelValues("ok")), ShouldEqual, 2)
				So(testutil.ToFloat64(manager.pipelineRuns.WithLabelValues("missing_source")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.rosterSize), ShouldEqual, 18)
				So(testutil.ToFloat64(manager.filteredSize), ShouldEqual, 7)
				So(testutil.ToFloat64(manager.unmappedPositions.WithLabelValues("SW")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.duplicatePlayerIDs), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.sourceLoadErrors.WithLabelValues("bench")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.exportsWritten), ShouldEqual, 1)
			})
		})

		Convey("When recording HTTP and system metrics", func() {
			So(func() {
				RecordHTTPRequest("dashboard", "GET", "200")
				RecordHTTPRequestDuration("dashboard", "GET", "200", 3)
				RecordErrorByEndpoint("players", "GET", "not_found")
				RecordErrorByType("not_found", "medium")
				UpdateSystemMemoryUsage(1024)
				UpdateSystemGoroutineCount(10)
				RecordSystemGCPauseTime(0.5)
			}, ShouldNotPanic)

			Convey("Then the request counter is labelled", func() {
				So(testutil.ToFloat64(manager.httpRequests.WithLabelValues("dashboard", "GET", "200")), ShouldEqual, 1)
			})
		})

		Convey("When gathering from the active manager", func() {
			g, err := Gatherer()

			Convey("Then the isolated registry is returned", func() {
				So(err, ShouldBeNil)
				So(g, ShouldEqual, registry)
			})
		})
	})
}

func TestUseNilManager(t *testing.T) {
	Convey("Given a nil manager", t, func() {
		Convey("Then Use refuses it", func() {
			So(Use(nil), ShouldEqual, ErrNilManager)
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package registry", t, func() {
		Convey("Then it is non-nil and stable", func() {
			So(GetRegistry(), ShouldNotBeNil)
			So(GetRegistry(), ShouldEqual, GetRegistry())
		})
	})
}
