package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global metrics manager", t, func() {
		Convey("When recording business metrics", func() {
			Convey("Then the helpers should not panic", func() {
				So(func() {
					RecordMatchRun()
					RecordMatchRunError()
					RecordMatchRunDuration(12.5)
					RecordCandidatesScored(3)
					RecordCandidatesDropped(1)
					RecordMatchesPersisted(2)
					RecordScoringLatency(0.4)
					RecordEmbeddingRequest()
					RecordEmbeddingFallback()
					RecordStoreLatency("replace_matches", 3.2)
					RecordStoreError("replace_matches")
					RecordHTTPRequest("find-matches", "POST", "200")
					RecordHTTPRequestDuration("find-matches", "POST", "200", 8.1)
					UpdateTalentPoolSize(42)
					UpdateWorkerCount(8)
				}, ShouldNotPanic)
			})
		})

		Convey("When fetching the registry", func() {
			Convey("Then it should expose the custom registry", func() {
				So(GetRegistry(), ShouldNotBeNil)
			})
		})
	})
}
