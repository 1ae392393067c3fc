package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/decker502/imagetrail/pkg/trail"
)

func TestManager(t *testing.T) {
	Convey("Given a metrics manager on a private registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("It starts idle", func() {
			So(testutil.ToFloat64(m.idle), ShouldEqual, 1)
			So(testutil.ToFloat64(m.activeAnims), ShouldEqual, 0)
			So(m.Registry(), ShouldEqual, registry)
		})

		Convey("When reveals are observed", func() {
			m.Revealed(trail.RevealEvent{Slot: 0, Z: 2})
			m.Revealed(trail.RevealEvent{Slot: 0, Z: 3, Preempted: true})
			m.Revealed(trail.RevealEvent{Slot: 1, Z: 4})

			Convey("Then counters and the stacking gauge follow", func() {
				So(testutil.ToFloat64(m.reveals), ShouldEqual, 3)
				So(testutil.ToFloat64(m.preemptions), ShouldEqual, 1)
				So(testutil.ToFloat64(m.revealsBySlot.WithLabelValues("0")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.revealsBySlot.WithLabelValues("1")), ShouldEqual, 1)
				So(testutil.ToFloat64(m.stackingOrder), ShouldEqual, 4)
			})
		})

		Convey("When activity changes", func() {
			m.ActivityChanged(2, false)
			So(testutil.ToFloat64(m.activeAnims), ShouldEqual, 2)
			So(testutil.ToFloat64(m.idle), ShouldEqual, 0)

			m.ActivityChanged(0, true)
			So(testutil.ToFloat64(m.activeAnims), ShouldEqual, 0)
			So(testutil.ToFloat64(m.idle), ShouldEqual, 1)
		})

		Convey("When frames and mounts are recorded", func() {
			m.RecordFrame()
			m.RecordFrame()
			m.RecordMount(3, 2)

			So(testutil.ToFloat64(m.frames), ShouldEqual, 2)
			So(testutil.ToFloat64(m.mounts.WithLabelValues("3")), ShouldEqual, 1)
			So(testutil.ToFloat64(m.slotsUnmeasured), ShouldEqual, 2)
		})

		Convey("The handler exposes namespaced metric names", func() {
			m.Revealed(trail.RevealEvent{Slot: 0, Z: 2})

			rec := httptest.NewRecorder()
			m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(rec.Body.String(), ShouldContainSubstring, "imagetrail_trail_reveals_total 1")
			So(rec.Body.String(), ShouldContainSubstring, "imagetrail_trail_idle 1")
		})
	})
}

func TestManagerDisabled(t *testing.T) {
	Convey("Given a disabled manager", t, func() {
		m := NewManager(WithMetricsEnabled(false), WithNamespace("x"), WithSubsystem("y"))

		Convey("Observations are ignored", func() {
			m.Revealed(trail.RevealEvent{Slot: 0, Z: 9, Preempted: true})
			m.ActivityChanged(5, false)
			m.RecordFrame()

			So(testutil.ToFloat64(m.reveals), ShouldEqual, 0)
			So(testutil.ToFloat64(m.preemptions), ShouldEqual, 0)
			So(testutil.ToFloat64(m.activeAnims), ShouldEqual, 0)
			So(testutil.ToFloat64(m.frames), ShouldEqual, 0)
		})
	})
}

func TestServe(t *testing.T) {
	Convey("Given a manager serving on a free port", t, func() {
		m := NewManager()
		m.RecordFrame()

		stop, err := m.Serve(context.Background(), "127.0.0.1:0")
		So(err, ShouldBeNil)
		defer stop()

		Convey("A bad address fails with ErrServe", func() {
			_, err := m.Serve(context.Background(), "256.0.0.1:bad")
			So(errors.Is(err, ErrServe), ShouldBeTrue)
		})
	})
}

func TestHandlerOutputParses(t *testing.T) {
	m := NewManager(WithConstLabels(map[string]string{"instance": "test"}))
	m.RecordFrame()

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	want := `imagetrail_trail_frames_total{instance="test"} 1`
	if !strings.Contains(string(body), want) {
		t.Errorf("metrics output missing %q:\n%s", want, body)
	}
}
