package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestManager(t *testing.T) {
	Convey("Given a manager on a private registry", t, func() {
		manager := NewManager(WithPrometheusRegistry(prometheus.NewRegistry()), WithNamespace("test"))

		Convey("When XP is awarded with a level-up", func() {
			manager.RecordXPAward("session_completed", 50, true)
			manager.RecordXPAward("session_completed", 10, false)

			Convey("Then the amount and the level-up are counted", func() {
				So(testutil.ToFloat64(manager.xpAwarded.WithLabelValues("session_completed")), ShouldEqual, 60)
				So(testutil.ToFloat64(manager.levelUps), ShouldEqual, 1)
			})
		})

		Convey("When transitions and ratings are recorded", func() {
			manager.RecordSessionTransition("accepted", "ok")
			manager.RecordSessionTransition("accepted", "conflict")
			manager.RecordRating(5)

			Convey("Then each label set is counted separately", func() {
				So(testutil.ToFloat64(manager.sessionTransitions.WithLabelValues("accepted", "ok")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.sessionTransitions.WithLabelValues("accepted", "conflict")), ShouldEqual, 1)
				So(testutil.ToFloat64(manager.ratingsSubmitted.WithLabelValues("5")), ShouldEqual, 1)
			})
		})

		Convey("When an external call fails", func() {
			manager.ObserveExternalCall("ml", time.Now(), errors.New("boom"))

			Convey("Then it is observed under the error outcome", func() {
				So(testutil.CollectAndCount(manager.externalCalls), ShouldEqual, 1)
			})
		})

		Convey("When the handler is scraped through fiber", func() {
			manager.RecordRecommendations("skill", 3)
			app := fiber.New()
			app.Use(manager.Middleware())
			app.Get("/metrics", manager.Handler())

			resp, err := app.Test(httptest.NewRequest("GET", "/metrics", nil))
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)

			Convey("Then the exposition contains the recorded series", func() {
				So(resp.StatusCode, ShouldEqual, 200)
				So(strings.Contains(string(body), "test_matching_candidates_served_total"), ShouldBeTrue)
			})
		})
	})

	Convey("Given a nil manager", t, func() {
		var manager *Manager

		Convey("Then recording is a no-op", func() {
			So(func() {
				manager.RecordXPAward("rating_given", 5, false)
				manager.RecordRating(3)
				manager.ObserveExternalCall("llm", time.Now(), nil)
			}, ShouldNotPanic)
		})
	})
}
