package main

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/fullcircle/internal/adapters/http/api"
	app "github.com/okian/fullcircle/internal/app"
	"github.com/okian/fullcircle/internal/config"
	"github.com/okian/fullcircle/pkg/logger"
	"github.com/okian/fullcircle/pkg/metrics"
)

func init() {
	_ = logger.Init()
}

func TestMainComponents(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("FULLCIRCLE_ADDR", ":8080")
			_ = os.Setenv("FULLCIRCLE_MAX_PEER_RATERS", "3")
			defer func() {
				_ = os.Unsetenv("FULLCIRCLE_ADDR")
				_ = os.Unsetenv("FULLCIRCLE_MAX_PEER_RATERS")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxPeerRaters, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When testing service creation", func() {
			convey.Convey("Then service should be creatable with default options", func() {
				svc := app.New()
				convey.So(svc, convey.ShouldNotBeNil)
			})

			convey.Convey("And service should be creatable with custom options", func() {
				svc := app.New(
					app.WithTierScheme("legacy"),
					app.WithMaxPeerRaters(4),
					app.WithNotifyWorkerCount(3),
				)
				convey.So(svc, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When testing HTTP server creation", func() {
			svc := app.New()

			convey.Convey("Then routes should register on a fresh mux", func() {
				server := api.NewServer(svc, svc)
				convey.So(server, convey.ShouldNotBeNil)

				mux := http.NewServeMux()
				convey.So(func() {
					server.Register(context.Background(), mux)
				}, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When testing metrics initialization", func() {
			convey.Convey("Then a manager should be creatable on a custom registry", func() {
				registry := prometheus.NewRegistry()
				manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
				convey.So(manager, convey.ShouldNotBeNil)
			})
		})
	})
}

func TestServiceMetricsUpdater(t *testing.T) {
	convey.Convey("Given the service metrics updater", t, func() {
		svc := app.New()

		convey.Convey("When run with a short-lived context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.Convey("Then it should run and return without panicking", func() {
				convey.So(func() {
					startServiceMetricsUpdater(ctx, svc)
				}, convey.ShouldNotPanic)
			})
		})
	})
}

func TestMainInvalidConfig(t *testing.T) {
	convey.Convey("Given invalid configuration", t, func() {
		convey.Convey("When the listen address is cleared", func() {
			_ = os.Setenv("FULLCIRCLE_ADDR", "")
			defer func() { _ = os.Unsetenv("FULLCIRCLE_ADDR") }()

			convey.Convey("Then configuration loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}
