package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fullcircle/internal/adapters/notify"
	"github.com/okian/fullcircle/internal/adapters/repository"
	service "github.com/okian/fullcircle/internal/app"
	"github.com/okian/fullcircle/internal/domain/aggregate"
	"github.com/okian/fullcircle/internal/domain/catalog"
	"github.com/okian/fullcircle/internal/domain/gate"
	"github.com/okian/fullcircle/internal/domain/model"
	"github.com/okian/fullcircle/pkg/logger"
)

func init() {
	_ = logger.Init()
}

// captureNotifier records delivered confirmations.
type captureNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (c *captureNotifier) Send(_ context.Context, msg notify.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureNotifier) delivered() []notify.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]notify.Message, len(c.sent))
	copy(out, c.sent)
	return out
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}

// fullScores builds a complete score set at a fixed value, with overrides.
func fullScores(value int, overrides map[string]int) map[string]int {
	cat, _ := catalog.New()
	scores := make(map[string]int)
	for _, comp := range cat.Competencies() {
		scores[comp] = value
	}
	for comp, v := range overrides {
		scores[comp] = v
	}
	return scores
}

func submit(ctx context.Context, svc *service.Service, ratee, rater string, role model.Role, scores map[string]int, email string) error {
	_, err := svc.SubmitRating(ctx, model.RatingRecord{
		RateeID: ratee,
		RaterID: rater,
		Role:    role,
		Scores:  scores,
	}, email)
	return err
}

func TestService_Lifecycle(t *testing.T) {
	ctx := context.Background()

	Convey("Given a service built with defaults", t, func() {
		svc := service.New()

		Convey("When the service starts", func() {
			So(svc.Start(ctx), ShouldBeNil)
			defer svc.Stop()

			Convey("Then stats should reflect the running state", func() {
				stats := svc.GetStats()
				So(stats["started"], ShouldBeTrue)
				So(stats["tierScheme"], ShouldEqual, "revised")
				So(stats["maxPeerRaters"], ShouldEqual, 2)
				So(stats["maxManagerRaters"], ShouldEqual, 2)
				So(stats["recordsStored"], ShouldEqual, 0)
			})

			Convey("Then starting again should be a no-op", func() {
				So(svc.Start(ctx), ShouldBeNil)
			})

			Convey("Then the catalog info should carry the full competency list", func() {
				info := svc.CatalogInfo(ctx)
				So(info.Competencies, ShouldHaveLength, 5)
				So(info.Scale, ShouldHaveLength, 5)
				So(info.Scheme, ShouldEqual, "revised")
			})
		})

		Convey("When stop is called without start", func() {
			Convey("Then it should be safe", func() {
				svc.Stop()
			})
		})
	})

	Convey("Given an unknown tier scheme", t, func() {
		svc := service.New(service.WithTierScheme("experimental"))

		Convey("Then start should fail", func() {
			So(svc.Start(ctx), ShouldNotBeNil)
		})
	})
}

func TestService_SubmitAndReport(t *testing.T) {
	ctx := context.Background()
	comp := "Decision Quality"

	Convey("Given a running service with a capturing notifier", t, func() {
		notifier := &captureNotifier{}
		svc := service.New(service.WithNotifier(notifier))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a full rating round completes for one ratee", func() {
			So(submit(ctx, svc, "alice", "", model.RoleSelf, fullScores(3, nil), "alice@example.com"), ShouldBeNil)
			So(submit(ctx, svc, "alice", "bob", model.RolePeer, fullScores(4, nil), "bob@example.com"), ShouldBeNil)
			So(submit(ctx, svc, "alice", "carol", model.RolePeer, fullScores(4, map[string]int{comp: 4}), ""), ShouldBeNil)

			Convey("Then the report should score every competency", func() {
				results, err := svc.Report(ctx, "alice")
				So(err, ShouldBeNil)
				So(results, ShouldHaveLength, 5)

				for _, res := range results {
					So(res.State, ShouldEqual, aggregate.StateScored)
				}
				var dq aggregate.Result
				for _, res := range results {
					if res.Competency == comp {
						dq = res
					}
				}
				So(dq.Percent, ShouldEqual, 73.33)
				So(dq.Tier, ShouldEqual, catalog.TierHighly)
				So(dq.Description, ShouldNotBeEmpty)
			})

			Convey("Then the report should follow catalog order", func() {
				results, err := svc.Report(ctx, "alice")
				So(err, ShouldBeNil)

				cat, err := catalog.New()
				So(err, ShouldBeNil)
				for i, name := range cat.Competencies() {
					So(results[i].Competency, ShouldEqual, name)
				}
			})

			Convey("Then confirmations should be delivered for the raters with emails", func() {
				So(waitFor(func() bool { return len(notifier.delivered()) == 2 }), ShouldBeTrue)

				recipients := make(map[string]string)
				for _, msg := range notifier.delivered() {
					recipients[msg.To] = msg.Role
				}
				So(recipients["alice@example.com"], ShouldEqual, "self")
				So(recipients["bob@example.com"], ShouldEqual, "peer")
			})

			Convey("Then the ratee should be listed", func() {
				ratees, err := svc.Ratees(ctx)
				So(err, ShouldBeNil)
				So(ratees, ShouldResemble, []string{"alice"})
			})

			Convey("Then a duplicate submission should surface the gate error", func() {
				err := submit(ctx, svc, "alice", "bob", model.RolePeer, fullScores(5, nil), "")
				So(err, ShouldWrap, gate.ErrAlreadySubmitted)
			})

			Convey("Then a third peer should hit the cap", func() {
				err := submit(ctx, svc, "alice", "dave", model.RolePeer, fullScores(5, nil), "")
				So(err, ShouldWrap, gate.ErrRaterCapReached)
			})
		})

		Convey("When a ratee has fewer than the required raters", func() {
			So(submit(ctx, svc, "bob", "", model.RoleSelf, fullScores(4, nil), ""), ShouldBeNil)

			Convey("Then the report should mark competencies as lacking data", func() {
				results, err := svc.Report(ctx, "bob")
				So(err, ShouldBeNil)
				for _, res := range results {
					So(res.State, ShouldEqual, aggregate.StateInsufficientData)
				}
			})
		})

		Convey("When a report is requested for an unknown ratee", func() {
			_, err := svc.Report(ctx, "ghost")

			Convey("Then a not-found error should be returned", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})
	})

	Convey("Given the legacy tier scheme", t, func() {
		svc := service.New(service.WithTierScheme("legacy"), service.WithNotifier(notify.NoopNotifier{}))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When a ratee lands on 73.33 percent", func() {
			So(submit(ctx, svc, "alice", "", model.RoleSelf, fullScores(3, nil), ""), ShouldBeNil)
			So(submit(ctx, svc, "alice", "bob", model.RolePeer, fullScores(4, nil), ""), ShouldBeNil)
			So(submit(ctx, svc, "alice", "carol", model.RolePeer, fullScores(4, nil), ""), ShouldBeNil)

			Convey("Then the legacy boundaries should place it in the highly competent band", func() {
				results, err := svc.Report(ctx, "alice")
				So(err, ShouldBeNil)
				So(results[0].Percent, ShouldEqual, 73.33)
				So(results[0].Tier, ShouldEqual, catalog.TierHighly)
			})
		})

		Convey("When a ratee lands on 86.67 percent", func() {
			So(submit(ctx, svc, "zoe", "", model.RoleSelf, fullScores(4, nil), ""), ShouldBeNil)
			So(submit(ctx, svc, "zoe", "bob", model.RolePeer, fullScores(4, nil), ""), ShouldBeNil)
			So(submit(ctx, svc, "zoe", "carol", model.RolePeer, fullScores(5, nil), ""), ShouldBeNil)

			Convey("Then legacy should call it mastery while revised would not", func() {
				results, err := svc.Report(ctx, "zoe")
				So(err, ShouldBeNil)
				So(results[0].Percent, ShouldEqual, 86.67)
				So(results[0].Tier, ShouldEqual, catalog.TierMastery)
				So(catalog.SchemeRevised.TierFor(86.67), ShouldEqual, catalog.TierHighly)
			})
		})
	})

	Convey("Given a service with raised caps", t, func() {
		svc := service.New(
			service.WithMaxPeerRaters(4),
			service.WithNotifier(notify.NoopNotifier{}),
		)
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("Then four distinct peers should be accepted", func() {
			for _, rater := range []string{"bob", "carol", "dave", "erin"} {
				So(submit(ctx, svc, "alice", rater, model.RolePeer, fullScores(3, nil), ""), ShouldBeNil)
			}
		})
	})
}
