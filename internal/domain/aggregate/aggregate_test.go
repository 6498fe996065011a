package aggregate_test

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/okian/fullcircle/internal/domain/aggregate"
	"github.com/okian/fullcircle/internal/domain/catalog"
	"github.com/okian/fullcircle/internal/domain/model"
)

// record builds a rating record carrying a single competency score.
func record(ratee, rater string, role model.Role, comp string, score int) model.RatingRecord {
	return model.RatingRecord{
		RateeID: ratee,
		RaterID: rater,
		Role:    role,
		Scores:  map[string]int{comp: score},
	}
}

func TestEngine_Aggregate(t *testing.T) {
	ctx := context.Background()
	cat, err := catalog.New()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	engine := aggregate.NewEngine(cat)
	comp := "Decision Quality"

	Convey("Given three pooled scores for one competency", t, func() {
		records := []model.RatingRecord{
			record("alice", "alice", model.RoleSelf, comp, 3),
			record("alice", "bob", model.RolePeer, comp, 4),
			record("alice", "carol", model.RolePeer, comp, 4),
		}

		Convey("When the ratee is aggregated", func() {
			results := engine.Aggregate(ctx, records, "alice")

			Convey("Then the competency should be scored at 73.33 percent", func() {
				res := results[comp]
				So(res.State, ShouldEqual, aggregate.StateScored)
				So(res.Percent, ShouldEqual, 73.33)
				So(res.Tier, ShouldEqual, catalog.TierHighly)
				So(res.Description, ShouldEqual, cat.Description(comp, catalog.TierHighly))
			})

			Convey("Then competencies nobody scored should be not rated", func() {
				res := results["Business Acumen"]
				So(res.State, ShouldEqual, aggregate.StateNotRated)
				So(res.Percent, ShouldEqual, 0)
				So(res.Tier, ShouldBeEmpty)
			})

			Convey("Then every catalog competency should appear in the output", func() {
				So(results, ShouldHaveLength, len(cat.Competencies()))
				for _, name := range cat.Competencies() {
					So(results[name].Competency, ShouldEqual, name)
				}
			})
		})
	})

	Convey("Given the lowest possible scores from three raters", t, func() {
		records := []model.RatingRecord{
			record("alice", "alice", model.RoleSelf, comp, 1),
			record("alice", "bob", model.RolePeer, comp, 1),
			record("alice", "carol", model.RoleManager, comp, 1),
		}

		Convey("Then the floor percentage should be 20", func() {
			res := engine.Aggregate(ctx, records, "alice")[comp]
			So(res.State, ShouldEqual, aggregate.StateScored)
			So(res.Percent, ShouldEqual, 20.0)
			So(res.Tier, ShouldEqual, catalog.TierPoorly)
		})
	})

	Convey("Given every combination of three scores", t, func() {
		Convey("Then percentages should stay inside [20, 100] with a tier assigned", func() {
			for a := 1; a <= 5; a++ {
				for b := 1; b <= 5; b++ {
					for c := 1; c <= 5; c++ {
						records := []model.RatingRecord{
							record("alice", "alice", model.RoleSelf, comp, a),
							record("alice", "bob", model.RolePeer, comp, b),
							record("alice", "carol", model.RolePeer, comp, c),
						}
						res := engine.Aggregate(ctx, records, "alice")[comp]
						So(res.State, ShouldEqual, aggregate.StateScored)
						So(res.Percent, ShouldBeBetweenOrEqual, 20.0, 100.0)
						So(res.Tier, ShouldBeIn, catalog.Tiers())
					}
				}
			}
		})
	})

	Convey("Given fewer or more than three scores for a competency", t, func() {
		Convey("Then two scores should yield insufficient data", func() {
			records := []model.RatingRecord{
				record("alice", "alice", model.RoleSelf, comp, 5),
				record("alice", "bob", model.RolePeer, comp, 5),
			}
			res := engine.Aggregate(ctx, records, "alice")[comp]
			So(res.State, ShouldEqual, aggregate.StateInsufficientData)
			So(res.Percent, ShouldEqual, 0)
			So(res.Tier, ShouldBeEmpty)
		})

		Convey("Then four scores should also yield insufficient data", func() {
			records := []model.RatingRecord{
				record("alice", "alice", model.RoleSelf, comp, 5),
				record("alice", "bob", model.RolePeer, comp, 5),
				record("alice", "carol", model.RolePeer, comp, 5),
				record("alice", "dave", model.RoleManager, comp, 5),
			}
			res := engine.Aggregate(ctx, records, "alice")[comp]
			So(res.State, ShouldEqual, aggregate.StateInsufficientData)
		})
	})

	Convey("Given records from mixed role compositions", t, func() {
		Convey("Then role mix should not change the result", func() {
			peerHeavy := []model.RatingRecord{
				record("alice", "alice", model.RoleSelf, comp, 2),
				record("alice", "bob", model.RolePeer, comp, 3),
				record("alice", "carol", model.RolePeer, comp, 4),
			}
			managerHeavy := []model.RatingRecord{
				record("alice", "alice", model.RoleSelf, comp, 2),
				record("alice", "bob", model.RoleManager, comp, 3),
				record("alice", "carol", model.RoleManager, comp, 4),
			}
			So(
				engine.Aggregate(ctx, peerHeavy, "alice")[comp],
				ShouldResemble,
				engine.Aggregate(ctx, managerHeavy, "alice")[comp],
			)
		})
	})

	Convey("Given records for multiple ratees", t, func() {
		records := []model.RatingRecord{
			record("alice", "alice", model.RoleSelf, comp, 5),
			record("bob", "bob", model.RoleSelf, comp, 1),
			record("alice", "carol", model.RolePeer, comp, 5),
			record("bob", "carol", model.RolePeer, comp, 1),
			record("alice", "dave", model.RolePeer, comp, 5),
			record("bob", "dave", model.RolePeer, comp, 1),
		}

		Convey("Then only the requested ratee's records should be pooled", func() {
			alice := engine.Aggregate(ctx, records, "alice")[comp]
			So(alice.Percent, ShouldEqual, 100.0)
			So(alice.Tier, ShouldEqual, catalog.TierMastery)

			bob := engine.Aggregate(ctx, records, "bob")[comp]
			So(bob.Percent, ShouldEqual, 20.0)
			So(bob.Tier, ShouldEqual, catalog.TierPoorly)
		})
	})

	Convey("Given no records at all", t, func() {
		Convey("Then every competency should be not rated", func() {
			results := engine.Aggregate(ctx, nil, "alice")
			So(results, ShouldHaveLength, len(cat.Competencies()))
			for _, res := range results {
				So(res.State, ShouldEqual, aggregate.StateNotRated)
			}
		})
	})
}

func TestState_Label(t *testing.T) {
	Convey("Given the non-scored states", t, func() {
		Convey("Then labels should match the report sentinels", func() {
			So(aggregate.StateInsufficientData.Label(), ShouldEqual, "Insufficient Data")
			So(aggregate.StateNotRated.Label(), ShouldEqual, "Not Rated")
			So(aggregate.StateScored.Label(), ShouldBeEmpty)
		})
	})
}
