package service_test

import (
	"context"
	"errors"
	"os"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/breadbutter/matchd/internal/adapters/repository"
	service "github.com/breadbutter/matchd/internal/app"
	"github.com/breadbutter/matchd/internal/domain/model"
	"github.com/breadbutter/matchd/pkg/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func budget(v float64) *float64 { return &v }

// newFixture seeds a store with one gig and a pool of talents spanning the
// whole quality range.
func newFixture() (*repository.Memory, model.Gig) {
	store := repository.NewMemory()

	gig := store.AddGig(model.Gig{
		Title:            "Sustainable Fashion Campaign Shoot",
		Description:      "Travel photographer needed for a sustainable fashion brand shoot",
		RequiredSkills:   []string{"Travel Photography", "Portrait Photography", "Natural Light"},
		Location:         "Goa",
		MinBudget:        budget(70000),
		MaxBudget:        budget(90000),
		StylePreferences: []string{"Pastel Tones", "Candid Portraits"},
		Status:           model.GigOpen,
	})

	store.AddTalent(model.Talent{
		Name:            "Kavya Menon",
		City:            "Goa",
		Categories:      []string{"Photography", "Travel"},
		Skills:          []string{"Portrait Photography", "Travel Photography", "Natural Light"},
		ExperienceYears: 3,
		MinBudget:       budget(50000),
		MaxBudget:       budget(100000),
		Bio:             "Travel photographer specializing in sustainable fashion portraits",
		Availability:    model.Available,
		Rating:          4.5,
		TotalProjects:   12,
	})
	store.AddTalent(model.Talent{
		Name:            "Rohan Singh",
		City:            "Mumbai",
		Categories:      []string{"Photography"},
		Skills:          []string{"Portrait Photography", "Studio Lighting"},
		ExperienceYears: 4,
		MinBudget:       budget(60000),
		MaxBudget:       budget(90000),
		Bio:             "Portrait photographer with studio experience",
		Availability:    model.Available,
		Rating:          4.0,
		TotalProjects:   8,
	})
	// Scores far below the floor: no skills, no budget, no experience.
	store.AddTalent(model.Talent{
		Name:         "Vikram Joshi",
		City:         "Shillong",
		Categories:   []string{"Catering"},
		Skills:       []string{"Event Catering"},
		MinBudget:    budget(500000),
		MaxBudget:    budget(600000),
		Bio:          "Wedding caterer",
		Availability: model.Available,
	})

	return store, gig
}

func newService(store repository.Store, opts ...service.Option) *service.Service {
	svc, err := service.New(append([]service.Option{service.WithStore(store)}, opts...)...)
	So(err, ShouldBeNil)
	return svc
}

func TestFindMatches(t *testing.T) {
	Convey("Given a gig and a talent pool", t, func() {
		store, gig := newFixture()
		svc := newService(store)
		ctx := context.Background()

		Convey("A match run ranks qualifying talents best first", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)
			So(result.Gig.ID, ShouldEqual, gig.ID)
			So(len(result.Matches), ShouldEqual, 2)

			So(result.Matches[0].Talent.Name, ShouldEqual, "Kavya Menon")
			So(result.Matches[0].Rank, ShouldEqual, 1)
			So(result.Matches[1].Rank, ShouldEqual, 2)
			So(result.Matches[0].Match.OverallScore, ShouldBeGreaterThanOrEqualTo,
				result.Matches[1].Match.OverallScore)
		})

		Convey("Every returned match carries all six criterion scores", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)

			for _, c := range result.Matches {
				for _, criterion := range model.Criteria {
					score, ok := c.Match.Scores[criterion]
					So(ok, ShouldBeTrue)
					So(score, ShouldBeBetweenOrEqual, 0.0, 1.0)
				}
				So(c.Match.Status, ShouldEqual, model.MatchSuggested)
				So(c.Match.ID, ShouldNotBeEmpty)
			}
		})

		Convey("Candidates below the overall floor are dropped", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)

			for _, c := range result.Matches {
				So(c.Talent.Name, ShouldNotEqual, "Vikram Joshi")
				So(c.Match.OverallScore, ShouldBeGreaterThanOrEqualTo, service.MinOverallScore)
			}
		})

		Convey("Strong skill and location alignment is explained", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)
			So(result.Matches[0].Match.Explanation, ShouldContainSubstring, "skill")
		})

		Convey("The run persists exactly the returned set", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, len(result.Matches))
			So(saved[0].Match.ID, ShouldEqual, result.Matches[0].Match.ID)
		})

		Convey("A rerun replaces the stored set instead of appending", func() {
			first, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)

			second, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)
			So(len(second.Matches), ShouldEqual, len(first.Matches))

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, len(second.Matches))
			So(saved[0].Match.ID, ShouldNotEqual, first.Matches[0].Match.ID)
		})

		Convey("The limit truncates after ranking", func() {
			result, err := svc.FindMatches(ctx, gig.ID, 1)
			So(err, ShouldBeNil)
			So(len(result.Matches), ShouldEqual, 1)
			So(result.Matches[0].Talent.Name, ShouldEqual, "Kavya Menon")

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, 1)
		})

		Convey("Out-of-range limits are clamped as a defensive fallback", func() {
			// HTTP edge validation rejects these; direct callers still get sane bounds.
			result, err := svc.FindMatches(ctx, gig.ID, 100000)
			So(err, ShouldBeNil)
			So(len(result.Matches), ShouldEqual, 2)

			result, err = svc.FindMatches(ctx, gig.ID, -3)
			So(err, ShouldBeNil)
			So(len(result.Matches), ShouldEqual, 2)
		})

		Convey("An unknown gig fails the run", func() {
			_, err := svc.FindMatches(ctx, 9999, 0)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})

	Convey("Given an empty talent pool", t, func() {
		store := repository.NewMemory()
		gig := store.AddGig(model.Gig{Title: "Anything", RequiredSkills: []string{"x"}})
		svc := newService(store)

		Convey("The run succeeds with an empty set and persists it", func() {
			result, err := svc.FindMatches(context.Background(), gig.ID, 0)
			So(err, ShouldBeNil)
			So(result.Matches, ShouldBeEmpty)

			saved, err := store.MatchesForGig(context.Background(), gig.ID)
			So(err, ShouldBeNil)
			So(saved, ShouldBeEmpty)
		})
	})
}

func TestFindMatchesOrderingStability(t *testing.T) {
	Convey("Given two talents with identical profiles", t, func() {
		store := repository.NewMemory()
		gig := store.AddGig(model.Gig{
			Title:          "Product Shoot",
			RequiredSkills: []string{"Product Photography"},
			IsRemote:       true,
		})

		twin := model.Talent{
			City:            "Pune",
			Skills:          []string{"Product Photography"},
			ExperienceYears: 5,
			Availability:    model.Available,
		}
		twin.Name = "First Twin"
		a := store.AddTalent(twin)
		twin.Name = "Second Twin"
		b := store.AddTalent(twin)

		svc := newService(store)

		Convey("Equal scores keep pool order across runs, newest talent first", func() {
			for i := 0; i < 5; i++ {
				result, err := svc.FindMatches(context.Background(), gig.ID, 0)
				So(err, ShouldBeNil)
				So(len(result.Matches), ShouldEqual, 2)
				So(result.Matches[0].Talent.ID, ShouldEqual, b.ID)
				So(result.Matches[1].Talent.ID, ShouldEqual, a.ID)
			}
		})
	})
}

// flakyStore wraps a Store and fails ReplaceMatches on demand.
type flakyStore struct {
	repository.Store
	replaceErr error
}

func (f *flakyStore) ReplaceMatches(ctx context.Context, gigID int64, matches []model.Match) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	return f.Store.ReplaceMatches(ctx, gigID, matches)
}

func TestFindMatchesPersistenceFailure(t *testing.T) {
	Convey("Given a store that fails to persist", t, func() {
		store, gig := newFixture()
		flaky := &flakyStore{Store: store}
		svc := newService(flaky)
		ctx := context.Background()

		// Establish a stored set first.
		first, err := svc.FindMatches(ctx, gig.ID, 0)
		So(err, ShouldBeNil)

		Convey("A failed run reports the error and leaves the old set intact", func() {
			flaky.replaceErr = errors.New("connection reset")

			_, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldNotBeNil)

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, len(first.Matches))
			So(saved[0].Match.ID, ShouldEqual, first.Matches[0].Match.ID)
		})
	})
}

// stubEmbedder returns a fixed vector or error for every call.
type stubEmbedder struct {
	vec []float64
	err error
}

func (e *stubEmbedder) Embed(_ context.Context, _ string) ([]float64, error) {
	return e.vec, e.err
}

func TestFindMatchesEmbedding(t *testing.T) {
	Convey("Given an embedding provider", t, func() {
		store, gig := newFixture()
		ctx := context.Background()

		Convey("Identical embeddings max out the semantic score", func() {
			svc := newService(store, service.WithEmbedder(&stubEmbedder{vec: []float64{0.3, 0.5, 0.2}}))

			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)
			So(result.Matches[0].Match.Scores[model.CriterionSemantic], ShouldAlmostEqual, 1.0)
		})

		Convey("A failing provider degrades to token overlap", func() {
			svc := newService(store, service.WithEmbedder(&stubEmbedder{err: errors.New("quota exceeded")}))

			result, err := svc.FindMatches(ctx, gig.ID, 0)
			So(err, ShouldBeNil)
			So(len(result.Matches), ShouldEqual, 2)

			// Kavya's bio overlaps the gig text; the fallback rewards it.
			So(result.Matches[0].Match.Scores[model.CriterionSemantic], ShouldBeGreaterThan, 0.0)
		})
	})
}

func TestMatchWorkflow(t *testing.T) {
	Convey("Given a completed match run", t, func() {
		store, gig := newFixture()
		svc := newService(store)
		ctx := context.Background()

		result, err := svc.FindMatches(ctx, gig.ID, 0)
		So(err, ShouldBeNil)
		matchID := result.Matches[0].Match.ID

		Convey("Saved matches can be fetched later", func() {
			saved, err := svc.SavedMatches(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved.Matches), ShouldEqual, len(result.Matches))
			So(saved.Matches[0].Rank, ShouldEqual, 1)
		})

		Convey("A match can move through its workflow", func() {
			So(svc.SetMatchStatus(ctx, matchID, model.MatchContacted), ShouldBeNil)

			saved, err := svc.SavedMatches(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(saved.Matches[0].Match.Status, ShouldEqual, model.MatchContacted)
		})

		Convey("Unknown statuses are rejected", func() {
			err := svc.SetMatchStatus(ctx, matchID, "ghosted")
			So(errors.Is(err, service.ErrInvalidStatus), ShouldBeTrue)
		})

		Convey("Feedback is validated and stored once per match", func() {
			fb, err := svc.SubmitFeedback(ctx, matchID, 4, "solid shortlist")
			So(err, ShouldBeNil)
			So(fb.Rating, ShouldEqual, 4)

			again, err := svc.SubmitFeedback(ctx, matchID, 2, "changed my mind")
			So(err, ShouldBeNil)
			So(again.ID, ShouldEqual, fb.ID)
			So(again.Rating, ShouldEqual, 2)
		})

		Convey("Out-of-range ratings are rejected", func() {
			_, err := svc.SubmitFeedback(ctx, matchID, 0, "")
			So(errors.Is(err, service.ErrInvalidRating), ShouldBeTrue)

			_, err = svc.SubmitFeedback(ctx, matchID, 6, "")
			So(errors.Is(err, service.ErrInvalidRating), ShouldBeTrue)
		})
	})
}
