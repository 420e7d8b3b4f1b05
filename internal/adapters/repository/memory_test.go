package repository_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/breadbutter/matchd/internal/adapters/repository"
	"github.com/breadbutter/matchd/internal/domain/model"
)

func TestMemoryGigs(t *testing.T) {
	Convey("Given an in-memory store", t, func() {
		store := repository.NewMemory()
		ctx := context.Background()

		Convey("An added gig can be fetched by id", func() {
			gig := store.AddGig(model.Gig{Title: "Campaign Shoot"})
			So(gig.ID, ShouldEqual, 1)

			got, err := store.Gig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(got.Title, ShouldEqual, "Campaign Shoot")
		})

		Convey("Fetching a missing gig returns ErrNotFound", func() {
			_, err := store.Gig(ctx, 42)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryTalents(t *testing.T) {
	Convey("Given an in-memory store with mixed availability", t, func() {
		store := repository.NewMemory()
		ctx := context.Background()

		store.AddTalent(model.Talent{Name: "Kavya", Availability: model.Available})
		store.AddTalent(model.Talent{Name: "Rohan", Availability: model.Busy})
		store.AddTalent(model.Talent{Name: "Anisha", Availability: model.Available})

		Convey("Only available talents are returned, most recent first", func() {
			talents, err := store.AvailableTalents(ctx)
			So(err, ShouldBeNil)
			So(len(talents), ShouldEqual, 2)
			So(talents[0].Name, ShouldEqual, "Anisha")
			So(talents[1].Name, ShouldEqual, "Kavya")
		})
	})
}

func TestMemoryMatches(t *testing.T) {
	Convey("Given an in-memory store with a gig and talents", t, func() {
		store := repository.NewMemory()
		ctx := context.Background()

		gig := store.AddGig(model.Gig{Title: "Video Campaign"})
		a := store.AddTalent(model.Talent{Name: "Kavya", Availability: model.Available})
		b := store.AddTalent(model.Talent{Name: "Anisha", Availability: model.Available})

		first := []model.Match{
			{GigID: gig.ID, TalentID: a.ID, OverallScore: 0.9, Status: model.MatchSuggested},
			{GigID: gig.ID, TalentID: b.ID, OverallScore: 0.5, Status: model.MatchSuggested},
		}
		So(store.ReplaceMatches(ctx, gig.ID, first), ShouldBeNil)

		Convey("Stored matches come back with their talents, best first", func() {
			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, 2)
			So(saved[0].Talent.Name, ShouldEqual, "Kavya")
			So(saved[0].Match.OverallScore, ShouldEqual, 0.9)
			So(saved[0].Match.ID, ShouldNotBeEmpty)
		})

		Convey("Replacing swaps the whole set", func() {
			replacement := []model.Match{
				{GigID: gig.ID, TalentID: b.ID, OverallScore: 0.7, Status: model.MatchSuggested},
			}
			So(store.ReplaceMatches(ctx, gig.ID, replacement), ShouldBeNil)

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(len(saved), ShouldEqual, 1)
			So(saved[0].Talent.Name, ShouldEqual, "Anisha")
		})

		Convey("Replacing with an empty set clears the gig's matches", func() {
			So(store.ReplaceMatches(ctx, gig.ID, nil), ShouldBeNil)

			saved, err := store.MatchesForGig(ctx, gig.ID)
			So(err, ShouldBeNil)
			So(saved, ShouldBeEmpty)
		})

		Convey("A match status can be updated", func() {
			saved, _ := store.MatchesForGig(ctx, gig.ID)
			So(store.SetMatchStatus(ctx, saved[0].Match.ID, model.MatchContacted), ShouldBeNil)

			saved, _ = store.MatchesForGig(ctx, gig.ID)
			So(saved[0].Match.Status, ShouldEqual, model.MatchContacted)
		})

		Convey("Updating a missing match returns ErrNotFound", func() {
			err := store.SetMatchStatus(ctx, "no-such-match", model.MatchContacted)
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestMemoryFeedback(t *testing.T) {
	Convey("Given an in-memory store with a stored match", t, func() {
		store := repository.NewMemory()
		ctx := context.Background()

		gig := store.AddGig(model.Gig{Title: "Shoot"})
		talent := store.AddTalent(model.Talent{Name: "Kavya", Availability: model.Available})
		So(store.ReplaceMatches(ctx, gig.ID, []model.Match{
			{GigID: gig.ID, TalentID: talent.ID, OverallScore: 0.8, Status: model.MatchSuggested},
		}), ShouldBeNil)
		saved, _ := store.MatchesForGig(ctx, gig.ID)
		matchID := saved[0].Match.ID

		Convey("Feedback can be recorded for a match", func() {
			fb, err := store.UpsertFeedback(ctx, model.Feedback{MatchID: matchID, Rating: 4, Text: "great fit"})
			So(err, ShouldBeNil)
			So(fb.ID, ShouldNotBeEmpty)
			So(fb.Rating, ShouldEqual, 4)
		})

		Convey("A second rating replaces the first", func() {
			first, err := store.UpsertFeedback(ctx, model.Feedback{MatchID: matchID, Rating: 2})
			So(err, ShouldBeNil)

			second, err := store.UpsertFeedback(ctx, model.Feedback{MatchID: matchID, Rating: 5, Text: "changed my mind"})
			So(err, ShouldBeNil)
			So(second.ID, ShouldEqual, first.ID)
			So(second.Rating, ShouldEqual, 5)
		})

		Convey("Feedback for an unknown match returns ErrNotFound", func() {
			_, err := store.UpsertFeedback(ctx, model.Feedback{MatchID: "missing", Rating: 3})
			So(errors.Is(err, repository.ErrNotFound), ShouldBeTrue)
		})
	})
}
