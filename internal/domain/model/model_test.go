package model_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/breadbutter/matchd/internal/domain/model"
)

func TestScoreSet(t *testing.T) {
	Convey("Given a score set", t, func() {
		scores := model.ScoreSet{
			model.CriterionSkills:   0.856,
			model.CriterionLocation: 0.4,
		}

		Convey("Percent rounds to the nearest integer", func() {
			So(scores.Percent(model.CriterionSkills), ShouldEqual, 86)
			So(scores.Percent(model.CriterionLocation), ShouldEqual, 40)
			So(scores.Percent(model.CriterionSemantic), ShouldEqual, 0)
		})

		Convey("Clone is independent of the original", func() {
			clone := scores.Clone()
			clone[model.CriterionSkills] = 0.1

			So(scores[model.CriterionSkills], ShouldAlmostEqual, 0.856)
			So(clone[model.CriterionLocation], ShouldAlmostEqual, 0.4)
		})
	})
}

func TestValidMatchStatus(t *testing.T) {
	Convey("Given match status validation", t, func() {
		So(model.ValidMatchStatus(model.MatchSuggested), ShouldBeTrue)
		So(model.ValidMatchStatus(model.MatchContacted), ShouldBeTrue)
		So(model.ValidMatchStatus(model.MatchAccepted), ShouldBeTrue)
		So(model.ValidMatchStatus(model.MatchRejected), ShouldBeTrue)
		So(model.ValidMatchStatus("ghosted"), ShouldBeFalse)
		So(model.ValidMatchStatus(""), ShouldBeFalse)
	})
}
