package matching_test

import (
	"testing"

	"collabhub-be/internal/entity"
	"collabhub-be/pkg/matching"

	"github.com/google/uuid"
	. "github.com/smartystreets/goconvey/convey"
)

func profile(known, wanted []string) *entity.User {
	return &entity.User{
		Id:           uuid.New(),
		SkillsKnown:  known,
		SkillsWanted: wanted,
		Level:        1,
	}
}

func TestScore(t *testing.T) {
	Convey("Given a viewer who knows Go and wants React and Figma", t, func() {
		viewer := profile([]string{"Go", "SQL"}, []string{"React", "Figma"})

		Convey("When the candidate teaches both wanted skills and wants one of the viewer's", func() {
			candidate := profile([]string{"React", "Figma", "CSS"}, []string{"Go"})
			res := matching.Score(viewer, candidate)

			Convey("Then the score is 10 per taught skill plus 5 per mutual skill", func() {
				So(res.Score, ShouldEqual, 25)
				So(res.TeachingOverlap, ShouldResemble, []string{"React", "Figma"})
			})
		})

		Convey("When nothing overlaps in either direction", func() {
			candidate := profile([]string{"Python"}, []string{"Rust"})
			res := matching.Score(viewer, candidate)

			Convey("Then the score is zero with an empty overlap", func() {
				So(res.Score, ShouldEqual, 0)
				So(res.TeachingOverlap, ShouldBeEmpty)
			})
		})

		Convey("When only the mutual direction overlaps", func() {
			candidate := profile([]string{"Python"}, []string{"Go", "SQL"})
			res := matching.Score(viewer, candidate)

			Convey("Then only the mutual weight counts", func() {
				So(res.Score, ShouldEqual, 10)
				So(res.TeachingOverlap, ShouldBeEmpty)
			})
		})

		Convey("When the candidate lists a skill twice with different padding", func() {
			candidate := profile([]string{"React", " React "}, nil)

			Convey("Then it is counted once", func() {
				So(matching.Score(viewer, candidate).Score, ShouldEqual, 10)
			})
		})

		Convey("When the candidate's skills differ from the viewer's only in case", func() {
			lower := profile([]string{"react"}, []string{"React", "Figma"})
			candidate := profile([]string{"Go"}, []string{"React"})
			res := matching.Score(lower, candidate)

			Convey("Then nothing matches", func() {
				So(res.Score, ShouldEqual, 0)
				So(res.TeachingOverlap, ShouldBeEmpty)
			})
		})

		Convey("When the same pair is scored repeatedly", func() {
			candidate := profile([]string{"Figma"}, []string{"SQL"})
			first := matching.Score(viewer, candidate)

			Convey("Then the result is deterministic", func() {
				for i := 0; i < 5; i++ {
					So(matching.Score(viewer, candidate), ShouldResemble, first)
				}
			})
		})
	})
}
