package model_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	model "github.com/okian/squad/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
	"gopkg.in/yaml.v3"
)

func TestSkillProfile(t *testing.T) {
	convey.Convey("Given a skill profile", t, func() {
		p := model.NewSkillProfile(
			model.Skill{Name: "programming", Level: 4},
			model.Skill{Name: "design", Level: 2},
		)

		convey.Convey("When looking up skills", func() {
			convey.Convey("Then present skills return their level", func() {
				convey.So(p.Level("programming"), convey.ShouldEqual, 4)
				level, ok := p.Lookup("design")
				convey.So(ok, convey.ShouldBeTrue)
				convey.So(level, convey.ShouldEqual, 2)
			})

			convey.Convey("Then absent skills default to zero", func() {
				convey.So(p.Level("marketing"), convey.ShouldEqual, 0)
				_, ok := p.Lookup("marketing")
				convey.So(ok, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When setting an existing skill", func() {
			p.Set("programming", 5)

			convey.Convey("Then it keeps its position", func() {
				convey.So(p.Skills(), convey.ShouldResemble, []model.Skill{
					{Name: "programming", Level: 5},
					{Name: "design", Level: 2},
				})
			})
		})

		convey.Convey("When cloning", func() {
			c := p.Clone()
			c.Set("design", 5)
			c.Set("testing", 1)

			convey.Convey("Then the original is untouched", func() {
				convey.So(p.Len(), convey.ShouldEqual, 2)
				convey.So(p.Level("design"), convey.ShouldEqual, 2)
				convey.So(c.Len(), convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When merging with another profile", func() {
			other := model.NewSkillProfile(
				model.Skill{Name: "testing", Level: 3},
				model.Skill{Name: "programming", Level: 1},
				model.Skill{Name: "design", Level: 5},
			)
			merged := p.MergeMax(other)

			convey.Convey("Then every skill takes the elementwise maximum", func() {
				convey.So(merged.Skills(), convey.ShouldResemble, []model.Skill{
					{Name: "programming", Level: 4},
					{Name: "design", Level: 5},
					{Name: "testing", Level: 3},
				})
			})

			convey.Convey("Then neither input changes", func() {
				convey.So(p.Len(), convey.ShouldEqual, 2)
				convey.So(other.Level("programming"), convey.ShouldEqual, 1)
			})
		})
	})

	convey.Convey("Given the zero profile", t, func() {
		var p model.SkillProfile

		convey.Convey("Then reads are safe and empty", func() {
			convey.So(p.Len(), convey.ShouldEqual, 0)
			convey.So(p.Level("anything"), convey.ShouldEqual, 0)
			convey.So(p.Skills(), convey.ShouldBeEmpty)
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then Set initializes storage", func() {
			p.Set("go", 3)
			convey.So(p.Level("go"), convey.ShouldEqual, 3)
		})
	})
}

func TestSkillProfileValidate(t *testing.T) {
	convey.Convey("Given profiles with unusual levels", t, func() {
		convey.Convey("Then out-of-range numbers are tolerated", func() {
			p := model.NewSkillProfile(
				model.Skill{Name: "a", Level: 7.5},
				model.Skill{Name: "b", Level: -1},
				model.Skill{Name: "c", Level: math.Inf(1)},
			)
			convey.So(p.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then NaN is rejected as an invalid argument", func() {
			p := model.NewSkillProfile(model.Skill{Name: "a", Level: math.NaN()})
			err := p.Validate()
			convey.So(errors.Is(err, model.ErrInvalidArgument), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, `"a"`)
		})
	})
}

func TestSkillProfileCodecs(t *testing.T) {
	convey.Convey("Given YAML input", t, func() {
		convey.Convey("When levels are numeric", func() {
			var p model.SkillProfile
			err := yaml.Unmarshal([]byte("zeta: 1\nalpha: 4.5\nmid: 3\n"), &p)

			convey.Convey("Then document order is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(p.Skills(), convey.ShouldResemble, []model.Skill{
					{Name: "zeta", Level: 1},
					{Name: "alpha", Level: 4.5},
					{Name: "mid", Level: 3},
				})
			})
		})

		convey.Convey("When a level is not numeric", func() {
			var p model.SkillProfile
			err := yaml.Unmarshal([]byte("go: expert\n"), &p)

			convey.Convey("Then decoding fails with an invalid argument", func() {
				convey.So(errors.Is(err, model.ErrInvalidArgument), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "expert")
			})
		})

		convey.Convey("When a level is .nan", func() {
			var p model.SkillProfile
			err := yaml.Unmarshal([]byte("go: .nan\n"), &p)

			convey.Convey("Then decoding fails with an invalid argument", func() {
				convey.So(errors.Is(err, model.ErrInvalidArgument), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the profile is a list", func() {
			var p model.SkillProfile
			err := yaml.Unmarshal([]byte("- go\n- rust\n"), &p)

			convey.Convey("Then decoding fails with an invalid argument", func() {
				convey.So(errors.Is(err, model.ErrInvalidArgument), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When encoding back to YAML", func() {
			p := model.NewSkillProfile(
				model.Skill{Name: "zeta", Level: 1},
				model.Skill{Name: "alpha", Level: 2.5},
			)
			out, err := yaml.Marshal(p)

			convey.Convey("Then keys are written in insertion order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(out), convey.ShouldEqual, "zeta: 1\nalpha: 2.5\n")
			})
		})
	})

	convey.Convey("Given a team containing profiles", t, func() {
		team := model.Team{
			Members: []model.Candidate{{
				ID:     "c1",
				Name:   "Ada",
				Skills: model.NewSkillProfile(model.Skill{Name: "zeta", Level: 2}, model.Skill{Name: "alpha", Level: 3}),
			}},
			Skills:     model.NewSkillProfile(model.Skill{Name: "zeta", Level: 2}, model.Skill{Name: "alpha", Level: 3}),
			MatchScore: 0.5,
		}

		convey.Convey("When encoding to JSON", func() {
			out, err := json.Marshal(team)

			convey.Convey("Then profiles keep insertion order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(out), convey.ShouldContainSubstring, `"skills":{"zeta":2,"alpha":3}`)
				convey.So(team.MemberIDs(), convey.ShouldResemble, []string{"c1"})
			})
		})

		convey.Convey("When a zero profile is encoded", func() {
			out, err := json.Marshal(model.Candidate{ID: "x"})

			convey.Convey("Then it is an empty object", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(out), convey.ShouldContainSubstring, `"skills":{}`)
			})
		})
	})
}
