package pitch_test

import (
	"errors"
	"testing"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/pitch"
	. "github.com/smartystreets/goconvey/convey"
)

func withPositions(codes ...string) []model.Player {
	out := make([]model.Player, len(codes))
	for i, c := range codes {
		out[i] = model.Player{PlayerID: i + 1, PlayerPositions: c}
	}
	return out
}

func coords(pls []model.Placement) []model.Coordinate {
	out := make([]model.Coordinate, len(pls))
	for i, p := range pls {
		out[i] = model.Coordinate{X: p.XPosition, Y: p.YPosition}
	}
	return out
}

func TestPrimaryPosition(t *testing.T) {
	Convey("Given position strings", t, func() {
		So(pitch.PrimaryPosition("CB, RB"), ShouldEqual, "CB")
		So(pitch.PrimaryPosition("  ST "), ShouldEqual, "ST")
		So(pitch.PrimaryPosition("CAM,CM,RW"), ShouldEqual, "CAM")
		So(pitch.PrimaryPosition(""), ShouldEqual, "")
	})
}

func TestDefaultLayout(t *testing.T) {
	Convey("Given the default layout", t, func() {
		l := pitch.DefaultLayout()

		Convey("Then it validates and has the 3-4-3 shape", func() {
			So(l.Validate(), ShouldBeNil)
			So(l.Capacity(pitch.Goalkeeper), ShouldEqual, 1)
			So(l.Capacity(pitch.Defence), ShouldEqual, 3)
			So(l.Capacity(pitch.Midfield), ShouldEqual, 4)
			So(l.Capacity(pitch.Attack), ShouldEqual, 3)
			So(l.Capacity("nope"), ShouldEqual, 0)
		})

		Convey("Then broken layouts are rejected", func() {
			l.Codes["SW"] = "LIBERO"
			So(errors.Is(l.Validate(), pitch.ErrUnknownBucket), ShouldBeTrue)

			empty := pitch.Layout{Buckets: []pitch.Bucket{{Name: "GK"}}}
			So(errors.Is(empty.Validate(), pitch.ErrNoSlots), ShouldBeTrue)

			twice := pitch.Layout{Buckets: []pitch.Bucket{
				{Name: "GK", Slots: []model.Coordinate{{X: 1, Y: 1}}},
				{Name: "GK", Slots: []model.Coordinate{{X: 2, Y: 2}}},
			}}
			So(errors.Is(twice.Validate(), pitch.ErrDuplicate), ShouldBeTrue)
		})
	})
}

func TestAssign(t *testing.T) {
	Convey("Given the default assigner", t, func() {
		a := pitch.NewAssigner(pitch.DefaultLayout())

		Convey("When four centre backs are placed", func() {
			res := a.Assign(withPositions("CB", "CB, LB", "RB", "LB"))

			Convey("Then the slots wrap after the third", func() {
				So(coords(res.Placements), ShouldResemble, []model.Coordinate{
					{X: 25, Y: 20}, {X: 25, Y: 34}, {X: 25, Y: 48}, {X: 25, Y: 20},
				})
				So(res.Unmapped, ShouldBeEmpty)
				for _, p := range res.Placements {
					So(p.Bucket, ShouldEqual, pitch.Defence)
					So(p.Mapped, ShouldBeTrue)
				}
			})
		})

		Convey("When buckets are interleaved", func() {
			res := a.Assign(withPositions("ST", "GK", "CM", "LW", "CDM", "GK"))

			Convey("Then each bucket keeps its own counter", func() {
				So(coords(res.Placements), ShouldResemble, []model.Coordinate{
					{X: 75, Y: 24}, {X: 5, Y: 34}, {X: 50, Y: 10},
					{X: 75, Y: 34}, {X: 50, Y: 24}, {X: 5, Y: 34},
				})
			})
		})

		Convey("When a bucket receives many players", func() {
			codes := make([]string, 13)
			for i := range codes {
				codes[i] = "CM"
			}
			res := a.Assign(withPositions(codes...))

			Convey("Then coordinates repeat with the slot count as period", func() {
				for i := 4; i < len(res.Placements); i++ {
					So(coords(res.Placements[i:i+1]), ShouldResemble, coords(res.Placements[i-4:i-3]))
				}
			})
		})

		Convey("When a position has no bucket", func() {
			res := a.Assign(withPositions("SW", "CB", "", "CB"))

			Convey("Then it is placed on the sentinel and reported", func() {
				So(res.Placements, ShouldHaveLength, 4)
				So(res.Placements[0].Mapped, ShouldBeFalse)
				So(res.Placements[0].XPosition, ShouldEqual, 0)
				So(res.Placements[0].YPosition, ShouldEqual, 0)
				So(res.Placements[0].Bucket, ShouldEqual, "")
				So(res.Unmapped, ShouldHaveLength, 2)
				So(res.Unmapped[0].PlayerID, ShouldEqual, 1)
				So(res.Unmapped[1].PlayerID, ShouldEqual, 3)
			})

			Convey("And it does not advance any counter", func() {
				So(coords(res.Placements[1:2]), ShouldResemble, []model.Coordinate{{X: 25, Y: 20}})
				So(coords(res.Placements[3:4]), ShouldResemble, []model.Coordinate{{X: 25, Y: 34}})
			})
		})

		Convey("When the same players are assigned twice", func() {
			players := withPositions("CB", "CB")
			first := a.Assign(players)
			second := a.Assign(players)

			Convey("Then counters restart for each pass", func() {
				So(coords(second.Placements), ShouldResemble, coords(first.Placements))
			})

			Convey("And the input players carry no coordinates", func() {
				So(players[0].PlayerPositions, ShouldEqual, "CB")
			})
		})

		Convey("When nobody is given", func() {
			res := a.Assign(nil)

			Convey("Then the assignment is empty", func() {
				So(res.Placements, ShouldBeEmpty)
				So(res.Unmapped, ShouldBeEmpty)
			})
		})
	})
}
