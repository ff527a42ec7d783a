// Package pitch assigns players to fixed pitch coordinates by position.
package pitch

import (
	"fmt"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
)

// Bucket names used by the default layout.
const (
	Goalkeeper = "GK"
	Defence    = "CB"
	Midfield   = "MID"
	Attack     = "FWD"
)

// Bucket is a named group of slots filled in order.
type Bucket struct {
	Name  string             `json:"name"`
	Slots []model.Coordinate `json:"slots"`
}

// Layout is an ordered bucket list plus the position codes feeding each one.
type Layout struct {
	Buckets []Bucket          `json:"buckets"`
	Codes   map[string]string `json:"codes"`
}

// DefaultLayout returns the 3-4-3 shape on a 105x68 pitch.
func DefaultLayout() Layout {
	return Layout{
		Buckets: []Bucket{
			{Name: Goalkeeper, Slots: []model.Coordinate{{X: 5, Y: 34}}},
			{Name: Defence, Slots: []model.Coordinate{{X: 25, Y: 20}, {X: 25, Y: 34}, {X: 25, Y: 48}}},
			{Name: Midfield, Slots: []model.Coordinate{{X: 50, Y: 10}, {X: 50, Y: 24}, {X: 50, Y: 44}, {X: 50, Y: 58}}},
			{Name: Attack, Slots: []model.Coordinate{{X: 75, Y: 24}, {X: 75, Y: 34}, {X: 75, Y: 44}}},
		},
		Codes: map[string]string{
			"ST": Attack, "LW": Attack, "RW": Attack, "CF": Attack,
			"CB": Defence, "LB": Defence, "RB": Defence,
			"CM": Midfield, "CDM": Midfield, "CAM": Midfield, "LM": Midfield, "RM": Midfield,
			"GK": Goalkeeper,
		},
	}
}

// Validate checks every bucket has slots and every code names a bucket.
func (l Layout) Validate() error {
	names := make(map[string]struct{}, len(l.Buckets))
	for _, b := range l.Buckets {
		if _, ok := names[b.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, b.Name)
		}
		names[b.Name] = struct{}{}
		if len(b.Slots) == 0 {
			return fmt.Errorf("%w: %s", ErrNoSlots, b.Name)
		}
	}
	for code, name := range l.Codes {
		if _, ok := names[name]; !ok {
			return fmt.Errorf("%w: %s -> %s", ErrUnknownBucket, code, name)
		}
	}
	return nil
}

// Capacity returns the slot count of the named bucket, or 0.
func (l Layout) Capacity(bucket string) int {
	for _, b := range l.Buckets {
		if b.Name == bucket {
			return len(b.Slots)
		}
	}
	return 0
}

// PrimaryPosition returns the first comma separated token of positions,
// trimmed of whitespace.
func PrimaryPosition(positions string) string {
	first, _, _ := strings.Cut(positions, ",")
	return strings.TrimSpace(first)
}
