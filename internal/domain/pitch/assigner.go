package pitch

import "github.com/okian/pitchside/internal/domain/model"

// Assignment is the result of one placement pass.
type Assignment struct {
	Placements []model.Placement `json:"placements"`
	// Unmapped lists placements whose primary position matched no bucket.
	Unmapped []model.Placement `json:"unmapped"`
}

// Assigner places players using a fixed layout. It holds no state between
// calls and is safe for concurrent use.
type Assigner struct {
	layout Layout
	slots  map[string][]model.Coordinate
}

// NewAssigner builds an assigner for layout.
func NewAssigner(layout Layout) *Assigner {
	a := &Assigner{
		layout: layout,
		slots:  make(map[string][]model.Coordinate, len(layout.Buckets)),
	}
	for _, b := range layout.Buckets {
		a.slots[b.Name] = b.Slots
	}
	return a
}

// Layout returns the layout the assigner was built with.
func (a *Assigner) Layout() Layout { return a.layout }

// Assign walks players in order. The k-th player (0-based) mapped to a
// bucket takes slot k mod len(slots). Players with an unknown primary
// position are placed at (0,0) with Mapped false.
func (a *Assigner) Assign(players []model.Player) Assignment {
	out := Assignment{Placements: make([]model.Placement, 0, len(players))}
	next := make(map[string]int, len(a.slots))
	for _, p := range players {
		pl := model.Placement{Player: p}
		bucket, ok := a.layout.Codes[PrimaryPosition(p.PlayerPositions)]
		slots := a.slots[bucket]
		if !ok || len(slots) == 0 {
			out.Placements = append(out.Placements, pl)
			out.Unmapped = append(out.Unmapped, pl)
			continue
		}
		c := slots[next[bucket]%len(slots)]
		next[bucket]++
		pl.XPosition, pl.YPosition = c.X, c.Y
		pl.Bucket = bucket
		pl.Mapped = true
		out.Placements = append(out.Placements, pl)
	}
	return out
}
