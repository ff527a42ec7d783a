// Package model contains domain models passed between layers.
package model

import "strings"

// Status tags a player with the roster table it was loaded from.
type Status string

// The two roster groups. Every loaded player carries exactly one.
const (
	StatusStarting Status = "Starting 11"
	StatusBench    Status = "Bench"
)

// Statuses lists the groups in load order.
var Statuses = []Status{StatusStarting, StatusBench}

// Attribute names a 0-100 skill rating column.
type Attribute string

// Skill attribute columns.
const (
	Pace      Attribute = "pace"
	Shooting  Attribute = "shooting"
	Passing   Attribute = "passing"
	Dribbling Attribute = "dribbling"
	Defending Attribute = "defending"
	Physic    Attribute = "physic"
)

// Field is a bit set of numeric columns. Player.Blank uses it to record
// cells that were empty in the source.
type Field uint32

// Numeric columns that may be blank.
const (
	FieldAge Field = 1 << iota
	FieldHeight
	FieldWeight
	FieldValue
	FieldWage
	FieldReleaseClause
	FieldOverall
	FieldPace
	FieldShooting
	FieldPassing
	FieldDribbling
	FieldDefending
	FieldPhysic
	FieldLatitude
	FieldLongitude
)

// AttributeField returns the column bit of a skill attribute.
func AttributeField(attr Attribute) (Field, bool) {
	switch Attribute(strings.ToLower(string(attr))) {
	case Pace:
		return FieldPace, true
	case Shooting:
		return FieldShooting, true
	case Passing:
		return FieldPassing, true
	case Dribbling:
		return FieldDribbling, true
	case Defending:
		return FieldDefending, true
	case Physic:
		return FieldPhysic, true
	}
	return 0, false
}

// Player is one roster row. Fields mirror the source table columns.
type Player struct {
	PlayerID        int    `json:"player_id"`
	ShortName       string `json:"short_name"`
	PlayerPositions string `json:"player_positions"`
	GeneralPosition string `json:"general_position"`
	NationalityName string `json:"nationality_name"`
	ClubPosition    string `json:"club_position"`
	Status          Status `json:"status"`

	Age              int     `json:"age"`
	HeightCM         float64 `json:"height_cm"`
	WeightKG         float64 `json:"weight_kg"`
	ValueEUR         float64 `json:"value_eur"`
	WageEUR          float64 `json:"wage_eur"`
	ReleaseClauseEUR float64 `json:"release_clause_eur"`
	Overall          int     `json:"overall"`

	Pace      int `json:"pace"`
	Shooting  int `json:"shooting"`
	Passing   int `json:"passing"`
	Dribbling int `json:"dribbling"`
	Defending int `json:"defending"`
	Physic    int `json:"physic"`

	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Blank marks numeric cells that were empty in the source. Their
	// fields hold 0 and aggregates skip them.
	Blank Field `json:"-"`
}

// Has reports whether every column in f carries a value.
func (p Player) Has(f Field) bool { return p.Blank&f == 0 }

// Skill returns the rating for attr. ok is false for an unknown attribute.
func (p Player) Skill(attr Attribute) (value int, ok bool) {
	switch Attribute(strings.ToLower(string(attr))) {
	case Pace:
		return p.Pace, true
	case Shooting:
		return p.Shooting, true
	case Passing:
		return p.Passing, true
	case Dribbling:
		return p.Dribbling, true
	case Defending:
		return p.Defending, true
	case Physic:
		return p.Physic, true
	}
	return 0, false
}

// Coordinate is a point on a 105x68 pitch.
type Coordinate struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Placement is a player with pitch coordinates for one filtered view.
// Mapped is false when the primary position matched no bucket and the
// coordinate is the (0,0) sentinel.
type Placement struct {
	Player
	XPosition float64 `json:"x_position"`
	YPosition float64 `json:"y_position"`
	Bucket    string  `json:"bucket,omitempty"`
	Mapped    bool    `json:"mapped"`
}
