// Package sampledata builds a deterministic demo squad and writes it as
// roster files, so the service can run without the club's real tables.
package sampledata

import "github.com/okian/pitchside/internal/domain/model"

// General position labels used by the sample squad.
const (
	Goalkeeper = "Goalkeeper"
	Defender   = "Defender"
	Midfielder = "Midfielder"
	Forward    = "Forward"
)

type nation struct {
	name     string
	lat, lon float64
}

var (
	england     = nation{"England", 52.36, -1.17}
	wales       = nation{"Wales", 52.13, -3.78}
	scotland    = nation{"Scotland", 56.49, -4.20}
	ireland     = nation{"Republic of Ireland", 53.41, -8.24}
	netherlands = nation{"Netherlands", 52.13, 5.29}
	jamaica     = nation{"Jamaica", 18.11, -77.30}
	norway      = nation{"Norway", 60.47, 8.47}
)

type row struct {
	id        int
	name      string
	positions string
	general   string
	club      string
	n         nation
	age       int
	height    float64
	weight    float64
	value     float64
	wage      float64
	overall   int
	skills    [6]int
}

func (r row) player() model.Player {
	return model.Player{
		PlayerID:         r.id,
		ShortName:        r.name,
		PlayerPositions:  r.positions,
		GeneralPosition:  r.general,
		NationalityName:  r.n.name,
		ClubPosition:     r.club,
		Age:              r.age,
		HeightCM:         r.height,
		WeightKG:         r.weight,
		ValueEUR:         r.value,
		WageEUR:          r.wage,
		ReleaseClauseEUR: r.value * 19 / 10,
		Overall:          r.overall,
		Pace:             r.skills[0],
		Shooting:         r.skills[1],
		Passing:          r.skills[2],
		Dribbling:        r.skills[3],
		Defending:        r.skills[4],
		Physic:           r.skills[5],
		Latitude:         r.n.lat,
		Longitude:        r.n.lon,
	}
}

var startingRows = []row{
	{900001, "M. Tollan", "GK", Goalkeeper, "GK", ireland, 27, 191, 84, 1_600_000, 9_000, 68, [6]int{48, 22, 55, 30, 20, 62}},
	{900002, "J. Hartwell", "CB", Defender, "LCB", england, 29, 190, 86, 2_300_000, 14_000, 70, [6]int{58, 35, 54, 50, 71, 78}},
	{900003, "R. Okafor", "CB, RB", Defender, "CB", england, 25, 186, 80, 2_800_000, 13_000, 69, [6]int{66, 30, 56, 55, 69, 74}},
	{900004, "D. Pryce", "LB, CB", Defender, "RCB", wales, 31, 184, 79, 1_200_000, 11_000, 67, [6]int{61, 33, 60, 57, 67, 70}},
	{900005, "T. Vance", "RM, RW", Midfielder, "RM", england, 24, 176, 70, 3_100_000, 15_000, 71, [6]int{84, 62, 68, 73, 42, 60}},
	{900006, "A. Kerrigan", "CDM, CM", Midfielder, "LDM", scotland, 28, 181, 76, 3_600_000, 17_000, 72, [6]int{63, 58, 73, 69, 68, 75}},
	{900007, "L. de Boer", "CM, CAM", Midfielder, "RDM", netherlands, 26, 179, 72, 4_200_000, 18_000, 73, [6]int{67, 64, 76, 74, 55, 66}},
	{900008, "S. McAteer", "LM", Midfielder, "LM", ireland, 22, 174, 68, 2_500_000, 9_500, 68, [6]int{80, 55, 64, 70, 45, 58}},
	{900009, "C. Bramble", "LW, ST", Forward, "LW", jamaica, 23, 178, 71, 3_900_000, 16_000, 71, [6]int{88, 69, 63, 75, 30, 62}},
	{900010, "N. Haldorsen", "ST", Forward, "ST", norway, 30, 188, 83, 4_800_000, 21_000, 74, [6]int{70, 75, 60, 68, 35, 79}},
	{900011, "K. Ashby", "RW, RM", Forward, "RW", england, 21, 175, 69, 2_900_000, 8_500, 67, [6]int{86, 63, 61, 72, 28, 55}},
}

var benchRows = []row{
	{900012, "B. Whitlock", "GK", Goalkeeper, "SUB", england, 34, 189, 88, 350_000, 5_000, 62, [6]int{40, 18, 48, 25, 18, 58}},
	{900013, "G. Ellery", "CB", Defender, "SUB", wales, 20, 187, 81, 900_000, 4_000, 62, [6]int{60, 28, 47, 45, 63, 68}},
	{900014, "P. Quinlan", "RB, RM", Defender, "SUB", ireland, 26, 178, 73, 1_100_000, 6_500, 64, [6]int{75, 40, 58, 60, 62, 66}},
	{900015, "F. Oduya", "CM", Midfielder, "SUB", england, 19, 180, 70, 1_400_000, 3_500, 63, [6]int{68, 52, 63, 64, 50, 58}},
	{900016, "H. Strand", "CAM, CM", Midfielder, "RES", norway, 24, 177, 71, 2_000_000, 9_000, 67, [6]int{70, 66, 70, 71, 38, 57}},
	{900017, "I. Brennan", "ST", Forward, "SUB", scotland, 32, 185, 82, 700_000, 10_000, 65, [6]int{60, 68, 55, 60, 32, 72}},
	{900018, "W. Laing", "LW", Forward, "RES", jamaica, 18, 173, 66, 1_400_000, 2_500, 60, [6]int{85, 52, 50, 66, 25, 48}},
}

// Starting returns the sample starting lineup in a 3-4-3 shape.
func Starting() []model.Player { return players(startingRows) }

// Bench returns the sample bench.
func Bench() []model.Player { return players(benchRows) }

func players(rows []row) []model.Player {
	out := make([]model.Player, len(rows))
	for i, r := range rows {
		out[i] = r.player()
	}
	return out
}
