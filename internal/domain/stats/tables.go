package stats

import (
	"math"
	"sort"

	"github.com/okian/pitchside/internal/domain/model"
)

// DefaultAgeBins is the histogram bin count used when none is configured.
const DefaultAgeBins = 10

// BenchRow is one line of the bench table.
type BenchRow struct {
	PlayerID         int     `json:"player_id"`
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	HeightCM         float64 `json:"height_cm"`
	WeightKG         float64 `json:"weight_kg"`
	ClubPosition     string  `json:"club_position"`
	ValueEUR         float64 `json:"value_eur"`
	WageEUR          float64 `json:"wage_eur"`
	ReleaseClauseEUR float64 `json:"release_clause_eur"`
}

// BenchTable lists bench players by market value, highest first. Equal
// values keep roster order.
func BenchTable(players []model.Player) []BenchRow {
	rows := make([]BenchRow, 0)
	for _, p := range players {
		if p.Status != model.StatusBench {
			continue
		}
		rows = append(rows, BenchRow{
			PlayerID:         p.PlayerID,
			Name:             p.ShortName,
			Age:              p.Age,
			HeightCM:         p.HeightCM,
			WeightKG:         p.WeightKG,
			ClubPosition:     p.ClubPosition,
			ValueEUR:         p.ValueEUR,
			WageEUR:          p.WageEUR,
			ReleaseClauseEUR: p.ReleaseClauseEUR,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].ValueEUR > rows[j].ValueEUR })
	return rows
}

// Bin is one histogram bar covering [Lower, Upper). The last bin also
// includes Upper.
type Bin struct {
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// AgeHistogram splits the age range of players into equal width bins.
// Players with a blank age are left out. A set where everyone has the same
// age gives a single bin.
func AgeHistogram(players []model.Player, bins int) []Bin {
	ages := make([]float64, 0, len(players))
	for _, p := range players {
		if p.Has(model.FieldAge) {
			ages = append(ages, float64(p.Age))
		}
	}
	if len(ages) == 0 {
		return []Bin{}
	}
	if bins <= 0 {
		bins = DefaultAgeBins
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, a := range ages {
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	if lo == hi {
		return []Bin{{Lower: lo, Upper: hi, Count: len(ages)}}
	}

	width := (hi - lo) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Lower = lo + float64(i)*width
		out[i].Upper = lo + float64(i+1)*width
	}
	out[bins-1].Upper = hi
	for _, a := range ages {
		i := int((a - lo) / width)
		if i >= bins {
			i = bins - 1
		}
		out[i].Count++
	}
	return out
}

// SalaryPoint is one marker of the salary versus performance scatter.
type SalaryPoint struct {
	PlayerID int     `json:"player_id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	WageEUR  float64 `json:"wage_eur"`
	Overall  int     `json:"overall"`
	ValueEUR float64 `json:"value_eur"`
}

// SalaryPerformance returns one point per player in roster order. Players
// without both a wage and an overall rating have no point.
func SalaryPerformance(players []model.Player) []SalaryPoint {
	out := make([]SalaryPoint, 0, len(players))
	for _, p := range players {
		if !p.Has(model.FieldWage | model.FieldOverall) {
			continue
		}
		out = append(out, SalaryPoint{
			PlayerID: p.PlayerID,
			Name:     p.ShortName,
			Position: p.GeneralPosition,
			WageEUR:  p.WageEUR,
			Overall:  p.Overall,
			ValueEUR: p.ValueEUR,
		})
	}
	return out
}

// NationalityPoint places a player on the world map by nationality.
type NationalityPoint struct {
	PlayerID    int     `json:"player_id"`
	Name        string  `json:"name"`
	Nationality string  `json:"nationality"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	ValueEUR    float64 `json:"value_eur"`
}

// NationalityPoints returns one map marker per player in roster order.
// Players with a blank coordinate have no marker.
func NationalityPoints(players []model.Player) []NationalityPoint {
	out := make([]NationalityPoint, 0, len(players))
	for _, p := range players {
		if !p.Has(model.FieldLatitude | model.FieldLongitude) {
			continue
		}
		out = append(out, NationalityPoint{
			PlayerID:    p.PlayerID,
			Name:        p.ShortName,
			Nationality: p.NationalityName,
			Latitude:    p.Latitude,
			Longitude:   p.Longitude,
			ValueEUR:    p.ValueEUR,
		})
	}
	return out
}
