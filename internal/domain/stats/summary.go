// Package stats derives aggregates and chart inputs from a filtered roster.
// Every function is pure and works on the slice it is given.
package stats

import (
	"sort"

	"github.com/okian/pitchside/internal/domain/model"
)

// Summary holds the headline metrics of a filtered set.
type Summary struct {
	TotalPlayers   int   `json:"total_players"`
	AvgMarketValue Value `json:"avg_market_value"`
	AvgWeeklyWage  Value `json:"avg_weekly_wage"`
	AvgAge         Value `json:"avg_age"`
	TotalTeamValue Value `json:"total_team_value"`
}

// Summarize computes the headline metrics. Blank cells are left out of each
// mean, so a column with no values has an undefined average. On an empty
// set every aggregate is undefined, including the total value.
func Summarize(players []model.Player) Summary {
	s := Summary{TotalPlayers: len(players)}
	if len(players) == 0 {
		return s
	}
	var value, wage, age mean
	for _, p := range players {
		value.add(p, model.FieldValue, p.ValueEUR)
		wage.add(p, model.FieldWage, p.WageEUR)
		age.add(p, model.FieldAge, float64(p.Age))
	}
	s.AvgMarketValue = value.value()
	s.AvgWeeklyWage = wage.value()
	s.AvgAge = age.value()
	s.TotalTeamValue = Some(value.sum)
	return s
}

// mean accumulates the present cells of one column.
type mean struct {
	sum float64
	n   int
}

func (m *mean) add(p model.Player, f model.Field, v float64) {
	if p.Has(f) {
		m.sum += v
		m.n++
	}
}

func (m mean) value() Value {
	if m.n == 0 {
		return Value{}
	}
	return Some(m.sum / float64(m.n))
}

// BestByPosition returns, per distinct general position, the player with
// the highest overall rating. Ties go to the earliest player and a blank
// rating ranks below any value. Results are ordered by position name.
func BestByPosition(players []model.Player) []model.Player {
	best := make(map[string]int)
	for i, p := range players {
		j, ok := best[p.GeneralPosition]
		if !ok || betterOverall(p, players[j]) {
			best[p.GeneralPosition] = i
		}
	}
	positions := make([]string, 0, len(best))
	for pos := range best {
		positions = append(positions, pos)
	}
	sort.Strings(positions)

	out := make([]model.Player, 0, len(positions))
	for _, pos := range positions {
		out = append(out, players[best[pos]])
	}
	return out
}

func betterOverall(p, cur model.Player) bool {
	if !p.Has(model.FieldOverall) {
		return false
	}
	return !cur.Has(model.FieldOverall) || p.Overall > cur.Overall
}
