// Package filter narrows a roster by status, general position and nationality.
package filter

import "github.com/okian/pitchside/internal/domain/model"

// Selection holds the inclusion sets for one view. A nil or empty set
// matches nothing.
type Selection struct {
	Statuses      []string `json:"statuses"`
	Positions     []string `json:"positions"`
	Nationalities []string `json:"nationalities"`
}

// All returns every value observed per field, in order of first appearance.
func All(players []model.Player) Selection {
	var sel Selection
	statuses := make(map[string]struct{})
	positions := make(map[string]struct{})
	nations := make(map[string]struct{})
	for _, p := range players {
		sel.Statuses = appendNew(sel.Statuses, statuses, string(p.Status))
		sel.Positions = appendNew(sel.Positions, positions, p.GeneralPosition)
		sel.Nationalities = appendNew(sel.Nationalities, nations, p.NationalityName)
	}
	return sel
}

func appendNew(dst []string, seen map[string]struct{}, v string) []string {
	if _, ok := seen[v]; ok {
		return dst
	}
	seen[v] = struct{}{}
	return append(dst, v)
}

// Apply keeps the players whose status, general position and nationality
// are each in the selection. Input order is preserved and players is not
// modified.
func Apply(players []model.Player, sel Selection) []model.Player {
	out := make([]model.Player, 0, len(players))
	if len(sel.Statuses) == 0 || len(sel.Positions) == 0 || len(sel.Nationalities) == 0 {
		return out
	}
	statuses := set(sel.Statuses)
	positions := set(sel.Positions)
	nations := set(sel.Nationalities)
	for _, p := range players {
		if _, ok := statuses[string(p.Status)]; !ok {
			continue
		}
		if _, ok := positions[p.GeneralPosition]; !ok {
			continue
		}
		if _, ok := nations[p.NationalityName]; !ok {
			continue
		}
		out = append(out, p)
	}
	return out
}

func set(values []string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}
