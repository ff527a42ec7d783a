// Package repository reads roster tables from CSV and XLSX files and writes
// filtered rosters back out.
package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/internal/domain/roster"
)

// Column names of the roster tables.
const (
	ColPlayerID         = "player_id"
	ColShortName        = "short_name"
	ColPlayerPositions  = "player_positions"
	ColGeneralPosition  = "general_position"
	ColNationalityName  = "nationality_name"
	ColClubPosition     = "club_position"
	ColStatus           = "status"
	ColAge              = "age"
	ColHeightCM         = "height_cm"
	ColWeightKG         = "weight_kg"
	ColValueEUR         = "value_eur"
	ColWageEUR          = "wage_eur"
	ColReleaseClauseEUR = "release_clause_eur"
	ColOverall          = "overall"
	ColPace             = "pace"
	ColShooting         = "shooting"
	ColPassing          = "passing"
	ColDribbling        = "dribbling"
	ColDefending        = "defending"
	ColPhysic           = "physic"
	ColLatitude         = "latitude"
	ColLongitude        = "longitude"
)

// Columns is the header written by the exporters. Readers accept any order
// and ignore unknown columns.
var Columns = []string{
	ColPlayerID, ColShortName, ColPlayerPositions, ColGeneralPosition,
	ColNationalityName, ColClubPosition, ColStatus, ColAge, ColHeightCM,
	ColWeightKG, ColValueEUR, ColWageEUR, ColReleaseClauseEUR, ColOverall,
	ColPace, ColShooting, ColPassing, ColDribbling, ColDefending, ColPhysic,
	ColLatitude, ColLongitude,
}

var requiredColumns = []string{ColPlayerID, ColShortName}

// header maps a column name to its index in a record.
type header map[string]int

func newHeader(cells []string) (header, error) {
	h := make(header, len(cells))
	for i, c := range cells {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(c, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, c := range requiredColumns {
		if _, ok := h[c]; !ok {
			return nil, fmt.Errorf("%w: %w: %s", roster.ErrMalformedSource, ErrMissingColumn, c)
		}
	}
	return h, nil
}

// rowDecoder turns one record into a player, remembering the first bad cell
// and every blank numeric cell.
type rowDecoder struct {
	h      header
	record []string
	line   int
	blank  model.Field
	err    error
}

func (d *rowDecoder) text(col string) string {
	i, ok := d.h[col]
	if !ok || i >= len(d.record) {
		return ""
	}
	return strings.TrimSpace(d.record[i])
}

// number parses a numeric cell. An empty cell reads as 0 and sets f in the
// blank mask.
func (d *rowDecoder) number(col string, f model.Field) float64 {
	s := d.text(col)
	if s == "" {
		d.blank |= f
		return 0
	}
	if d.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		d.err = fmt.Errorf("%w: %w: line %d column %s value %q", roster.ErrMalformedSource, ErrBadCell, d.line, col, s)
		return 0
	}
	return v
}

func (d *rowDecoder) whole(col string, f model.Field) int {
	v := d.number(col, f)
	if v != math.Trunc(v) && d.err == nil {
		d.err = fmt.Errorf("%w: %w: line %d column %s value %v is not whole", roster.ErrMalformedSource, ErrBadCell, d.line, col, v)
		return 0
	}
	return int(v)
}

func decodeRow(h header, record []string, line int) (model.Player, error) {
	d := &rowDecoder{h: h, record: record, line: line}
	p := model.Player{
		PlayerID:         d.whole(ColPlayerID, 0),
		ShortName:        d.text(ColShortName),
		PlayerPositions:  d.text(ColPlayerPositions),
		GeneralPosition:  d.text(ColGeneralPosition),
		NationalityName:  d.text(ColNationalityName),
		ClubPosition:     d.text(ColClubPosition),
		Age:              d.whole(ColAge, model.FieldAge),
		HeightCM:         d.number(ColHeightCM, model.FieldHeight),
		WeightKG:         d.number(ColWeightKG, model.FieldWeight),
		ValueEUR:         d.number(ColValueEUR, model.FieldValue),
		WageEUR:          d.number(ColWageEUR, model.FieldWage),
		ReleaseClauseEUR: d.number(ColReleaseClauseEUR, model.FieldReleaseClause),
		Overall:          d.whole(ColOverall, model.FieldOverall),
		Pace:             d.whole(ColPace, model.FieldPace),
		Shooting:         d.whole(ColShooting, model.FieldShooting),
		Passing:          d.whole(ColPassing, model.FieldPassing),
		Dribbling:        d.whole(ColDribbling, model.FieldDribbling),
		Defending:        d.whole(ColDefending, model.FieldDefending),
		Physic:           d.whole(ColPhysic, model.FieldPhysic),
		Latitude:         d.number(ColLatitude, model.FieldLatitude),
		Longitude:        d.number(ColLongitude, model.FieldLongitude),
	}
	p.Blank = d.blank
	if d.err != nil {
		return model.Player{}, d.err
	}
	return p, nil
}

// decodeRows decodes a header row followed by data rows. Blank rows are
// skipped.
func decodeRows(rows [][]string) ([]model.Player, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no header row", roster.ErrMalformedSource)
	}
	h, err := newHeader(rows[0])
	if err != nil {
		return nil, err
	}
	players := make([]model.Player, 0, len(rows)-1)
	for i, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		p, err := decodeRow(h, rec, i+2)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, nil
}

func blank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// encodeRow returns the cells of p in Columns order. Blank numeric fields
// are written as empty cells.
func encodeRow(p model.Player) []any {
	cell := func(f model.Field, v any) any {
		if !p.Has(f) {
			return ""
		}
		return v
	}
	return []any{
		p.PlayerID, p.ShortName, p.PlayerPositions, p.GeneralPosition,
		p.NationalityName, p.ClubPosition, string(p.Status),
		cell(model.FieldAge, p.Age),
		cell(model.FieldHeight, p.HeightCM),
		cell(model.FieldWeight, p.WeightKG),
		cell(model.FieldValue, p.ValueEUR),
		cell(model.FieldWage, p.WageEUR),
		cell(model.FieldReleaseClause, p.ReleaseClauseEUR),
		cell(model.FieldOverall, p.Overall),
		cell(model.FieldPace, p.Pace),
		cell(model.FieldShooting, p.Shooting),
		cell(model.FieldPassing, p.Passing),
		cell(model.FieldDribbling, p.Dribbling),
		cell(model.FieldDefending, p.Defending),
		cell(model.FieldPhysic, p.Physic),
		cell(model.FieldLatitude, p.Latitude),
		cell(model.FieldLongitude, p.Longitude),
	}
}
