package stats

import (
	"fmt"
	"math"

	"github.com/okian/pitchside/internal/domain/model"
)

// SkillAttributes returns the six rating columns used by the correlation
// heatmap and the radar comparison, in display order.
func SkillAttributes() []model.Attribute {
	return []model.Attribute{
		model.Pace, model.Shooting, model.Passing,
		model.Dribbling, model.Defending, model.Physic,
	}
}

// Matrix is a symmetric Pearson correlation matrix. Values[i][j] is the
// coefficient between Attributes[i] and Attributes[j].
type Matrix struct {
	Attributes []model.Attribute `json:"attributes"`
	Values     [][]Value         `json:"values"`
}

// Empty reports whether the matrix carries no coefficients.
func (m Matrix) Empty() bool { return len(m.Values) == 0 }

// Correlation computes pairwise Pearson coefficients over attrs. Each pair
// uses only the players rated in both columns. A pair with fewer than two
// such players, or involving a constant column, is undefined. With fewer
// than two players the matrix is empty.
func Correlation(players []model.Player, attrs []model.Attribute) (Matrix, error) {
	fields := make([]model.Field, len(attrs))
	for i, a := range attrs {
		f, ok := model.AttributeField(a)
		if !ok {
			return Matrix{}, fmt.Errorf("%w: %s", ErrUnknownAttribute, a)
		}
		fields[i] = f
	}
	m := Matrix{Attributes: append([]model.Attribute(nil), attrs...)}
	if len(players) < 2 {
		return m, nil
	}

	cols := make([][]float64, len(attrs))
	for i, a := range attrs {
		col := make([]float64, len(players))
		for j, p := range players {
			v, _ := p.Skill(a)
			col[j] = float64(v)
		}
		cols[i] = col
	}

	m.Values = make([][]Value, len(attrs))
	for i := range m.Values {
		m.Values[i] = make([]Value, len(attrs))
	}
	for i := range attrs {
		for j := i; j < len(attrs); j++ {
			x, y := pairwise(players, fields[i]|fields[j], cols[i], cols[j])
			r := pearson(x, y)
			if i == j && r.Valid {
				r = Some(1)
			}
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m, nil
}

// pairwise keeps the rows where every column in f has a value.
func pairwise(players []model.Player, f model.Field, x, y []float64) (xs, ys []float64) {
	xs = make([]float64, 0, len(x))
	ys = make([]float64, 0, len(y))
	for k, p := range players {
		if p.Has(f) {
			xs = append(xs, x[k])
			ys = append(ys, y[k])
		}
	}
	return xs, ys
}

func pearson(x, y []float64) Value {
	if len(x) < 2 {
		return Value{}
	}
	n := float64(len(x))
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	mx /= n
	my /= n

	var sxy, sxx, syy float64
	for i := range x {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return Value{}
	}
	r := sxy / math.Sqrt(sxx*syy)
	return Some(math.Max(-1, math.Min(1, r)))
}
