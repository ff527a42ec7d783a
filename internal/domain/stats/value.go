package stats

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Value is an aggregate that may be undefined, e.g. the mean of an empty
// set. An undefined value encodes as JSON null.
type Value struct {
	Value float64
	Valid bool
}

// Some returns a defined value.
func Some(v float64) Value { return Value{Value: v, Valid: true} }

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Valid || math.IsNaN(v.Value) || math.IsInf(v.Value, 0) {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, v.Value, 'f', -1, 64), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*v = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*v = Some(f)
	return nil
}
