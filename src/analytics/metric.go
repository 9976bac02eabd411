package analytics

import (
	"bytes"
	"math"
	"strconv"
)

// Metric is a float64 that survives JSON encoding when the underlying value
// is non-finite. Profit factor is defined as +Inf when there are wins and no
// losses; encoding/json rejects that, so infinities marshal as the string
// "Infinity" and NaN as null. In-core math always sees the real float.
type Metric float64

func (m Metric) MarshalJSON() ([]byte, error) {
	f := float64(m)
	switch {
	case math.IsInf(f, 1):
		return []byte(`"Infinity"`), nil
	case math.IsInf(f, -1):
		return []byte(`"-Infinity"`), nil
	case math.IsNaN(f):
		return []byte("null"), nil
	default:
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
}

func (m *Metric) UnmarshalJSON(data []byte) error {
	switch {
	case bytes.Equal(data, []byte(`"Infinity"`)):
		*m = Metric(math.Inf(1))
		return nil
	case bytes.Equal(data, []byte(`"-Infinity"`)):
		*m = Metric(math.Inf(-1))
		return nil
	case bytes.Equal(data, []byte("null")):
		*m = Metric(math.NaN())
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return err
	}
	*m = Metric(f)
	return nil
}
