package domain

import (
	"encoding/json"
	"math"
	"strconv"
)

// Distance is a path cost. Unreachable nodes carry +Inf.
// JSON cannot represent infinity, so it is encoded as the string "Infinity".
type Distance float64

// Inf returns the unreachable distance.
func Inf() Distance { return Distance(math.Inf(1)) }

// IsInf reports whether d is unreachable.
func (d Distance) IsInf() bool { return math.IsInf(float64(d), 1) }

func (d Distance) String() string {
	if d.IsInf() {
		return "∞"
	}
	return strconv.FormatFloat(float64(d), 'g', -1, 64)
}

// MarshalJSON implements json.Marshaler.
func (d Distance) MarshalJSON() ([]byte, error) {
	switch {
	case d.IsInf():
		return []byte(`"Infinity"`), nil
	case math.IsInf(float64(d), -1):
		return []byte(`"-Infinity"`), nil
	}
	return []byte(strconv.FormatFloat(float64(d), 'g', -1, 64)), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Distance) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		switch s {
		case "Infinity":
			*d = Inf()
			return nil
		case "-Infinity":
			*d = Distance(math.Inf(-1))
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*d = Distance(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*d = Distance(f)
	return nil
}
