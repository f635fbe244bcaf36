package urltemplate

import (
	"math"
	"strconv"

	"github.com/eak1mov/go-tilecover/tile"
)

type valueKind uint8

const (
	kindInt valueKind = iota + 1
	kindFloat
	kindString
)

// Value is a template property value: an integer, a float or a string.
// The zero Value is invalid and never substitutes.
type Value struct {
	kind valueKind
	i    int
	f    float64
	s    string
}

func IntValue(v int) Value       { return Value{kind: kindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: kindFloat, f: v} }
func StringValue(v string) Value { return Value{kind: kindString, s: v} }

// ParseValue interprets s as an integer, then as a float, and falls back to a string.
func ParseValue(s string) Value {
	if i, err := strconv.Atoi(s); err == nil {
		return IntValue(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return FloatValue(f)
	}
	return StringValue(s)
}

// Int returns the value as an integer. Floats convert only when integral.
func (v Value) Int() (int, bool) {
	switch v.kind {
	case kindInt:
		return v.i, true
	case kindFloat:
		if v.f == math.Trunc(v.f) && math.Abs(v.f) < 1<<53 {
			return int(v.f), true
		}
	}
	return 0, false
}

// Valid reports whether v holds a value.
func (v Value) Valid() bool {
	return v.kind != 0
}

// String returns the textual form used for substitution.
func (v Value) String() string {
	switch v.kind {
	case kindInt:
		return strconv.Itoa(v.i)
	case kindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case kindString:
		return v.s
	}
	return ""
}

// Properties maps placeholder names to values.
type Properties map[string]Value

// TileProperties returns the x, y and z properties of a tile.
func TileProperties(tileID tile.ID) Properties {
	return Properties{
		"x": IntValue(tileID.X),
		"y": IntValue(tileID.Y),
		"z": IntValue(tileID.Z),
	}
}

// With sets a property and returns p for chaining.
// On a nil p it allocates a new map, so the result must be used.
func (p Properties) With(name string, v Value) Properties {
	if p == nil {
		p = make(Properties)
	}
	p[name] = v
	return p
}
