// Package tile provides the common tile index type shared by the geometry,
// resolver and URL template packages.
package tile

import (
	"fmt"
	"strconv"
	"strings"
)

// ID represents tile coordinates in the XYZ scheme (Tiled web map).
//
// In the geospatial regime X and Y lie in [0, 2^Z). The planar grid is
// unbounded and centered at the origin, so X and Y may be negative there.
type ID struct {
	X int
	Y int
	Z int
}

// Valid reports whether the tile lies inside the slippy-map grid at its zoom level.
func (t ID) Valid() bool {
	return t.Z >= 0 && t.Z < 32 &&
		t.X >= 0 && t.X < (1<<t.Z) &&
		t.Y >= 0 && t.Y < (1<<t.Z)
}

func (t ID) String() string {
	return fmt.Sprintf("%d/%d/%d", t.Z, t.X, t.Y)
}

// Parse parses a tile in "z/x/y" form, the inverse of ID.String, or a bare
// Hilbert tile code as returned by EncodeID.
func Parse(s string) (ID, error) {
	if s != "" && !strings.Contains(s, "/") {
		code, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return ID{}, fmt.Errorf("tilecover: invalid tile %q, want z/x/y or a tile code: %w", s, err)
		}
		return DecodeID(code)
	}
	var t ID
	var rest string
	n, _ := fmt.Sscanf(s, "%d/%d/%d%s", &t.Z, &t.X, &t.Y, &rest)
	if n != 3 {
		return ID{}, fmt.Errorf("tilecover: invalid tile %q, want z/x/y", s)
	}
	return t, nil
}
