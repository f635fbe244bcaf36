package tile

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"

	"github.com/google/hilbert"
)

// maxCode is the first tile code past level 31, the deepest level an ID can address.
const maxCode = (1<<64 - 1) / 3

// levelStart returns the number of tiles on all levels below z: (4^z - 1) / 3.
func levelStart(z int) uint64 {
	return (uint64(1)<<(2*z) - 1) / 3
}

// EncodeID returns the tile's position on the pyramid-wide Hilbert curve:
// all tiles of lower zoom levels come first, then tiles of level Z in curve order.
// The tile must be Valid.
func EncodeID(tileID ID) uint64 {
	curve, _ := hilbert.NewHilbert(1 << tileID.Z)
	d, _ := curve.MapInverse(tileID.X, tileID.Y)
	return levelStart(tileID.Z) + uint64(d)
}

// DecodeID is the inverse of EncodeID.
func DecodeID(code uint64) (ID, error) {
	if code >= maxCode {
		return ID{}, fmt.Errorf("tilecover: tile code %d is beyond level 31", code)
	}
	// levelStart(z) <= code < levelStart(z+1) holds exactly when 4^z <= 3*code+1 < 4^(z+1).
	z := (bits.Len64(3*code+1) - 1) / 2

	curve, err := hilbert.NewHilbert(1 << z)
	if err != nil {
		return ID{}, err
	}
	x, y, err := curve.Map(int(code - levelStart(z)))
	if err != nil {
		return ID{}, err
	}
	return ID{X: x, Y: y, Z: z}, nil
}

// SortHilbert orders valid tiles along the Hilbert curve, so that neighbouring
// tiles are requested close together. Invalid tiles sort last in z/x/y order.
func SortHilbert(tiles []ID) {
	slices.SortFunc(tiles, func(a, b ID) int {
		av, bv := a.Valid(), b.Valid()
		switch {
		case av && bv:
			return cmp.Compare(EncodeID(a), EncodeID(b))
		case av:
			return -1
		case bv:
			return 1
		}
		return cmp.Or(cmp.Compare(a.Z, b.Z), cmp.Compare(a.X, b.X), cmp.Compare(a.Y, b.Y))
	})
}
