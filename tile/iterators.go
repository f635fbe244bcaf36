package tile

import (
	"iter"
	"math"
)

// Rect is a block of tiles at level Z: MinX <= X < MaxX and MinY <= Y < MaxY.
type Rect struct {
	MinX int
	MinY int
	MaxX int
	MaxY int
	Z    int
}

// Empty reports whether r holds no tiles.
func (r Rect) Empty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Len returns the number of tiles in r, or -1 if the count does not fit an int.
func (r Rect) Len() int {
	if r.Empty() {
		return 0
	}
	w, h := r.MaxX-r.MinX, r.MaxY-r.MinY
	if w <= 0 || h <= 0 || w > math.MaxInt/h {
		return -1
	}
	return w * h
}

// All returns an iterator over the tiles of r, column by column.
// Tiles are produced lazily, so r may be larger than what fits in memory.
func (r Rect) All() iter.Seq[ID] {
	return func(yield func(ID) bool) {
		for x := r.MinX; x < r.MaxX; x++ {
			for y := r.MinY; y < r.MaxY; y++ {
				if !yield(ID{X: x, Y: y, Z: r.Z}) {
					return
				}
			}
		}
	}
}
