// Package index provides a portable binary format for tile lists.
package index

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"

	"github.com/eak1mov/go-tilecover/tile"
)

// Item represents a single record in the index: the coordinates (X, Y, Z) of
// one tile, little-endian. It is designed to be easily portable to other
// languages and utilities.
type Item struct {
	X int32
	Y int32
	Z int32
}

// NewItem converts a tile, failing when a coordinate does not fit an int32.
func NewItem(tileID tile.ID) (Item, error) {
	for _, c := range []int{tileID.X, tileID.Y, tileID.Z} {
		if c < math.MinInt32 || c > math.MaxInt32 {
			return Item{}, fmt.Errorf("tilecover: tile %v does not fit the index format", tileID)
		}
	}
	return Item{X: int32(tileID.X), Y: int32(tileID.Y), Z: int32(tileID.Z)}, nil
}

func (i Item) TileID() tile.ID {
	return tile.ID{X: int(i.X), Y: int(i.Y), Z: int(i.Z)}
}

// Writer appends items to an index stream. Flush must be called after the last Write.
type Writer struct {
	w *bufio.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{bufio.NewWriter(w)}
}

func (w *Writer) Write(tileID tile.ID) error {
	item, err := NewItem(tileID)
	if err != nil {
		return err
	}
	return binary.Write(w.w, binary.LittleEndian, item)
}

func (w *Writer) Flush() error {
	return w.w.Flush()
}

func WriteAll(tiles []tile.ID, writer io.Writer) error {
	w := NewWriter(writer)
	for _, tileID := range tiles {
		if err := w.Write(tileID); err != nil {
			return err
		}
	}
	return w.Flush()
}

// Reader reads items from an index stream.
type Reader struct {
	r *bufio.Reader
}

func NewReader(r io.Reader) *Reader {
	return &Reader{bufio.NewReader(r)}
}

// Read returns the next tile, or io.EOF after the last item.
func (r *Reader) Read() (tile.ID, error) {
	var item Item
	err := binary.Read(r.r, binary.LittleEndian, &item)
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return tile.ID{}, fmt.Errorf("tilecover: truncated index item: %w", err)
	}
	if err != nil {
		return tile.ID{}, err
	}
	return item.TileID(), nil
}

// All returns an iterator over the remaining tiles. A read error is yielded
// once with a zero tile and ends the iteration; io.EOF is not reported.
func (r *Reader) All() iter.Seq2[tile.ID, error] {
	return func(yield func(tile.ID, error) bool) {
		for {
			tileID, err := r.Read()
			if err == io.EOF {
				return
			}
			if !yield(tileID, err) || err != nil {
				return
			}
		}
	}
}

// ReadAll decodes a whole index. Trailing bytes that do not form an item are an error.
func ReadAll(indexData []byte) ([]tile.ID, error) {
	tiles := make([]tile.ID, 0, len(indexData)/binary.Size(Item{}))
	for tileID, err := range NewReader(bytes.NewReader(indexData)).All() {
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, tileID)
	}
	return tiles, nil
}
