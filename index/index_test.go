package index_test

import (
	"bytes"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/eak1mov/go-tilecover/index"
	"github.com/eak1mov/go-tilecover/tile"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriteReadAll(t *testing.T) {
	for name, tiles := range map[string][]tile.ID{
		"empty":    nil,
		"single":   {{X: 0, Y: 0, Z: 0}},
		"negative": {{X: -1, Y: -2, Z: 3}, {X: 5, Y: -7, Z: -1}},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := index.WriteAll(tiles, &buf); err != nil {
				t.Fatalf("WriteAll failed: %v", err)
			}
			if got, want := buf.Len(), 12*len(tiles); got != want {
				t.Errorf("encoded size = %v, want = %v", got, want)
			}

			got, err := index.ReadAll(buf.Bytes())
			if err != nil {
				t.Fatalf("ReadAll failed: %v", err)
			}
			if diff := cmp.Diff(tiles, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("ReadAll mismatch (-want+got):\n%v", diff)
			}
		})
	}
}

func TestLittleEndianLayout(t *testing.T) {
	var buf bytes.Buffer
	if err := index.WriteAll([]tile.ID{{X: 1, Y: -1, Z: 2}}, &buf); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	want := []byte{1, 0, 0, 0, 0xff, 0xff, 0xff, 0xff, 2, 0, 0, 0}
	if diff := cmp.Diff(want, buf.Bytes()); diff != "" {
		t.Errorf("encoded bytes mismatch (-want+got):\n%v", diff)
	}
}

func TestNewItemOverflow(t *testing.T) {
	if _, err := index.NewItem(tile.ID{X: math.MaxInt32 + 1}); err == nil {
		t.Errorf("NewItem(overflow) succeeded, want error")
	}
}

func TestReadAllTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := index.WriteAll([]tile.ID{{X: 1, Y: 2, Z: 3}}, &buf); err != nil {
		t.Fatalf("WriteAll failed: %v", err)
	}
	buf.Write([]byte{0, 0, 0, 0, 0})
	if _, err := index.ReadAll(buf.Bytes()); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ReadAll error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestReaderStream(t *testing.T) {
	tiles := []tile.ID{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: -4, Y: 9, Z: 2}}
	var buf bytes.Buffer
	w := index.NewWriter(&buf)
	for _, tileID := range tiles {
		if err := w.Write(tileID); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	r := index.NewReader(&buf)
	first, err := r.Read()
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if diff := cmp.Diff(tiles[0], first); diff != "" {
		t.Errorf("Read mismatch (-want+got):\n%v", diff)
	}

	var rest []tile.ID
	for tileID, err := range r.All() {
		if err != nil {
			t.Fatalf("All failed: %v", err)
		}
		rest = append(rest, tileID)
	}
	if diff := cmp.Diff(tiles[1:], rest); diff != "" {
		t.Errorf("All mismatch (-want+got):\n%v", diff)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Errorf("Read after end = %v, want io.EOF", err)
	}
}
