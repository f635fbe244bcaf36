package urltemplate

import (
	"encoding/binary"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/cespare/xxhash/v2"
)

var ErrFieldNotFound = errors.New("tilecover: template field not found")

var placeholderRegexp = regexp.MustCompile(`\{ *([\w_-]+) *\}`)

// ShardFunc picks one of n shard templates for tile (x, y). n is always positive.
type ShardFunc func(x, y, n int) int

// DefaultShard picks abs(x + y) mod n, computed without overflowing x + y.
//
// Tiles on the same anti-diagonal share a shard, e.g. (1, -1) and (-1, 1);
// use HashShard when balance across shards matters more than compatibility.
func DefaultShard(x, y, n int) int {
	r := (x%n + y%n) % n
	if r < 0 {
		r += n
	}
	// r is (x + y) mod n; mirror it when the exact sum is negative.
	negative := x < 0 && y < 0 || (x < 0) != (y < 0) && x+y < 0
	if negative && r != 0 {
		r = n - r
	}
	return r
}

// HashShard picks a shard from the xxhash of the tile coordinates.
func HashShard(x, y, n int) int {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(x))
	binary.LittleEndian.PutUint64(buf[8:], uint64(y))
	return int(xxhash.Sum64(buf[:]) % uint64(n))
}

// Resolve resolves the template for a tile using DefaultShard.
//
// It returns ok == false when the template is empty. Every "{name}"
// placeholder is replaced with the textual form of props[name]; no escaping
// is applied. A placeholder without a property yields ErrFieldNotFound.
func Resolve(t Template, props Properties) (url string, ok bool, err error) {
	return ResolveWith(t, props, DefaultShard)
}

// ResolveWith is like Resolve but picks list shards with shard.
// List templates require integer "x" and "y" properties.
func ResolveWith(t Template, props Properties, shard ShardFunc) (string, bool, error) {
	if t.Empty() {
		return "", false, nil
	}

	pattern := t.single
	if t.isList {
		x, err := intProperty(props, "x")
		if err != nil {
			return "", false, err
		}
		y, err := intProperty(props, "y")
		if err != nil {
			return "", false, err
		}
		i := shard(x, y, len(t.list))
		if i < 0 || i >= len(t.list) {
			return "", false, fmt.Errorf("tilecover: shard %d out of range for %d templates", i, len(t.list))
		}
		pattern = t.list[i]
	}

	url, err := substitute(pattern, props)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}

func intProperty(props Properties, name string) (int, error) {
	v, found := props[name]
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
	}
	i, ok := v.Int()
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrFieldNotFound, name)
	}
	return i, nil
}

func substitute(pattern string, props Properties) (string, error) {
	var b strings.Builder
	last := 0
	for _, m := range placeholderRegexp.FindAllStringSubmatchIndex(pattern, -1) {
		name := pattern[m[2]:m[3]]
		v, found := props[name]
		if !found || !v.Valid() {
			return "", fmt.Errorf("%w: %q", ErrFieldNotFound, name)
		}
		b.WriteString(pattern[last:m[0]])
		b.WriteString(v.String())
		last = m[1]
	}
	b.WriteString(pattern[last:])
	return b.String(), nil
}
