package game

import "strconv"

// Key packs a position into a signed 64-bit integer for the transposition
// cache. Layout, most significant first: pending removals (3^30), the 24
// cells as base-3 digits (3^29 down to 3^6), then both unplaced counts written
// in base 3 and read back as decimal, weighted 9 and 1. The sign carries the
// side to move (negative when green moves).
type Key int64

const (
	pow329 int64 = 68630377364883
	pow330 int64 = 205891132094649
)

func cellDigit(c Color) int64 {
	switch c {
	case Empty:
		return 2
	case Green:
		return 1
	default:
		return 0
	}
}

// base3Literal writes n in base 3 and parses the digits as a decimal number,
// e.g. 8 -> "22" -> 22.
func base3Literal(n int) int64 {
	v, err := strconv.ParseInt(strconv.FormatInt(int64(n), 3), 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// Key returns the cache key of the position.
func (p Position) Key() Key {
	var result int64
	result += int64(p.PendingRemovals) * pow330
	pow := pow329
	for _, c := range p.Cells {
		result += cellDigit(c) * pow
		pow /= 3
	}
	result += base3Literal(p.Unplaced.Green) * 9
	result += base3Literal(p.Unplaced.Blue) * 1
	if p.ToMove == Green {
		result = -result
	}
	return Key(result)
}
