package dungeon

import "github.com/hollowmarch/engine/rng"

// Point is a single corridor tile coordinate.
type Point struct{ X, Y int }

// CorridorStyle names one of the three digging styles (spec §4.9 step 3).
type CorridorStyle int

const (
	StyleOrthogonal CorridorStyle = iota
	StyleJagged
	StyleOrganic
)

// DigCorridor generates the tile path between two room centers in the
// given style (spec §4.9 step 3), using r for every random choice so the
// result is reproducible under a fixed seed.
func DigCorridor(start, end Point, style CorridorStyle, r *rng.Source) []Point {
	switch style {
	case StyleJagged:
		return digJagged(start, end, r)
	case StyleOrganic:
		return digOrganic(start, end, r)
	default:
		return digOrthogonal(start, end, r)
	}
}

// digOrthogonal digs an L-shaped corridor, 50/50 horizontal-then-vertical
// or vertical-then-horizontal.
func digOrthogonal(start, end Point, r *rng.Source) []Point {
	var tiles []Point
	if r.Chance(0.5) {
		for x := minInt(start.X, end.X); x <= maxInt(start.X, end.X); x++ {
			tiles = append(tiles, Point{x, start.Y})
		}
		for y := minInt(start.Y, end.Y); y <= maxInt(start.Y, end.Y); y++ {
			tiles = append(tiles, Point{end.X, y})
		}
	} else {
		for y := minInt(start.Y, end.Y); y <= maxInt(start.Y, end.Y); y++ {
			tiles = append(tiles, Point{start.X, y})
		}
		for x := minInt(start.X, end.X); x <= maxInt(start.X, end.X); x++ {
			tiles = append(tiles, Point{x, end.Y})
		}
	}
	return tiles
}

// digJagged zigzags between x and y steps, weighted by the fraction of
// remaining distance on each axis, favoring the longer remaining axis.
func digJagged(start, end Point, r *rng.Source) []Point {
	x, y := start.X, start.Y
	dx, dy := sign(end.X-x), sign(end.Y-y)
	var tiles []Point
	for x != end.X || y != end.Y {
		tiles = append(tiles, Point{x, y})
		xDist, yDist := absInt(end.X-x), absInt(end.Y-y)
		switch {
		case xDist == 0:
			y += dy
		case yDist == 0:
			x += dx
		case r.Chance(float64(xDist) / float64(xDist+yDist)):
			x += dx
		default:
			y += dy
		}
	}
	tiles = append(tiles, Point{x, y})
	return tiles
}

// digOrganic follows a Bresenham line with an occasional single-step
// deviation for a hand-drawn feel (turn chance 0.15, matching the original
// connectivity engine's "scenic route" constant).
func digOrganic(start, end Point, r *rng.Source) []Point {
	const turnChance = 0.15
	x, y := start.X, start.Y
	dx, dy := absInt(end.X-x), absInt(end.Y-y)
	sx, sy := sign(end.X-x), sign(end.Y-y)
	err := float64(dx-dy) / 2.0

	var tiles []Point
	for x != end.X || y != end.Y {
		tiles = append(tiles, Point{x, y})
		if r.Chance(turnChance) && x != end.X && y != end.Y {
			if r.Chance(0.5) {
				x += sx
			} else {
				y += sy
			}
			// Re-base the line from the new tile so it cannot overshoot end.
			dx, dy = absInt(end.X-x), absInt(end.Y-y)
			err = float64(dx-dy) / 2.0
			continue
		}
		e2 := err
		if e2 > -float64(dx) {
			err -= float64(dy)
			x += sx
		}
		if e2 < float64(dy) {
			err += float64(dx)
			y += sy
		}
	}
	tiles = append(tiles, Point{x, y})
	return tiles
}

// PlaceDoors returns the corridor tile positions at which a door entity
// should be placed, every spacing'th tile (spec §4.9 step 4).
func PlaceDoors(corridor []Point, spacing int) []Point {
	if spacing <= 0 || len(corridor) < spacing {
		return nil
	}
	var doors []Point
	for i := spacing - 1; i < len(corridor); i += spacing {
		doors = append(doors, corridor[i])
	}
	return doors
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func absInt(a int) int {
	if a < 0 {
		return -a
	}
	return a
}

func sign(a int) int {
	if a < 0 {
		return -1
	}
	if a > 0 {
		return 1
	}
	return 0
}
