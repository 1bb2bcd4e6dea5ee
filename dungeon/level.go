package dungeon

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/hollowmarch/engine/components"
	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/entity"
	"github.com/hollowmarch/engine/rng"
)

// Level is one generated floor's connectivity result (spec §4.9): a
// blocked/open tile grid with every room and corridor carved open, plus the
// door entities placed along the way.
type Level struct {
	Width, Height int
	Blocked       [][]bool
	Doors         []*entity.Entity
}

// Open reports whether (x, y) is in bounds and not a wall tile.
func (l *Level) Open(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	return !l.Blocked[y][x]
}

var corridorStyles = [...]CorridorStyle{StyleOrthogonal, StyleJagged, StyleOrganic}

// GenerateLevel carves a floor's rooms and their MST-plus-loops corridors
// into a fresh width x height grid and places a door entity every
// cfg.DoorSpacing corridor tiles (spec §4.9 steps 1-4). Every room must fit
// inside the returned grid's bounds; out-of-bounds room/corridor tiles are
// silently clipped rather than panicking, since room placement is the
// caller's concern, not this package's.
func GenerateLevel(rooms []Room, width, height int, cfg config.Dungeon, r *rng.Source) *Level {
	blocked := make([][]bool, height)
	for y := range blocked {
		row := make([]bool, width)
		for x := range row {
			row[x] = true
		}
		blocked[y] = row
	}
	for _, room := range rooms {
		carve(blocked, width, height, room)
	}

	mst, loops := BuildGraph(rooms, cfg, r)
	edges := make([]Edge, 0, len(mst)+len(loops))
	edges = append(edges, mst...)
	edges = append(edges, loops...)

	var doors []*entity.Entity
	for _, e := range edges {
		ax, ay := rooms[e.A].Center()
		bx, by := rooms[e.B].Center()
		style := corridorStyles[r.Intn(len(corridorStyles))]
		corridor := DigCorridor(Point{X: ax, Y: ay}, Point{X: bx, Y: by}, style, r)
		for _, p := range corridor {
			if p.Y >= 0 && p.Y < height && p.X >= 0 && p.X < width {
				blocked[p.Y][p.X] = false
			}
		}
		for _, p := range PlaceDoors(corridor, cfg.DoorSpacing) {
			doors = append(doors, newDoorEntity(p, cfg, r))
		}
	}

	return &Level{Width: width, Height: height, Blocked: blocked, Doors: doors}
}

func carve(blocked [][]bool, width, height int, room Room) {
	for y := room.Y1; y <= room.Y2; y++ {
		if y < 0 || y >= height {
			continue
		}
		for x := room.X1; x <= room.X2; x++ {
			if x < 0 || x >= width {
				continue
			}
			blocked[y][x] = false
		}
	}
}

func newDoorEntity(p Point, cfg config.Dungeon, r *rng.Source) *entity.Entity {
	return &entity.Entity{
		ID: deterministicID(r), Name: "door", X: p.X, Y: p.Y,
		RenderOrder: entity.RenderOrderDoor,
		Components:  components.Set{Door: NewDoor(cfg, "", r)},
	}
}

// deterministicID mints an entity id from r instead of bson.NewObjectID,
// whose timestamp-plus-process-random construction would make two map
// generations under the same seed diverge in entity ordering (spec §5/§8:
// the seeded rng.Source is the sole source of randomness for generation).
func deterministicID(r *rng.Source) bson.ObjectID {
	var id bson.ObjectID
	copy(id[:], r.Bytes(len(id)))
	return id
}
