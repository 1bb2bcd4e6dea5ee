package dungeon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/rng"
)

func sampleRooms() []Room {
	return []Room{
		{X1: 0, Y1: 0, X2: 4, Y2: 4},
		{X1: 10, Y1: 0, X2: 14, Y2: 4},
		{X1: 0, Y1: 10, X2: 4, Y2: 14},
		{X1: 10, Y1: 10, X2: 14, Y2: 14},
		{X1: 20, Y1: 5, X2: 24, Y2: 9},
	}
}

func TestComputeMSTConnectsEveryRoom(t *testing.T) {
	rooms := sampleRooms()
	mst := ComputeMST(rooms)
	require.Len(t, mst, len(rooms)-1, "a spanning tree over n rooms has exactly n-1 edges")

	uf := newUnionFind(len(rooms))
	for _, e := range mst {
		uf.union(e.A, e.B)
	}
	root := uf.find(0)
	for i := 1; i < len(rooms); i++ {
		assert.Equal(t, root, uf.find(i), "every room must be reachable from room 0 through the MST")
	}
}

func TestComputeMSTSingleOrEmptyRoomsYieldsNoEdges(t *testing.T) {
	assert.Nil(t, ComputeMST(nil))
	assert.Nil(t, ComputeMST([]Room{{X1: 0, Y1: 0, X2: 2, Y2: 2}}))
}

func TestAddLoopsNeverDuplicatesMSTEdges(t *testing.T) {
	rooms := sampleRooms()
	mst := ComputeMST(rooms)
	r := rng.New(3)
	loops := AddLoops(rooms, mst, 2, r)

	existing := make(map[Edge]bool, len(mst))
	for _, e := range mst {
		existing[e] = true
	}
	for _, l := range loops {
		assert.False(t, existing[l], "a loop edge must not duplicate an MST edge")
	}
}

func TestAddLoopsStaysConnected(t *testing.T) {
	rooms := sampleRooms()
	r := rng.New(11)
	mst, loops := BuildGraph(rooms, config.Dungeon{LoopCount: 2}, r)

	uf := newUnionFind(len(rooms))
	for _, e := range mst {
		uf.union(e.A, e.B)
	}
	for _, e := range loops {
		uf.union(e.A, e.B)
	}
	root := uf.find(0)
	for i := 1; i < len(rooms); i++ {
		assert.Equal(t, root, uf.find(i), "adding loops on top of the MST must never disconnect a room")
	}
}

func TestAddLoopsCapsAtAvailableComplementEdges(t *testing.T) {
	rooms := []Room{
		{X1: 0, Y1: 0, X2: 2, Y2: 2},
		{X1: 5, Y1: 0, X2: 7, Y2: 2},
		{X1: 10, Y1: 0, X2: 12, Y2: 2},
	}
	mst := ComputeMST(rooms)
	r := rng.New(4)
	// 3 rooms -> 3 total possible edges, mst takes 2, leaving only 1 for loops.
	loops := AddLoops(rooms, mst, 10, r)
	assert.LessOrEqual(t, len(loops), 1)
}

func TestDigOrthogonalReachesEndpointAndStaysLShaped(t *testing.T) {
	r := rng.New(1)
	start, end := Point{X: 0, Y: 0}, Point{X: 5, Y: 3}
	path := digOrthogonal(start, end, r)
	require.NotEmpty(t, path)
	assert.Equal(t, end, path[len(path)-1])
	assert.Equal(t, start.X, path[0].X)
}

func TestDigJaggedReachesEndpoint(t *testing.T) {
	r := rng.New(2)
	start, end := Point{X: 0, Y: 0}, Point{X: 6, Y: -4}
	path := digJagged(start, end, r)
	require.NotEmpty(t, path)
	assert.Equal(t, end, path[len(path)-1])
	assert.Equal(t, start, path[0])
}

func TestDigOrganicReachesEndpoint(t *testing.T) {
	r := rng.New(5)
	start, end := Point{X: 2, Y: 2}, Point{X: 10, Y: 8}
	path := digOrganic(start, end, r)
	require.NotEmpty(t, path)
	assert.Equal(t, end, path[len(path)-1])
}

func TestPlaceDoorsSpacing(t *testing.T) {
	var corridor []Point
	for i := 0; i < 20; i++ {
		corridor = append(corridor, Point{X: i, Y: 0})
	}
	doors := PlaceDoors(corridor, 6)
	require.Len(t, doors, 3)
	assert.Equal(t, corridor[5], doors[0])
	assert.Equal(t, corridor[11], doors[1])
	assert.Equal(t, corridor[17], doors[2])
}

func TestPlaceDoorsNoSpacingOrShortCorridorYieldsNone(t *testing.T) {
	corridor := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	assert.Nil(t, PlaceDoors(corridor, 0))
	assert.Nil(t, PlaceDoors(corridor, 6))
}

func TestNewDoorRespectsConfiguredProbabilities(t *testing.T) {
	cfg := config.Dungeon{LockedChance: 1.0, SecretChance: 1.0, DefaultSearchDC: 15}
	r := rng.New(6)
	d := NewDoor(cfg, "brass_key", r)
	assert.True(t, d.IsLocked)
	assert.True(t, d.IsSecret)
	assert.Equal(t, 15, d.SearchDC)
	assert.True(t, d.IsClosed)
}

func TestNewDoorZeroChanceNeverLockedOrSecret(t *testing.T) {
	cfg := config.Dungeon{LockedChance: 0, SecretChance: 0, DefaultSearchDC: 10}
	r := rng.New(6)
	for i := 0; i < 20; i++ {
		d := NewDoor(cfg, "brass_key", r)
		assert.False(t, d.IsLocked)
		assert.False(t, d.IsSecret)
	}
}

func TestGenerateLevelCarvesEveryRoomOpen(t *testing.T) {
	rooms := sampleRooms()
	cfg := config.Dungeon{LoopCount: 1, DoorSpacing: 6, DefaultSearchDC: 15}
	level := GenerateLevel(rooms, 30, 20, cfg, rng.New(9))

	require.Equal(t, 30, level.Width)
	require.Equal(t, 20, level.Height)
	for _, room := range rooms {
		for y := room.Y1; y <= room.Y2; y++ {
			for x := room.X1; x <= room.X2; x++ {
				assert.True(t, level.Open(x, y), "room tile (%d,%d) must be carved open", x, y)
			}
		}
	}
}

func TestGenerateLevelConnectsEveryRoomWithOpenCorridors(t *testing.T) {
	rooms := sampleRooms()
	cfg := config.Dungeon{LoopCount: 0, DoorSpacing: 6, DefaultSearchDC: 15}
	level := GenerateLevel(rooms, 30, 20, cfg, rng.New(3))

	for _, room := range rooms {
		cx, cy := room.Center()
		require.True(t, level.Open(cx, cy), "every room center stays open")
	}
	assert.True(t, level.Open(0, 0), "room 0's corner stays open")
}

func TestGenerateLevelPlacesDoorsAsEntities(t *testing.T) {
	rooms := []Room{
		{X1: 0, Y1: 0, X2: 2, Y2: 2},
		{X1: 20, Y1: 0, X2: 22, Y2: 2},
	}
	cfg := config.Dungeon{LoopCount: 0, DoorSpacing: 4, DefaultSearchDC: 12}
	level := GenerateLevel(rooms, 30, 10, cfg, rng.New(2))

	require.NotEmpty(t, level.Doors, "a long corridor between two rooms places at least one door")
	for _, d := range level.Doors {
		require.NotNil(t, d.Components.Door)
		assert.True(t, level.Open(d.X, d.Y), "a placed door sits on a carved corridor tile")
	}
}

func TestGenerateLevelClipsOutOfBoundsRoomsWithoutPanicking(t *testing.T) {
	rooms := []Room{{X1: -2, Y1: -2, X2: 2, Y2: 2}, {X1: 5, Y1: 5, X2: 40, Y2: 40}}
	cfg := config.Dungeon{LoopCount: 0, DoorSpacing: 4, DefaultSearchDC: 10}
	require.NotPanics(t, func() { GenerateLevel(rooms, 10, 10, cfg, rng.New(1)) })
}

func TestGenerateLevelSameSeedProducesIdenticalDoorIDs(t *testing.T) {
	rooms := []Room{
		{X1: 0, Y1: 0, X2: 2, Y2: 2},
		{X1: 20, Y1: 0, X2: 22, Y2: 2},
	}
	cfg := config.Dungeon{LoopCount: 1, DoorSpacing: 4, DefaultSearchDC: 12}

	first := GenerateLevel(rooms, 30, 10, cfg, rng.New(42))
	second := GenerateLevel(rooms, 30, 10, cfg, rng.New(42))

	require.Equal(t, len(first.Doors), len(second.Doors))
	require.NotEmpty(t, first.Doors)
	for i := range first.Doors {
		assert.Equal(t, first.Doors[i].ID, second.Doors[i].ID, "door ids must derive from the seeded rng, not wall-clock time")
	}
}
