package dungeon

import (
	"math"
	"sort"

	"github.com/hollowmarch/engine/config"
	"github.com/hollowmarch/engine/rng"
)

// Edge is a connection between two rooms by index (spec §4.9).
type Edge struct {
	A, B int
}

// mstEdge carries the sort key alongside the room indices while Kruskal's
// algorithm runs; Edge itself has no distance field, since downstream
// consumers address rooms, not weights.
type mstEdge struct {
	a, b int
	dist float64
}

// ComputeMST builds the minimum spanning tree over a floor's room centers
// via Kruskal's algorithm with union-find, edge weight = Euclidean
// distance between centers (spec §4.9 step 1). Returns the MST edges, which
// AddLoops takes to exclude them from loop sampling.
func ComputeMST(rooms []Room) []Edge {
	if len(rooms) <= 1 {
		return nil
	}

	edges := make([]mstEdge, 0, len(rooms)*(len(rooms)-1)/2)
	for i := 0; i < len(rooms); i++ {
		ax, ay := rooms[i].Center()
		for j := i + 1; j < len(rooms); j++ {
			bx, by := rooms[j].Center()
			dx, dy := float64(ax-bx), float64(ay-by)
			edges = append(edges, mstEdge{a: i, b: j, dist: math.Sqrt(dx*dx + dy*dy)})
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].dist < edges[j].dist })

	uf := newUnionFind(len(rooms))
	var mst []Edge
	for _, e := range edges {
		if uf.union(e.a, e.b) {
			mst = append(mst, Edge{A: e.a, B: e.b})
			if len(mst) == len(rooms)-1 {
				break
			}
		}
	}
	return mst
}

// AddLoops samples loopCount additional edges from the complement of the
// MST without replacement (spec §4.9 step 2), using r.Shuffle for the
// deterministic sampling.
func AddLoops(rooms []Room, mst []Edge, loopCount int, r *rng.Source) []Edge {
	if len(rooms) <= 2 || loopCount <= 0 {
		return nil
	}
	existing := make(map[Edge]bool, len(mst))
	for _, e := range mst {
		existing[e] = true
	}

	var candidates []Edge
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			e := Edge{A: i, B: j}
			if !existing[e] {
				candidates = append(candidates, e)
			}
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	if loopCount > len(candidates) {
		loopCount = len(candidates)
	}
	r.Shuffle(len(candidates), func(i, j int) { candidates[i], candidates[j] = candidates[j], candidates[i] })
	return candidates[:loopCount]
}

// BuildGraph runs MST + loop generation in one call, the entry point a
// floor generator uses (spec §4.9 steps 1-2).
func BuildGraph(rooms []Room, cfg config.Dungeon, r *rng.Source) (mst, loops []Edge) {
	mst = ComputeMST(rooms)
	loops = AddLoops(rooms, mst, cfg.LoopCount, r)
	return mst, loops
}
