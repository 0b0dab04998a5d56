package orb

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Edge joins points I and J (I < J) of one frame's projection.
type Edge struct {
	I, J  int
	Alpha float64
}

// edgeBetween reports the edge for a pair if they are strictly closer than limit.
func edgeBetween(points []ProjectedPoint, i, j int, limit float64) (Edge, bool) {
	dist := r2.Norm(r2.Sub(points[i].Pos, points[j].Pos))
	if dist >= limit {
		return Edge{}, false
	}
	return Edge{
		I:     i,
		J:     j,
		Alpha: (1 - dist/limit) * points[i].Alpha() * 0.5,
	}, true
}

// Connections yields every pair of points whose screen distance is below
// threshold*expansion. It checks all n(n-1)/2 pairs; see GridConnections for
// a bucketed search that yields the same set.
func Connections(points []ProjectedPoint, threshold, expansion float64) iter.Seq[Edge] {
	limit := threshold * expansion
	return func(yield func(Edge) bool) {
		if !(limit > 0) {
			return
		}
		for i := range points {
			for j := i + 1; j < len(points); j++ {
				if e, ok := edgeBetween(points, i, j, limit); ok {
					if !yield(e) {
						return
					}
				}
			}
		}
	}
}

type cell struct{ x, y int }

// GridConnections buckets points into square cells of side threshold*expansion
// and only compares neighbouring cells. Edges are the same as Connections,
// though they may come out in a different order.
func GridConnections(points []ProjectedPoint, threshold, expansion float64) iter.Seq[Edge] {
	limit := threshold * expansion
	return func(yield func(Edge) bool) {
		if !(limit > 0) || math.IsInf(limit, 0) {
			return
		}
		cellOf := func(p r2.Vec) cell {
			return cell{int(math.Floor(p.X / limit)), int(math.Floor(p.Y / limit))}
		}
		buckets := make(map[cell][]int, len(points))
		for i, p := range points {
			c := cellOf(p.Pos)
			buckets[c] = append(buckets[c], i)
		}
		for i, p := range points {
			c := cellOf(p.Pos)
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					for _, j := range buckets[cell{c.x + dx, c.y + dy}] {
						if j <= i {
							continue
						}
						if e, ok := edgeBetween(points, i, j, limit); ok {
							if !yield(e) {
								return
							}
						}
					}
				}
			}
		}
	}
}
