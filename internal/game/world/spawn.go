package world

import (
	"math"
	"math/rand"

	"github.com/dogwalk/server/internal/game/geom"
)

// StartPos is the deterministic spawn position: the first road's start
// point.
func StartPos(session *GameSession) geom.Position {
	start := session.Map.Roads[0].Start
	return geom.Position{X: float64(start.X), Y: float64(start.Y)}
}

// RandomPos implements the spawn policy from spec §4.4: pick a
// uniformly random road, then a uniformly random point along its
// length and a uniformly random offset across its width, rounded to 2
// decimal places.
func RandomPos(session *GameSession, rng *rand.Rand) geom.Position {
	roads := session.Map.Roads
	road := roads[rng.Intn(len(roads))]

	width := (rng.Float64()*2 - 1) * geom.RoadHalfWidth
	width = geom.Round2(width)

	var pos geom.Position
	if road.IsHorizontal() {
		x0, x1 := float64(road.Start.X), float64(road.End.X)
		lo, hi := math.Min(x0, x1), math.Max(x0, x1)
		pos.X = lo + rng.Float64()*(hi-lo)
		pos.Y = float64(road.Start.Y) + width
	} else {
		y0, y1 := float64(road.Start.Y), float64(road.End.Y)
		lo, hi := math.Min(y0, y1), math.Max(y0, y1)
		pos.Y = lo + rng.Float64()*(hi-lo)
		pos.X = float64(road.Start.X) + width
	}
	pos.X = geom.Round2(pos.X)
	pos.Y = geom.Round2(pos.Y)
	return pos
}
