package world

import (
	"math"

	"github.com/dogwalk/server/internal/game/geom"
)

// MakeMove advances the player's dog by deltaMs of simulated time along
// its current velocity, clipping to the walkable road area it started
// the tick on (spec §4.1). It returns the dog's position before and
// after the move, for use by the collision detector.
func MakeMove(p *Player, deltaMs int64) (start, end geom.Position) {
	dog := p.Dog
	start = dog.Position
	candidate := start
	dtSeconds := float64(deltaMs) / 1000.0
	candidate.X += dog.Velocity.X * dtSeconds
	candidate.Y += dog.Velocity.Y * dtSeconds

	cell := geom.Round(start)
	roads := p.Session.Map.RoadsAt(cell)

	if posOnAnyRoad(roads, candidate) {
		dog.Position = candidate
		return start, dog.Position
	}

	dog.Position = clipToNearestEdge(dog, roads, candidate)
	p.Stop()
	return start, dog.Position
}

func posOnAnyRoad(roads []geom.Road, pos geom.Position) bool {
	for _, r := range roads {
		if r.Area().Contains(pos) {
			return true
		}
	}
	return false
}

// clipToNearestEdge clamps candidate to the union of the walkable
// areas of every road covering the dog's starting cell, along the
// dog's axis of travel. This is what lets a dog approaching a road's
// end at e.g. x=4.9 reach the fully expanded edge at x=5.4 in one
// move, rather than stopping at the unexpanded endpoint.
func clipToNearestEdge(dog *Dog, roads []geom.Road, candidate geom.Position) geom.Position {
	pos := candidate
	switch dog.Direction {
	case geom.North:
		// Furthest-north reachable edge: the smallest MinY among the
		// roads whose walkable strip covers the starting cell.
		limit := math.Inf(1)
		for _, r := range roads {
			if a := r.Area().MinY; a < limit {
				limit = a
			}
		}
		if pos.Y < limit {
			pos.Y = limit
		}
	case geom.South:
		limit := math.Inf(-1)
		for _, r := range roads {
			if a := r.Area().MaxY; a > limit {
				limit = a
			}
		}
		if pos.Y > limit {
			pos.Y = limit
		}
	case geom.West:
		limit := math.Inf(1)
		for _, r := range roads {
			if a := r.Area().MinX; a < limit {
				limit = a
			}
		}
		if pos.X < limit {
			pos.X = limit
		}
	case geom.East:
		limit := math.Inf(-1)
		for _, r := range roads {
			if a := r.Area().MaxX; a > limit {
				limit = a
			}
		}
		if pos.X > limit {
			pos.X = limit
		}
	}
	return pos
}
