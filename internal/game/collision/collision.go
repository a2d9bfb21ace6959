// Package collision implements the swept-circle gathering detector: a
// moving disk (a "gatherer", e.g. a dog in motion during one tick)
// passing close enough to a stationary disk (an "item", e.g. a loot
// drop or an office) registers a GatheringEvent at the parameter along
// the gatherer's path where the two disks were closest.
package collision

import "sort"

// Gatherer is a disk moving in a straight line from Start to End over
// the course of one tick.
type Gatherer struct {
	Start, End Vec
	Width      float64
}

// Item is a stationary disk.
type Item struct {
	Position Vec
	Width    float64
}

// Vec is a 2D vector; kept distinct from geom.Position so this package
// has no dependency on the rest of the simulation.
type Vec struct {
	X, Y float64
}

func sub(a, b Vec) Vec    { return Vec{a.X - b.X, a.Y - b.Y} }
func dot(a, b Vec) float64 { return a.X*b.X + a.Y*b.Y }

// GatheringEvent records one gatherer passing within range of one item.
type GatheringEvent struct {
	ItemID     int
	GathererID int
	SqDistance float64
	Time       float64
}

// FindGatherEvents returns every (gatherer, item) pair whose swept disks
// came within Gatherer.Width+Item.Width of each other, sorted ascending
// by Time; ties preserve the original (gatherer, item) enumeration
// order because sort.SliceStable is used. A stationary gatherer
// (Start == End) contributes no events.
func FindGatherEvents(gatherers []Gatherer, items []Item) []GatheringEvent {
	var events []GatheringEvent
	for gi, g := range gatherers {
		move := sub(g.End, g.Start)
		moveLenSq := dot(move, move)
		if moveLenSq == 0 {
			continue
		}
		for ii, it := range items {
			d := sub(it.Position, g.Start)
			t := dot(d, move) / moveLenSq
			if t <= 0 || t > 1 {
				continue
			}
			sqDist := dot(d, d) - t*t*moveLenSq
			limit := g.Width + it.Width
			if sqDist > limit*limit {
				continue
			}
			events = append(events, GatheringEvent{
				ItemID:     ii,
				GathererID: gi,
				SqDistance: sqDist,
				Time:       t,
			})
		}
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].Time < events[j].Time })
	return events
}
