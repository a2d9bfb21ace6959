package collision

import (
	"math"
	"testing"
)

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

// S1 — Head-on pickup.
func TestFindGatherEvents_HeadOnPickup(t *testing.T) {
	gatherers := []Gatherer{{Start: Vec{0, 0}, End: Vec{20, 0}, Width: 0.6}}
	items := []Item{{Position: Vec{10, 0}, Width: 0}}

	events := FindGatherEvents(gatherers, items)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.ItemID != 0 || e.GathererID != 0 {
		t.Fatalf("unexpected ids: %+v", e)
	}
	if !almostEqual(e.SqDistance, 0, 1e-9) {
		t.Fatalf("expected sq_distance ~0, got %v", e.SqDistance)
	}
	if !almostEqual(e.Time, 0.5, 1e-9) {
		t.Fatalf("expected time ~0.5, got %v", e.Time)
	}
}

// S2 — Two collinear items.
func TestFindGatherEvents_TwoCollinearItems(t *testing.T) {
	gatherers := []Gatherer{{Start: Vec{0, 0}, End: Vec{30, 0}, Width: 0.6}}
	items := []Item{
		{Position: Vec{10, 0}, Width: 0},
		{Position: Vec{20, 0}, Width: 0},
	}

	events := FindGatherEvents(gatherers, items)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if !almostEqual(events[0].Time, 1.0/3.0, 1e-9) {
		t.Fatalf("expected first time ~0.333, got %v", events[0].Time)
	}
	if !almostEqual(events[1].Time, 2.0/3.0, 1e-9) {
		t.Fatalf("expected second time ~0.667, got %v", events[1].Time)
	}
	if events[0].Time > events[1].Time {
		t.Fatalf("events not sorted ascending by time")
	}
}

func TestFindGatherEvents_StationaryGathererYieldsNothing(t *testing.T) {
	gatherers := []Gatherer{{Start: Vec{5, 5}, End: Vec{5, 5}, Width: 0.6}}
	items := []Item{{Position: Vec{5, 5}, Width: 0.5}}

	if events := FindGatherEvents(gatherers, items); len(events) != 0 {
		t.Fatalf("expected no events for a stationary gatherer, got %d", len(events))
	}
}

func TestFindGatherEvents_OutOfRangeMiss(t *testing.T) {
	gatherers := []Gatherer{{Start: Vec{0, 0}, End: Vec{10, 0}, Width: 0.1}}
	items := []Item{{Position: Vec{5, 5}, Width: 0.1}}

	if events := FindGatherEvents(gatherers, items); len(events) != 0 {
		t.Fatalf("expected no events, item is far off the path, got %d", len(events))
	}
}

// Invariant 8: sq_distance must never exceed (gw+iw)^2 for an emitted event.
func TestFindGatherEvents_SqDistanceWithinThreshold(t *testing.T) {
	gatherers := []Gatherer{{Start: Vec{0, 0}, End: Vec{10, 0}, Width: 0.6}}
	items := []Item{{Position: Vec{5, 0.3}, Width: 0.2}}

	events := FindGatherEvents(gatherers, items)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	limit := 0.6 + 0.2
	if events[0].SqDistance > limit*limit+1e-12 {
		t.Fatalf("sq_distance %v exceeds threshold %v", events[0].SqDistance, limit*limit)
	}
}

func TestFindGatherEvents_PreservesPairOrderOnTies(t *testing.T) {
	gatherers := []Gatherer{
		{Start: Vec{0, 0}, End: Vec{10, 0}, Width: 0.6},
		{Start: Vec{0, 1}, End: Vec{10, 1}, Width: 0.6},
	}
	items := []Item{
		{Position: Vec{5, 0}, Width: 0},
		{Position: Vec{5, 1}, Width: 0},
	}

	events := FindGatherEvents(gatherers, items)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	// Both ties at t=0.5; original enumeration order is (g0,i0) then (g0,i1)
	// then (g1,i0) then (g1,i1) — only the matching pairs survive, in that
	// relative order.
	if events[0].GathererID != 0 || events[0].ItemID != 0 {
		t.Fatalf("expected first event to be (g0,i0), got %+v", events[0])
	}
	if events[1].GathererID != 1 || events[1].ItemID != 1 {
		t.Fatalf("expected second event to be (g1,i1), got %+v", events[1])
	}
}
