package lootgen

import (
	"testing"
	"time"
)

func TestGenerate_NoGatherersYieldsZero(t *testing.T) {
	g := New(time.Second, 1.0)
	if n := g.Generate(5*time.Second, 0, 0); n != 0 {
		t.Fatalf("expected 0 with no gatherers, got %d", n)
	}
}

func TestGenerate_ZeroPeriodNeverSpawns(t *testing.T) {
	g := New(0, 1.0)
	if n := g.Generate(5*time.Second, 0, 3); n != 0 {
		t.Fatalf("expected 0 with zero period, got %d", n)
	}
}

func TestGenerate_CertainProbabilityFillsToGathererCount(t *testing.T) {
	g := New(time.Second, 1.0)
	n := g.Generate(time.Second, 0, 4)
	if n != 4 {
		t.Fatalf("expected 4 spawns (probability=1, 4 gatherers, 0 loot), got %d", n)
	}
}

func TestGenerate_NeverSpawnsBeyondNeeded(t *testing.T) {
	g := New(time.Second, 1.0)
	n := g.Generate(time.Second, 2, 3)
	if n != 1 {
		t.Fatalf("expected exactly 1 spawn (need 3-2=1), got %d", n)
	}
}

func TestGenerate_ZeroProbabilityNeverSpawns(t *testing.T) {
	g := New(time.Second, 0.0)
	n := g.Generate(10*time.Second, 0, 5)
	if n != 0 {
		t.Fatalf("expected 0 spawns with probability 0, got %d", n)
	}
}

func TestGenerate_AccumulatesAcrossShortCalls(t *testing.T) {
	g := New(time.Second, 1.0)
	total := 0
	for i := 0; i < 10; i++ {
		total += g.Generate(100*time.Millisecond, 0, 1)
	}
	if total != 1 {
		t.Fatalf("expected exactly 1 spawn after accumulating 1s across 10 calls, got %d", total)
	}
}
