// Package lootgen implements the periodic, probabilistic loot spawn
// rule described in spec §4.3: across a long run, each gatherer
// (player dog) sees loot appear at roughly Probability per Period of
// elapsed time, regardless of tick granularity.
package lootgen

import (
	"math/rand"
	"time"
)

// Generator is stateful across calls: it accumulates elapsed time and
// only rolls the dice once a full Period has passed, so that calling
// it every 50ms or every 2s yields the same long-run spawn rate.
//
// Generator is not safe for concurrent use; callers on the game strand
// own it exclusively, same as the dog/loot id counters.
type Generator struct {
	period      time.Duration
	probability float64
	random      *rand.Rand

	timeWithoutLoot time.Duration
}

// New builds a Generator with the given period and per-period spawn
// probability (applied per missing loot slot, see Generate), seeded
// from a non-deterministic source.
func New(period time.Duration, probability float64) *Generator {
	return &Generator{
		period:      period,
		probability: probability,
		random:      rand.New(rand.NewSource(newSeed())),
	}
}

// Generate returns how many new loots should spawn this tick, given the
// elapsed interval, the current loot count L, and the gatherer
// (player) count G. Returns 0 whenever G == 0.
func (g *Generator) Generate(elapsed time.Duration, lootCount, gathererCount int) int {
	if gathererCount == 0 {
		return 0
	}
	g.timeWithoutLoot += elapsed
	if g.period <= 0 {
		return 0
	}

	spawned := 0
	for g.timeWithoutLoot >= g.period {
		g.timeWithoutLoot -= g.period
		needed := gathererCount - lootCount
		if needed <= 0 {
			continue
		}
		for i := 0; i < needed; i++ {
			if g.random.Float64() < g.probability {
				spawned++
				lootCount++
			}
		}
	}
	return spawned
}
