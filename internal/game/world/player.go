package world

import "github.com/dogwalk/server/internal/game/geom"

// Player is a logical participant: it owns a Dog, a bag of carried
// loot, a score, and play/idle timers.
//
// Invariants (spec §3): len(Carried) <= Session.Map.BagCapacity;
// IdleMs == nil iff the dog's velocity is nonzero; Score never
// decreases.
type Player struct {
	Session *GameSession
	Dog     *Dog
	Carried []*Loot
	Score   int
	PlayMs  uint64
	// IdleMs is nil while the dog is moving, and holds the number of
	// milliseconds of continuous rest otherwise.
	IdleMs *uint64
}

func newPlayer(session *GameSession, dog *Dog) *Player {
	idle := uint64(0)
	return &Player{Session: session, Dog: dog, IdleMs: &idle}
}

// SetDirection points the dog in dir at the session map's configured
// speed and marks the player active (clears the idle timer).
func (p *Player) SetDirection(dir geom.Direction) {
	speed := p.Session.Map.DogSpeed
	switch dir {
	case geom.North:
		p.Dog.Velocity = geom.Velocity{X: 0, Y: -speed}
	case geom.South:
		p.Dog.Velocity = geom.Velocity{X: 0, Y: speed}
	case geom.West:
		p.Dog.Velocity = geom.Velocity{X: -speed, Y: 0}
	case geom.East:
		p.Dog.Velocity = geom.Velocity{X: speed, Y: 0}
	}
	p.Dog.Direction = dir
	p.IdleMs = nil
}

// Stop halts the dog and starts (or restarts) the idle timer at zero.
func (p *Player) Stop() {
	p.Dog.Velocity = geom.Velocity{}
	idle := uint64(0)
	p.IdleMs = &idle
}

// BagCount reports how many loots the player currently carries.
func (p *Player) BagCount() int { return len(p.Carried) }

// TakeLoot appends l to the player's bag and marks it collected.
// Callers must first check BagCount() < Session.Map.BagCapacity.
func (p *Player) TakeLoot(l *Loot) {
	l.Collected = true
	p.Carried = append(p.Carried, l)
}

// Deliver credits the player's score for every carried loot (resolved
// against valueByType) and empties the bag.
func (p *Player) Deliver(valueByType func(lootType int) int) {
	for _, l := range p.Carried {
		p.Score += valueByType(l.Type)
	}
	p.Carried = p.Carried[:0]
}

// AdvanceTime accounts elapsed ticking time toward play time and, if
// the player is currently idle, toward the idle timer.
func (p *Player) AdvanceTime(deltaMs uint64) {
	p.PlayMs += deltaMs
	if p.IdleMs != nil {
		*p.IdleMs += deltaMs
	}
}
