package world

import (
	"time"

	"github.com/dogwalk/server/internal/game/collision"
	"github.com/dogwalk/server/internal/game/geom"
)

// dogWidth and officeWidth are the widths fed to the collision detector;
// loot has no width of its own. Values follow the original's
// PLAYER_WIDTH=0.6 (model.h) and the office radius of 0.5 (map.go).
const (
	dogWidth    = 0.6
	officeWidth = 0.5
)

// GameTick advances the whole world by deltaMs of simulated time,
// strictly in the order spec §4.4 describes: retire idle players,
// move and resolve collisions session by session, spawn loot, then
// notify listeners.
func (w *World) GameTick(deltaMs uint64) {
	w.sweepInactive(deltaMs)

	for _, m := range w.maps {
		for _, s := range w.sessions[m.ID] {
			w.tickSession(s, int64(deltaMs))
		}
	}

	for _, l := range w.listeners {
		l.OnTick(deltaMs)
	}
}

// sweepInactive advances every live player's play/idle clocks and
// retires anyone who has been idle at least retirementThreshold,
// saving their record and freeing their dog's slot.
func (w *World) sweepInactive(deltaMs uint64) {
	threshold := uint64(w.retirement.Milliseconds())
	for _, p := range append([]*Player(nil), w.Players.All()...) {
		p.AdvanceTime(deltaMs)
		if p.IdleMs == nil || *p.IdleMs < threshold {
			continue
		}
		w.retire(p)
	}
}

func (w *World) retire(p *Player) {
	if w.db != nil {
		_ = w.db.SaveRecord(p.Dog.Name, p.Score, p.PlayMs)
	}
	p.Session.RemoveDog(p.Dog.ID)
	w.Players.Remove(p)
}

// tickSession moves every dog in s, resolves loot pickups and office
// deliveries in time-of-contact order, then runs the periodic loot
// spawn for the session.
func (w *World) tickSession(s *GameSession, deltaMs int64) {
	if len(s.Dogs) == 0 {
		return
	}
	m := s.Map

	gatherers := make([]collision.Gatherer, len(s.Dogs))
	players := make([]*Player, len(s.Dogs))
	for i, dog := range s.Dogs {
		p, ok := w.Players.FindByDogIDAndMapID(dog.ID, m.ID)
		if !ok {
			continue
		}
		players[i] = p
		start, end := MakeMove(p, deltaMs)
		gatherers[i] = collision.Gatherer{
			Start: toVec(start),
			End:   toVec(end),
			Width: dogWidth,
		}
	}

	activeLoot := s.Loot
	items := make([]collision.Item, 0, len(activeLoot)+len(m.Offices))
	for _, l := range activeLoot {
		items = append(items, collision.Item{Position: toVec(l.Position), Width: 0})
	}
	for _, o := range m.Offices {
		pos := geom.Position{X: float64(o.Position.X), Y: float64(o.Position.Y)}
		items = append(items, collision.Item{Position: toVec(pos), Width: officeWidth})
	}

	events := collision.FindGatherEvents(gatherers, items)
	valueByType := func(lootType int) int {
		v, _ := m.catalogValue(w.Catalog, lootType)
		return v
	}

	for _, ev := range events {
		p := players[ev.GathererID]
		if p == nil {
			continue
		}
		if ev.ItemID < len(activeLoot) {
			l := activeLoot[ev.ItemID]
			if l.Collected {
				continue
			}
			if p.BagCount() < m.BagCapacity {
				p.TakeLoot(l)
			}
			continue
		}
		p.Deliver(valueByType)
	}
	s.CollectGarbage()

	w.spawnLoot(s, deltaMs)
}

func (w *World) spawnLoot(s *GameSession, deltaMs int64) {
	count := w.lootGen.Generate(time.Duration(deltaMs)*time.Millisecond, len(s.Loot), len(s.Dogs))
	for i := 0; i < count; i++ {
		l := &Loot{
			ID:       w.NextLootID(),
			Type:     w.Catalog.RandomType(s.Map.ID, w.rng),
			Position: RandomPos(s, w.rng),
		}
		s.AddLoot(l)
	}
}

func toVec(p geom.Position) collision.Vec {
	return collision.Vec{X: p.X, Y: p.Y}
}

// catalogValue is a thin wrapper so tickSession doesn't need to know
// the map id lives on m.ID specifically.
func (m *Map) catalogValue(c *Catalog, lootType int) (int, error) {
	return c.ValueOf(m.ID, lootType)
}
