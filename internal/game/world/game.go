package world

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/dogwalk/server/internal/game/lootgen"
)

// retirementThreshold is how long a player may stand idle before being
// evicted and scored, per spec §4.4.
const retirementThreshold = 15000 * time.Millisecond

// World is the top-level aggregate: every map, every live session
// (reachable transitively through maps' dog-walking play), the player
// registry, the loot catalog, and the single shared loot generator the
// original keeps on its Game object.
type World struct {
	maps      []*Map
	mapIndex  map[string]int
	sessions  map[string][]*GameSession

	Players *Players
	Catalog *Catalog

	lootGen *lootgen.Generator
	rng     *rand.Rand

	RandomizeSpawn bool

	db        Database
	listeners []ApplicationListener

	nextDogID  uint64
	nextLootID uint64

	retirement time.Duration
}

// SetRetirementThreshold overrides how long a player may idle before
// being retired; the zero value leaves the default (retirementThreshold).
func (w *World) SetRetirementThreshold(d time.Duration) {
	if d == 0 {
		return
	}
	w.retirement = d
}

// NewWorld constructs an empty world. catalog must already carry the
// desired spawn period/probability; db may be nil, in which case
// retired players are silently dropped (used by tests).
func NewWorld(catalog *Catalog, db Database, randomizeSpawn bool) *World {
	return &World{
		mapIndex:       make(map[string]int),
		sessions:       make(map[string][]*GameSession),
		Players:        newPlayers(),
		Catalog:        catalog,
		lootGen:        lootgen.New(catalog.SpawnPeriod, catalog.SpawnProbability),
		rng:            rand.New(rand.NewSource(newSeed())),
		RandomizeSpawn: randomizeSpawn,
		db:             db,
		retirement:     retirementThreshold,
	}
}

func (w *World) AddMap(m *Map) error {
	if _, exists := w.mapIndex[m.ID]; exists {
		return fmt.Errorf("duplicate map id %q", m.ID)
	}
	w.mapIndex[m.ID] = len(w.maps)
	w.maps = append(w.maps, m)
	return nil
}

func (w *World) Maps() []*Map { return w.maps }

func (w *World) FindMap(id string) (*Map, bool) {
	i, ok := w.mapIndex[id]
	if !ok {
		return nil, false
	}
	return w.maps[i], true
}

func (w *World) AddListener(l ApplicationListener) {
	w.listeners = append(w.listeners, l)
}

// sessionFor returns the first session on mapID with room for another
// dog, opening a new one if every existing session is full (spec
// §4.4's join policy).
func (w *World) sessionFor(m *Map) *GameSession {
	for _, s := range w.sessions[m.ID] {
		if s.DogCount() < maxDogsPerSession {
			return s
		}
	}
	s := newGameSession(m)
	w.sessions[m.ID] = append(w.sessions[m.ID], s)
	return s
}

// Sessions returns every live session for mapID, for use by the
// snapshot writer.
func (w *World) Sessions(mapID string) []*GameSession {
	return w.sessions[mapID]
}

// RestoreSessionFor hands the snapshot reader the session a restored
// entry on m belongs to, via the same capacity-based selection Join
// uses. Restoring several serialized sessions for the same map this
// way collapses them back down to as few live sessions as fit, rather
// than recreating the boundaries they happened to have at save time.
func (w *World) RestoreSessionFor(m *Map) *GameSession {
	return w.sessionFor(m)
}

// NextDogID hands out the next process-wide dog id.
func (w *World) NextDogID() uint64 {
	w.nextDogID++
	return w.nextDogID
}

// NextLootID hands out the next process-wide loot id.
func (w *World) NextLootID() uint64 {
	w.nextLootID++
	return w.nextLootID
}

// NextDogIDPeek reports the next dog id to be issued, without
// consuming it. Used by the snapshot writer.
func (w *World) NextDogIDPeek() uint64 { return w.nextDogID + 1 }

// NextLootIDPeek reports the next loot id to be issued, without
// consuming it. Used by the snapshot writer.
func (w *World) NextLootIDPeek() uint64 { return w.nextLootID + 1 }

// SetIDCounters seeds the id counters from a restored snapshot so newly
// minted dogs/loot never collide with restored ones.
func (w *World) SetIDCounters(nextDogID, nextLootID uint64) {
	w.nextDogID = nextDogID
	w.nextLootID = nextLootID
}

// Join admits a new player on mapID, opening or reusing a session,
// spawning the dog per the world's spawn policy, and returning its
// bearer token.
func (w *World) Join(mapID, dogName string) (token string, player *Player, err error) {
	m, ok := w.FindMap(mapID)
	if !ok {
		return "", nil, fmt.Errorf("unknown map %q", mapID)
	}
	session := w.sessionFor(m)

	spawnPos := StartPos(session)
	if w.RandomizeSpawn {
		spawnPos = RandomPos(session, w.rng)
	}

	dogID := w.NextDogID()
	dog := newDog(dogID, dogName, spawnPos)
	session.AddDog(dog)

	token, player = w.Players.Add(dogID, dogName, session, dog)
	return token, player, nil
}

// GetRecords returns a page of the retired-player scoreboard. It
// reports an empty slice when no database is configured.
func (w *World) GetRecords(limit, offset int) ([]Record, error) {
	if w.db == nil {
		return nil, nil
	}
	return w.db.GetRecords(limit, offset)
}
