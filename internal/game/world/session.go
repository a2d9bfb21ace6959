package world

// maxDogsPerSession caps how many dogs may occupy one GameSession
// before a new session for the same map is opened on demand.
const maxDogsPerSession = 100

// GameSession is a bounded group of dogs and loot playing out on one
// Map. A map may have multiple sessions; sessions are never destroyed
// once created, even when empty.
type GameSession struct {
	Map  *Map
	Dogs []*Dog
	Loot []*Loot
}

func newGameSession(m *Map) *GameSession {
	return &GameSession{Map: m}
}

func (s *GameSession) DogCount() int { return len(s.Dogs) }

func (s *GameSession) AddDog(d *Dog) {
	s.Dogs = append(s.Dogs, d)
}

// RemoveDog drops the dog with the given id from the session, if
// present.
func (s *GameSession) RemoveDog(dogID uint64) {
	for i, d := range s.Dogs {
		if d.ID == dogID {
			s.Dogs = append(s.Dogs[:i], s.Dogs[i+1:]...)
			return
		}
	}
}

func (s *GameSession) AddLoot(l *Loot) {
	s.Loot = append(s.Loot, l)
}

// CollectGarbage removes every loot marked Collected, preserving the
// relative order of the rest.
func (s *GameSession) CollectGarbage() {
	kept := s.Loot[:0]
	for _, l := range s.Loot {
		if !l.Collected {
			kept = append(kept, l)
		}
	}
	s.Loot = kept
}
