package world

// mapDogKey identifies a player by the (map, dog) pair, used for the
// collision-resolution lookup in the tick engine.
type mapDogKey struct {
	mapID string
	dogID uint64
}

// Players is the live-player registry: three indices over the same
// set (token, (mapId,dogId), and insertion order), kept consistent on
// every Add/Remove.
type Players struct {
	byToken  map[string]*Player
	byMapDog map[mapDogKey]*Player
	order    []*Player
	tokens   *tokenGenerator
}

func newPlayers() *Players {
	return &Players{
		byToken:  make(map[string]*Player),
		byMapDog: make(map[mapDogKey]*Player),
		tokens:   newTokenGenerator(),
	}
}

// Add constructs a Player bound to a fresh Dog in session, issues a
// token, and registers it under all three indices.
func (ps *Players) Add(dogID uint64, dogName string, session *GameSession, dog *Dog) (token string, player *Player) {
	p := newPlayer(session, dog)
	token = ps.tokens.Next()

	ps.byToken[token] = p
	ps.byMapDog[mapDogKey{mapID: session.Map.ID, dogID: dogID}] = p
	ps.order = append(ps.order, p)
	return token, p
}

// AddExisting re-registers a player restored from a snapshot under its
// original token.
func (ps *Players) AddExisting(p *Player, token string) {
	ps.byToken[token] = p
	ps.byMapDog[mapDogKey{mapID: p.Session.Map.ID, dogID: p.Dog.ID}] = p
	ps.order = append(ps.order, p)
}

// Remove erases player from all three indices.
func (ps *Players) Remove(player *Player) {
	for tok, p := range ps.byToken {
		if p == player {
			delete(ps.byToken, tok)
			break
		}
	}
	delete(ps.byMapDog, mapDogKey{mapID: player.Session.Map.ID, dogID: player.Dog.ID})
	for i, p := range ps.order {
		if p == player {
			ps.order = append(ps.order[:i], ps.order[i+1:]...)
			break
		}
	}
}

func (ps *Players) FindByToken(token string) (*Player, bool) {
	p, ok := ps.byToken[token]
	return p, ok
}

func (ps *Players) FindByDogIDAndMapID(dogID uint64, mapID string) (*Player, bool) {
	p, ok := ps.byMapDog[mapDogKey{mapID: mapID, dogID: dogID}]
	return p, ok
}

// TokenFor returns the token currently bound to player, if any. Used
// by the snapshot writer, which serializes players keyed by token.
func (ps *Players) TokenFor(player *Player) (string, bool) {
	for tok, p := range ps.byToken {
		if p == player {
			return tok, true
		}
	}
	return "", false
}

// All returns the live players in insertion order. Callers must not
// retain the slice across a call to Add/Remove.
func (ps *Players) All() []*Player {
	return ps.order
}

func (ps *Players) Count() int { return len(ps.order) }
