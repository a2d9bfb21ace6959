package world

import "github.com/dogwalk/server/internal/game/geom"

// Dog is the in-world avatar moved by a Player. Id is process-wide
// monotonic; allocation happens only on the game strand (see
// internal/game/strand), so a plain counter is safe.
type Dog struct {
	ID        uint64
	Name      string
	Position  geom.Position
	Velocity  geom.Velocity
	Direction geom.Direction
}

func newDog(id uint64, name string, pos geom.Position) *Dog {
	return &Dog{ID: id, Name: name, Position: pos, Direction: geom.North}
}
