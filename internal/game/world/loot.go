package world

import "github.com/dogwalk/server/internal/game/geom"

// Loot is a pickup with a type index resolved against the owning map's
// loot-type catalog on delivery. Id is process-wide monotonic, same
// caveat as Dog.ID.
type Loot struct {
	ID        uint64
	Type      int
	Position  geom.Position
	Collected bool
}
