package world

import "github.com/dogwalk/server/internal/game/geom"

// RestoreDog reconstructs a Dog with a previously issued id and full
// kinematic state, bypassing the normal spawn path.
func RestoreDog(id uint64, name string, pos geom.Position, vel geom.Velocity, dir geom.Direction) *Dog {
	return &Dog{ID: id, Name: name, Position: pos, Velocity: vel, Direction: dir}
}

// RestorePlayer reconstructs a Player bound to an already-restored dog,
// with its score/timers as they were when saved. The idle pointer is
// copied rather than aliased so the restored player owns its own timer
// cell.
func RestorePlayer(session *GameSession, dog *Dog, score int, playMs uint64, idleMs *uint64) *Player {
	p := &Player{Session: session, Dog: dog, Score: score, PlayMs: playMs}
	if idleMs != nil {
		v := *idleMs
		p.IdleMs = &v
	}
	return p
}
