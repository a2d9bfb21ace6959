package snapshot

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dogwalk/server/internal/game/geom"
	"github.com/dogwalk/server/internal/game/world"
)

func buildTestWorld(t *testing.T) *world.World {
	t.Helper()
	catalog := world.NewCatalog(0, 0)
	catalog.SetLootTypes("town", []world.LootType{{"value": 5}})
	w := world.NewWorld(catalog, nil, false)
	m := world.NewMap("town", "Town", 1.0, 3)
	m.AddRoad(geom.NewHorizontalRoad(geom.Point{X: 0, Y: 0}, 5))
	if err := w.AddMap(m); err != nil {
		t.Fatal(err)
	}
	return w
}

// S6 — a world saved mid-game and reloaded preserves every player's
// token, position, score, and the live loot on the map (carried loot is
// covered by TestWriteRead_CarriedLootRoundTrips).
func TestWriteRead_RoundTrip(t *testing.T) {
	w := buildTestWorld(t)
	token, player, err := w.Join("town", "rex")
	if err != nil {
		t.Fatal(err)
	}
	player.Dog.Position = geom.Position{X: 2.5, Y: 0}
	player.Score = 15
	loot := &world.Loot{ID: w.NextLootID(), Type: 0, Position: geom.Position{X: 1, Y: 0}}
	player.Session.AddLoot(loot)

	path := filepath.Join(t.TempDir(), "world.snap")
	if err := Write(path, w); err != nil {
		t.Fatalf("Write: %v", err)
	}

	w2 := buildTestWorld(t)
	if err := Read(path, w2); err != nil {
		t.Fatalf("Read: %v", err)
	}

	restored, ok := w2.Players.FindByToken(token)
	if !ok {
		t.Fatalf("expected restored player for token %q", token)
	}
	if restored.Dog.Position.X != 2.5 {
		t.Fatalf("expected restored x=2.5, got %v", restored.Dog.Position.X)
	}
	if restored.Score != 15 {
		t.Fatalf("expected restored score 15, got %d", restored.Score)
	}
	sessions := w2.Sessions("town")
	if len(sessions) != 1 || len(sessions[0].Loot) != 1 {
		t.Fatalf("expected 1 session with 1 live loot, got %+v", sessions)
	}
}

// Carried loot must round-trip too: it's already off the ground
// (session.Loot) by the time it's picked up, so it can only survive a
// save/restore if PlayerV1 carries its own type/position.
func TestWriteRead_CarriedLootRoundTrips(t *testing.T) {
	w := buildTestWorld(t)
	token, player, err := w.Join("town", "rex")
	if err != nil {
		t.Fatal(err)
	}
	loot := &world.Loot{ID: w.NextLootID(), Type: 2, Position: geom.Position{X: 1, Y: 0}}
	player.Session.AddLoot(loot)
	player.TakeLoot(loot)
	player.Session.CollectGarbage()
	if len(player.Session.Loot) != 0 {
		t.Fatalf("expected collected loot to leave the ground, got %+v", player.Session.Loot)
	}

	path := filepath.Join(t.TempDir(), "world.snap")
	if err := Write(path, w); err != nil {
		t.Fatalf("Write: %v", err)
	}

	w2 := buildTestWorld(t)
	if err := Read(path, w2); err != nil {
		t.Fatalf("Read: %v", err)
	}

	restored, ok := w2.Players.FindByToken(token)
	if !ok {
		t.Fatalf("expected restored player for token %q", token)
	}
	if len(restored.Carried) != 1 {
		t.Fatalf("expected 1 carried item, got %d", len(restored.Carried))
	}
	if restored.Carried[0].ID != loot.ID || restored.Carried[0].Type != 2 {
		t.Fatalf("expected carried loot id=%d type=2, got %+v", loot.ID, restored.Carried[0])
	}
}

// Reading a path that doesn't exist is a cold start, not an error.
func TestRead_MissingFileIsColdStart(t *testing.T) {
	w := buildTestWorld(t)
	if err := Read(filepath.Join(t.TempDir(), "missing.snap"), w); err != nil {
		t.Fatalf("expected no error for missing snapshot, got %v", err)
	}
}

// Listener.OnTick saves once per accumulated period, the way the
// original's SerializingListener accumulates time_delta between saves.
func TestListener_SavesAfterAccumulatedPeriod(t *testing.T) {
	w := buildTestWorld(t)
	path := filepath.Join(t.TempDir(), "world.snap")
	logger := log.New(io.Discard, "", 0)
	l := NewListener(path, 1000*time.Millisecond, w, logger)

	l.OnTick(600)
	if _, err := os.Stat(path); err == nil {
		t.Fatal("expected no save before the period elapses")
	}
	l.OnTick(600)
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected a save once the period elapsed: %v", err)
	}
}
