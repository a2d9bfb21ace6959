package strand

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/dogwalk/server/internal/game/geom"
	"github.com/dogwalk/server/internal/game/world"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestWorld(t *testing.T) *world.World {
	t.Helper()
	catalog := world.NewCatalog(0, 0)
	w := world.NewWorld(catalog, nil, false)
	m := world.NewMap("town", "Town", 1.0, 3)
	m.AddRoad(geom.NewHorizontalRoad(geom.Point{X: 0, Y: 0}, 5))
	if err := w.AddMap(m); err != nil {
		t.Fatal(err)
	}
	return w
}

func TestStrand_TickAdvancesPlayMs(t *testing.T) {
	w := newTestWorld(t)
	s := New(w, 0, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	var player *world.Player
	s.Do(func() {
		_, p, err := w.Join("town", "rex")
		if err != nil {
			t.Fatal(err)
		}
		player = p
	})

	s.Tick(250)

	var playMs uint64
	s.Do(func() { playMs = player.PlayMs })
	if playMs != 250 {
		t.Fatalf("expected play_ms=250, got %d", playMs)
	}
}

type panickyListener struct{}

func (panickyListener) OnTick(uint64) { panic("boom: listener blew up mid-tick") }

func TestStrand_PanicDuringTickIsRecovered(t *testing.T) {
	w := newTestWorld(t)
	w.AddListener(panickyListener{})
	s := New(w, 0, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go s.Run(ctx)

	s.Tick(100)

	// The strand must still be alive and processing requests after a
	// tick whose listener panicked.
	done := make(chan struct{})
	s.Do(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("strand goroutine did not survive a panicking tick")
	}
}
