// Package snapshot persists and restores a running world as a single
// gob-encoded, zstd-compressed file, written atomically so a crash
// mid-write never corrupts the file a future restart reads.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zstd"

	"github.com/dogwalk/server/internal/game/geom"
	"github.com/dogwalk/server/internal/game/world"
)

// FileV1 is the whole-world snapshot: every map's live sessions, every
// player bound to a token, and the process-wide id counters, so
// restored dogs/loot never collide with freshly minted ones.
type FileV1 struct {
	Version    int        `json:"version"`
	NextDogID  uint64     `json:"next_dog_id"`
	NextLootID uint64     `json:"next_loot_id"`
	Sessions   []SessionV1 `json:"sessions"`
}

type SessionV1 struct {
	MapID   string    `json:"map_id"`
	Dogs    []DogV1   `json:"dogs"`
	Loot    []LootV1  `json:"loot"`
	Players []PlayerV1 `json:"players"`
}

type DogV1 struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	X, Y      float64 `json:"x_y"`
	VX, VY    float64 `json:"vx_vy"`
	Direction int     `json:"direction"`
}

type LootV1 struct {
	ID   uint64  `json:"id"`
	Type int     `json:"type"`
	X, Y float64 `json:"x_y"`
}

type PlayerV1 struct {
	Token   string      `json:"token"`
	DogID   uint64      `json:"dog_id"`
	Carried []CarriedV1 `json:"carried"`
	Score   int         `json:"score"`
	PlayMs  uint64      `json:"play_ms"`
	IdleMs  *uint64     `json:"idle_ms,omitempty"`
}

// CarriedV1 is a loot item in a player's bag. It carries its own
// type/position rather than referencing SessionV1.Loot: a carried item
// was already removed from the ground (session.go's CollectGarbage
// drops it from Loot the tick it's picked up), so by the time a
// snapshot is taken it no longer has an entry there to reference.
type CarriedV1 struct {
	ID   uint64  `json:"id"`
	Type int     `json:"type"`
	X, Y float64 `json:"x_y"`
}

const currentVersion = 1

// Write captures w into path, writing to "<path>.tmp" first and
// renaming over path so a concurrent reader (or a crash) never
// observes a partial file.
func Write(path string, w *world.World) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file := build(w)

	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		f.Close()
		return err
	}
	bw := bufio.NewWriterSize(enc, 64*1024)

	if err := gob.NewEncoder(bw).Encode(&file); err != nil {
		enc.Close()
		f.Close()
		return fmt.Errorf("gob encode snapshot: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func build(w *world.World) FileV1 {
	file := FileV1{Version: currentVersion}
	for _, m := range w.Maps() {
		for _, s := range w.Sessions(m.ID) {
			sv := SessionV1{MapID: m.ID}
			for _, d := range s.Dogs {
				sv.Dogs = append(sv.Dogs, DogV1{
					ID: d.ID, Name: d.Name,
					X: d.Position.X, Y: d.Position.Y,
					VX: d.Velocity.X, VY: d.Velocity.Y,
					Direction: int(d.Direction),
				})
				p, ok := w.Players.FindByDogIDAndMapID(d.ID, m.ID)
				if !ok {
					continue
				}
				token, _ := w.Players.TokenFor(p)
				carried := make([]CarriedV1, len(p.Carried))
				for i, l := range p.Carried {
					carried[i] = CarriedV1{ID: l.ID, Type: l.Type, X: l.Position.X, Y: l.Position.Y}
				}
				var idle *uint64
				if p.IdleMs != nil {
					v := *p.IdleMs
					idle = &v
				}
				sv.Players = append(sv.Players, PlayerV1{
					Token: token, DogID: d.ID, Carried: carried,
					Score: p.Score, PlayMs: p.PlayMs, IdleMs: idle,
				})
			}
			for _, l := range s.Loot {
				sv.Loot = append(sv.Loot, LootV1{ID: l.ID, Type: l.Type, X: l.Position.X, Y: l.Position.Y})
			}
			file.Sessions = append(file.Sessions, sv)
		}
	}
	file.NextDogID = w.NextDogIDPeek()
	file.NextLootID = w.NextLootIDPeek()
	return file
}

// Read loads path and rebuilds live sessions/players/dogs/loot into w.
// A missing file is not an error: it means a cold start.
func Read(path string, w *world.World) error {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return err
	}
	defer dec.Close()

	var file FileV1
	if err := gob.NewDecoder(bufio.NewReaderSize(dec, 64*1024)).Decode(&file); err != nil {
		return fmt.Errorf("gob decode snapshot: %w", err)
	}

	for _, sv := range file.Sessions {
		m, ok := w.FindMap(sv.MapID)
		if !ok {
			continue
		}
		session := w.RestoreSessionFor(m)

		lootByID := make(map[uint64]*world.Loot, len(sv.Loot))
		for _, lv := range sv.Loot {
			l := &world.Loot{ID: lv.ID, Type: lv.Type, Position: geom.Position{X: lv.X, Y: lv.Y}}
			lootByID[lv.ID] = l
			session.AddLoot(l)
		}

		dogsByID := make(map[uint64]*world.Dog, len(sv.Dogs))
		for _, dv := range sv.Dogs {
			d := world.RestoreDog(dv.ID, dv.Name, geom.Position{X: dv.X, Y: dv.Y}, geom.Velocity{X: dv.VX, Y: dv.VY}, geom.Direction(dv.Direction))
			dogsByID[dv.ID] = d
			session.AddDog(d)
		}

		for _, pv := range sv.Players {
			d, ok := dogsByID[pv.DogID]
			if !ok {
				continue
			}
			p := world.RestorePlayer(session, d, pv.Score, pv.PlayMs, pv.IdleMs)
			for _, cv := range pv.Carried {
				p.Carried = append(p.Carried, &world.Loot{ID: cv.ID, Type: cv.Type, Position: geom.Position{X: cv.X, Y: cv.Y}})
			}
			w.Players.AddExisting(p, pv.Token)
		}
	}

	w.SetIDCounters(file.NextDogID, file.NextLootID)
	return nil
}

// Listener drives periodic snapshot saves straight off the world's own
// tick notifications, the way the original wires its SerializingListener
// through Game::SetApplicationListener rather than bolting the save
// timer onto its strand. period <= 0 makes OnTick a no-op.
type Listener struct {
	path   string
	period time.Duration
	w      *world.World
	logger *log.Logger

	sinceLastSave time.Duration
}

// NewListener builds a Listener that saves w to path every period of
// simulated time, logging (not failing) write errors through logger.
func NewListener(path string, period time.Duration, w *world.World, logger *log.Logger) *Listener {
	return &Listener{path: path, period: period, w: w, logger: logger}
}

// OnTick implements world.ApplicationListener.
func (l *Listener) OnTick(deltaMs uint64) {
	if l.period <= 0 {
		return
	}
	l.sinceLastSave += time.Duration(deltaMs) * time.Millisecond
	if l.sinceLastSave < l.period {
		return
	}
	l.sinceLastSave = 0
	if err := Write(l.path, l.w); err != nil {
		l.logger.Printf("periodic snapshot save failed: %v", err)
	}
}
