package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dogwalk/server/internal/game/geom"
	"github.com/dogwalk/server/internal/game/world"
)

type mapSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type roadDTO struct {
	X0 int  `json:"x0"`
	Y0 int  `json:"y0"`
	X1 *int `json:"x1,omitempty"`
	Y1 *int `json:"y1,omitempty"`
}

type buildingDTO struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type officeDTO struct {
	ID      string `json:"id"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	OffsetX int    `json:"offsetX"`
	OffsetY int    `json:"offsetY"`
}

type mapDetailDTO struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Roads     []roadDTO        `json:"roads"`
	Buildings []buildingDTO    `json:"buildings"`
	Offices   []officeDTO      `json:"offices"`
	LootTypes []world.LootType `json:"lootTypes"`
}

func (s *Server) handleMaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	var out []mapSummary
	for _, m := range s.world.Maps() {
		out = append(out, mapSummary{ID: m.ID, Name: m.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMapByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/maps/")
	if id == "" {
		writeError(w, http.StatusNotFound, codeMapNotFound, "map not found")
		return
	}
	m, ok := s.world.FindMap(id)
	if !ok {
		writeError(w, http.StatusNotFound, codeMapNotFound, "map not found")
		return
	}

	dto := mapDetailDTO{ID: m.ID, Name: m.Name, LootTypes: s.world.Catalog.LootTypes(m.ID)}
	for _, rd := range m.Roads {
		entry := roadDTO{X0: rd.Start.X, Y0: rd.Start.Y}
		if rd.IsHorizontal() {
			x1 := rd.End.X
			entry.X1 = &x1
		} else {
			y1 := rd.End.Y
			entry.Y1 = &y1
		}
		dto.Roads = append(dto.Roads, entry)
	}
	for _, b := range m.Buildings {
		dto.Buildings = append(dto.Buildings, buildingDTO{
			X: b.Bounds.Position.X, Y: b.Bounds.Position.Y,
			W: b.Bounds.Size.W, H: b.Bounds.Size.H,
		})
	}
	for _, o := range m.Offices {
		dto.Offices = append(dto.Offices, officeDTO{
			ID: o.ID, X: o.Position.X, Y: o.Position.Y,
			OffsetX: o.Offset.DX, OffsetY: o.Offset.DY,
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

type joinRequest struct {
	UserName string `json:"userName"`
	MapID    string `json:"mapId"`
}

type joinResponse struct {
	AuthToken string `json:"authToken"`
	PlayerID  uint64 `json:"playerId"`
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	var req joinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "join: parse error")
		return
	}
	if req.UserName == "" {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "invalid name")
		return
	}
	if _, ok := s.world.FindMap(req.MapID); !ok {
		writeError(w, http.StatusNotFound, codeMapNotFound, "map not found")
		return
	}

	var token string
	var player *world.Player
	var err error
	s.strand.Do(func() {
		token, player, err = s.world.Join(req.MapID, req.UserName)
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, joinResponse{AuthToken: token, PlayerID: player.Dog.ID})
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	if _, ok := s.authenticate(w, r); !ok {
		return
	}

	type entry struct {
		Name string `json:"name"`
	}
	out := make(map[string]entry)
	s.strand.Do(func() {
		for _, p := range s.world.Players.All() {
			out[strconv.FormatUint(p.Dog.ID, 10)] = entry{Name: p.Dog.Name}
		}
	})
	writeJSON(w, http.StatusOK, out)
}

type dogStateDTO struct {
	Pos   [2]float64 `json:"pos"`
	Speed [2]float64 `json:"speed"`
	Dir   string     `json:"dir"`
	Bag   []bagItem  `json:"bag"`
	Score int        `json:"score"`
}

type bagItem struct {
	ID   uint64 `json:"id"`
	Type int    `json:"type"`
}

type lostObjectDTO struct {
	Type int `json:"type"`
}

type stateResponse struct {
	Players     map[string]dogStateDTO  `json:"players"`
	LostObjects map[string]lostObjectDTO `json:"lostObjects"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	player, ok := s.authenticate(w, r)
	if !ok {
		return
	}

	resp := stateResponse{Players: map[string]dogStateDTO{}, LostObjects: map[string]lostObjectDTO{}}
	s.strand.Do(func() {
		session := player.Session
		for _, d := range session.Dogs {
			p, found := s.world.Players.FindByDogIDAndMapID(d.ID, session.Map.ID)
			var bag []bagItem
			var score int
			if found {
				for _, l := range p.Carried {
					bag = append(bag, bagItem{ID: l.ID, Type: l.Type})
				}
				score = p.Score
			}
			resp.Players[strconv.FormatUint(d.ID, 10)] = dogStateDTO{
				Pos:   [2]float64{d.Position.X, d.Position.Y},
				Speed: [2]float64{d.Velocity.X, d.Velocity.Y},
				Dir:   d.Direction.String(),
				Bag:   bag,
				Score: score,
			}
		}
		for _, l := range session.Loot {
			resp.LostObjects[strconv.FormatUint(l.ID, 10)] = lostObjectDTO{Type: l.Type}
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

type actionRequest struct {
	Move string `json:"move"`
}

func (s *Server) handlePlayerAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	player, ok := s.authenticate(w, r)
	if !ok {
		return
	}
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "failed to parse action")
		return
	}

	if req.Move == "" {
		s.strand.Do(player.Stop)
		writeJSON(w, http.StatusOK, struct{}{})
		return
	}
	dir, ok2 := geom.ParseDirection(req.Move)
	if !ok2 {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "invalid move value")
		return
	}
	s.strand.Do(func() { player.SetDirection(dir) })
	writeJSON(w, http.StatusOK, struct{}{})
}

type tickRequest struct {
	TimeDelta uint64 `json:"timeDelta"`
}

func (s *Server) handleTick(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	if !s.externalTick {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "server is running its own ticker")
		return
	}
	var req tickRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, "failed to parse tick")
		return
	}
	s.strand.Tick(req.TimeDelta)
	writeJSON(w, http.StatusOK, struct{}{})
}

const (
	defaultRecordsLimit = 100
	maxRecordsLimit     = 100
)

type recordDTO struct {
	Name     string  `json:"name"`
	Score    int     `json:"score"`
	PlayTime float64 `json:"playTime"`
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	limit := defaultRecordsLimit
	if v := r.URL.Query().Get("maxItems"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, "invalid maxItems")
			return
		}
		limit = n
	}
	if limit > maxRecordsLimit {
		writeError(w, http.StatusBadRequest, codeInvalidArgument, fmt.Sprintf("maxItems must not exceed %d", maxRecordsLimit))
		return
	}
	start := 0
	if v := r.URL.Query().Get("start"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, codeInvalidArgument, "invalid start")
			return
		}
		start = n
	}

	var records []world.Record
	var err error
	s.strand.Do(func() {
		records, err = s.world.GetRecords(limit, start)
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, codeInvalidArgument, err.Error())
		return
	}

	out := make([]recordDTO, len(records))
	for i, rec := range records {
		out[i] = recordDTO{Name: rec.Name, Score: rec.Score, PlayTime: float64(rec.PlayTimeMs) / 1000.0}
	}
	writeJSON(w, http.StatusOK, out)
}
