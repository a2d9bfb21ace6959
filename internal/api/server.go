// Package api exposes the dog-walking game over a small JSON/HTTP
// surface (spec §6): map listing, joining, per-tick player actions,
// world state polling, and the retired-player scoreboard. Every
// handler that touches world state runs it through the strand so
// concurrent requests never race the simulation goroutine.
package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/dogwalk/server/internal/game/strand"
	"github.com/dogwalk/server/internal/game/world"
)

// Server wires the HTTP surface to a world and the strand that
// serializes access to it.
type Server struct {
	world   *world.World
	strand  *strand.Strand
	logger  *log.Logger
	wwwRoot string

	// externalTick enables POST /api/v1/game/tick; set when the server
	// is started with an internal tick period of zero.
	externalTick bool
}

func NewServer(w *world.World, s *strand.Strand, logger *log.Logger, wwwRoot string, externalTick bool) *Server {
	return &Server{world: w, strand: s, logger: logger, wwwRoot: wwwRoot, externalTick: externalTick}
}

// Mux builds the complete route table, including the static file
// server for wwwRoot when set.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/maps", s.handleMaps)
	mux.HandleFunc("/api/v1/maps/", s.handleMapByID)
	mux.HandleFunc("/api/v1/game/join", s.handleJoin)
	mux.HandleFunc("/api/v1/game/players", s.handlePlayers)
	mux.HandleFunc("/api/v1/game/state", s.handleState)
	mux.HandleFunc("/api/v1/game/player/action", s.handlePlayerAction)
	mux.HandleFunc("/api/v1/game/tick", s.handleTick)
	mux.HandleFunc("/api/v1/game/records", s.handleRecords)

	if s.wwwRoot != "" {
		mux.Handle("/", staticFileHandler(s.wwwRoot))
	}
	return mux
}

// authenticate extracts the bearer token from Authorization and
// resolves it to a player, writing an error response and returning
// false on failure.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request) (*world.Player, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) || len(auth) <= len(prefix) {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "authorization header is required")
		return nil, false
	}
	token := strings.TrimPrefix(auth, prefix)
	if !isTokenShape(token) {
		writeError(w, http.StatusUnauthorized, codeInvalidToken, "authorization token is malformed")
		return nil, false
	}

	var player *world.Player
	var ok bool
	s.strand.Do(func() {
		player, ok = s.world.Players.FindByToken(token)
	})
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnknownToken, "player token has not been found")
		return nil, false
	}
	return player, true
}

// isTokenShape reports whether token looks like one of ours: 32
// lowercase hex digits (world/tokens.go's tokenGenerator output). A
// token that doesn't even have this shape is rejected as invalidToken
// before ever touching the player registry, instead of falling through
// to a lookup miss.
func isTokenShape(token string) bool {
	if len(token) != 32 {
		return false
	}
	for _, c := range token {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, codeInvalidMethod, "invalid method")
}
