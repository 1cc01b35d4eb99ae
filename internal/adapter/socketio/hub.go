// Package socketio serves live rooms to browsers over socket.io.
package socketio

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	socketio "github.com/googollee/go-socket.io"
	"github.com/googollee/go-socket.io/engineio"
	"github.com/googollee/go-socket.io/engineio/transport"
	"github.com/googollee/go-socket.io/engineio/transport/polling"
	"github.com/googollee/go-socket.io/engineio/transport/websocket"

	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/domain"
)

const namespace = "/"

var _ secondary.Broadcaster = (*Hub)(nil)

var roundRoomPattern = regexp.MustCompile(`^round_[1-9][0-9]*$`)

type Hub struct {
	server *socketio.Server
	logger primary.Logger
}

func NewHub(allowedOrigins []string, logger primary.Logger) *Hub {
	checkOrigin := originChecker(allowedOrigins)
	server := socketio.NewServer(&engineio.Options{
		Transports: []transport.Transport{
			&websocket.Transport{CheckOrigin: checkOrigin},
			&polling.Transport{CheckOrigin: checkOrigin},
		},
	})
	h := &Hub{server: server, logger: logger}
	h.register()
	return h
}

func (h *Hub) register() {
	h.server.OnConnect(namespace, func(s socketio.Conn) error {
		h.logger.Debug("Socket connected", "socketId", s.ID())
		return nil
	})

	h.server.OnEvent(namespace, "joinRound", func(s socketio.Conn, roundID interface{}) {
		h.join(s, roundRoom(roundID))
	})
	h.server.OnEvent(namespace, "leaveRound", func(s socketio.Conn, roundID interface{}) {
		h.leave(s, roundRoom(roundID))
	})
	h.server.OnEvent(namespace, "joinCompetition", func(s socketio.Conn) {
		h.join(s, domain.CompetitionRoom)
	})
	h.server.OnEvent(namespace, "leaveCompetition", func(s socketio.Conn) {
		h.leave(s, domain.CompetitionRoom)
	})
	h.server.OnEvent(namespace, "join", func(s socketio.Conn, room string) {
		h.join(s, legacyRoom(room))
	})
	h.server.OnEvent(namespace, "leave", func(s socketio.Conn, room string) {
		h.leave(s, legacyRoom(room))
	})

	h.server.OnError(namespace, func(s socketio.Conn, err error) {
		h.logger.Warn("Socket error", "error", err)
	})
	h.server.OnDisconnect(namespace, func(s socketio.Conn, reason string) {
		h.logger.Debug("Socket disconnected", "socketId", s.ID(), "reason", reason)
	})
}

func (h *Hub) join(s socketio.Conn, room string) {
	if !ValidRoom(room) {
		h.logger.Debug("Rejected room join", "socketId", s.ID(), "room", room)
		return
	}
	s.Join(room)
}

func (h *Hub) leave(s socketio.Conn, room string) {
	if ValidRoom(room) {
		s.Leave(room)
	}
}

// BroadcastToRoom emits to every socket of this instance in the room
func (h *Hub) BroadcastToRoom(_ context.Context, room, event string, payload interface{}) error {
	h.server.BroadcastToRoom(namespace, room, event, payload)
	return nil
}

// Serve runs the socket.io event loop until Close
func (h *Hub) Serve() {
	go func() {
		if err := h.server.Serve(); err != nil {
			h.logger.Error("Socket server stopped", "error", err)
		}
	}()
}

func (h *Hub) Close() error {
	return h.server.Close()
}

func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.server.ServeHTTP(w, r)
}

// ValidRoom reports whether clients may subscribe to room
func ValidRoom(room string) bool {
	return room == domain.CompetitionRoom || roundRoomPattern.MatchString(room)
}

// roundRoom accepts a round id sent as a JSON number or string
func roundRoom(roundID interface{}) string {
	var id int64
	switch v := roundID.(type) {
	case float64:
		if v != math.Trunc(v) || v <= 0 {
			return ""
		}
		id = int64(v)
	case string:
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return ""
		}
		id = parsed
	default:
		return fmt.Sprint(v)
	}
	if id <= 0 {
		return ""
	}
	return domain.RoundRoom(id)
}

// legacyRoom maps the bare round id accepted by the old join/leave events to its room
func legacyRoom(room string) string {
	if room == domain.CompetitionRoom || strings.HasPrefix(room, "round_") {
		return room
	}
	return roundRoom(room)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(r *http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
