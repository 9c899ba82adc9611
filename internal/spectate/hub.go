// Package spectate streams live run stats to websocket viewers as msgpack
// frames.
package spectate

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Garsondee/maze-man/internal/game"
	"github.com/Garsondee/maze-man/internal/logger"
)

const (
	sendBuffer = 64
	writeWait  = 5 * time.Second
)

// Message kinds.
const (
	KindStats     = "stats"
	KindEncounter = "encounter"
	KindOutcome   = "outcome"
)

// Message is one frame on the wire. Exactly one payload is set.
type Message struct {
	Kind      string            `msgpack:"kind"`
	Run       string            `msgpack:"run,omitempty"`
	Tick      int               `msgpack:"tick"`
	Stats     *StatsPayload     `msgpack:"stats,omitempty"`
	Encounter *EncounterPayload `msgpack:"encounter,omitempty"`
	Outcome   *OutcomePayload   `msgpack:"outcome,omitempty"`
}

// StatsPayload mirrors game.Stats.
type StatsPayload struct {
	Health    int     `msgpack:"health"`
	Energy    int     `msgpack:"energy"`
	Score     int     `msgpack:"score"`
	Rocks     int     `msgpack:"rocks"`
	Kills     int     `msgpack:"kills"`
	Consumed  int     `msgpack:"consumed"`
	Collected int     `msgpack:"collected"`
	Light     float64 `msgpack:"light"`
	Critical  bool    `msgpack:"critical"`
	Status    string  `msgpack:"status"`
}

// EncounterPayload mirrors game.Encounter.
type EncounterPayload struct {
	A      string `msgpack:"a"`
	B      string `msgpack:"b"`
	Kind   string `msgpack:"kind"`
	Amount int    `msgpack:"amount"`
}

// OutcomePayload mirrors game.RunOutcome.
type OutcomePayload struct {
	Score int    `msgpack:"score"`
	Cause string `msgpack:"cause"`
	Code  int    `msgpack:"code"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans frames out to every connected viewer. It implements game.Observer
// and http.Handler. Viewers that fall behind are dropped.
type Hub struct {
	// Every sets how often stats frames go out, in ticks.
	Every int

	upgrader websocket.Upgrader
	log      *logrus.Entry

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	tick    int
	run     string
}

// NewHub returns a hub that sends stats every `every` ticks.
func NewHub(every int) *Hub {
	if every < 1 {
		every = 1
	}
	return &Hub{
		Every: every,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger.Component("spectate"),
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("upgrade failed")
		return
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.WithFields(logrus.Fields{"remote": r.RemoteAddr, "viewers": n}).Info("viewer joined")

	go h.writePump(c)
	h.readPump(c)
}

// readPump discards viewer input and unregisters on disconnect.
func (h *Hub) readPump(c *client) {
	defer h.drop(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Debug("viewer read error")
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait)) //nolint:errcheck // surfaced by WriteMessage
		if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")) //nolint:errcheck
}

func (h *Hub) drop(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// BeginRun tags every following frame with the run id.
func (h *Hub) BeginRun(id string) {
	h.mu.Lock()
	h.run = id
	h.tick = 0
	h.mu.Unlock()
}

func (h *Hub) broadcast(m Message) {
	h.mu.Lock()
	m.Run = h.run
	h.mu.Unlock()
	data, err := msgpack.Marshal(&m)
	if err != nil {
		h.log.WithError(err).Error("encode frame")
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			delete(h.clients, c)
			close(c.send)
			h.log.Warn("dropping slow viewer")
		}
	}
}

// TickStarted sends a stats frame every Every ticks.
func (h *Hub) TickStarted(s game.Stats) {
	h.mu.Lock()
	h.tick = s.Tick
	h.mu.Unlock()
	if s.Tick%h.Every != 0 {
		return
	}
	h.broadcast(Message{Kind: KindStats, Tick: s.Tick, Stats: &StatsPayload{
		Health:    s.Ledger.Health,
		Energy:    s.Ledger.Energy,
		Score:     s.Ledger.Score,
		Rocks:     s.Ledger.Rocks,
		Kills:     s.Counters.Kills,
		Consumed:  s.Counters.Consumed,
		Collected: s.Counters.Collected,
		Light:     s.Light,
		Critical:  s.Critical,
		Status:    s.Status,
	}})
}

// Encountered forwards every applied encounter.
func (h *Hub) Encountered(e game.Encounter) {
	h.mu.Lock()
	tick := h.tick
	h.mu.Unlock()
	h.broadcast(Message{Kind: KindEncounter, Tick: tick, Encounter: &EncounterPayload{
		A: string(e.A), B: string(e.B), Kind: e.Kind.String(), Amount: e.Amount,
	}})
}

// Finished sends the outcome.
func (h *Hub) Finished(o game.RunOutcome) {
	h.broadcast(Message{Kind: KindOutcome, Tick: o.Tick, Outcome: &OutcomePayload{
		Score: o.FinalScore, Cause: o.Cause.String(), Code: o.Cause.Code(),
	}})
}

// Close disconnects every viewer and refuses new ones.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
	}
}
