// Moviechain Name Five Game
//
// One player at a time is dealt a prompt ("Name five movies with a talking
// animal") and has a fixed window to rattle off five answers out loud. The
// other players judge; the prompted player taps "done" if the room accepts
// their five, or the round fails when the timer runs out. Prompts are dealt
// round-robin and scores accumulate per player.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Players identified by cookie (playerID)
// - Prompt list embedded in the binary, dealt via crypto/rand
// - 30-second rounds enforced server-side
// - Games auto-reaped after configurable idle timeout
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"crypto/rand"
	_ "embed"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const fiveRoundLength = 30 * time.Second

//go:embed namefive/prompts.txt
var fivePromptsRaw string

var fivePrompts = func() []string {
	var prompts []string
	for _, line := range strings.Split(fivePromptsRaw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			prompts = append(prompts, line)
		}
	}
	return prompts
}()

// FiveStateMessage broadcasts the full game state to every client.
type FiveStateMessage struct {
	Type     string         `json:"type"` // "five_state"
	Players  []string       `json:"players"`
	Scores   map[string]int `json:"scores"`
	Running  bool           `json:"running"`
	Prompt   string         `json:"prompt,omitempty"`
	Target   string         `json:"target,omitempty"`   // username on the clock
	Deadline int64          `json:"deadline,omitempty"` // unix millis
}

// FiveResultMessage announces the outcome of a round.
type FiveResultMessage struct {
	Type    string `json:"type"` // "five_result"
	Player  string `json:"player"`
	Prompt  string `json:"prompt"`
	Scored  bool   `json:"scored"`
	Message string `json:"message"`
}

type fiveClient struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type fiveCommand struct {
	client *fiveClient
	msg    ClientMessage
}

type fiveHub struct {
	id      string
	clients map[*fiveClient]bool
	players []Player

	register chan *fiveClient
	unreg    chan *fiveClient
	commands chan fiveCommand
	expiry   chan int

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time

	scores   map[string]int // playerID -> rounds won
	round    int            // serial, guards stale timers
	running  bool
	prompt   string
	target   string // playerID on the clock
	deadline time.Time
	nextUp   int // index into players for the next deal
}

func newFiveHub(gameID string) *fiveHub {
	now := time.Now()
	return &fiveHub{
		id:         gameID,
		clients:    make(map[*fiveClient]bool),
		register:   make(chan *fiveClient),
		unreg:      make(chan *fiveClient),
		commands:   make(chan fiveCommand),
		expiry:     make(chan int),
		createdAt:  now,
		lastActive: now,
		scores:     make(map[string]int),
	}
}

func (h *fiveHub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()

			isExisting := false
			existingName := ""
			for _, p := range h.players {
				if p.PlayerID == c.playerID {
					isExisting = true
					existingName = p.Username
					break
				}
			}

			h.clients[c] = true

			c.send <- SessionInfoMessage{
				Type:       "session_info",
				IsExisting: isExisting,
				Username:   existingName,
			}
			c.send <- h.stateLocked()

			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()

		case cmd := <-h.commands:
			h.handleCommand(cfg, cmd)

		case round := <-h.expiry:
			h.handleExpiry(cfg, round)
		}
	}
}

func (h *fiveHub) usernameLocked(playerID string) string {
	for _, p := range h.players {
		if p.PlayerID == playerID {
			return p.Username
		}
	}
	return ""
}

func (h *fiveHub) stateLocked() FiveStateMessage {
	names := make([]string, 0, len(h.players))
	scores := make(map[string]int, len(h.players))
	for _, p := range h.players {
		names = append(names, p.Username)
		scores[p.Username] = h.scores[p.PlayerID]
	}

	msg := FiveStateMessage{
		Type:    "five_state",
		Players: names,
		Scores:  scores,
		Running: h.running,
	}
	if h.running {
		msg.Prompt = h.prompt
		msg.Target = h.usernameLocked(h.target)
		msg.Deadline = h.deadline.UnixMilli()
	}

	return msg
}

func (h *fiveHub) broadcastLocked(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

func (h *fiveHub) handleCommand(cfg *Config, cmd fiveCommand) {
	c := cmd.client
	msg := cmd.msg

	if c.playerID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	switch msg.Type {
	case "join":
		if msg.Username == "" {
			return
		}
		for i, p := range h.players {
			if p.PlayerID == c.playerID {
				h.players[i].Username = msg.Username
				h.broadcastLocked(h.stateLocked())
				return
			}
		}
		for _, p := range h.players {
			if p.Username == msg.Username {
				select {
				case c.send <- CollisionMessage{
					Type:    "collision",
					Field:   "username",
					Message: "That username is already taken. Please choose a different username.",
				}:
				default:
					delete(h.clients, c)
					close(c.send)
				}
				return
			}
		}
		h.players = append(h.players, Player{
			PlayerID: c.playerID,
			Username: msg.Username,
		})
		logf(cfg, "GAMES: Player %q joined %s", msg.Username, h.id)
		h.broadcastLocked(h.stateLocked())

	case "start":
		if h.running || len(h.players) == 0 || len(fivePrompts) == 0 {
			return
		}
		h.dealLocked(cfg)

	case "done":
		// Only the player on the clock can claim their five.
		if !h.running || c.playerID != h.target {
			return
		}
		h.finishRoundLocked(cfg, true)

	case "pass":
		if !h.running || c.playerID != h.target {
			return
		}
		h.finishRoundLocked(cfg, false)
	}
}

// dealLocked picks a prompt and puts the next player on the clock.
func (h *fiveHub) dealLocked(cfg *Config) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		log.Println("rand.Read error:", err)
		return
	}
	h.prompt = fivePrompts[(int(b[0])<<8|int(b[1]))%len(fivePrompts)]

	h.nextUp = h.nextUp % len(h.players)
	h.target = h.players[h.nextUp].PlayerID
	h.nextUp++

	h.running = true
	h.round++
	h.deadline = time.Now().Add(fiveRoundLength)

	round := h.round
	time.AfterFunc(fiveRoundLength, func() {
		h.expiry <- round
	})

	logf(cfg, "GAMES: Dealt %q to %q in %s", h.prompt, h.usernameLocked(h.target), h.id)

	h.broadcastLocked(h.stateLocked())
}

func (h *fiveHub) finishRoundLocked(cfg *Config, scored bool) {
	username := h.usernameLocked(h.target)

	result := FiveResultMessage{
		Type:   "five_result",
		Player: username,
		Prompt: h.prompt,
		Scored: scored,
	}
	if scored {
		h.scores[h.target]++
		result.Message = username + " named five!"
	} else {
		result.Message = username + " couldn't name five."
	}

	h.running = false
	h.round++ // invalidate the pending timer
	h.prompt = ""
	h.target = ""

	logf(cfg, "GAMES: %q scored=%t in %s", username, scored, h.id)

	h.broadcastLocked(result)
	h.broadcastLocked(h.stateLocked())
}

func (h *fiveHub) handleExpiry(cfg *Config, round int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A done/pass may have landed first; only time out the current round.
	if !h.running || round != h.round {
		return
	}

	h.lastActive = time.Now()
	h.finishRoundLocked(cfg, false)
}

func (h *fiveHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

// fiveManager holds a set of fiveHubs keyed by game ID.
type fiveManager struct {
	mu          sync.Mutex
	hubs        map[string]*fiveHub
	idleTimeout time.Duration
}

func newFiveManager(idleTimeout time.Duration) *fiveManager {
	fm := &fiveManager{
		hubs:        make(map[string]*fiveHub),
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go fm.reaperLoop()
	}
	return fm
}

func (fm *fiveManager) getHub(cfg *Config, gameID string) *fiveHub {
	fm.mu.Lock()
	defer fm.mu.Unlock()

	if hub, ok := fm.hubs[gameID]; ok {
		return hub
	}

	hub := newFiveHub(gameID)
	fm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

func (fm *fiveManager) newGameID() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	for {
		buf := make([]byte, 8)
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}
		out := make([]byte, 8)
		for i := range out {
			out[i] = letters[int(buf[i])%len(letters)]
		}
		id := string(out)

		fm.mu.Lock()
		_, exists := fm.hubs[id]
		fm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

func (fm *fiveManager) reaperLoop() {
	ticker := time.NewTicker(fm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-fm.idleTimeout)

		fm.mu.Lock()
		for id, hub := range fm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(fm.hubs, id)
				go hub.closeAll()
			}
		}
		fm.mu.Unlock()
	}
}

func serveFiveWS(cfg *Config, fm *fiveManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		gameID := ps.ByName("gameid")
		if gameID == "" {
			http.Error(w, "missing game id", http.StatusBadRequest)
			return
		}

		playerID := getOrSetPlayerID(w, r)
		if playerID == "" {
			http.Error(w, "unable to assign player id", http.StatusInternalServerError)
			return
		}

		hub := fm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &fiveClient{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *fiveClient) readPump(h *fiveHub) {
	defer func() {
		h.unreg <- c
		_ = c.conn.Close()
	}()

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case "join", "start", "done", "pass":
			h.commands <- fiveCommand{
				client: c,
				msg:    msg,
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *fiveClient) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// ---- Static file paths ----

//go:embed namefive/index.html
var fiveIndexHTML []byte

//go:embed namefive/app.css
var fiveCSS []byte

//go:embed namefive/app.js
var fiveJS []byte

// registerNameFiveGame mirrors registerChainGame for the Name Five game.
func registerNameFiveGame(cfg *Config, path string, mux *httprouter.Router) {
	fm := newFiveManager(cfg.sessionTimeout)

	mux.GET(path, redirectNewGame(cfg, path, fm.newGameID))

	mux.GET(cfg.prefix+path+"/:gameid", staticHandler(cfg, fiveIndexHTML, "text/html; charset=utf-8", true))

	mux.GET(cfg.prefix+"/assets/namefive/app.css", staticHandler(cfg, fiveCSS, "text/css; charset=utf-8", false))
	mux.GET(cfg.prefix+"/assets/namefive/app.js", staticHandler(cfg, fiveJS, "application/javascript; charset=utf-8", false))

	mux.GET(cfg.prefix+path+"/:gameid/ws", serveFiveWS(cfg, fm))

	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
}
