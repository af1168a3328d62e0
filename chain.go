// Moviechain Chain Game
//
// Players take turns building a chain of movies and the people in them:
// one player names a movie, the next names an actor (or director) from that
// movie, the next names another movie that person was in, and so on. Every
// proposed link is validated against a curated local movie database, and the
// round ends on the first broken link or the first repeated (movie, person)
// pair.
//
// Features:
// - WebSockets per game ID: /path/:gameid and /path/:gameid/ws
// - Players identified by cookie (playerID)
// - Autocomplete search over movies/actors/directors, ranked by popularity
// - Turn order follows join order; each accepted proposal passes the turn
// - Duplicate usernames prevented across players
// - Error messages sent only to the offending client
// - Games auto-reaped after configurable idle timeout
// - Random 8-char game IDs via crypto/rand, with server-side collision check
// - Any player can start a fresh round once the current one has ended
// - In-browser QR button to share the current session, backed by go-qrcode

package main

import (
	"context"
	"crypto/rand"
	_ "embed"
	"encoding/hex"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/moviechain/internal/chain"
	"github.com/Seednode/moviechain/internal/dataset"
)

// Player holds the data we store server-side
type Player struct {
	PlayerID string
	Username string
}

// Messages coming from clients
type ClientMessage struct {
	Type     string `json:"type"`               // "join", "search", "propose_movie", "propose_person", "restart"
	Username string `json:"username,omitempty"` // join
	Query    string `json:"query,omitempty"`    // search
	Kind     string `json:"kind,omitempty"`     // search: "movie", "actor", "director"
	ID       string `json:"id,omitempty"`       // propose_movie / propose_person
	Role     string `json:"role,omitempty"`     // propose_person: "actor" or "director"
}

// ChainLink is one completed hop, resolved to display names.
type ChainLink struct {
	MovieID    string `json:"movie_id"`
	MovieTitle string `json:"movie_title"`
	MovieYear  int    `json:"movie_year,omitempty"`
	PersonID   string `json:"person_id"`
	PersonName string `json:"person_name"`
	Role       string `json:"role"`
	ProposedBy string `json:"proposed_by,omitempty"`
}

// ChainStateMessage broadcasts the full round state to every client.
type ChainStateMessage struct {
	Type        string      `json:"type"`                  // "chain_state"
	State       string      `json:"state"`                 // "awaiting-movie", "awaiting-person", "ended"
	EndReason   string      `json:"end_reason,omitempty"`  // "broken-link" or "repeat" once ended
	Links       []ChainLink `json:"links"`                 // completed hops, oldest first
	AnchorName  string      `json:"anchor_name,omitempty"` // what the next proposal must link to
	AnchorKind  string      `json:"anchor_kind,omitempty"` // "movie" or "person"
	CurrentTurn string      `json:"current_turn,omitempty"`
	Players     []string    `json:"players"`
}

// ProposalResultMessage informs everyone about a proposal outcome.
type ProposalResultMessage struct {
	Type     string `json:"type"` // "proposal_result"
	Player   string `json:"player"`
	Name     string `json:"name"` // proposed title or person name
	Accepted bool   `json:"accepted"`
	Ended    bool   `json:"ended"`
	Reason   string `json:"reason,omitempty"`
	Message  string `json:"message,omitempty"`
}

// SearchResultsMessage is sent only to the client that asked.
type SearchResultsMessage struct {
	Type    string              `json:"type"` // "search_results"
	Query   string              `json:"query"`
	Kind    string              `json:"kind"`
	Results []dataset.Candidate `json:"results"`
}

// Sent to a single client when there's a username collision
type CollisionMessage struct {
	Type    string `json:"type"`    // "collision"
	Field   string `json:"field"`   // "username"
	Message string `json:"message"` // user-facing text
}

// SimpleMessage is for generic notifications ("not_your_turn", etc.)
type SimpleMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// SessionInfoMessage is sent immediately on connect so the client knows
// whether this cookie already has a player.
type SessionInfoMessage struct {
	Type       string `json:"type"` // "session_info"
	IsExisting bool   `json:"is_existing"`
	Username   string `json:"username,omitempty"`
}

type Client struct {
	conn     *websocket.Conn
	send     chan any
	playerID string
}

type joinRequest struct {
	client *Client
	msg    ClientMessage
}

type proposalRequest struct {
	client *Client
	msg    ClientMessage
}

type searchRequest struct {
	client *Client
	msg    ClientMessage
}

type Hub struct {
	id      string
	store   *dataset.Store
	clients map[*Client]bool
	players []Player

	register  chan *Client
	unreg     chan *Client
	joins     chan joinRequest
	proposals chan proposalRequest
	searches  chan searchRequest

	mu sync.RWMutex

	createdAt  time.Time
	lastActive time.Time

	session     *chain.Session
	links       []ChainLink
	anchorMovie dataset.Movie
	anchorName  string // display name for the current anchor

	turnOrder   []string // slice of PlayerID in join order
	currentTurn int      // index into turnOrder
}

func newHub(gameID string, store *dataset.Store) *Hub {
	now := time.Now()
	return &Hub{
		id:         gameID,
		store:      store,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unreg:      make(chan *Client),
		joins:      make(chan joinRequest),
		proposals:  make(chan proposalRequest),
		searches:   make(chan searchRequest),
		createdAt:  now,
		lastActive: now,
		session:    chain.NewSession(store),
	}
}

func (h *Hub) run(cfg *Config) {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.lastActive = time.Now()

			// Is this cookie already associated with a player?
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

			// Send session_info first, so client decides whether/how to prompt.
			c.send <- SessionInfoMessage{
				Type:       "session_info",
				IsExisting: isExisting,
				Username:   existingName,
			}

			c.send <- h.chainStateLocked()

			h.mu.Unlock()

		case c := <-h.unreg:
			h.mu.Lock()
			h.lastActive = time.Now()

			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			playerID := c.playerID
			h.mu.Unlock()

			if playerID != "" {
				go h.scheduleRemoval(playerID, cfg.playerTimeout)
			}

		case jr := <-h.joins:
			h.handleJoin(cfg, jr)

		case pr := <-h.proposals:
			h.handleProposal(cfg, pr)

		case sr := <-h.searches:
			h.handleSearch(cfg, sr)
		}
	}
}

func (h *Hub) usernameLocked(playerID string) string {
	for _, p := range h.players {
		if p.PlayerID == playerID {
			return p.Username
		}
	}
	return ""
}

// chainStateLocked assumes h.mu is held (either mode).
func (h *Hub) chainStateLocked() ChainStateMessage {
	names := make([]string, 0, len(h.players))
	for _, p := range h.players {
		names = append(names, p.Username)
	}

	var currentName string
	if len(h.turnOrder) > 0 && h.session.State() != chain.Ended {
		currentName = h.usernameLocked(h.turnOrder[h.currentTurn])
	}

	state := h.session.State()
	anchorKind := ""
	switch state {
	case chain.AwaitingPerson:
		anchorKind = "movie"
	case chain.AwaitingMovie:
		if h.anchorName != "" {
			anchorKind = "person"
		}
	}

	links := make([]ChainLink, len(h.links))
	copy(links, h.links)

	return ChainStateMessage{
		Type:        "chain_state",
		State:       state.String(),
		EndReason:   string(h.session.EndReason()),
		Links:       links,
		AnchorName:  h.anchorName,
		AnchorKind:  anchorKind,
		CurrentTurn: currentName,
		Players:     names,
	}
}

// broadcastLocked sends msg to every connected client, dropping clients
// whose send buffer is full.
func (h *Hub) broadcastLocked(msg any) {
	for client := range h.clients {
		select {
		case client.send <- msg:
		default:
			delete(h.clients, client)
			close(client.send)
		}
	}
}

// sendOrDropLocked sends msg to a single client.
func (h *Hub) sendOrDropLocked(c *Client, msg any) {
	select {
	case c.send <- msg:
	default:
		delete(h.clients, c)
		close(c.send)
	}
}

// scheduleRemoval waits for d, and if no client with this playerID
// is currently connected, removes that player's entry and rebuilds
// the turn order.
func (h *Hub) scheduleRemoval(playerID string, d time.Duration) {
	time.Sleep(d)

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		if client.playerID == playerID {
			return
		}
	}

	dst := h.players[:0]
	changed := false

	for _, p := range h.players {
		if p.PlayerID == playerID {
			changed = true
			continue
		}
		dst = append(dst, p)
	}
	h.players = dst

	if !changed {
		return
	}

	current := ""
	if len(h.turnOrder) > 0 {
		current = h.turnOrder[h.currentTurn]
	}

	order := h.turnOrder[:0]
	for _, pid := range h.turnOrder {
		if pid == playerID {
			continue
		}
		order = append(order, pid)
	}
	h.turnOrder = order

	h.currentTurn = 0
	for i, pid := range h.turnOrder {
		if pid == current {
			h.currentTurn = i
			break
		}
	}

	h.lastActive = time.Now()

	h.broadcastLocked(h.chainStateLocked())
}

// handleJoin processes "join" messages.
func (h *Hub) handleJoin(cfg *Config, jr joinRequest) {
	msg := jr.msg
	c := jr.client

	if msg.Username == "" || c.playerID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	existingIndex := -1
	for i, p := range h.players {
		if p.PlayerID == c.playerID {
			existingIndex = i
			break
		}
	}

	for _, p := range h.players {
		if p.PlayerID == c.playerID {
			continue
		}
		if p.Username == msg.Username {
			h.sendOrDropLocked(c, CollisionMessage{
				Type:    "collision",
				Field:   "username",
				Message: "That username is already taken. Please choose a different username.",
			})
			return
		}
	}

	if existingIndex >= 0 {
		h.players[existingIndex].Username = msg.Username
	} else {
		h.players = append(h.players, Player{
			PlayerID: c.playerID,
			Username: msg.Username,
		})
		h.turnOrder = append(h.turnOrder, c.playerID)
		logf(cfg, "GAMES: Player %q joined %s", msg.Username, h.id)
	}

	h.broadcastLocked(h.chainStateLocked())
}

// handleSearch runs an autocomplete query and replies only to the requester.
func (h *Hub) handleSearch(cfg *Config, sr searchRequest) {
	c := sr.client
	msg := sr.msg

	kind, ok := dataset.ParseKind(msg.Kind)
	if !ok {
		return
	}

	results, err := h.store.Search(context.Background(), msg.Query, kind, cfg.searchLimit)
	if err != nil {
		log.Println("search error:", err)
		return
	}
	if results == nil {
		results = []dataset.Candidate{}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	if _, ok := h.clients[c]; !ok {
		return
	}

	h.sendOrDropLocked(c, SearchResultsMessage{
		Type:    "search_results",
		Query:   msg.Query,
		Kind:    msg.Kind,
		Results: results,
	})
}

// handleProposal processes propose_movie, propose_person, and restart.
func (h *Hub) handleProposal(cfg *Config, pr proposalRequest) {
	c := pr.client
	msg := pr.msg

	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastActive = time.Now()

	username := h.usernameLocked(c.playerID)
	if username == "" {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "not_joined",
			Message: "Join the game before playing.",
		})
		return
	}

	if msg.Type == "restart" {
		if h.session.State() != chain.Ended {
			h.sendOrDropLocked(c, SimpleMessage{
				Type:    "round_in_progress",
				Message: "The current round has not ended yet.",
			})
			return
		}
		h.session = chain.NewSession(h.store)
		h.links = nil
		h.anchorMovie = dataset.Movie{}
		h.anchorName = ""
		h.currentTurn = 0
		logf(cfg, "GAMES: %q restarted %s", username, h.id)
		h.broadcastLocked(h.chainStateLocked())
		return
	}

	if len(h.turnOrder) > 0 && h.turnOrder[h.currentTurn] != c.playerID {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "not_your_turn",
			Message: "It is not your turn.",
		})
		return
	}

	if msg.ID == "" {
		return
	}

	switch msg.Type {
	case "propose_movie":
		h.proposeMovieLocked(cfg, c, username, msg.ID)
	case "propose_person":
		role, ok := dataset.ParseRole(msg.Role)
		if !ok {
			return
		}
		h.proposePersonLocked(cfg, c, username, msg.ID, role)
	}
}

func (h *Hub) proposeMovieLocked(cfg *Config, c *Client, username, movieID string) {
	ctx := context.Background()

	movie, found, err := h.store.Movie(ctx, movieID)
	if err != nil {
		log.Println("movie lookup error:", err)
		return
	}
	if !found {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "unknown_entity",
			Message: "That movie is not in the database.",
		})
		return
	}

	err = h.session.ProposeMovie(ctx, movieID)
	if errors.Is(err, chain.ErrInvalidState) {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "wrong_phase",
			Message: "A person is expected right now, not a movie.",
		})
		return
	}
	if err != nil {
		log.Println("propose movie error:", err)
		return
	}

	h.finishProposalLocked(cfg, username, movie.Title, func() {
		h.anchorMovie = movie
		h.anchorName = movie.Title
	})
}

func (h *Hub) proposePersonLocked(cfg *Config, c *Client, username, personID string, role dataset.Role) {
	ctx := context.Background()

	person, found, err := h.store.Person(ctx, personID, role)
	if err != nil {
		log.Println("person lookup error:", err)
		return
	}
	if !found {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "unknown_entity",
			Message: "That person is not in the database.",
		})
		return
	}

	movie := h.anchorMovie

	err = h.session.ProposePerson(ctx, personID, role)
	if errors.Is(err, chain.ErrInvalidState) {
		h.sendOrDropLocked(c, SimpleMessage{
			Type:    "wrong_phase",
			Message: "A movie is expected right now, not a person.",
		})
		return
	}
	if err != nil {
		log.Println("propose person error:", err)
		return
	}

	h.finishProposalLocked(cfg, username, person.Name, func() {
		h.links = append(h.links, ChainLink{
			MovieID:    movie.ID,
			MovieTitle: movie.Title,
			MovieYear:  movie.Year,
			PersonID:   person.ID,
			PersonName: person.Name,
			Role:       role.String(),
			ProposedBy: username,
		})
		h.anchorName = person.Name
	})
}

// finishProposalLocked inspects the session after a proposal that was not
// rejected outright, records the hop via record() when the chain grew, and
// broadcasts the outcome.
func (h *Hub) finishProposalLocked(cfg *Config, username, name string, record func()) {
	result := ProposalResultMessage{
		Type:   "proposal_result",
		Player: username,
		Name:   name,
	}

	if h.session.State() == chain.Ended {
		result.Ended = true
		result.Reason = string(h.session.EndReason())
		switch h.session.EndReason() {
		case chain.ReasonRepeat:
			result.Message = username + " repeated a link with \"" + name + "\". Chain over!"
		default:
			result.Message = "\"" + name + "\" does not link to " + h.anchorName + ". Chain over!"
		}
		logf(cfg, "GAMES: %q ended %s (%s) after %d links", username, h.id, result.Reason, len(h.links))
	} else {
		result.Accepted = true
		record()
		result.Message = username + " played \"" + name + "\"."
		if len(h.turnOrder) > 0 {
			h.currentTurn = (h.currentTurn + 1) % len(h.turnOrder)
		}
		logf(cfg, "GAMES: %q played %q in %s", username, name, h.id)
	}

	h.broadcastLocked(result)
	h.broadcastLocked(h.chainStateLocked())
}

// closeAll disconnects all clients of this hub (used by reaper).
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		close(c.send)
		_ = c.conn.Close()
		delete(h.clients, c)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const playerCookieName = "moviechain_id"

func getOrSetPlayerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		return c.Value
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		log.Println("rand.Read error:", err)
		return ""
	}
	id := hex.EncodeToString(buf)

	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// GameManager holds a set of hubs keyed by game ID, so each $path/$gameid
// is its own isolated session.
type GameManager struct {
	mu          sync.Mutex
	hubs        map[string]*Hub
	store       *dataset.Store
	idleTimeout time.Duration
}

func newGameManager(store *dataset.Store, idleTimeout time.Duration) *GameManager {
	gm := &GameManager{
		hubs:        make(map[string]*Hub),
		store:       store,
		idleTimeout: idleTimeout,
	}
	if idleTimeout > 0 {
		go gm.reaperLoop()
	}
	return gm
}

func (gm *GameManager) getHub(cfg *Config, gameID string) *Hub {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if hub, ok := gm.hubs[gameID]; ok {
		return hub
	}

	hub := newHub(gameID, gm.store)
	gm.hubs[gameID] = hub
	go hub.run(cfg)
	return hub
}

// newGameID generates a crypto-random game ID and ensures it doesn't
// collide with existing games.
func (gm *GameManager) newGameID() string {
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

		gm.mu.Lock()
		_, exists := gm.hubs[id]
		gm.mu.Unlock()

		if !exists {
			return id
		}
	}
}

// reaperLoop periodically removes hubs that have been idle longer than idleTimeout.
func (gm *GameManager) reaperLoop() {
	ticker := time.NewTicker(gm.idleTimeout / 2)
	for range ticker.C {
		cutoff := time.Now().Add(-gm.idleTimeout)

		gm.mu.Lock()
		for id, hub := range gm.hubs {
			hub.mu.RLock()
			last := hub.lastActive
			hub.mu.RUnlock()

			if last.Before(cutoff) {
				delete(gm.hubs, id)
				go hub.closeAll()
			}
		}
		gm.mu.Unlock()
	}
}

// WebSocket handler that picks the hub based on :gameid
func serveWSForManager(cfg *Config, gm *GameManager) httprouter.Handle {
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

		hub := gm.getHub(cfg, gameID)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			conn:     conn,
			send:     make(chan any, 8),
			playerID: playerID,
		}

		hub.register <- client

		go client.writePump()
		client.readPump(hub)
	}
}

func (c *Client) readPump(h *Hub) {
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
		case "join":
			h.joins <- joinRequest{
				client: c,
				msg:    msg,
			}
		case "search":
			h.searches <- searchRequest{
				client: c,
				msg:    msg,
			}
		case "propose_movie", "propose_person", "restart":
			h.proposals <- proposalRequest{
				client: c,
				msg:    msg,
			}
		default:
			// ignore unknown types
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// QR handler: generates a PNG QR code for the current game URL using go-qrcode.
func qrHandler(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	gameID := ps.ByName("gameid")
	if gameID == "" {
		http.Error(w, "missing game id", http.StatusBadRequest)
		return
	}

	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	// We are at /.../:gameid/qr; strip trailing "/qr" to get the game URL.
	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---- Static file paths ----

//go:embed moviechain/index.html
var chainIndexHTML []byte

//go:embed moviechain/app.css
var chainCSS []byte

//go:embed moviechain/app.js
var chainJS []byte

func staticHandler(cfg *Config, data []byte, contentType string, setCookie bool) func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Cache-Control", "public, max-age=3600")
		w.Header().Set("Expires", time.Now().Add(time.Hour).UTC().Format(http.TimeFormat))
		securityHeaders(cfg, w)

		if setCookie {
			_ = getOrSetPlayerID(w, r)
		}

		_, _ = w.Write(data)
	}
}

// redirectNewGame handles GET /path by generating a new random game ID
// (with server-side collision detection) and redirecting to /path/:gameid.
func redirectNewGame(cfg *Config, path string, newID func() string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gameID := newID()
		logf(cfg, "GAMES: Created game %s/%s", path, gameID)
		http.Redirect(w, r, path+"/"+gameID, http.StatusTemporaryRedirect)
	}
}

// registerChainGame sets up routes so that:
//   - $path                  → redirects to new random game (8-char ID)
//   - $path/:gameid          → HTML client
//   - $path/:gameid/ws       → WebSocket for that game
//   - $path/:gameid/qr       → PNG QR code for that game URL
func registerChainGame(cfg *Config, path string, store *dataset.Store, mux *httprouter.Router) {
	gm := newGameManager(store, cfg.sessionTimeout)

	// Root path → redirect to new random game
	mux.GET(path, redirectNewGame(cfg, path, gm.newGameID))

	// Per-game client view (HTML)
	mux.GET(cfg.prefix+path+"/:gameid", staticHandler(cfg, chainIndexHTML, "text/html; charset=utf-8", true))

	// Shared assets (no gameid in route)
	mux.GET(cfg.prefix+"/assets/moviechain/app.css", staticHandler(cfg, chainCSS, "text/css; charset=utf-8", false))
	mux.GET(cfg.prefix+"/assets/moviechain/app.js", staticHandler(cfg, chainJS, "application/javascript; charset=utf-8", false))

	// Per-game websocket
	mux.GET(cfg.prefix+path+"/:gameid/ws", serveWSForManager(cfg, gm))

	// Per-game QR code
	mux.GET(cfg.prefix+path+"/:gameid/qr", qrHandler)
}
