/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Meme Battle
//
// A single-page party game prototype. Every browser gets its own mock game:
// hardcoded players, hardcoded images, and simulated delays standing in for
// a server that does not exist yet. The server keeps that state in memory and
// renders it, so the browser only sends actions and swaps in markup.
//
// Routes:
//   - /        home, create, join and lobby views
//   - /play    a round of gameplay, driven by a phase picker
//   - /swipe   the card-swiping image selector
//   - /ws      actions in, re-rendered views out
//   - /qr/:code  PNG QR code of the join link for an invite code

package main

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/Seednode/memebattle/games"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// ViewMessage carries a freshly rendered view to the browser.
type ViewMessage struct {
	Type string `json:"type"` // "view"
	Page string `json:"page"`
	HTML string `json:"html"`
}

type Client struct {
	conn *websocket.Conn
	page string
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const sessionCookieName = "memebattle_id"

func sessionID(r *http.Request) string {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}

	if _, err := uuid.Parse(c.Value); err != nil {
		return ""
	}

	return c.Value
}

func getOrSetSessionID(cfg *Config, w http.ResponseWriter, r *http.Request) string {
	if id := sessionID(r); id != "" {
		return id
	}

	id := uuid.NewString()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     cfg.prefix + "/",
		HttpOnly: true,
		Secure:   cfg.scheme() == "https",
		SameSite: http.SameSiteLaxMode,
	})

	return id
}

// SessionManager holds every live browser session, keyed by cookie.
type SessionManager struct {
	cfg *Config
	t   timings

	mu          sync.Mutex
	sessions    map[string]*Session
	idleTimeout time.Duration
}

func newSessionManager(cfg *Config, t timings) *SessionManager {
	return &SessionManager{
		cfg:         cfg,
		t:           t,
		sessions:    make(map[string]*Session),
		idleTimeout: cfg.sessionTimeout,
	}
}

func (sm *SessionManager) get(id string) *Session {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if s, ok := sm.sessions[id]; ok {
		return s
	}

	s := newSession(sm.cfg, id, sm.t)
	sm.sessions[id] = s

	logf(sm.cfg, "GAMES: Opened session %s", id)

	return s
}

func (sm *SessionManager) Len() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	return len(sm.sessions)
}

// reap closes and forgets every session idle since before cutoff.
func (sm *SessionManager) reap(cutoff time.Time) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	n := 0
	for id, s := range sm.sessions {
		if s.idleSince().Before(cutoff) {
			delete(sm.sessions, id)
			go s.Close()
			n++
		}
	}

	return n
}

// reaperLoop periodically removes sessions that have been idle longer than idleTimeout.
func (sm *SessionManager) reaperLoop(ctx context.Context) {
	ticker := time.NewTicker(sm.idleTimeout / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			sm.closeAll()

			return
		case now := <-ticker.C:
			if n := sm.reap(now.Add(-sm.idleTimeout)); n > 0 {
				logf(sm.cfg, "GAMES: Reaped %d idle sessions", n)
			}
		}
	}
}

func (sm *SessionManager) closeAll() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	for id, s := range sm.sessions {
		delete(sm.sessions, id)
		s.Close()
	}
}

func servePage(cfg *Config, sm *SessionManager, page string, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		s := sm.get(getOrSetSessionID(cfg, w, r))

		if code := r.URL.Query().Get("code"); page == pageHome && code != "" {
			s.OpenJoinLink(code)
			http.Redirect(w, r, cfg.prefix+"/", http.StatusSeeOther)

			return
		}

		s.Visit(page)

		body, err := s.Render(page)
		if err != nil {
			errs <- err
			http.Error(w, "render failed", http.StatusInternalServerError)

			return
		}

		data, err := renderLayout(cfg, page, body)
		if err != nil {
			errs <- err
			http.Error(w, "render failed", http.StatusInternalServerError)

			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		written, err := w.Write(data)
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: %s page (%s) to %s in %s [%s]",
			page,
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
			middleware.GetReqID(r.Context()),
		)
	}
}

func serveWS(cfg *Config, sm *SessionManager) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		id := sessionID(r)
		if id == "" {
			http.Error(w, "missing session", http.StatusBadRequest)
			return
		}

		page := r.URL.Query().Get("page")
		if page == "" {
			page = pageHome
		}
		if !validPage(page) {
			http.Error(w, "unknown page", http.StatusBadRequest)
			return
		}

		s := sm.get(id)

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: Websocket upgrade for %s failed: %v", realIP(r), err)
			return
		}

		client := &Client{conn: conn, page: page}
		sub := s.Subscribe()

		go client.writePump(cfg, s, sub)
		client.readPump(cfg, s)

		s.Unsubscribe(sub)
	}
}

func (c *Client) readPump(cfg *Config, s *Session) {
	defer c.conn.Close()

	c.conn.SetReadLimit(4096)

	for {
		var msg ClientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		if err := s.Handle(msg); err != nil {
			logf(cfg, "GAMES: Session %s rejected %q: %v", s.id, msg.Type, err)
		}
	}
}

// writePump sends the current view, then a fresh one after every change,
// until the subscription is closed.
func (c *Client) writePump(cfg *Config, s *Session, sub <-chan struct{}) {
	defer c.conn.Close()

	send := func() bool {
		body, err := s.Render(c.page)
		if err != nil {
			logf(cfg, "ERROR: Rendering %s for session %s: %v", c.page, s.id, err)
			return false
		}

		_ = c.conn.SetWriteDeadline(time.Now().Add(timeout))

		return c.conn.WriteJSON(ViewMessage{Type: "view", Page: c.page, HTML: string(body)}) == nil
	}

	if !send() {
		return
	}

	for range sub {
		if !send() {
			return
		}
	}
}

// joinURL is the link a QR code for code points at.
func joinURL(cfg *Config, r *http.Request, code string) string {
	// Derive scheme (respecting TLS and X-Forwarded-Proto if present).
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	return scheme + "://" + r.Host + cfg.prefix + "/?code=" + url.QueryEscape(code)
}

// qrHandler generates a PNG QR code for an invite code's join link using go-qrcode.
func qrHandler(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		code := strings.ToUpper(ps.ByName("code"))
		if code == "" || len(code) > 2*games.CodeLength || !games.ValidInviteSymbols(code) {
			http.Error(w, "invalid invite code", http.StatusBadRequest)
			return
		}

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(joinURL(cfg, r, code), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Cache-Control", "public, max-age=3600")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

// registerMemeGame sets up routes so that:
//   - $prefix/          → home, create, join and lobby
//   - $prefix/play      → gameplay
//   - $prefix/swipe     → swipe selector
//   - $prefix/ws        → WebSocket for the calling session
//   - $prefix/qr/:code  → PNG QR code for an invite code's join link
func registerMemeGame(ctx context.Context, cfg *Config, mux *httprouter.Router, errs chan<- error) *SessionManager {
	sm := newSessionManager(cfg, cfg.timings())
	go sm.reaperLoop(ctx)

	mux.GET(cfg.prefix+"/", servePage(cfg, sm, pageHome, errs))
	mux.GET(cfg.prefix+"/play", servePage(cfg, sm, pagePlay, errs))
	mux.GET(cfg.prefix+"/swipe", servePage(cfg, sm, pageSwipe, errs))

	mux.GET(cfg.prefix+"/assets/*file", serveAssets(cfg, errs))

	mux.GET(cfg.prefix+"/ws", serveWS(cfg, sm))

	mux.GET(cfg.prefix+"/qr/:code", qrHandler(cfg, errs))

	return sm
}
