package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func newTestRouter(t *testing.T) (http.Handler, *SessionManager) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errs := make(chan error, 64)
	t.Cleanup(func() {
		select {
		case err := <-errs:
			t.Errorf("handler reported %v", err)
		default:
		}
	})

	return newRouter(ctx, testConfig(), errs)
}

func get(t *testing.T, h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}

	t.Fatal("no session cookie set")

	return nil
}

func TestStaticRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	if rec := get(t, h, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "Ok\n" {
		t.Errorf("healthz: got %d %q", rec.Code, rec.Body.String())
	}

	if rec := get(t, h, "/version"); !strings.HasPrefix(rec.Body.String(), "memebattle v") {
		t.Errorf("version: got %q", rec.Body.String())
	}

	if rec := get(t, h, "/robots.txt"); !strings.Contains(rec.Body.String(), "User-agent") {
		t.Errorf("robots: got %q", rec.Body.String())
	}

	if rec := get(t, h, "/favicons/favicon.svg"); rec.Header().Get("Content-Type") != "image/svg+xml" {
		t.Errorf("favicon: got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
}

func TestAssetsOnlyServeStaticFiles(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/assets/app.js")
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/javascript") {
		t.Errorf("app.js: got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}

	for _, path := range []string{"/assets/page.html", "/assets/missing.css", "/assets/../favicons/favicon.svg"} {
		if rec := get(t, h, path); rec.Code != http.StatusNotFound {
			t.Errorf("%s: got %d, want 404", path, rec.Code)
		}
	}
}

func TestHomePage(t *testing.T) {
	h, sm := newTestRouter(t)

	rec := get(t, h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d", rec.Code)
	}

	body := rec.Body.String()
	for _, want := range []string{"Create Game", "Join Game", `data-ws="/ws?page=home"`} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}

	if !strings.Contains(rec.Header().Get("Content-Security-Policy"), "images.unsplash.com") {
		t.Error("CSP does not allow catalog images")
	}

	c := sessionCookie(t, rec)
	get(t, h, "/", c)

	if sm.Len() != 1 {
		t.Errorf("got %d sessions, want 1", sm.Len())
	}
}

func TestJoinLinkPrefillsJoinDialog(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/?code=abc123")
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("got %d to %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = get(t, h, "/", sessionCookie(t, rec))
	if !strings.Contains(rec.Body.String(), `value="ABC123"`) {
		t.Error("join dialog not prefilled")
	}
}

func TestPlayAndSwipePages(t *testing.T) {
	h, _ := newTestRouter(t)

	if rec := get(t, h, "/play"); !strings.Contains(rec.Body.String(), "Round 1") {
		t.Errorf("play page: got %d", rec.Code)
	}

	if rec := get(t, h, "/swipe"); !strings.Contains(rec.Body.String(), "Pick your reaction") {
		t.Errorf("swipe page: got %d", rec.Code)
	}
}

func TestQRCode(t *testing.T) {
	h, _ := newTestRouter(t)

	rec := get(t, h, "/qr/MEME123")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("got %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Error("body is not a PNG")
	}

	if rec := get(t, h, "/qr/NOT-A-CODE"); rec.Code != http.StatusBadRequest {
		t.Errorf("got %d for a bad code, want 400", rec.Code)
	}
}

func TestJoinURL(t *testing.T) {
	cfg := testConfig()
	cfg.prefix = "/memes"

	req := httptest.NewRequest(http.MethodGet, "/memes/qr/ABCDEF", nil)
	req.Host = "party.example"
	req.Header.Set("X-Forwarded-Proto", "https")

	if got, want := joinURL(cfg, req, "ABCDEF"), "https://party.example/memes/?code=ABCDEF"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWebsocketPushesViews(t *testing.T) {
	h, _ := newTestRouter(t)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("no session cookie set")
	}

	header := http.Header{}
	header.Set("Cookie", sessionCookieName+"="+cookie.Value)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?page=home", header)
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg ViewMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}
	if msg.Type != "view" || msg.Page != pageHome {
		t.Fatalf("got %+v", msg)
	}

	if err := conn.WriteJSON(ClientMessage{Type: "create"}); err != nil {
		t.Fatal(err)
	}

	for !strings.Contains(msg.HTML, "Create a New Game") {
		if err := conn.ReadJSON(&msg); err != nil {
			t.Fatalf("no create dialog pushed: %v", err)
		}
	}
}

func TestWebsocketDisconnectReleasesSubscription(t *testing.T) {
	h, sm := newTestRouter(t)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/swipe")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	var id string
	for _, c := range resp.Cookies() {
		if c.Name == sessionCookieName {
			id = c.Value
		}
	}
	if id == "" {
		t.Fatal("no session cookie set")
	}

	header := http.Header{}
	header.Set("Cookie", sessionCookieName+"="+id)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?page=swipe", header)
	if err != nil {
		t.Fatal(err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var msg ViewMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatal(err)
	}

	s := sm.get(id)
	eventually(t, s, "subscription registered", func() bool { return len(s.subs) == 1 })

	conn.Close()

	eventually(t, s, "subscription released", func() bool { return len(s.subs) == 0 })
}

func TestWebsocketNeedsSession(t *testing.T) {
	h, _ := newTestRouter(t)

	if rec := get(t, h, "/ws"); rec.Code != http.StatusBadRequest {
		t.Errorf("got %d, want 400", rec.Code)
	}
}

func TestReapDropsIdleSessions(t *testing.T) {
	sm := newSessionManager(testConfig(), fastTimings(testConfig()))

	s := sm.get("a")
	sm.get("b")

	if n := sm.reap(time.Now().Add(-time.Hour)); n != 0 {
		t.Errorf("reaped %d fresh sessions", n)
	}

	if n := sm.reap(time.Now().Add(time.Hour)); n != 2 {
		t.Errorf("reaped %d, want 2", n)
	}
	if sm.Len() != 0 {
		t.Errorf("got %d sessions left", sm.Len())
	}

	if sm.get("a") == s {
		t.Error("reaped session came back")
	}
	sm.closeAll()
}
