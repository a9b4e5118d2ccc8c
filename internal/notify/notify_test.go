package notify

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/skillswap-api/internal/models"
)

func TestFeed_HistoryIsBounded(t *testing.T) {
	feed := NewFeed(3, zerolog.Nop())
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		feed.Notify(title, "", "")
	}

	recent := feed.Recent(0)
	if len(recent) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(recent))
	}
	if recent[0].Title != "c" || recent[2].Title != "e" {
		t.Errorf("unexpected order: %v", recent)
	}
	if recent[0].Severity != models.SeverityInfo {
		t.Errorf("expected default severity info, got %s", recent[0].Severity)
	}

	last := feed.Recent(1)
	if len(last) != 1 || last[0].Title != "e" {
		t.Errorf("Recent(1) = %v", last)
	}
}

func TestFeed_Subscribe(t *testing.T) {
	feed := NewFeed(10, zerolog.Nop())
	ch, cancel := feed.Subscribe(1)

	feed.Notify("User Banned", "Spam User has been banned from the platform.", models.SeverityDestructive)
	// the buffer is full, so this one is dropped for the subscriber but kept in history
	feed.Notify("Second", "", models.SeverityInfo)

	n := <-ch
	if n.Title != "User Banned" || n.Severity != models.SeverityDestructive {
		t.Errorf("unexpected notification: %+v", n)
	}
	if len(feed.Recent(0)) != 2 {
		t.Error("history should keep dropped notifications")
	}

	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Error("channel should be closed after cancel")
	}
	// publishing after cancel must not panic
	feed.Notify("After", "", "")
}

func TestHub_StreamsNotifications(t *testing.T) {
	feed := NewFeed(10, zerolog.Nop())
	hub := NewHub(feed, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := hub.ServeWS(r.Context(), w, r); err != nil {
			t.Errorf("ServeWS failed: %v", err)
		}
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	// registration happens asynchronously; publish until the client sees one
	deadline := time.Now().Add(3 * time.Second)
	conn.SetReadDeadline(deadline)
	done := make(chan models.Notification, 1)
	go func() {
		var n models.Notification
		if err := conn.ReadJSON(&n); err == nil {
			done <- n
		}
		close(done)
	}()

	for time.Now().Before(deadline) {
		feed.Notify("Platform Message Sent", "hello", models.SeverityInfo)
		select {
		case n, ok := <-done:
			if !ok {
				t.Fatal("connection closed before a notification arrived")
			}
			if n.Title != "Platform Message Sent" {
				t.Errorf("unexpected title %q", n.Title)
			}
			return
		case <-time.After(50 * time.Millisecond):
		}
	}
	t.Fatal("no notification received")
}

func TestHub_LogsLifecycleOnce(t *testing.T) {
	var buf bytes.Buffer
	hub := NewHub(NewFeed(10, zerolog.Nop()), zerolog.New(&buf))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("hub did not stop")
	}

	out := buf.String()
	if n := strings.Count(out, "Notification hub started"); n != 1 {
		t.Errorf("expected one start line, got %d:\n%s", n, out)
	}
	if n := strings.Count(out, "Notification hub stopped"); n != 1 {
		t.Errorf("expected one stop line, got %d:\n%s", n, out)
	}
}

func TestHub_ServeWSWithoutRunFails(t *testing.T) {
	hub := NewHub(NewFeed(1, zerolog.Nop()), zerolog.Nop())
	errs := make(chan error, 1)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		errs <- hub.ServeWS(r.Context(), w, r)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		defer conn.Close()
	}

	select {
	case err := <-errs:
		if err != errHubNotRunning {
			t.Errorf("expected errHubNotRunning, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("ServeWS did not return")
	}
}
