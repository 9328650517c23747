package ws

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"dashboard/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeSource struct {
	calls atomic.Int32
	fail  bool
}

func (f *fakeSource) Overview(now time.Time) (*services.Overview, error) {
	n := f.calls.Add(1)
	if f.fail {
		return nil, errors.New("db down")
	}
	return &services.Overview{TotalMerchants: int64(n), RevenueToday: decimal.Zero, GeneratedAt: now}, nil
}

func startHub(t *testing.T, src OverviewSource, interval time.Duration) (*LiveHub, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := NewLiveHub(src, interval, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	r := gin.New()
	r.GET("/live", hub.HandleWebSocket)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, "ws" + strings.TrimPrefix(srv.URL, "http") + "/live"
}

func TestLiveHubPushesSnapshots(t *testing.T) {
	src := &fakeSource{}
	hub, url := startHub(t, src, 20*time.Millisecond)

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var first, next LiveEvent
	if err := conn.ReadJSON(&first); err != nil {
		t.Fatalf("first frame: %v", err)
	}
	if first.Type != "overview" || first.Data == nil {
		t.Fatalf("first = %+v", first)
	}
	if err := conn.ReadJSON(&next); err != nil {
		t.Fatalf("pushed frame: %v", err)
	}
	if next.Data.TotalMerchants <= first.Data.TotalMerchants {
		t.Errorf("expected a fresh snapshot, got %d after %d", next.Data.TotalMerchants, first.Data.TotalMerchants)
	}
	if hub.ClientCount() != 1 {
		t.Errorf("clients = %d", hub.ClientCount())
	}

	conn.Close()
	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ClientCount() != 0 {
		t.Error("closed client still registered")
	}
}

func TestLiveHubSourceFailure(t *testing.T) {
	_, url := startHub(t, &fakeSource{fail: true}, time.Hour)
	_, res, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		t.Fatal("expected handshake to fail")
	}
	if res == nil || res.StatusCode != 500 {
		t.Errorf("response = %+v", res)
	}
}

// stallSource blocks its second call until release is closed.
type stallSource struct {
	calls   atomic.Int32
	stalled chan struct{}
	release chan struct{}
}

func (s *stallSource) Overview(now time.Time) (*services.Overview, error) {
	if s.calls.Add(1) == 2 {
		close(s.stalled)
		<-s.release
	}
	return &services.Overview{RevenueToday: decimal.Zero, GeneratedAt: now}, nil
}

func TestLiveHubRegistersDuringSlowPush(t *testing.T) {
	src := &stallSource{stalled: make(chan struct{}), release: make(chan struct{})}
	hub, url := startHub(t, src, 10*time.Millisecond)
	defer close(src.release)

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer first.Close()

	select {
	case <-src.stalled:
	case <-time.After(2 * time.Second):
		t.Fatal("push never started")
	}

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial while pushing: %v", err)
	}
	defer second.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ClientCount() != 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if n := hub.ClientCount(); n != 2 {
		t.Errorf("clients = %d while a push is stalled, want 2", n)
	}
}
