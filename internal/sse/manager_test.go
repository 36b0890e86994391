package sse

import (
	"io"
	"log/slog"
	"testing"

	"github.com/baejw0111/review-server/internal/domain"
)

func newTestManager() *Manager {
	return NewManager(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBroadcast_FiltersByUser(t *testing.T) {
	m := newTestManager()

	alice, err := m.Connect("user-alice")
	if err != nil {
		t.Fatalf("connect alice: %v", err)
	}
	bob, err := m.Connect("user-bob")
	if err != nil {
		t.Fatalf("connect bob: %v", err)
	}

	n := domain.NewNotification("notif001", "user-alice", domain.NotificationLike)
	n.ActorID = "user-bob"
	n.ActorNickname = "밥"
	n.ReviewID = "reviewid0001"
	n.ReviewTitle = "Dune"
	m.broadcast(NewNotificationEvent(n, 1))

	select {
	case event := <-alice.EventChan:
		if event.Type != EventReviewLiked {
			t.Errorf("unexpected event type %s", event.Type)
		}
	default:
		t.Fatal("expected alice to receive the event")
	}

	select {
	case event := <-bob.EventChan:
		t.Errorf("bob should not receive alice's notification, got %s", event.Type)
	default:
	}
}

func TestBroadcast_HeartbeatReachesEveryone(t *testing.T) {
	m := newTestManager()

	a, _ := m.Connect("user-a")
	b, _ := m.Connect("user-b")

	m.broadcast(NewHeartbeatEvent())

	for _, c := range []*Client{a, b} {
		select {
		case event := <-c.EventChan:
			if event.Type != EventHeartbeat {
				t.Errorf("expected heartbeat, got %s", event.Type)
			}
		default:
			t.Errorf("client %s missed heartbeat", c.ID)
		}
	}
}

func TestBroadcast_DropsWhenClientBufferFull(t *testing.T) {
	m := newTestManager()

	client, _ := m.Connect("user-a")

	// Fill the per-client buffer plus one; the extra event must be dropped
	// without blocking.
	for range cap(client.EventChan) + 1 {
		m.broadcast(Event{Type: EventNotificationCreated, UserID: "user-a"})
	}

	if got := len(client.EventChan); got != cap(client.EventChan) {
		t.Errorf("expected full buffer of %d, got %d", cap(client.EventChan), got)
	}
}

func TestDisconnect_RemovesClient(t *testing.T) {
	m := newTestManager()

	client, _ := m.Connect("user-a")
	if m.ClientCount() != 1 {
		t.Fatalf("expected 1 client, got %d", m.ClientCount())
	}

	m.Disconnect(client.ID)
	if m.ClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", m.ClientCount())
	}

	// Disconnecting twice is a no-op.
	m.Disconnect(client.ID)
}
