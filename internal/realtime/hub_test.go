package realtime

import (
	"testing"
	"time"

	"github.com/yungbote/skillbridge-backend/internal/platform/logger"
)

func recvFrame(t *testing.T, ch <-chan Frame, timeout time.Duration) Frame {
	t.Helper()
	select {
	case f := <-ch:
		return f
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for frame")
	}
	return Frame{}
}

func TestHubBroadcastOrderingAndClose(t *testing.T) {
	hub := NewHub(logger.NewNop())
	channel := UserChannel(7)

	a := hub.NewClient(7)
	hub.Subscribe(a, channel)
	if hub.ClientCount() != 1 {
		t.Fatalf("ClientCount: want 1 got %d", hub.ClientCount())
	}

	hub.Broadcast(Message{Channel: channel, Frame: NotificationFrame("first", 1)})
	hub.Broadcast(Message{Channel: channel, Frame: NotificationFrame("second", 2)})
	hub.Broadcast(Message{Channel: UserChannel(8), Frame: NotificationFrame("elsewhere", 3)})

	if got := recvFrame(t, a.Outbound, time.Second); got.Message != "first" || got.NotificationID != 1 {
		t.Fatalf("first frame: got %+v", got)
	}
	if got := recvFrame(t, a.Outbound, time.Second); got.Message != "second" {
		t.Fatalf("second frame: got %+v", got)
	}
	select {
	case f := <-a.Outbound:
		t.Fatalf("unexpected frame from another channel: %+v", f)
	default:
	}

	hub.CloseClient(a)
	hub.CloseClient(a)
	if _, ok := <-a.Outbound; ok {
		t.Fatalf("outbound should be closed after CloseClient")
	}
	select {
	case <-a.Done():
	default:
		t.Fatalf("done should be closed after CloseClient")
	}
	if hub.ClientCount() != 0 {
		t.Fatalf("ClientCount after close: want 0 got %d", hub.ClientCount())
	}

	// Broadcasting to a channel with no subscribers left must not panic on the closed client.
	hub.Broadcast(Message{Channel: channel, Frame: NotificationFrame("late", 4)})
	hub.Subscribe(a, channel)
	hub.Broadcast(Message{Channel: channel, Frame: NotificationFrame("later", 5)})
}

func TestHubDropsOnFullBuffer(t *testing.T) {
	hub := NewHub(logger.NewNop())
	drops := 0
	hub.OnDrop(func() { drops++ })

	c := hub.NewClient(1)
	hub.Subscribe(c, UserChannel(1))

	for i := 0; i < clientBuffer+3; i++ {
		hub.Broadcast(Message{Channel: UserChannel(1), Frame: NotificationFrame("n", int64(i+1))})
	}
	if drops != 3 {
		t.Fatalf("drops: want 3 got %d", drops)
	}
	if len(c.Outbound) != clientBuffer {
		t.Fatalf("buffer: want %d got %d", clientBuffer, len(c.Outbound))
	}
}

func TestHubUnsubscribe(t *testing.T) {
	hub := NewHub(logger.NewNop())
	c := hub.NewClient(3)
	hub.Subscribe(c, " "+UserChannel(3)+" ")
	hub.Unsubscribe(c, UserChannel(3))

	hub.Broadcast(Message{Channel: UserChannel(3), Frame: NotificationFrame("gone", 1)})
	select {
	case f := <-c.Outbound:
		t.Fatalf("unsubscribed client received %+v", f)
	default:
	}
}

func TestReplyTo(t *testing.T) {
	cases := []struct {
		in       string
		wantType FrameType
		wantMsg  string
		wantRecv string
	}{
		{in: "ping", wantType: FrameNotification, wantMsg: "pong"},
		{in: " PING\n", wantType: FrameNotification, wantMsg: "pong"},
		{in: "hello", wantType: FrameAck, wantRecv: "hello"},
		{in: "ping pong", wantType: FrameAck, wantRecv: "ping pong"},
		{in: "", wantType: FrameAck, wantRecv: ""},
	}
	for _, tc := range cases {
		got := ReplyTo(tc.in)
		if got.Type != tc.wantType || got.Message != tc.wantMsg {
			t.Fatalf("ReplyTo(%q): got %+v", tc.in, got)
		}
		if tc.wantType == FrameAck && (got.Received == nil || *got.Received != tc.wantRecv) {
			t.Fatalf("ReplyTo(%q): received = %v, want %q", tc.in, got.Received, tc.wantRecv)
		}
	}
}

func TestUserChannel(t *testing.T) {
	if got := UserChannel(42); got != "user:42" {
		t.Fatalf("UserChannel: got %q", got)
	}
}

func TestHubDeliver(t *testing.T) {
	hub := NewHub(logger.NewNop())
	c := hub.NewClient(3)

	if !hub.Deliver(c, WelcomeFrame(3)) {
		t.Fatalf("Deliver: expected open client to accept a frame")
	}
	if got := recvFrame(t, c.Outbound, time.Second); got.Type != FrameWelcome || got.UserID != 3 {
		t.Fatalf("Deliver: got %+v", got)
	}

	hub.CloseClient(c)
	if hub.Deliver(c, AckFrame("late")) {
		t.Fatalf("Deliver: expected closed client to refuse frames")
	}
	if hub.Deliver(nil, AckFrame("nil")) {
		t.Fatalf("Deliver: expected nil client to refuse frames")
	}
}
