package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// ClientCount is read from the health handler's goroutine, so it must stay
// consistent while Run mutates the client set.
func TestClientCountTracksRegistrations(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	a := &Client{hub: hub, send: make(chan []byte, 1)}
	b := &Client{hub: hub, send: make(chan []byte, 1)}

	hub.register <- a
	hub.register <- b
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 },
		time.Second, 10*time.Millisecond)

	hub.unregister <- a
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)
}

func TestBroadcastReachesRemainingClients(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{hub: hub, send: make(chan []byte, 1)}
	hub.register <- client
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 },
		time.Second, 10*time.Millisecond)

	hub.Broadcast([]byte("update"))

	select {
	case msg := <-client.send:
		require.Equal(t, "update", string(msg))
	case <-time.After(time.Second):
		t.Fatal("broadcast never reached the client")
	}
}
