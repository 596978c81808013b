package websocket

import (
	"context"
	"testing"
	"time"

	"collabhub-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestHub_DeliverReachesEveryDevice(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	userID := uuid.New()
	phone := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	laptop := &Client{Hub: hub, UserID: userID, Send: make(chan []byte, 1)}
	other := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- phone
	hub.register <- laptop
	hub.register <- other
	waitFor(t, func() bool { return hub.Connected(userID) == 2 })

	hub.Deliver(userID, []byte(`{"type":"notification"}`))

	assert.Equal(t, `{"type":"notification"}`, string(<-phone.Send))
	assert.Equal(t, `{"type":"notification"}`, string(<-laptop.Send))
	assert.Len(t, other.Send, 0)
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	waitFor(t, func() bool { return hub.Connected(client.UserID) == 1 })

	hub.unregister <- client
	waitFor(t, func() bool { return hub.Connected(client.UserID) == 0 })

	_, open := <-client.Send
	require.False(t, open)
}

func TestHub_FullBufferDropsConnection(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 1)}
	hub.register <- client
	waitFor(t, func() bool { return hub.Connected(client.UserID) == 1 })

	hub.Deliver(client.UserID, []byte("first"))
	hub.Deliver(client.UserID, []byte("second"))

	waitFor(t, func() bool { return hub.Connected(client.UserID) == 0 })
}

func TestHub_DeliverWhileUnregistering(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(nil, logger.NewNopLogger())
	go hub.Run(ctx)

	for i := 0; i < 200; i++ {
		client := &Client{Hub: hub, UserID: uuid.New(), Send: make(chan []byte, 8)}
		hub.register <- client
		waitFor(t, func() bool { return hub.Connected(client.UserID) == 1 })

		done := make(chan struct{})
		go func() {
			defer close(done)
			for j := 0; j < 50; j++ {
				hub.Deliver(client.UserID, []byte("frame"))
				client.Hub.offer(client, []byte("pong"))
			}
		}()
		hub.unregister <- client
		<-done

		waitFor(t, func() bool { return hub.Connected(client.UserID) == 0 })
		for range client.Send {
		}
	}
}
