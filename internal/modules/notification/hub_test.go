package notification

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"salonbook/internal/domain"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// dialHub upgrades a real websocket against the hub and returns the client
// side.
func dialHub(t *testing.T, hub *Hub, operatorID int64) *websocket.Conn {
	t.Helper()

	up := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := up.Upgrade(w, r, nil)
		require.NoError(t, err)
		hub.Register(operatorID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	require.Eventually(t, func() bool { return hub.OnlineCount() == 1 },
		time.Second, 10*time.Millisecond)
	return client
}

func TestHub_ConcurrentBroadcasts(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := dialHub(t, hub, 1)

	// Several bookings landing at once all push through the same conn; the
	// per-connection write lock keeps the frames intact.
	const writers = 8
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int64) {
			defer wg.Done()
			hub.BookingCreated(&domain.Booking{ID: n, Time: "14:00"})
		}(int64(i))
	}
	wg.Wait()

	seen := make(map[int64]bool)
	for i := 0; i < writers; i++ {
		require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
		var ev Event
		require.NoError(t, client.ReadJSON(&ev))
		assert.Equal(t, EventBookingCreated, ev.Type)
		require.NotNil(t, ev.Booking)
		seen[ev.Booking.ID] = true
	}
	assert.Len(t, seen, writers, "every broadcast arrives exactly once")
}

func TestHub_BroadcastAlongsidePings(t *testing.T) {
	hub := NewHub(zap.NewNop())
	client := dialHub(t, hub, 1)

	hub.mutex.RLock()
	oc := hub.connections[1]
	hub.mutex.RUnlock()
	require.NotNil(t, oc)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			if err := oc.ping(); err != nil {
				return
			}
		}
	}()

	for i := 0; i < 50; i++ {
		hub.BookingCancelled(&domain.Booking{ID: int64(i)})
	}
	<-done

	// Control messages are handled inside ReadJSON; the data frames must
	// still parse.
	require.NoError(t, client.SetReadDeadline(time.Now().Add(time.Second)))
	var ev Event
	require.NoError(t, client.ReadJSON(&ev))
	assert.Equal(t, EventBookingCancelled, ev.Type)
}

func TestHub_UnregisterClosesAndForgets(t *testing.T) {
	hub := NewHub(zap.NewNop())
	dialHub(t, hub, 7)

	hub.Unregister(7)
	assert.Zero(t, hub.OnlineCount())

	// Broadcasting to nobody is a no-op, not a panic.
	hub.BookingCreated(&domain.Booking{ID: 1})
}
