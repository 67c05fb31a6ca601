package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/coder/websocket"
)

// LikeUpdate is broadcast whenever a toggle changes an item's counter,
// so open feeds can show live like counts.
type LikeUpdate struct {
	Type       string `json:"type"`
	ItemKind   string `json:"item_kind"`
	ItemID     string `json:"item_id"`
	LikesCount int    `json:"likes_count"`
}

// Hub fans like-count updates out to WebSocket subscribers.
type Hub struct {
	// Controls the message queue's window size
	// Messages exceeding the window get dropped
	subscriberMessageBuffer int

	// Rate limit for broadcasts
	// Default: 1 every 100ms, burst capacity of 8
	publishLimiter *rate.Limiter

	// Sets logger to the default log.Printf
	logf func(format string, v ...any)

	// Mutex to ensure goroutine-safe access to subscribers
	subscribersMutex sync.Mutex
	subscribers      map[*Subscriber]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscriberMessageBuffer: 12,
		publishLimiter:          rate.NewLimiter(rate.Every(time.Millisecond*100), 8),
		logf:                    log.Printf,
		subscribers:             make(map[*Subscriber]struct{}),
	}
}

// PublishLikeUpdate broadcasts one counter change to every subscriber.
// Implements likes.Publisher.
func (h *Hub) PublishLikeUpdate(kind, itemID string, likesCount int) {
	update := LikeUpdate{
		Type:       "LIKE_UPDATE",
		ItemKind:   kind,
		ItemID:     itemID,
		LikesCount: likesCount,
	}
	msg, err := json.Marshal(update)
	if err != nil {
		h.logf("Failed to marshal like update: %v", err)
		return
	}
	h.publish(msg)
}

// Publish message to all subscribers
// Subscribers that cannot immediately receive the message are
// considered too slow and get disconnected
func (h *Hub) publish(msg []byte) {
	h.publishLimiter.Wait(context.Background())

	h.subscribersMutex.Lock()
	defer h.subscribersMutex.Unlock()

	for s := range h.subscribers {
		select {
		case s.messc <- msg:
		default:
			go s.closeSlow()
		}
	}
}

func (h *Hub) addSubscriber(s *Subscriber) {
	h.subscribersMutex.Lock()
	defer h.subscribersMutex.Unlock()
	h.subscribers[s] = struct{}{}
}

func (h *Hub) removeSubscriber(s *Subscriber) {
	h.subscribersMutex.Lock()
	defer h.subscribersMutex.Unlock()
	delete(h.subscribers, s)
}

// SubscriberCount returns the number of connected subscribers.
func (h *Hub) SubscriberCount() int {
	h.subscribersMutex.Lock()
	defer h.subscribersMutex.Unlock()
	return len(h.subscribers)
}

// Writes msg to the WebSocket connection conn
// Uses a timeout to prevent slow clients from blocking indefinitely
func writeTimeout(ctx context.Context, timeout time.Duration, conn *websocket.Conn, msg []byte) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return conn.Write(ctx, websocket.MessageText, msg)
}

// SubscribeHandler accepts WebSocket connections and subscribes them to
// like updates.
func (h *Hub) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	err := h.subscribe(w, r)
	if errors.Is(err, context.Canceled) {
		h.logf("Subscription canceled: %v", err)
		return
	}

	if websocket.CloseStatus(err) == websocket.StatusNormalClosure || websocket.CloseStatus(err) == websocket.StatusGoingAway {
		h.logf("WebSocket connection closed: %v", err)
		return
	}

	if err != nil {
		h.logf("Failed to subscribe: %v", err)
		return
	}
}

// subscribe registers the connection, writes every broadcast to it and
// tears the subscription down when the client stops reading or falls
// too far behind.
func (h *Hub) subscribe(w http.ResponseWriter, r *http.Request) error {
	var mutex sync.Mutex
	var conn *websocket.Conn
	var closed bool

	s := NewSubscriber(make(chan []byte, h.subscriberMessageBuffer), func() {
		// Using mutex ensures the wrong subscriber isn't set to closed
		mutex.Lock()
		defer mutex.Unlock()

		closed = true

		if conn != nil {
			conn.Close(websocket.StatusPolicyViolation, "Connection is too slow to keep up with messages")
		}
	})

	h.addSubscriber(s)
	defer h.removeSubscriber(s)

	opts := websocket.AcceptOptions{
		InsecureSkipVerify: true,
	}

	connRes, err := websocket.Accept(w, r, &opts)
	if err != nil {
		return err
	}

	// closeSlow could have fired from a broadcast goroutine before conn
	// was assigned; check under the mutex before keeping the connection
	mutex.Lock()
	if closed {
		mutex.Unlock()
		return net.ErrClosed
	}
	conn = connRes
	mutex.Unlock()
	defer conn.CloseNow()

	// Context that is canceled when the WebSocket's read side closes,
	// so the loop below stops when the client goes away
	ctx := conn.CloseRead(context.Background())

	for {
		select {
		case msg := <-s.messc:
			// 5 second timeout for writing messages
			err := writeTimeout(ctx, time.Second*5, conn, msg)
			if err != nil {
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
