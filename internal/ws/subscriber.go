package ws

import (
	"sync"
)

var (
	nextSubscriberID   int
	nextSubscriberIDMu sync.Mutex
)

// Subscriber represents one connected feed client.
// Each subscriber gets a unique numeric id (starting at 0), a message
// channel and a closeSlow callback.
type Subscriber struct {
	id        int
	messc     chan []byte // Channel for incoming messages
	closeSlow func()
}

// NewSubscriber allocates a subscriber id and returns a ready subscriber.
func NewSubscriber(messc chan []byte, closeSlow func()) *Subscriber {
	nextSubscriberIDMu.Lock()
	id := nextSubscriberID
	nextSubscriberID++
	nextSubscriberIDMu.Unlock()

	return &Subscriber{
		id:        id,
		messc:     messc,
		closeSlow: closeSlow,
	}
}

// ID returns the subscriber's id.
func (s *Subscriber) ID() int { return s.id }
