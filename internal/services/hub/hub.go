// Package hub fans todo change events out to connected live-update
// subscribers. Delivery is scoped to the owning user's connections and is at
// most once: subscribers whose buffers are full drop the event and are
// expected to re-fetch full state on reconnect.
package hub

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/techgit41/Advanced-Todo-App/domain"
	"github.com/techgit41/Advanced-Todo-App/usecase"
)

// EventName is the envelope name of every live-update message.
const EventName = "todoUpdated"

const defaultBuffer = 16

type envelope struct {
	Event string          `json:"event"`
	Data  domain.TodoEvent `json:"data"`
}

// Subscriber is one open live-update channel belonging to a user. Events
// arrive on Events() until Unsubscribe closes it.
type Subscriber struct {
	UserID string
	ch     chan []byte
	closed bool
}

// Events returns the stream of marshaled live-update messages.
func (s *Subscriber) Events() <-chan []byte {
	return s.ch
}

// Hub is the in-process subscriber registry. It is constructed once and
// passed to the websocket handler and the todo use case.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscriber]struct{}
	buffer int
	logger *zap.Logger
}

func New(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{
		subs:   make(map[string]map[*Subscriber]struct{}),
		buffer: defaultBuffer,
		logger: logger,
	}
}

// Subscribe registers a new live-update channel for userID.
func (h *Hub) Subscribe(userID string) *Subscriber {
	sub := &Subscriber{
		UserID: userID,
		ch:     make(chan []byte, h.buffer),
	}

	h.mu.Lock()
	group, ok := h.subs[userID]
	if !ok {
		group = make(map[*Subscriber]struct{})
		h.subs[userID] = group
	}
	group[sub] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("live-update subscriber connected", zap.String("user_id", userID))
	return sub
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// more than once.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	if sub == nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if sub.closed {
		return
	}
	sub.closed = true

	if group, ok := h.subs[sub.UserID]; ok {
		delete(group, sub)
		if len(group) == 0 {
			delete(h.subs, sub.UserID)
		}
	}
	close(sub.ch)

	h.logger.Info("live-update subscriber disconnected", zap.String("user_id", sub.UserID))
}

// SubscriberCount reports the number of currently open channels.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, group := range h.subs {
		total += len(group)
	}
	return total
}

// BroadcastTodo delivers the event to every subscriber of the owning user.
// The send never blocks; a full subscriber buffer drops the event.
func (h *Hub) BroadcastTodo(_ context.Context, event domain.TodoEvent) {
	payload, err := json.Marshal(envelope{Event: EventName, Data: event})
	if err != nil {
		h.logger.Error("failed to marshal todo event", zap.Error(err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs[event.UserID] {
		select {
		case sub.ch <- payload:
		default:
			h.logger.Warn("subscriber buffer full, event dropped",
				zap.String("user_id", event.UserID),
				zap.String("action", event.Action),
			)
		}
	}
}

var _ usecase.ChangeBroadcaster = (*Hub)(nil)
