package notification

import (
	"context"
	"sync"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
)

// Hub routes events to connected websocket sessions. Delivery is best
// effort, a session whose buffer is full loses the event instead of slowing
// down the publisher.
type Hub struct {
	sessions     map[string]*Session
	userSessions map[string]map[string]*Session

	mutex sync.RWMutex
	done  chan struct{}
	wg    sync.WaitGroup
}

func NewHub(ctx context.Context) *Hub {
	h := &Hub{
		sessions:     make(map[string]*Session),
		userSessions: make(map[string]map[string]*Session),
		done:         make(chan struct{}),
	}

	h.wg.Add(1)
	go h.runHeartbeat(ctx)
	return h
}

func (h *Hub) Register(s *Session) {
	h.mutex.RLock()
	_, ok := h.sessions[s.id]
	h.mutex.RUnlock()
	if ok {
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	// Double check.
	if _, ok := h.sessions[s.id]; ok {
		return
	}

	h.sessions[s.id] = s
	if s.channel == ChannelNotifications {
		if _, ok := h.userSessions[s.userID]; !ok {
			h.userSessions[s.userID] = make(map[string]*Session)
		}
		h.userSessions[s.userID][s.id] = s
	}

	common.PromGauges[common.WebsocketSessionsActive].
		WithLabelValues(s.channel).Inc()
}

func (h *Hub) Unregister(s *Session) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.sessions[s.id]; !ok {
		return
	}

	delete(h.sessions, s.id)
	if s.channel == ChannelNotifications {
		delete(h.userSessions[s.userID], s.id)
		if len(h.userSessions[s.userID]) == 0 {
			delete(h.userSessions, s.userID)
		}
	}

	close(s.C)
	common.PromGauges[common.WebsocketSessionsActive].
		WithLabelValues(s.channel).Dec()
}

// Broadcast delivers an event to every feed session.
func (h *Hub) Broadcast(ev *event.EventResponse) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, s := range h.sessions {
		if s.channel != ChannelFeed {
			continue
		}
		h.send(s, ev)
	}
}

// SendToUser delivers an event to every notification session of one user. It
// is a no-op when the user has no open session.
func (h *Hub) SendToUser(userID string, ev *event.EventResponse) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	for _, s := range h.userSessions[userID] {
		h.send(s, ev)
	}
}

func (h *Hub) send(s *Session, ev *event.EventResponse) {
	select {
	case s.C <- ev:
	default:
		common.PromCounters[common.NotificationDroppedTotal].
			WithLabelValues(s.channel).Inc()
	}
}

func (h *Hub) runHeartbeat(ctx context.Context) {
	defer h.wg.Done()

	interval := xcontext.Configs(ctx).Notifier.HeartbeatInterval
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-h.done:
			return
		case <-ticker.C:
			ev := event.New(&event.HeartbeatEvent{
				Timestamp: time.Now().UTC().Format(model.DefaultTimeLayout),
			})

			h.mutex.RLock()
			for _, s := range h.sessions {
				h.send(s, ev)
			}
			h.mutex.RUnlock()
		}
	}
}

// Shutdown stops the heartbeat loop and closes every session channel.
func (h *Hub) Shutdown(ctx context.Context) {
	close(h.done)
	h.wg.Wait()

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for _, s := range h.sessions {
		close(s.C)
		common.PromGauges[common.WebsocketSessionsActive].
			WithLabelValues(s.channel).Dec()
	}

	h.sessions = make(map[string]*Session)
	h.userSessions = make(map[string]map[string]*Session)
}
