package notification

import (
	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/google/uuid"
)

const (
	ChannelFeed          = "feed"
	ChannelNotifications = "notifications"
)

type Session struct {
	// C receives every event routed to this session. The hub never blocks on
	// it, a full buffer means dropped events.
	C chan *event.EventResponse

	id      string
	userID  string
	channel string
}

func NewSession(userID, channel string, buffer int) *Session {
	return &Session{
		C:       make(chan *event.EventResponse, buffer),
		id:      uuid.NewString(),
		userID:  userID,
		channel: channel,
	}
}

func (s *Session) UserID() string {
	return s.userID
}
