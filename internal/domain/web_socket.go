package domain

import (
	"context"
	"net/http"

	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/WeepingDogel/simple-social-board-api/pkg/ws"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"
	"github.com/gorilla/websocket"
)

type WsDomain interface {
	ServeFeed(ctx context.Context, w http.ResponseWriter, r *http.Request)
	ServeNotifications(ctx context.Context, w http.ResponseWriter, r *http.Request)
}

type wsDomain struct {
	hub *notification.Hub
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func NewWsDomain(hub *notification.Hub) *wsDomain {
	return &wsDomain{hub: hub}
}

// ServeFeed streams the public firehose: new_post, new_like and new_repost
// events for everything happening on the board.
func (d *wsDomain) ServeFeed(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	d.serve(ctx, w, r, notification.ChannelFeed)
}

// ServeNotifications streams only events about the connected user's own
// posts.
func (d *wsDomain) ServeNotifications(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	d.serve(ctx, w, r, notification.ChannelNotifications)
}

func (d *wsDomain) serve(ctx context.Context, w http.ResponseWriter, r *http.Request, channel string) {
	// The feed channel accepts anonymous sockets, the per-user channel does
	// not.
	userID := xcontext.RequestUserID(ctx)
	if userID == "" && channel == notification.ChannelNotifications {
		http.Error(w, "Access token is not valid", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot upgrade connection: %v", err)
		return
	}

	session := notification.NewSession(
		userID, channel, xcontext.Configs(ctx).Notifier.SessionBuffer)
	d.hub.Register(session)

	client := ws.NewClient(conn)
	if b, err := event.New(&event.ConnectedEvent{Message: "connected"}).Marshal(); err == nil {
		if err := client.Write(b); err != nil {
			d.hub.Unregister(session)
			client.Close()
			return
		}
	}

	// Inbound payloads are ignored, the read pump only detects disconnects.
	go func() {
		for range client.R {
		}
		d.hub.Unregister(session)
	}()

	for ev := range session.C {
		b, err := ev.Marshal()
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot marshal event: %v", err)
			continue
		}

		if err := client.Write(b); err != nil {
			break
		}
	}

	d.hub.Unregister(session)
	client.Close()
}
