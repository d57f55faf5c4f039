package notification

import (
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/notification/event"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"

	"github.com/stretchr/testify/require"
)

func Test_Hub_Broadcast(t *testing.T) {
	ctx := testutil.MockContext()
	hub := NewHub(ctx)
	defer hub.Shutdown(ctx)

	feed1 := NewSession("user1", ChannelFeed, 4)
	feed2 := NewSession("user2", ChannelFeed, 4)
	notif := NewSession("user1", ChannelNotifications, 4)
	hub.Register(feed1)
	hub.Register(feed2)
	hub.Register(notif)

	hub.Broadcast(event.New(&event.NewLikeEvent{PostID: "post1", UserID: "user2", LikeCount: 1}))

	for _, s := range []*Session{feed1, feed2} {
		ev := <-s.C
		require.Equal(t, "new_like", ev.Type)
	}

	// Only feed sessions receive broadcasts.
	require.Empty(t, notif.C)
}

func Test_Hub_SendToUser(t *testing.T) {
	ctx := testutil.MockContext()
	hub := NewHub(ctx)
	defer hub.Shutdown(ctx)

	target := NewSession("user1", ChannelNotifications, 4)
	other := NewSession("user2", ChannelNotifications, 4)
	feed := NewSession("user1", ChannelFeed, 4)
	hub.Register(target)
	hub.Register(other)
	hub.Register(feed)

	hub.SendToUser("user1", event.New(&event.NotificationEvent{
		Kind:    "like",
		PostID:  "post1",
		ActorID: "user2",
	}))

	ev := <-target.C
	require.Equal(t, "notification", ev.Type)
	require.Empty(t, other.C)
	require.Empty(t, feed.C)

	// Unknown user is a no-op.
	hub.SendToUser("missing", event.New(&event.NotificationEvent{Kind: "like"}))
}

func Test_Hub_fullBufferDropsEvent(t *testing.T) {
	ctx := testutil.MockContext()
	hub := NewHub(ctx)
	defer hub.Shutdown(ctx)

	s := NewSession("user1", ChannelFeed, 1)
	hub.Register(s)

	hub.Broadcast(event.New(&event.HeartbeatEvent{Timestamp: "t1"}))
	hub.Broadcast(event.New(&event.HeartbeatEvent{Timestamp: "t2"}))

	// The second event is dropped, not queued.
	require.Len(t, s.C, 1)
}

func Test_Hub_Unregister(t *testing.T) {
	ctx := testutil.MockContext()
	hub := NewHub(ctx)
	defer hub.Shutdown(ctx)

	s := NewSession("user1", ChannelNotifications, 4)
	hub.Register(s)
	hub.Unregister(s)

	_, ok := <-s.C
	require.False(t, ok)

	// A second unregister of the same session is a no-op.
	hub.Unregister(s)

	hub.SendToUser("user1", event.New(&event.NotificationEvent{Kind: "like"}))
}

func Test_Hub_Shutdown(t *testing.T) {
	ctx := testutil.MockContext()
	hub := NewHub(ctx)

	s1 := NewSession("user1", ChannelFeed, 4)
	s2 := NewSession("user2", ChannelNotifications, 4)
	hub.Register(s1)
	hub.Register(s2)

	hub.Shutdown(ctx)

	_, ok := <-s1.C
	require.False(t, ok)

	_, ok = <-s2.C
	require.False(t, ok)
}
