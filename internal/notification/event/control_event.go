package event

// CONNECTED EVENT
type ConnectedEvent struct {
	Message string `json:"message"`
}

func (*ConnectedEvent) Type() string {
	return "connected"
}

// HEARTBEAT EVENT
type HeartbeatEvent struct {
	Timestamp string `json:"timestamp"`
}

func (*HeartbeatEvent) Type() string {
	return "heartbeat"
}

// NOTIFICATION EVENT is delivered only to the user whose post was liked,
// reposted or replied to.
type NotificationEvent struct {
	Kind    string `json:"kind"`
	PostID  string `json:"post_id"`
	ActorID string `json:"actor_id"`
	Message string `json:"message"`
}

func (*NotificationEvent) Type() string {
	return "notification"
}
