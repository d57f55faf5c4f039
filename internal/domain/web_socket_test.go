package domain

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/internal/middleware"
	"github.com/WeepingDogel/simple-social-board-api/internal/model"
	"github.com/WeepingDogel/simple-social-board-api/internal/notification"
	"github.com/WeepingDogel/simple-social-board-api/pkg/router"
	"github.com/WeepingDogel/simple-social-board-api/pkg/testutil"
	"github.com/WeepingDogel/simple-social-board-api/pkg/xcontext"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func Test_wsDomain_ServeNotifications_handshake(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	hub := notification.NewHub(ctx)
	defer hub.Shutdown(ctx)
	wsDomain := NewWsDomain(hub)

	r := router.New(xcontext.DB(ctx), xcontext.Configs(ctx), xcontext.Logger(ctx))
	wsRouter := r.Branch()
	wsRouter.Before(middleware.NewAuthVerifier().WithAccessToken().Middleware())
	wsRouter.Websocket("/api/ws/notifications", wsDomain.ServeNotifications)

	server := httptest.NewServer(r.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws/notifications"

	// No token and an invalid token are both rejected during the handshake,
	// before any connected event.
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.Equal(t, 401, resp.StatusCode)

	conn, resp, err = websocket.DefaultDialer.Dial(wsURL+"?token=invalid", nil)
	require.Error(t, err)
	require.Nil(t, conn)
	require.Equal(t, 401, resp.StatusCode)

	// A valid token upgrades and receives the connected event first.
	token, err := xcontext.TokenEngine(ctx).Generate(time.Minute, model.AccessToken{
		ID:    testutil.User1.ID,
		Email: testutil.User1.Email,
	})
	require.NoError(t, err)

	conn, _, err = websocket.DefaultDialer.Dial(wsURL+"?token="+token, nil)
	require.NoError(t, err)
	defer conn.Close()

	_, message, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type string `json:"type"`
	}
	require.NoError(t, json.Unmarshal(message, &ev))
	require.Equal(t, "connected", ev.Type)
}
