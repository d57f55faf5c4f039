package prometheus

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/WeepingDogel/simple-social-board-api/internal/common"

	"github.com/stretchr/testify/require"
)

func Test_NewHandler(t *testing.T) {
	handler := NewHandler()

	common.PromCounters[common.HTTPRequestTotal].
		WithLabelValues("GET", "200").Inc()
	common.PromGauges[common.WebsocketSessionsActive].
		WithLabelValues("feed").Inc()
	common.PromCounters[common.NotificationDroppedTotal].
		WithLabelValues("feed").Inc()
	common.PromHistograms[common.HTTPRequestDurationSeconds].
		WithLabelValues("GET", "200").Observe(0.01)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	body, err := io.ReadAll(w.Result().Body)
	require.NoError(t, err)

	require.Contains(t, string(body), common.HTTPRequestTotal)
	require.Contains(t, string(body), common.WebsocketSessionsActive)
	require.Contains(t, string(body), common.NotificationDroppedTotal)
	require.Contains(t, string(body), common.HTTPRequestDurationSeconds)
}
