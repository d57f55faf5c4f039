package authenticator_test

import (
	"testing"
	"time"

	"github.com/WeepingDogel/simple-social-board-api/pkg/authenticator"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID string `json:"id"`
}

func TestTokenEngine(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, payload{ID: "abc"})
	require.Nil(t, err)

	var got payload
	require.Nil(t, engine.Verify(token, &got))
	require.Equal(t, "abc", got.ID)
}

func TestTokenEngineExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, payload{ID: "abc"})
	require.Nil(t, err)

	var got payload
	require.NotNil(t, engine.Verify(token, &got))
}

func TestTokenEngineWrongSecret(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, payload{ID: "abc"})
	require.Nil(t, err)

	var got payload
	require.NotNil(t, authenticator.NewTokenEngine("not secret").Verify(token, &got))
}
