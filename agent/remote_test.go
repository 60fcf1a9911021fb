package agent

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"quoridor/codec"
	"quoridor/config"
)

func TestRemoteAgent(t *testing.T) {
	srv := httptest.NewServer(NewServer(&ShortestPathAgent{}).Routes())
	defer srv.Close()

	t.Run("plays the served agent's move", func(t *testing.T) {
		a := NewRemoteAgent(srv.URL + "/")
		obs, info := last(t, "e2")
		action, err := a.Act(context.Background(), obs, 0, info)
		require.NoError(t, err)
		require.Equal(t, codec.MustToDiscrete("e8"), action)
		require.Equal(t, "e8", a.Report().Move)
	})

	t.Run("server errors surface", func(t *testing.T) {
		a := NewRemoteAgent(srv.URL)
		obs, info := last(t, "e2")
		info.PGN = "e2/e2"
		_, err := a.Act(context.Background(), obs, 0, info)
		require.ErrorContains(t, err, "400")
	})

	t.Run("factory needs a server url", func(t *testing.T) {
		cfg := config.Default()
		_, err := NewAgent(config.AgentRemote, 2, cfg)
		require.Error(t, err)

		cfg.Remote = srv.URL
		a, err := NewAgent(config.AgentRemote, 2, cfg)
		require.NoError(t, err)
		require.IsType(t, &RemoteAgent{}, a)
	})
}
