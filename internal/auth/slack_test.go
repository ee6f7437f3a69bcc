package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"guardian-beam/internal/api"
	"guardian-beam/internal/config"
	"guardian-beam/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlackServer(t *testing.T, body string) *api.SlackClient {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return api.NewSlackClient(&config.Config{Slack: config.Slack{TeamID: "T1", APIURL: srv.URL}})
}

func TestSlackVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("member of the workspace", func(t *testing.T) {
		v := NewSlackVerifier(newSlackServer(t, `{"ok":true,"team_id":"T1","user_id":"U1"}`))

		playerID, err := v.Verify(ctx, "xoxp")
		require.NoError(t, err)
		assert.Equal(t, "U1", playerID)
	})

	t.Run("other workspace", func(t *testing.T) {
		v := NewSlackVerifier(newSlackServer(t, `{"ok":true,"team_id":"T2","user_id":"U1"}`))

		_, err := v.Verify(ctx, "xoxp")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		assert.ErrorContains(t, err, "T2")
	})

	t.Run("revoked token", func(t *testing.T) {
		v := NewSlackVerifier(newSlackServer(t, `{"ok":false,"error":"token_revoked"}`))

		_, err := v.Verify(ctx, "xoxp")
		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
	})
}
