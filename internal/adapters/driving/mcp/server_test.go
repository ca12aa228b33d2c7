package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil search service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{Activity: &mockActivityService{}}, 20)
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingSearchService)
	})

	t.Run("nil activity service returns error", func(t *testing.T) {
		_, err := NewServer(&Ports{Search: &mockSearchService{}}, 20)
		assert.ErrorIs(t, err, ErrMissingActivityService)
	})

	t.Run("non-positive default limit falls back", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}, Activity: &mockActivityService{}}, 0)
		require.NoError(t, err)
		assert.Equal(t, 20, server.defaultLimit)
	})
}

func TestPorts_Validate(t *testing.T) {
	t.Run("required ports only", func(t *testing.T) {
		ports := &Ports{Search: &mockSearchService{}, Activity: &mockActivityService{}}
		assert.NoError(t, ports.Validate())
	})

	t.Run("all ports", func(t *testing.T) {
		ports := &Ports{
			Search:   &mockSearchService{},
			Activity: &mockActivityService{},
			Board:    &mockBoardService{},
			Calendar: &mockCalendarService{},
		}
		assert.NoError(t, ports.Validate())
	})
}

func TestServer_RunHTTP_StopsOnCancel(t *testing.T) {
	server := newTestServer(t, &Ports{Search: &mockSearchService{}, Activity: &mockActivityService{}})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.RunHTTP(ctx, "127.0.0.1:0") }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("MCP HTTP server did not stop")
	}
}

func TestHandler_Healthz(t *testing.T) {
	server := newTestServer(t, &Ports{
		Search:   &mockSearchService{},
		Activity: &mockActivityService{},
	})

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
