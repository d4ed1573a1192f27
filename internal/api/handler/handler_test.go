package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solosphere/server/internal/api/handler"
	"github.com/solosphere/server/internal/api/router"
	"github.com/solosphere/server/internal/api/storage"
	"github.com/solosphere/server/internal/auth"
	"github.com/solosphere/server/internal/events"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, evt events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) published() []events.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.Event(nil), p.events...)
}

type testServer struct {
	engine    *gin.Engine
	store     *storage.Memory
	tokens    *auth.Manager
	publisher *recordingPublisher
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := storage.NewMemory()
	tokens, err := auth.NewManager(testSecret, time.Hour)
	require.NoError(t, err)

	publisher := &recordingPublisher{}

	deps := &handler.Dependencies{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Jobs:   store,
		Bids:   store,
		Events: publisher,
		Tokens: tokens,
	}

	engine := router.SetupRouter(deps, router.Options{
		CORSOrigin: "http://localhost:5173",
	})

	return &testServer{
		engine:    engine,
		store:     store,
		tokens:    tokens,
		publisher: publisher,
	}
}

// sessionCookie issues a valid session cookie for the given email.
func (s *testServer) sessionCookie(t *testing.T, email string) *http.Cookie {
	t.Helper()
	token, err := s.tokens.Issue(email)
	require.NoError(t, err)
	return &http.Cookie{Name: auth.CookieName, Value: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}
