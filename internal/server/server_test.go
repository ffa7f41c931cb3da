package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handrank/poker"
	"github.com/lox/handrank/ranktable"
)

func testLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func newTestServer(t *testing.T, scorer ranktable.Scorer) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer("localhost:0", scorer, WithLogger(testLogger()), WithTimeouts(5*time.Second, 5*time.Second))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, req any) ScoreResponse {
	t.Helper()
	require.NoError(t, conn.WriteJSON(req))
	var resp ScoreResponse
	require.NoError(t, conn.ReadJSON(&resp))
	return resp
}

func TestServerHealth(t *testing.T) {
	t.Parallel()

	srv := NewServer("localhost:0", nil, WithLogger(testLogger()))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestWebSocketScoring(t *testing.T) {
	t.Parallel()

	ladder, err := ranktable.NewLadder()
	require.NoError(t, err)
	_, ts := newTestServer(t, ladder)
	conn := dial(t, ts)

	tests := []struct {
		cards    string
		handType string
		key      []string
		score    uint32
	}{
		{"As Ks Qs Js Ts", "Straight Flush", []string{"A"}, ranktable.TotalHands},
		{"4h 4d 4c 4s 9s", "Quads", []string{"4", "9"}, 2598920 - 125*4},
		{"Ah 2c 3d 4s 5h", "Straight", []string{"5"}, 2579244 + 1020},
		{"7c 5d 4h 3s 2c", "High Card", []string{"7", "5", "4", "3", "2"}, 1020},
	}
	for i, tc := range tests {
		id := fmt.Sprint(i)
		resp := roundTrip(t, conn, ScoreRequest{ID: id, Cards: tc.cards})
		require.Empty(t, resp.Error, tc.cards)
		assert.Equal(t, id, resp.ID)
		assert.Equal(t, tc.handType, resp.HandType)
		assert.Equal(t, tc.key, resp.Key)
		assert.Equal(t, tc.score, resp.Score, tc.cards)
	}
}

func TestWebSocketErrors(t *testing.T) {
	t.Parallel()

	ladder, err := ranktable.NewLadder()
	require.NoError(t, err)
	_, ts := newTestServer(t, ladder)
	conn := dial(t, ts)

	resp := roundTrip(t, conn, ScoreRequest{ID: "dup", Cards: "As As Ks Qs Js"})
	assert.Equal(t, "dup", resp.ID)
	assert.Contains(t, resp.Error, poker.ErrInvalidHand.Error())
	assert.Zero(t, resp.Score)

	resp = roundTrip(t, conn, ScoreRequest{ID: "short", Cards: "As Ks"})
	assert.Contains(t, resp.Error, poker.ErrInvalidHand.Error())

	resp = roundTrip(t, conn, ScoreRequest{ID: "junk", Cards: "Zz Ks Qs Js Ts"})
	assert.NotEmpty(t, resp.Error)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))
	var bad ScoreResponse
	require.NoError(t, conn.ReadJSON(&bad))
	assert.Contains(t, bad.Error, errBadRequest.Error())

	// The connection keeps serving after errors
	resp = roundTrip(t, conn, ScoreRequest{ID: "ok", Cards: "As Ks Qs Js Ts"})
	assert.Empty(t, resp.Error)
	assert.Equal(t, uint32(ranktable.TotalHands), resp.Score)
}

type missingScorer struct{}

func (missingScorer) Score(h poker.Hand) (ranktable.Score, error) {
	return 0, fmt.Errorf("%w: %s", ranktable.ErrHandNotFound, h)
}

func TestWebSocketScorerFailure(t *testing.T) {
	t.Parallel()

	_, ts := newTestServer(t, missingScorer{})
	conn := dial(t, ts)

	resp := roundTrip(t, conn, ScoreRequest{ID: "x", Cards: "As Ks Qs Js Ts"})
	assert.Contains(t, resp.Error, ranktable.ErrHandNotFound.Error())
}

func TestDeadlinesFollowClock(t *testing.T) {
	t.Parallel()

	clock := quartz.NewMock(t)
	srv := NewServer("localhost:0", nil, WithClock(clock), WithTimeouts(time.Minute, time.Second))

	start := clock.Now()
	assert.Equal(t, start.Add(time.Minute), srv.deadline(srv.readTimeout))

	clock.Advance(30 * time.Second)
	assert.Equal(t, start.Add(30*time.Second+time.Second), srv.deadline(srv.writeTimeout))
}

func TestShutdownBeforeStart(t *testing.T) {
	t.Parallel()

	srv := NewServer("localhost:0", nil, WithLogger(testLogger()))
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, srv.Shutdown(ctx))
}
