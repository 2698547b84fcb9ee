package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/multisweeper/internal/board"
	"github.com/vancomm/multisweeper/internal/config"
	"github.com/vancomm/multisweeper/internal/protocol"
	"github.com/vancomm/multisweeper/internal/session"
)

func newTestHandler(t *testing.T, spec string, debug bool) *BoardHandler {
	t.Helper()
	b, err := board.FromSpecification(strings.NewReader(spec))
	require.NoError(t, err)

	logger, _ := test.NewNullLogger()
	sessions := session.NewHandler(
		protocol.NewDispatcher(b), &session.Players{}, debug, logger,
	)
	return NewBoardHandler(logger, b, sessions, config.NewWebSocket())
}

func serve(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestLook(t *testing.T) {
	h := newTestHandler(t, "0 1\n0 0\n", false)

	rec := serve(h.Look, http.MethodGet, "/look")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Equal(t, "- -\n- -\n", rec.Body.String())
}

func TestMoves(t *testing.T) {
	h := newTestHandler(t, "0 1\n0 0\n", false)

	rec := serve(h.Flag, http.MethodPost, "/flag?x=1&y=0")
	assert.Equal(t, "- F\n- -\n", rec.Body.String())

	rec = serve(h.Dig, http.MethodPost, "/dig?x=1&y=0")
	assert.Equal(t, "- F\n- -\n", rec.Body.String(), "flagged cells cannot be dug")

	rec = serve(h.Deflag, http.MethodPost, "/deflag?x=1&y=0")
	assert.Equal(t, "- -\n- -\n", rec.Body.String())

	rec = serve(h.Dig, http.MethodPost, "/dig?x=0&y=1")
	assert.Equal(t, "- -\n1 -\n", rec.Body.String())

	rec = serve(h.Dig, http.MethodPost, "/dig?x=1&y=0")
	assert.Equal(t, "BOOM!\n", rec.Body.String())

	rec = serve(h.Look, http.MethodGet, "/look")
	assert.Equal(t, "   \n   \n", rec.Body.String())
}

func TestMoveOutOfBounds(t *testing.T) {
	h := newTestHandler(t, "0 1\n0 0\n", false)

	rec := serve(h.Dig, http.MethodPost, "/dig?x=5&y=-3")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "- -\n- -\n", rec.Body.String())
}

func TestMoveBadCoordinates(t *testing.T) {
	h := newTestHandler(t, "0 1\n0 0\n", false)

	for _, target := range []string{
		"/dig",
		"/dig?x=1",
		"/dig?y=1",
		"/dig?x=one&y=1",
		"/dig?x=1&y=1.5",
	} {
		t.Run(target, func(t *testing.T) {
			rec := serve(h.Dig, http.MethodPost, target)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body["error"], "invalid coordinates")
		})
	}

	rec := serve(h.Look, http.MethodGet, "/look")
	assert.Equal(t, "- -\n- -\n", rec.Body.String())
}

func TestStats(t *testing.T) {
	h := newTestHandler(t, "0 1 0\n0 0 0\n1 0 0\n", false)
	h.sessions.Players().Join()

	rec := serve(h.Stats, http.MethodGet, "/stats")
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var stats statsDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, statsDTO{Players: 1, Size: 3}, stats)
}
