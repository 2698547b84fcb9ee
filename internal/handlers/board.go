package handlers

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/multisweeper/internal/config"
	"github.com/vancomm/multisweeper/internal/protocol"
	"github.com/vancomm/multisweeper/internal/session"
)

type Board interface {
	protocol.Board
	Size() int
}

type BoardHandler struct {
	log      logrus.FieldLogger
	board    Board
	sessions *session.Handler
	ws       *config.WebSocket
}

func NewBoardHandler(
	log logrus.FieldLogger,
	board Board,
	sessions *session.Handler,
	ws *config.WebSocket,
) *BoardHandler {
	return &BoardHandler{
		log:      log,
		board:    board,
		sessions: sessions,
		ws:       ws,
	}
}

func (h BoardHandler) Look(w http.ResponseWriter, r *http.Request) {
	SendTextOrLog(w, h.log, h.board.Look())
}

func (h BoardHandler) Dig(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.board.Dig)
}

func (h BoardHandler) Flag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.board.Flag)
}

func (h BoardHandler) Deflag(w http.ResponseWriter, r *http.Request) {
	h.move(w, r, h.board.Deflag)
}

func (h BoardHandler) move(
	w http.ResponseWriter, r *http.Request, op func(row, col int) string,
) {
	p, err := decodePoint(r.URL.Query())
	if err != nil {
		h.log.WithError(err).Debug("invalid move")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		SendErrorOrLog(w, h.log, fmt.Errorf("invalid coordinates: %w", err))
		return
	}
	SendTextOrLog(w, h.log, op(p.Y, p.X))
}

type statsDTO struct {
	Players int64 `json:"players"`
	Size    int   `json:"size"`
}

func (h BoardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	SendJSONOrLog(w, h.log, statsDTO{
		Players: h.sessions.Players().Count(),
		Size:    h.board.Size(),
	})
}

// ConnectWS runs a protocol session over a WebSocket until it ends.
func (h BoardHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied
		h.log.WithError(err).Debug("websocket upgrade failed")
		return
	}
	conn.SetReadLimit(h.ws.ReadLimit)

	if err := h.sessions.Serve(r.Context(), newWSConn(conn), "ws"); err != nil {
		h.log.WithError(err).Warn("abnormal disconnect")
	}
}
