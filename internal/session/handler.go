// Package session runs the per-connection protocol loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/multisweeper/internal/protocol"
)

const welcome = "Welcome to Minesweeper. %d people are playing including you. Type 'help' for help.\n"

type Handler struct {
	dispatcher *protocol.Dispatcher
	players    *Players
	debug      bool
	log        logrus.FieldLogger
}

// NewHandler returns a session handler. In debug mode a client stays
// connected after digging a bomb.
func NewHandler(
	dispatcher *protocol.Dispatcher,
	players *Players,
	debug bool,
	log logrus.FieldLogger,
) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		players:    players,
		debug:      debug,
		log:        log,
	}
}

func (h *Handler) Players() *Players {
	return h.players
}

// Serve runs one client session until the client says bye, hangs up, digs
// a bomb outside debug mode, or ctx is cancelled. conn is closed on return
// and the player count is decremented exactly once. Hang-ups are not
// reported as errors.
func (h *Handler) Serve(ctx context.Context, conn Conn, transport string) error {
	log := h.log.WithFields(logrus.Fields{
		"remote":    conn.RemoteAddr(),
		"transport": transport,
	})

	defer conn.Close()
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	count := h.players.Join()
	log.WithField("players", count).Info("player joined")
	defer func() {
		log.WithField("players", h.players.Leave()).Info("player left")
	}()

	if err := conn.WriteString(fmt.Sprintf(welcome, count)); err != nil {
		return hangup(err)
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			return hangup(err)
		}

		reply, err := h.dispatcher.Handle(line)
		if err != nil {
			log.WithError(err).Debugf("ignoring %q", line)
			continue
		}
		log.Debugf("\t> %s", line)

		if err := conn.WriteString(terminate(reply)); err != nil {
			return hangup(err)
		}

		switch reply {
		case protocol.Bye:
			return nil
		case protocol.Boom:
			log.WithField("debug", h.debug).Info("boom")
			if !h.debug {
				return nil
			}
		}
	}
}

func terminate(reply string) string {
	if strings.HasSuffix(reply, "\n") {
		return reply
	}
	return reply + "\n"
}

func hangup(err error) error {
	if errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed) {
		return nil
	}
	return err
}
