package handlers

import (
	"io"
	"iter"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const closeGracePeriod = time.Second

// wsConn adapts a WebSocket to session.Conn. A text message may carry
// several newline-separated lines; every reply goes out as one message.
type wsConn struct {
	conn    *websocket.Conn
	pending []string
}

func newWSConn(conn *websocket.Conn) *wsConn {
	return &wsConn{conn: conn}
}

func (c *wsConn) ReadLine() (string, error) {
	for len(c.pending) == 0 {
		mt, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
				websocket.CloseAbnormalClosure,
			) {
				return "", io.EOF
			}
			return "", err
		}
		if mt != websocket.TextMessage {
			return "", io.EOF
		}
		for line := range splitLines(string(msg)) {
			c.pending = append(c.pending, line)
		}
	}

	line := c.pending[0]
	c.pending = c.pending[1:]
	return line, nil
}

func (c *wsConn) WriteString(s string) error {
	return c.conn.WriteMessage(websocket.TextMessage, []byte(s))
}

func (c *wsConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *wsConn) Close() error {
	// best effort; the peer may already be gone
	_ = c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(closeGracePeriod),
	)
	return c.conn.Close()
}

// splitLines yields the lines of s without terminators. A trailing newline
// does not start another line.
func splitLines(s string) iter.Seq[string] {
	return func(yield func(string) bool) {
		s = strings.TrimSuffix(s, "\n")
		for {
			line, rest, found := strings.Cut(s, "\n")
			if !yield(strings.TrimSuffix(line, "\r")) || !found {
				return
			}
			s = rest
		}
	}
}
