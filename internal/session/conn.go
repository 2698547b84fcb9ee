package session

import (
	"bufio"
	"net"
	"strings"
)

// Conn is a line-oriented client transport.
//
// ReadLine returns one line without its terminator. A client hanging up
// must surface as [io.EOF] or [net.ErrClosed].
type Conn interface {
	ReadLine() (string, error)
	WriteString(s string) error
	RemoteAddr() string
	Close() error
}

type lineConn struct {
	conn net.Conn
	r    *bufio.Reader
	w    *bufio.Writer
}

// NewLineConn wraps a stream connection: lines end in "\n" or "\r\n".
func NewLineConn(conn net.Conn) Conn {
	return &lineConn{
		conn: conn,
		r:    bufio.NewReader(conn),
		w:    bufio.NewWriter(conn),
	}
}

func (c *lineConn) ReadLine() (string, error) {
	line, err := c.r.ReadString('\n')
	if err != nil {
		// a final line without terminator is still a line
		if line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

func (c *lineConn) WriteString(s string) error {
	if _, err := c.w.WriteString(s); err != nil {
		return err
	}
	return c.w.Flush()
}

func (c *lineConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

func (c *lineConn) Close() error {
	return c.conn.Close()
}
