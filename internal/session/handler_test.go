package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/multisweeper/internal/board"
	"github.com/vancomm/multisweeper/internal/protocol"
)

const twoByTwo = "0 1\n0 0\n"

type client struct {
	t    *testing.T
	conn net.Conn
	r    *bufio.Reader
	done chan error
}

func newTestHandler(t *testing.T, spec string, debug bool) (*Handler, *test.Hook) {
	t.Helper()
	b, err := board.FromSpecification(strings.NewReader(spec))
	require.NoError(t, err)
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	return NewHandler(protocol.NewDispatcher(b), &Players{}, debug, logger), hook
}

func connect(ctx context.Context, t *testing.T, h *Handler) *client {
	t.Helper()
	server, conn := net.Pipe()
	c := &client{t: t, conn: conn, r: bufio.NewReader(conn), done: make(chan error, 1)}
	go func() {
		c.done <- h.Serve(ctx, NewLineConn(server), "pipe")
	}()
	t.Cleanup(func() { conn.Close() })
	return c
}

func (c *client) send(line string) {
	c.t.Helper()
	_, err := io.WriteString(c.conn, line+"\n")
	require.NoError(c.t, err)
}

func (c *client) expect(lines ...string) {
	c.t.Helper()
	for _, want := range lines {
		got, err := c.r.ReadString('\n')
		require.NoError(c.t, err)
		assert.Equal(c.t, want+"\n", got)
	}
}

func (c *client) expectClosed() {
	c.t.Helper()
	_, err := c.r.ReadString('\n')
	assert.ErrorIs(c.t, err, io.EOF)
	select {
	case err := <-c.done:
		assert.NoError(c.t, err)
	case <-time.After(time.Second):
		c.t.Fatal("session did not end")
	}
}

func welcomeLine(n int) string {
	return strings.TrimSuffix(fmt.Sprintf(welcome, n), "\n")
}

func TestWelcomeCountsPlayers(t *testing.T) {
	h, _ := newTestHandler(t, twoByTwo, false)
	ctx := context.Background()

	first := connect(ctx, t, h)
	first.expect(welcomeLine(1))

	second := connect(ctx, t, h)
	second.expect(welcomeLine(2))
	assert.Equal(t, int64(2), h.Players().Count())

	second.send("bye")
	second.expect("bye")
	second.expectClosed()
	assert.Equal(t, int64(1), h.Players().Count())

	first.conn.Close()
	select {
	case err := <-first.done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("session did not end")
	}
	assert.Equal(t, int64(0), h.Players().Count())
}

func TestInvalidLinesAreIgnored(t *testing.T) {
	h, hook := newTestHandler(t, twoByTwo, false)
	c := connect(context.Background(), t, h)
	c.expect(welcomeLine(1))

	c.send("foo bar")
	c.send("dig one two")
	c.send("look")
	c.expect("- -", "- -")

	ignored := 0
	for _, entry := range hook.AllEntries() {
		if strings.HasPrefix(entry.Message, "ignoring") {
			ignored++
		}
	}
	assert.Equal(t, 2, ignored)
}

func TestCommands(t *testing.T) {
	h, _ := newTestHandler(t, twoByTwo, false)
	c := connect(context.Background(), t, h)
	c.expect(welcomeLine(1))

	c.send("help")
	c.expect(protocol.Help)

	c.send("flag 0 0")
	c.expect("F -", "- -")

	c.send("deflag 0 0\r")
	c.expect("- -", "- -")

	c.send("dig 0 1")
	c.expect("- -", "1 -")

	c.send("dig 9 9")
	c.expect("- -", "1 -")
}

func TestBoomDisconnects(t *testing.T) {
	h, hook := newTestHandler(t, twoByTwo, false)
	c := connect(context.Background(), t, h)
	c.expect(welcomeLine(1))

	c.send("dig 1 0")
	c.expect("BOOM!")
	c.expectClosed()
	assert.Equal(t, int64(0), h.Players().Count())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "player left", hook.LastEntry().Message)
}

func TestBoomInDebugModeKeepsConnection(t *testing.T) {
	h, _ := newTestHandler(t, twoByTwo, true)
	c := connect(context.Background(), t, h)
	c.expect(welcomeLine(1))

	c.send("dig 1 0")
	c.expect("BOOM!")

	c.send("look")
	c.expect("   ", "   ")

	c.send("bye")
	c.expect("bye")
	c.expectClosed()
}

func TestCancelClosesSession(t *testing.T) {
	h, _ := newTestHandler(t, twoByTwo, false)
	ctx, cancel := context.WithCancel(context.Background())
	c := connect(ctx, t, h)
	c.expect(welcomeLine(1))

	cancel()
	c.expectClosed()
	assert.Equal(t, int64(0), h.Players().Count())
}

func TestLineConnFinalLineWithoutNewline(t *testing.T) {
	server, conn := net.Pipe()
	go func() {
		io.WriteString(conn, "look\r\nbye")
		conn.Close()
	}()

	lc := NewLineConn(server)
	line, err := lc.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "look", line)

	line, err = lc.ReadLine()
	require.NoError(t, err)
	assert.Equal(t, "bye", line)

	_, err = lc.ReadLine()
	assert.ErrorIs(t, err, io.EOF)
}
