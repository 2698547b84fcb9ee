// Package server accepts TCP clients and hands each one to a session
// goroutine.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/multisweeper/internal/session"
)

type Server struct {
	addr     string
	handler  *session.Handler
	log      logrus.FieldLogger
	listener net.Listener
	sessions sync.WaitGroup
}

func New(addr string, handler *session.Handler, log logrus.FieldLogger) *Server {
	return &Server{
		addr:    addr,
		handler: handler,
		log:     log,
	}
}

// Listen binds the listening socket. Failing to bind is fatal for the
// process, so it is split from Serve to surface before anything else runs.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close releases the listener of a server that will not Serve.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

// Serve accepts clients until ctx is done, then closes the listener and
// waits for every session to finish. Errors from single clients never stop
// the loop.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	stop := context.AfterFunc(ctx, func() { s.listener.Close() })
	defer stop()

	s.log.WithField("addr", s.listener.Addr().String()).Info("accepting players")

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil && errors.Is(err, net.ErrClosed) {
				s.sessions.Wait()
				return nil
			}
			return fmt.Errorf("unable to accept: %w", err)
		}

		s.sessions.Add(1)
		go func() {
			defer s.sessions.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, conn net.Conn) {
	err := s.handler.Serve(ctx, session.NewLineConn(conn), "tcp")
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"remote": conn.RemoteAddr().String(),
			"error":  err,
		}).Warn("abnormal disconnect")
	}
}
