// Package app assembles the board, the TCP server and the optional HTTP
// gateway.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/multisweeper/internal/board"
	"github.com/vancomm/multisweeper/internal/config"
	"github.com/vancomm/multisweeper/internal/middleware"
	"github.com/vancomm/multisweeper/internal/protocol"
	"github.com/vancomm/multisweeper/internal/server"
	"github.com/vancomm/multisweeper/internal/session"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	log      logrus.FieldLogger
	opts     config.Options
	env      config.Environment
	router   *http.ServeMux
	ws       *config.WebSocket
	board    *board.Board
	sessions *session.Handler
	tcp      *server.Server
	http     *http.Server
	httpLn   net.Listener
}

func New(log logrus.FieldLogger, opts config.Options, env config.Environment) *App {
	return &App{
		log:    log,
		opts:   opts,
		env:    env,
		router: http.NewServeMux(),
		ws:     config.NewWebSocket(),
	}
}

// Start listens and then serves until ctx is cancelled.
func (a *App) Start(ctx context.Context) error {
	if err := a.Listen(); err != nil {
		return err
	}
	return a.Serve(ctx)
}

// Listen builds the board and binds every listener. Nothing is served
// yet, so a bad board file or a taken port fails before any client is
// accepted.
func (a *App) Listen() error {
	b, err := a.loadBoard()
	if err != nil {
		return err
	}
	a.board = b
	a.log.WithField("size", b.Size()).Info("board ready")

	a.sessions = session.NewHandler(
		protocol.NewDispatcher(b), &session.Players{}, a.opts.Debug, a.log,
	)

	a.tcp = server.New(a.opts.Addr(a.env.BindHost), a.sessions, a.log)
	if err := a.tcp.Listen(); err != nil {
		return err
	}

	if a.env.HTTPAddr == "" {
		return nil
	}

	a.loadRoutes()
	a.http = &http.Server{
		Addr:         a.env.HTTPAddr,
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler: middleware.Wrap(
			a.router,
			middleware.Cors(),
			middleware.Logging(a.log),
		),
	}
	if a.httpLn, err = net.Listen("tcp", a.env.HTTPAddr); err != nil {
		a.tcp.Close()
		return fmt.Errorf("unable to listen on %s: %w", a.env.HTTPAddr, err)
	}
	return nil
}

// Serve runs the listeners bound by Listen. Cancelling ctx closes every
// session and shuts the gateway down.
func (a *App) Serve(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.tcp.Serve(gCtx)
	})

	if a.http != nil {
		// websocket sessions end with the gateway
		a.http.BaseContext = func(net.Listener) context.Context {
			return gCtx
		}

		g.Go(func() error {
			a.log.WithField("addr", a.httpLn.Addr().String()).Info("gateway listening")
			err := a.http.Serve(a.httpLn)
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		})
		g.Go(func() error {
			<-gCtx.Done()
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return a.http.Shutdown(ctx)
		})
	}

	return g.Wait()
}

// TCPAddr is the bound game address, nil before Listen.
func (a *App) TCPAddr() net.Addr {
	if a.tcp == nil {
		return nil
	}
	return a.tcp.Addr()
}

// HTTPAddr is the bound gateway address, nil when the gateway is off.
func (a *App) HTTPAddr() net.Addr {
	if a.httpLn == nil {
		return nil
	}
	return a.httpLn.Addr()
}
