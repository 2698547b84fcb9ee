package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/vancomm/multisweeper/internal/board"
	"github.com/vancomm/multisweeper/internal/handlers"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadBoard() (*board.Board, error) {
	if a.opts.File != "" {
		a.log.WithField("file", a.opts.File).Debug("loading board")
		return board.FromFile(a.opts.File)
	}
	return board.FromSize(a.opts.Size, createRand())
}

func (a *App) loadRoutes() {
	h := handlers.NewBoardHandler(a.log, a.board, a.sessions, a.ws)

	a.router.HandleFunc("GET /look", h.Look)
	a.router.HandleFunc("POST /dig", h.Dig)
	a.router.HandleFunc("POST /flag", h.Flag)
	a.router.HandleFunc("POST /deflag", h.Deflag)
	a.router.HandleFunc("GET /stats", h.Stats)
	a.router.HandleFunc("GET /connect", h.ConnectWS)
}
