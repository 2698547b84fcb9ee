package session

import "sync/atomic"

// Players counts connected clients. It is independent of the board lock.
type Players struct {
	n atomic.Int64
}

func (p *Players) Join() int64 {
	return p.n.Add(1)
}

func (p *Players) Leave() int64 {
	return p.n.Add(-1)
}

func (p *Players) Count() int64 {
	return p.n.Load()
}
