package board

import (
	"strings"
	"sync"
)

// Boom is the response to digging a cell that held a bomb.
const Boom = "BOOM!\n"

// Board is a square minesweeper grid shared by every connected player.
//
// All operations run under a single board-wide lock: no two operations,
// reads included, ever interleave, and a dig (flood fill and defusal
// included) is atomic as seen by any other caller.
type Board struct {
	mu    sync.Mutex
	size  int
	cells []Cell /* row-major, i = row*size + col */
}

func newBoard(size int, bombs []bool) *Board {
	cells := make([]Cell, size*size)
	for i := range cells {
		cells[i].Bomb = bombs[i]
	}
	return &Board{size: size, cells: cells}
}

// Size returns the width (and height) of the board.
func (b *Board) Size() int {
	return b.size
}

func (b *Board) locked(op func() string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return op()
}

// Look renders the board, one row per line.
func (b *Board) Look() string {
	return b.locked(b.render)
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	return b.Look()
}

// Flag marks a hidden cell. Anything else is a no-op.
func (b *Board) Flag(row, col int) string {
	return b.locked(func() string {
		if c := b.at(row, col); c != nil && c.State == Hidden {
			c.State = Flagged
		}
		return b.render()
	})
}

// Deflag unmarks a flagged cell. Anything else is a no-op.
func (b *Board) Deflag(row, col int) string {
	return b.locked(func() string {
		if c := b.at(row, col); c != nil && c.State == Flagged {
			c.State = Hidden
		}
		return b.render()
	})
}

// Dig reveals a hidden cell. It returns [Boom] when the cell held a bomb
// and the rendered board otherwise.
func (b *Board) Dig(row, col int) string {
	return b.locked(func() string {
		return b.dig(row, col)
	})
}

func (b *Board) dig(row, col int) string {
	c := b.at(row, col)
	if c == nil || c.State != Hidden {
		return b.render()
	}

	i := row*b.size + col
	if !c.Bomb {
		b.reveal(i)
		b.expand(i)
		return b.render()
	}

	/*
	 * The bomb is defused. Revealed neighbours were counting it, so their
	 * digits drop by one, and any that fall to zero now open up.
	 */
	c.Bomb = false
	seeds := make([]int, 0, 9)
	b.around(i, func(j int) {
		n := &b.cells[j]
		if n.State == Revealed && n.Count > 0 {
			n.Count--
			if n.Count == 0 {
				seeds = append(seeds, j)
			}
		}
	})
	b.reveal(i)
	seeds = append(seeds, i)
	b.expand(seeds...)
	return Boom
}

func (b *Board) reveal(i int) {
	b.cells[i].State = Revealed
	b.cells[i].Count = b.bombsAround(i)
}

// expand opens the hidden neighbours of every zero cell reachable from
// seeds. Cells are revealed before they are pushed, so each one enters the
// worklist at most once.
func (b *Board) expand(seeds ...int) {
	stack := append([]int(nil), seeds...)
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if b.cells[i].Count != 0 {
			continue
		}
		b.around(i, func(j int) {
			if b.cells[j].State == Hidden {
				b.reveal(j)
				stack = append(stack, j)
			}
		})
	}
}

func (b *Board) bombsAround(i int) (n int8) {
	b.around(i, func(j int) {
		if b.cells[j].Bomb {
			n++
		}
	})
	return
}

// around calls fn for each in-bounds 8-neighbour of cell i, top-left to
// bottom-right.
func (b *Board) around(i int, fn func(j int)) {
	row, col := i/b.size, i%b.size
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if b.inBounds(row+dr, col+dc) {
				fn((row+dr)*b.size + (col + dc))
			}
		}
	}
}

func (b *Board) inBounds(row, col int) bool {
	return 0 <= row && row < b.size && 0 <= col && col < b.size
}

func (b *Board) at(row, col int) *Cell {
	if !b.inBounds(row, col) {
		return nil
	}
	return &b.cells[row*b.size+col]
}

func (b *Board) render() string {
	var sb strings.Builder
	sb.Grow(2 * len(b.cells))
	for row := range b.size {
		for col := range b.size {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(b.cells[row*b.size+col].String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
