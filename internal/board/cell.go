package board

import "strconv"

type CellState int8

const (
	Hidden CellState = iota
	Flagged
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "hidden"
	case Flagged:
		return "flagged"
	case Revealed:
		return "revealed"
	default:
		return "invalid"
	}
}

// Cell is one square of the board. Count is only meaningful once the cell
// is Revealed.
type Cell struct {
	Bomb  bool
	State CellState
	Count int8
}

// Cell implements [fmt.Stringer]
func (c Cell) String() string {
	switch c.State {
	case Hidden:
		return "-"
	case Flagged:
		return "F"
	}
	if c.Count == 0 {
		return " "
	}
	return strconv.Itoa(int(c.Count))
}
