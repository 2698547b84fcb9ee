// Package protocol translates lines of the text protocol into board
// operations.
//
//	MESSAGE ::= ( LOOK | DIG | FLAG | DEFLAG | HELP | BYE ) NEWLINE
//	LOOK    ::= "look"
//	DIG     ::= "dig" SPACE X SPACE Y
//	FLAG    ::= "flag" SPACE X SPACE Y
//	DEFLAG  ::= "deflag" SPACE X SPACE Y
//	HELP    ::= "help"
//	BYE     ::= "bye"
//
// X is the column and Y the row; both are an optional "-" followed by
// digits.
package protocol

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vancomm/multisweeper/internal/board"
)

const (
	Boom = board.Boom
	Bye  = "bye"
	Help = `MESSAGE ::= ( LOOK | DIG | FLAG | DEFLAG | HELP | BYE ) NEWLINE; ` +
		`LOOK ::= "look"; DIG ::= "dig" SPACE X SPACE Y; ` +
		`FLAG ::= "flag" SPACE X SPACE Y; DEFLAG ::= "deflag" SPACE X SPACE Y; ` +
		`HELP ::= "help"; BYE ::= "bye"`
)

// Board is the set of operations a protocol line can reach.
type Board interface {
	Look() string
	Dig(row, col int) string
	Flag(row, col int) string
	Deflag(row, col int) string
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"look":   0,
	"help":   0,
	"bye":    0,
	"dig":    2,
	"flag":   2,
	"deflag": 2,
}

var coordinate = regexp.MustCompile(`^-?[0-9]+$`)

var ErrUnknownCommand = errors.New("unknown command")

type Dispatcher struct {
	board Board
}

func NewDispatcher(b Board) *Dispatcher {
	return &Dispatcher{board: b}
}

// Handle executes one protocol line and returns the reply. An error means
// the line does not match the grammar; such lines get no reply.
func (d *Dispatcher) Handle(line string) (string, error) {
	parts := strings.Split(line, " ")

	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return "", ErrUnknownCommand
	}
	if nargs != len(parts)-1 {
		return "", fmt.Errorf("%s: expected %d arguments, got %d",
			parts[0], nargs, len(parts)-1)
	}

	switch parts[0] {
	case "look":
		return d.board.Look(), nil
	case "help":
		return Help, nil
	case "bye":
		return Bye, nil
	}

	x, y, err := parseXY(parts[1:])
	if err != nil {
		return "", fmt.Errorf("%s: %w", parts[0], err)
	}

	switch parts[0] {
	case "dig":
		return d.board.Dig(y, x), nil
	case "flag":
		return d.board.Flag(y, x), nil
	case "deflag":
		return d.board.Deflag(y, x), nil
	}
	return "", ErrUnknownCommand
}

// parseXY reads a pair of coordinates. Values too large for an int are
// clamped, which keeps them out of bounds for any board.
func parseXY(twoStrings []string) (x int, y int, err error) {
	if x, err = parseCoordinate(twoStrings[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = parseCoordinate(twoStrings[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

func parseCoordinate(s string) (int, error) {
	if !coordinate.MatchString(s) {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		return n, nil
	}
	return n, err
}
