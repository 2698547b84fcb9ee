package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"
)

// BombProbability is the chance of any single cell of a random board
// holding a bomb.
const BombProbability = 0.25

var ErrInvalidSize = errors.New("board size must be positive")

// FormatError reports a malformed board specification.
type FormatError struct {
	Line    int
	message string
}

// [FormatError] implements [error]
func (e FormatError) Error() string {
	if e.Line == 0 {
		return "invalid board: " + e.message
	}
	return fmt.Sprintf("invalid board (line %d): %s", e.Line, e.message)
}

// FromSize builds a size x size board, drawing every cell independently
// from r.
func FromSize(size int, r *rand.Rand) (*Board, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	bombs := make([]bool, size*size)
	for i := range bombs {
		bombs[i] = r.Float64() < BombProbability
	}
	return newBoard(size, bombs), nil
}

// FromSpecification parses a board from rows of space-separated 0/1
// tokens, one row per line. The grid must be square.
func FromSpecification(r io.Reader) (*Board, error) {
	var (
		bombs []bool
		width int
		rows  int
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		rows++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		tokens := strings.Split(line, " ")
		if rows == 1 {
			width = len(tokens)
		} else if len(tokens) != width {
			return nil, FormatError{rows, fmt.Sprintf(
				"expected %d values, got %d", width, len(tokens),
			)}
		}
		for _, token := range tokens {
			switch token {
			case "0":
				bombs = append(bombs, false)
			case "1":
				bombs = append(bombs, true)
			default:
				return nil, FormatError{rows, fmt.Sprintf(
					"unexpected value %q, want 0 or 1", token,
				)}
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("unable to read board: %w", err)
	}

	if rows == 0 {
		return nil, FormatError{message: "empty board"}
	}
	if rows != width {
		return nil, FormatError{message: fmt.Sprintf(
			"board is not square (%d rows, %d columns)", rows, width,
		)}
	}

	return newBoard(width, bombs), nil
}

// FromFile loads a board specification from path.
func FromFile(path string) (*Board, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open board file: %w", err)
	}
	defer f.Close()
	return FromSpecification(f)
}
