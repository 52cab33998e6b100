// Package mapfile implements the strict map-file loader described in
// spec.md §6: a four-line header of key/value pairs followed by the
// grid itself. It plays the role of the "game map" external
// collaborator — the rest of the system depends only on the *Map value
// it produces, never on the file format directly.
package mapfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tanktourney/tanktourney/board"
)

// Map is a parsed map file: metadata plus the static board it describes
// (walls, weak walls, mines, and the initial tank positions).
type Map struct {
	Name      string
	MaxSteps  int
	NumShells int
	Board     *board.Board
}

// Warning is a recovered parse error: the loader repaired the input and
// kept going, but the caller may want to surface this.
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("line %d: %s", w.Line, w.Message)
}

// validInputCell reports whether c is one of the characters a map file
// may legally contain in its grid body — narrower than the full runtime board.Cell alphabet,
// since shells and stacked/overlap markers never appear in a saved map.
func validInputCell(c byte) bool {
	switch board.Cell(c) {
	case board.Empty, board.Wall, board.Mine, board.Player1Tank, board.Player2Tank:
		return true
	default:
		return false
	}
}

// Parse reads a map file from r. It never returns an error for a
// malformed grid body — bad cells, short/long rows, and missing/extra
// rows are all repaired; only replaced cells and dropped extra rows are
// reported as Warnings (padding, truncation and missing rows are
// silent) — but a malformed
// header (missing key, unparsable number) is a hard error, since there
// is no sane value to repair it with.
func Parse(r io.Reader) (*Map, []Warning, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	nextLine := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		lineNo++
		return scanner.Text(), true
	}

	name, ok := nextLine()
	if !ok {
		return nil, nil, fmt.Errorf("mapfile: missing name line")
	}

	maxSteps, err := readHeaderField(nextLine, "MaxSteps", lineNo+1)
	if err != nil {
		return nil, nil, err
	}
	numShells, err := readHeaderField(nextLine, "NumShells", lineNo+1)
	if err != nil {
		return nil, nil, err
	}
	rows, err := readHeaderField(nextLine, "Rows", lineNo+1)
	if err != nil {
		return nil, nil, err
	}
	cols, err := readHeaderField(nextLine, "Cols", lineNo+1)
	if err != nil {
		return nil, nil, err
	}

	b := board.New(int(cols), int(rows))
	var warnings []Warning

	for y := 0; y < int(rows); y++ {
		row, ok := nextLine()
		if !ok {
			continue // board.New already left this row as all-Empty
		}
		warnings = append(warnings, layRow(b, y, int(cols), row, lineNo)...)
	}

	extra := 0
	for {
		if _, ok := nextLine(); !ok {
			break
		}
		extra++
	}
	if extra > 0 {
		warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("%d extra row(s) beyond Rows dropped", extra)})
	}

	return &Map{
		Name:      name,
		MaxSteps:  int(maxSteps),
		NumShells: int(numShells),
		Board:     b,
	}, warnings, nil
}

func readHeaderField(nextLine func() (string, bool), key string, lineNo int) (uint64, error) {
	line, ok := nextLine()
	if !ok {
		return 0, fmt.Errorf("mapfile: missing %q line", key)
	}
	parts := strings.SplitN(line, "=", 2)
	if len(parts) != 2 || strings.TrimSpace(parts[0]) != key {
		return 0, fmt.Errorf("mapfile: line %d: expected %q, got %q", lineNo, key, line)
	}
	v, err := strconv.ParseUint(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("mapfile: line %d: bad %s value %q: %w", lineNo, key, parts[1], err)
	}
	return v, nil
}

// layRow writes one row into the board, right-padding short rows,
// truncating long ones, and replacing any character outside the input
// alphabet with a space.
func layRow(b *board.Board, y, cols int, row string, lineNo int) []Warning {
	var warnings []Warning
	if len(row) > cols {
		row = row[:cols]
	}

	for x := 0; x < cols; x++ {
		if x >= len(row) {
			b.Set(x, y, board.Empty)
			continue
		}
		c := row[x]
		if !validInputCell(c) {
			warnings = append(warnings, Warning{Line: lineNo, Message: fmt.Sprintf("invalid character %q at row %d, col %d replaced with space", c, y, x)})
			c = ' '
		}
		b.Set(x, y, board.Cell(c))
	}
	return warnings
}
