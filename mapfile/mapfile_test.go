package mapfile

import (
	"strings"
	"testing"

	"github.com/tanktourney/tanktourney/board"
)

func TestParseWellFormedMap(t *testing.T) {
	src := strings.Join([]string{
		"arena",
		"MaxSteps = 100",
		"NumShells = 5",
		"Rows = 2",
		"Cols = 4",
		"1  #",
		"@  2",
	}, "\n")

	m, warnings, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
	if m.Name != "arena" || m.MaxSteps != 100 || m.NumShells != 5 {
		t.Fatalf("unexpected header: %+v", m)
	}
	if m.Board.ObjectAt(0, 0) != board.Player1Tank || m.Board.ObjectAt(3, 0) != board.Wall {
		t.Fatalf("unexpected row 0: %v", m.Board.Lines()[0])
	}
	if m.Board.ObjectAt(0, 1) != board.Mine || m.Board.ObjectAt(3, 1) != board.Player2Tank {
		t.Fatalf("unexpected row 1: %v", m.Board.Lines()[1])
	}
}

func TestParseAcceptsOptionalWhitespaceAroundEquals(t *testing.T) {
	src := strings.Join([]string{
		"tight",
		"MaxSteps=50",
		"NumShells=2",
		"Rows=1",
		"Cols=1",
		"#",
	}, "\n")

	m, _, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.MaxSteps != 50 || m.NumShells != 2 {
		t.Fatalf("unexpected header: %+v", m)
	}
}

func TestParsePadsShortRows(t *testing.T) {
	src := strings.Join([]string{
		"short",
		"MaxSteps = 10",
		"NumShells = 1",
		"Rows = 1",
		"Cols = 5",
		"1#",
	}, "\n")

	m, _, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Board.Lines()[0] != "1#   " {
		t.Fatalf("expected right-padded row, got %q", m.Board.Lines()[0])
	}
}

func TestParseTruncatesLongRows(t *testing.T) {
	src := strings.Join([]string{
		"long",
		"MaxSteps = 10",
		"NumShells = 1",
		"Rows = 1",
		"Cols = 3",
		"12345",
	}, "\n")

	m, _, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Board.Lines()[0] != "1  " {
		t.Fatalf("expected truncated row (invalid chars replaced too), got %q", m.Board.Lines()[0])
	}
}

func TestParseReplacesInvalidCharactersWithSpaceAndWarns(t *testing.T) {
	src := strings.Join([]string{
		"dirty",
		"MaxSteps = 10",
		"NumShells = 1",
		"Rows = 1",
		"Cols = 3",
		"1X2",
	}, "\n")

	m, warnings, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Board.Lines()[0] != "1 2" {
		t.Fatalf("expected invalid char replaced with space, got %q", m.Board.Lines()[0])
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestParseDropsExtraRowsWithWarning(t *testing.T) {
	src := strings.Join([]string{
		"extra",
		"MaxSteps = 10",
		"NumShells = 1",
		"Rows = 1",
		"Cols = 1",
		"1",
		"2",
		"#",
	}, "\n")

	m, warnings, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Board.H != 1 {
		t.Fatalf("expected the declared Rows count to win, got height %d", m.Board.H)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Message, "extra row") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an extra-row warning, got %v", warnings)
	}
}

func TestParseRejectsMalformedHeader(t *testing.T) {
	src := strings.Join([]string{
		"broken",
		"MaxSteps = 10",
		"Rows = 1",
		"Cols = 1",
		"1",
	}, "\n")

	if _, _, err := Parse(strings.NewReader(src)); err == nil {
		t.Fatalf("expected an error for a missing NumShells line")
	}
}
