package wistuba

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
)

func TestWriteAndReadPosition(t *testing.T) {
	b := board.New(9)
	if err := b.Play(b.Pt(3, 3)); err != nil {
		t.Fatalf("Play: %v", err)
	}
	sets := features.ComputeAll(b, nil)
	candidates := b.LegalMoves()
	chosen := b.Pt(7, 7)

	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	err := w.WritePosition(&Position{
		Tag:        "game01",
		MoveNumber: b.MoveNumber(),
		Chosen:     chosen,
		Candidates: candidates,
		Sets:       sets,
	})
	if err != nil {
		t.Fatalf("WritePosition: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if w.Lines() != len(candidates) {
		t.Errorf("Expected %d lines, got %d", len(candidates), w.Lines())
	}

	groups, err := ReadGroups(&buf)
	if err != nil {
		t.Fatalf("ReadGroups: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("Expected one position, got %d", len(groups))
	}
	g := groups[0]
	if g.Tag != "game01" || g.MoveNumber != 1 {
		t.Errorf("Expected game01_1, got %s_%d", g.Tag, g.MoveNumber)
	}
	if len(g.Lines) != len(candidates) {
		t.Fatalf("Expected %d lines, got %d", len(candidates), len(g.Lines))
	}
	for i, l := range g.Lines {
		p := candidates[i]
		if l.Chosen != (p == chosen) {
			t.Errorf("Expected chosen=%v at %s", p == chosen, b.PointString(p))
		}
		got, want := l.Set(), sets.At(p)
		if got.String() != want.String() {
			t.Errorf("Expected %v at %s, got %v", want, b.PointString(p), &got)
		}
		index, _ := want.Pattern()
		if l.PatternSize != PatternSize(index) {
			t.Errorf("Expected pattern size %d at %s, got %d", PatternSize(index), b.PointString(p), l.PatternSize)
		}
	}

	last := g.Lines[len(g.Lines)-1]
	if last.Pattern != 0 || last.PatternSize != NoPatternSize {
		t.Errorf("Expected the pass line last without a pattern, got %+v", last)
	}
}

func TestWriteWithoutComments(t *testing.T) {
	b := board.New(9)
	sets := features.NewBoardSets(b)
	sets.At(board.Pass).Add(features.PassNew)

	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	pos := &Position{Chosen: board.Pass, Candidates: []board.Point{board.Pass}, Sets: sets}
	if err := w.WritePosition(pos); err != nil {
		t.Fatalf("WritePosition: %v", err)
	}
	w.Flush()
	if got := buf.String(); got != "1 0\n" {
		t.Errorf("Expected %q, got %q", "1 0\n", got)
	}

	pos.Chosen = b.Pt(1, 1)
	if err := w.WritePosition(pos); !errors.Is(err, ErrChosenMissing) {
		t.Errorf("Expected ErrChosenMissing, got %v", err)
	}
}

func TestParseLine(t *testing.T) {
	l, err := ParseLine("1 3 14 20 1250 # my_game_42 8", 1)
	if err != nil {
		t.Fatalf("ParseLine: %v", err)
	}
	if !l.Chosen || len(l.Features) != 3 || l.Pattern != 1250 {
		t.Errorf("Expected chosen line with 3 features and pattern 1250, got %+v", l)
	}
	if l.Tag != "my_game" || l.MoveNumber != 42 || l.PatternSize != 8 {
		t.Errorf("Expected my_game_42 8, got %s_%d %d", l.Tag, l.MoveNumber, l.PatternSize)
	}

	l, err = ParseLine("0", 1)
	if err != nil || l.Chosen || len(l.Features) != 0 || l.HasComment {
		t.Errorf("Expected an empty unchosen line, got %+v %v", l, err)
	}
}

func TestParseLineErrors(t *testing.T) {
	for _, tc := range []struct {
		text string
		err  error
	}{
		{"", ErrLabel},
		{"2 3", ErrLabel},
		{"1 x", ErrBadNumber},
		{"1 -4", ErrIndexRange},
		{"1 500", ErrIndexRange},
		{"1 7804", ErrIndexRange},
		{"1 5 3", ErrOrder},
		{"1 1000 1001", ErrOrder},
		{"1 3 # tag 8", ErrComment},
		{"1 3 # tag_x 8", ErrComment},
		{"1 3 # tag_1 7", ErrComment},
		{"1 3 # tag_1", ErrComment},
	} {
		_, err := ParseLine(tc.text, 7)
		if !errors.Is(err, tc.err) {
			t.Errorf("%q: Expected %v, got %v", tc.text, tc.err, err)
			continue
		}
		var pe *ParseError
		if !errors.As(err, &pe) || pe.Line != 7 {
			t.Errorf("%q: Expected a *ParseError on line 7, got %v", tc.text, err)
		}
	}
}

func TestReadGroupsChosenCount(t *testing.T) {
	for _, text := range []string{
		"0 1 # g_1 0\n0 2 # g_1 0\n",
		"1 1 # g_1 0\n1 2 # g_1 0\n",
		"1 1 # g_1 0\n0 2 # g_2 0\n",
	} {
		if _, err := ReadGroups(strings.NewReader(text)); !errors.Is(err, ErrChosenCount) {
			t.Errorf("Expected ErrChosenCount for %q, got %v", text, err)
		}
	}

	groups, err := ReadGroups(strings.NewReader("1 1 # g_1 0\n0 2 # g_1 0\n\n0 # g_2 0\n1 0 # g_2 0\n"))
	if err != nil {
		t.Fatalf("ReadGroups: %v", err)
	}
	if len(groups) != 2 || len(groups[0].Lines) != 2 || len(groups[1].Lines) != 2 {
		t.Errorf("Expected two positions of two lines, got %+v", groups)
	}

	if _, err := ReadGroups(strings.NewReader("1 1\n")); !errors.Is(err, ErrComment) {
		t.Errorf("Expected ErrComment for an uncommented line, got %v", err)
	}
}
