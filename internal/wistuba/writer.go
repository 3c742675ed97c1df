// Package wistuba reads and writes move lists in the Wistuba training format:
// one line per candidate move of a position,
//
//	<0|1> <feature-id>... [<pattern-index>] [# <game-tag>_<move-number> <pattern-size>]
//
// where 1 marks the move actually played. Each position has exactly one
// chosen move; the pass move is listed like any other candidate.
package wistuba

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/features"
)

// ErrChosenMissing is returned when the played move is not among the candidates.
var ErrChosenMissing = errors.New("played move is not a candidate")

// Pattern sizes written in the comment.
const (
	NoPatternSize     = 0
	EdgePatternSize   = 5
	CenterPatternSize = 8
)

// PatternSize returns the number of cells of the pattern index, or
// NoPatternSize.
func PatternSize(index int) int {
	switch {
	case index >= features.CenterPatternBase && index < features.MaxFeatures:
		return CenterPatternSize
	case index >= features.EdgePatternBase && index < features.CenterPatternBase:
		return EdgePatternSize
	}
	return NoPatternSize
}

// Writer writes positions in the Wistuba format.
type Writer struct {
	w        *bufio.Writer
	comments bool
	buf      []byte
	ids      []int
	lines    int
}

// NewWriter creates a writer. With comments the game tag, move number and
// pattern size are appended to every line.
func NewWriter(w io.Writer, comments bool) *Writer {
	return &Writer{w: bufio.NewWriter(w), comments: comments}
}

// Position describes one exported position.
type Position struct {
	Tag        string
	MoveNumber int
	Chosen     board.Point
	Candidates []board.Point
	Sets       features.BoardSets
}

// WritePosition writes one line per candidate.
func (w *Writer) WritePosition(pos *Position) error {
	found := false
	for _, p := range pos.Candidates {
		found = found || p == pos.Chosen
	}
	if !found {
		return fmt.Errorf("%s_%d: %w", pos.Tag, pos.MoveNumber, ErrChosenMissing)
	}

	for _, p := range pos.Candidates {
		w.buf = w.buf[:0]
		if p == pos.Chosen {
			w.buf = append(w.buf, '1')
		} else {
			w.buf = append(w.buf, '0')
		}
		set := pos.Sets.At(p)
		w.ids = set.Indices(w.ids[:0])
		for _, id := range w.ids {
			w.buf = append(w.buf, ' ')
			w.buf = strconv.AppendInt(w.buf, int64(id), 10)
		}
		if w.comments {
			pattern, _ := set.Pattern()
			w.buf = append(w.buf, " # "...)
			w.buf = append(w.buf, pos.Tag...)
			w.buf = append(w.buf, '_')
			w.buf = strconv.AppendInt(w.buf, int64(pos.MoveNumber), 10)
			w.buf = append(w.buf, ' ')
			w.buf = strconv.AppendInt(w.buf, int64(PatternSize(pattern)), 10)
		}
		w.buf = append(w.buf, '\n')
		if _, err := w.w.Write(w.buf); err != nil {
			return fmt.Errorf("failed to write move list: %w", err)
		}
		w.lines++
	}
	return nil
}

// Lines returns the number of lines written so far.
func (w *Writer) Lines() int { return w.lines }

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
