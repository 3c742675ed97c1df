package wistuba

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/goprior/internal/features"
)

// Parse errors, wrapped in a *ParseError.
var (
	ErrLabel       = errors.New("label must be 0 or 1")
	ErrBadNumber   = errors.New("malformed number")
	ErrIndexRange  = errors.New("feature index out of range")
	ErrOrder       = errors.New("feature indices not ascending")
	ErrComment     = errors.New("malformed comment")
	ErrChosenCount = errors.New("position must have exactly one chosen move")
)

// ParseError reports a malformed line.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Line is one parsed candidate move.
type Line struct {
	Chosen   bool
	Features []int // basic features, ascending
	Pattern  int   // 0 when absent

	// Set only when the line carries a comment.
	HasComment  bool
	Tag         string
	MoveNumber  int
	PatternSize int
}

// Set rebuilds the feature set of the line.
func (l *Line) Set() features.Set {
	var s features.Set
	for _, id := range l.Features {
		s.Add(features.ID(id))
	}
	if l.Pattern != 0 {
		s.SetPattern(l.Pattern)
	}
	return s
}

// ParseLine parses one line. lineNo is only used in errors.
func ParseLine(text string, lineNo int) (Line, error) {
	fail := func(token string, err error) (Line, error) {
		return Line{}, &ParseError{Line: lineNo, Token: token, Err: err}
	}

	var l Line
	body, comment, hasComment := strings.Cut(text, "#")
	fields := strings.Fields(body)
	if len(fields) == 0 {
		return fail("", ErrLabel)
	}
	switch fields[0] {
	case "0":
	case "1":
		l.Chosen = true
	default:
		return fail(fields[0], ErrLabel)
	}

	prev := -1
	for _, tok := range fields[1:] {
		id, err := strconv.Atoi(tok)
		if err != nil {
			return fail(tok, ErrBadNumber)
		}
		if id < 0 || id >= features.MaxFeatures {
			return fail(tok, ErrIndexRange)
		}
		if id <= prev {
			return fail(tok, ErrOrder)
		}
		prev = id
		switch {
		case l.Pattern != 0:
			// the pattern is the largest index
			return fail(tok, ErrOrder)
		case id < int(features.NumBasic):
			l.Features = append(l.Features, id)
		case features.IsPatternIndex(id):
			l.Pattern = id
		default:
			return fail(tok, ErrIndexRange)
		}
	}

	if hasComment {
		if err := parseComment(&l, comment); err != nil {
			return fail(strings.TrimSpace(comment), err)
		}
	}
	return l, nil
}

func parseComment(l *Line, comment string) error {
	fields := strings.Fields(comment)
	if len(fields) != 2 {
		return ErrComment
	}
	sep := strings.LastIndexByte(fields[0], '_')
	if sep <= 0 {
		return ErrComment
	}
	move, err := strconv.Atoi(fields[0][sep+1:])
	if err != nil || move < 0 {
		return ErrComment
	}
	size, err := strconv.Atoi(fields[1])
	if err != nil {
		return ErrComment
	}
	switch size {
	case NoPatternSize, EdgePatternSize, CenterPatternSize:
	default:
		return ErrComment
	}
	l.HasComment = true
	l.Tag = fields[0][:sep]
	l.MoveNumber = move
	l.PatternSize = size
	return nil
}

// Reader reads lines one at a time.
type Reader struct {
	sc   *bufio.Scanner
	line int
}

// NewReader creates a reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{sc: bufio.NewScanner(r)}
}

// Next returns the next non-blank line, or io.EOF.
func (r *Reader) Next() (Line, error) {
	for r.sc.Scan() {
		r.line++
		text := r.sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		return ParseLine(text, r.line)
	}
	if err := r.sc.Err(); err != nil {
		return Line{}, err
	}
	return Line{}, io.EOF
}

// Group is the candidate list of one position.
type Group struct {
	Tag        string
	MoveNumber int
	Lines      []Line
}

// ReadGroups reads a commented move list and groups consecutive lines by
// position, checking that every position has exactly one chosen move.
func ReadGroups(r io.Reader) ([]Group, error) {
	rd := NewReader(r)
	var groups []Group
	chosen := 0
	check := func() error {
		if len(groups) > 0 && chosen != 1 {
			return &ParseError{Line: rd.line, Err: ErrChosenCount}
		}
		return nil
	}
	for {
		l, err := rd.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if !l.HasComment {
			return nil, &ParseError{Line: rd.line, Err: ErrComment}
		}
		last := len(groups) - 1
		if last < 0 || groups[last].Tag != l.Tag || groups[last].MoveNumber != l.MoveNumber {
			if err := check(); err != nil {
				return nil, err
			}
			groups = append(groups, Group{Tag: l.Tag, MoveNumber: l.MoveNumber})
			chosen = 0
			last++
		}
		if l.Chosen {
			chosen++
		}
		groups[last].Lines = append(groups[last].Lines, l)
	}
	if err := check(); err != nil {
		return nil, err
	}
	return groups, nil
}
