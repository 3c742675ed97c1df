package model

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"
)

// Weight file errors, wrapped in a *ParseError.
var (
	ErrMissingLabel = errors.New("missing section label")
	ErrBadNumber    = errors.New("malformed number")
	ErrIndexRange   = errors.New("feature index out of range")
	ErrTruncated    = errors.New("unexpected end of file")
	ErrFieldCount   = errors.New("wrong number of fields")
)

// Section labels of the text weight format:
//
//	size:<N>,k:<K>
//	w:
//	<index> <weight>            N lines
//	v:
//	<index> <v1> ... <vK>       N lines
const (
	labelSize    = "size"
	labelK       = "k"
	labelWeights = "w:"
	labelFactors = "v:"
)

// ParseError reports where a weight file is malformed.
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

// tokenizer splits its input into lines of fields. Commas separate fields
// like white space; blank lines are skipped.
type tokenizer struct {
	sc   *bufio.Scanner
	line int
}

func newTokenizer(r io.Reader) *tokenizer {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &tokenizer{sc: sc}
}

func isSeparator(r rune) bool { return r == ',' || unicode.IsSpace(r) }

// next returns the fields of the next non-blank line.
func (t *tokenizer) next() ([]string, error) {
	for t.sc.Scan() {
		t.line++
		if fields := strings.FieldsFunc(t.sc.Text(), isSeparator); len(fields) > 0 {
			return fields, nil
		}
	}
	if err := t.sc.Err(); err != nil {
		return nil, err
	}
	return nil, t.fail("", ErrTruncated)
}

func (t *tokenizer) fail(token string, err error) error {
	return &ParseError{Line: t.line, Token: token, Err: err}
}

// labelled parses a "<label>:<int>" token.
func (t *tokenizer) labelled(token, label string) (int, error) {
	value, ok := strings.CutPrefix(token, label+":")
	if !ok {
		return 0, t.fail(token, ErrMissingLabel)
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, t.fail(token, ErrBadNumber)
	}
	return n, nil
}

func (t *tokenizer) index(token string) (int, error) {
	i, err := strconv.Atoi(token)
	if err != nil {
		return 0, t.fail(token, ErrBadNumber)
	}
	if i < 0 || i >= Capacity {
		return 0, t.fail(token, ErrIndexRange)
	}
	return i, nil
}

func (t *tokenizer) float(token string) (float64, error) {
	f, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, t.fail(token, ErrBadNumber)
	}
	return f, nil
}

func (t *tokenizer) section(label string) error {
	fields, err := t.next()
	if err != nil {
		return err
	}
	if len(fields) != 1 || fields[0] != label {
		return t.fail(fields[0], ErrMissingLabel)
	}
	return nil
}

// Read parses a text weight file. Indices missing from the file keep a zero
// weight and a zero factor.
func Read(r io.Reader) (*Model, error) {
	t := newTokenizer(r)

	header, err := t.next()
	if err != nil {
		return nil, err
	}
	if len(header) != 2 {
		return nil, t.fail(strings.Join(header, ","), ErrFieldCount)
	}
	size, err := t.labelled(header[0], labelSize)
	if err != nil {
		return nil, err
	}
	k, err := t.labelled(header[1], labelK)
	if err != nil {
		return nil, err
	}
	if size > Capacity {
		return nil, t.fail(header[0], ErrIndexRange)
	}
	if k > MaxLatent {
		return nil, t.fail(header[1], ErrIndexRange)
	}
	m := New(size, k)

	if err := t.section(labelWeights); err != nil {
		return nil, err
	}
	for n := 0; n < size; n++ {
		fields, err := t.next()
		if err != nil {
			return nil, err
		}
		if len(fields) != 2 {
			return nil, t.fail(fields[0], ErrFieldCount)
		}
		i, err := t.index(fields[0])
		if err != nil {
			return nil, err
		}
		w, err := t.float(fields[1])
		if err != nil {
			return nil, err
		}
		m.weights[i] = w
	}

	if err := t.section(labelFactors); err != nil {
		return nil, err
	}
	v := make([]float64, k)
	for n := 0; n < size; n++ {
		fields, err := t.next()
		if err != nil {
			return nil, err
		}
		if len(fields) != k+1 {
			return nil, t.fail(fields[0], ErrFieldCount)
		}
		i, err := t.index(fields[0])
		if err != nil {
			return nil, err
		}
		for d := range v {
			if v[d], err = t.float(fields[d+1]); err != nil {
				return nil, err
			}
		}
		m.SetFactor(i, v)
	}
	return m, nil
}

// Load reads a weight file from disk.
func Load(filename string) (*Model, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open weights file: %w", err)
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file %s: %w", filename, err)
	}
	return m, nil
}
