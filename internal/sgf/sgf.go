// Package sgf reads the main line of SGF game records.
package sgf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hailam/goprior/internal/board"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("sgf syntax error")

// Move is one move of a game. Off-board coordinates mean pass.
type Move struct {
	Color board.Color
	X, Y  int // 1-based, y counted from the bottom
	Pass  bool
}

// Point returns the move as a point of b.
func (m Move) Point(b *board.Board) board.Point {
	if m.Pass {
		return board.Pass
	}
	return b.Pt(m.X, m.Y)
}

// Game is the main line of a game record.
type Game struct {
	Size   int
	Komi   float64
	Result string
	ToPlay board.Color // first player, from PL or the first move
	Setup  []Move      // AB/AW stones
	Moves  []Move
}

// node is a property list.
type node map[string][]string

type parser struct {
	data []byte
	pos  int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrSyntax, p.pos, fmt.Sprintf(format, args...))
}

func (p *parser) skipSpace() {
	for p.pos < len(p.data) && strings.IndexByte(" \t\r\n", p.data[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.pos >= len(p.data) {
		return 0
	}
	return p.data[p.pos]
}

// tree parses a game tree, appending its main line to nodes when keep is set.
func (p *parser) tree(nodes []node, keep bool) ([]node, error) {
	if p.peek() != '(' {
		return nodes, p.errorf("expected '('")
	}
	p.pos++
	for p.peek() == ';' {
		p.pos++
		n, err := p.node()
		if err != nil {
			return nodes, err
		}
		if keep {
			nodes = append(nodes, n)
		}
	}
	first := true
	for p.peek() == '(' {
		var err error
		if nodes, err = p.tree(nodes, keep && first); err != nil {
			return nodes, err
		}
		first = false
	}
	if p.peek() != ')' {
		return nodes, p.errorf("expected ')'")
	}
	p.pos++
	return nodes, nil
}

func (p *parser) node() (node, error) {
	n := make(node)
	for {
		c := p.peek()
		if c < 'A' || c > 'Z' {
			return n, nil
		}
		start := p.pos
		for p.pos < len(p.data) && p.data[p.pos] >= 'A' && p.data[p.pos] <= 'Z' {
			p.pos++
		}
		ident := string(p.data[start:p.pos])
		if p.peek() != '[' {
			return nil, p.errorf("property %s has no value", ident)
		}
		for p.peek() == '[' {
			v, err := p.value()
			if err != nil {
				return nil, err
			}
			n[ident] = append(n[ident], v)
		}
	}
}

func (p *parser) value() (string, error) {
	p.pos++ // '['
	var sb strings.Builder
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '\\':
			if p.pos < len(p.data) {
				sb.WriteByte(p.data[p.pos])
				p.pos++
			}
		case ']':
			return sb.String(), nil
		default:
			sb.WriteByte(c)
		}
	}
	return "", p.errorf("unterminated value")
}

// Parse reads the first game of an SGF collection.
func Parse(data []byte) (*Game, error) {
	p := &parser{data: data}
	nodes, err := p.tree(nil, true)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, p.errorf("empty game")
	}

	g := &Game{Size: 19, ToPlay: board.Empty}
	root := nodes[0]
	if v, ok := root["SZ"]; ok {
		// "19" or "19:19"
		s, _, _ := strings.Cut(v[0], ":")
		size, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || size < 2 || size > board.MaxSize {
			return nil, fmt.Errorf("%w: unsupported board size %q", ErrSyntax, v[0])
		}
		g.Size = size
	}
	if v, ok := root["KM"]; ok {
		g.Komi, _ = strconv.ParseFloat(strings.TrimSpace(v[0]), 64)
	}
	if v, ok := root["RE"]; ok {
		g.Result = v[0]
	}
	if v, ok := root["PL"]; ok {
		g.ToPlay = parseColor(v[0])
	}

	for i, n := range nodes {
		for _, prop := range []struct {
			ident string
			color board.Color
		}{{"AB", board.Black}, {"AW", board.White}} {
			for _, v := range n[prop.ident] {
				m, err := g.move(prop.color, v)
				if err != nil || m.Pass {
					return nil, fmt.Errorf("%w: bad setup point %q in node %d", ErrSyntax, v, i)
				}
				g.Setup = append(g.Setup, m)
			}
		}
		for _, prop := range []struct {
			ident string
			color board.Color
		}{{"B", board.Black}, {"W", board.White}} {
			if v, ok := n[prop.ident]; ok {
				m, err := g.move(prop.color, v[0])
				if err != nil {
					return nil, fmt.Errorf("%w: bad move %q in node %d", ErrSyntax, v[0], i)
				}
				g.Moves = append(g.Moves, m)
			}
		}
	}
	if g.ToPlay == board.Empty {
		g.ToPlay = board.Black
		if len(g.Moves) > 0 {
			g.ToPlay = g.Moves[0].Color
		}
	}
	return g, nil
}

func parseColor(s string) board.Color {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "W":
		return board.White
	case "B":
		return board.Black
	}
	return board.Empty
}

// move decodes an SGF point; "" and "tt" on boards up to 19 are passes.
func (g *Game) move(c board.Color, v string) (Move, error) {
	v = strings.TrimSpace(v)
	if v == "" || (v == "tt" && g.Size <= 19) {
		return Move{Color: c, Pass: true}, nil
	}
	if len(v) != 2 {
		return Move{}, fmt.Errorf("point %q", v)
	}
	x := int(v[0]-'a') + 1
	row := int(v[1] - 'a')
	if x < 1 || x > g.Size || row < 0 || row >= g.Size {
		return Move{}, fmt.Errorf("point %q off board", v)
	}
	return Move{Color: c, X: x, Y: g.Size - row}, nil
}

// ReadFile parses an SGF file.
func ReadFile(filename string) (*Game, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read game: %w", err)
	}
	g, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return g, nil
}

// Read parses an SGF game from r.
func Read(r io.Reader) (*Game, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read game: %w", err)
	}
	return Parse(data)
}

// Tag returns the game tag of a file: its base name without extension.
func Tag(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Replay sets up the game on a new board and plays its moves. Before each
// move, visit is called with the position and the move about to be played;
// returning an error stops the replay.
func (g *Game) Replay(visit func(b *board.Board, m Move) error) (*board.Board, error) {
	b := board.New(g.Size)
	for _, s := range g.Setup {
		if err := b.Setup(s.Color, s.Point(b)); err != nil {
			return b, fmt.Errorf("failed to set up %s: %w", b.PointString(s.Point(b)), err)
		}
	}
	b.SetToPlay(g.ToPlay)
	for i, m := range g.Moves {
		b.SetToPlay(m.Color)
		if visit != nil {
			if err := visit(b, m); err != nil {
				return b, err
			}
		}
		if err := b.PlayAs(m.Color, m.Point(b)); err != nil {
			return b, fmt.Errorf("move %d %s: %w", i+1, b.PointString(m.Point(b)), err)
		}
	}
	return b, nil
}
