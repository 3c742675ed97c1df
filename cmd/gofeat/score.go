package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"golang.org/x/exp/slices"

	"github.com/hailam/goprior/internal/board"
	"github.com/hailam/goprior/internal/engine"
	"github.com/hailam/goprior/internal/features"
	"github.com/hailam/goprior/internal/knowledge"
	"github.com/hailam/goprior/internal/sgf"
	"github.com/hailam/goprior/internal/storage"
	"github.com/hailam/goprior/internal/uct"
)

var errStop = errors.New("stop")

func runScore(ctx context.Context, args []string) error {
	defaults := knowledge.DefaultOptions()

	fs := newFlagSet("score")
	weights := fs.String("weights", "", "weight file")
	dbDir := fs.String("db", "", "database holding the model, default data directory")
	modelName := fs.String("model", "", "name of a stored model")
	kind := fs.String("kind", defaults.Kind.String(), "knowledge kind: features, rules or patterns")
	mode := fs.String("mode", defaults.Mode.String(), "knowledge mode: prior or predictor")
	policy := fs.String("policy", defaults.Policy.String(), "prior policy: simple, scale-by-games, scale-linear or top-n")
	priorWeight := fs.Float64("prior-weight", defaults.PriorWeight, "virtual games added per move")
	topN := fs.Int("topn", defaults.TopN, "moves rewarded by the top-n policy")
	moveNumber := fs.Int("move", -1, "number of moves to replay, -1 for the whole game")
	explain := fs.String("explain", "", "list the feature contributions of this move")
	show := fs.Int("show", 10, "number of moves to list")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one SGF file is expected")
	}

	opts := defaults
	var err error
	if opts.Kind, err = knowledge.ParseKind(*kind); err != nil {
		return err
	}
	if opts.Mode, err = knowledge.ParseMode(*mode); err != nil {
		return err
	}
	if opts.Policy, err = knowledge.ParsePriorPolicy(*policy); err != nil {
		return err
	}
	opts.PriorWeight = *priorWeight
	opts.TopN = *topN

	eng := engine.NewEngine(opts)
	switch {
	case *modelName != "":
		db, err := openStorage(*dbDir)
		if err != nil {
			return err
		}
		m, err := db.LoadModel(*modelName)
		db.Close()
		if err != nil {
			return err
		}
		eng.SetModel(m)
	case *weights != "":
		// a bad file leaves the empty model in place
		eng.LoadWeights(*weights)
	default:
		dir, err := storage.GetWeightsDir()
		if err == nil {
			eng.AutoLoadWeights(dir, ".")
		}
	}

	game, err := sgf.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := replayTo(game, *moveNumber)
	if err != nil {
		return err
	}

	w := eng.NewWorker(0)
	if err := w.SetPosition(b); err != nil {
		return err
	}
	moves := w.Priors()
	fmt.Printf("%s after %d moves, %v to play\n%s\n", sgf.Tag(fs.Arg(0)), b.MoveNumber(), b.ToPlay(), b)

	if w.PredictorType() == knowledge.PredictorMode {
		slices.SortStableFunc(moves, func(x, y uct.MoveInfo) int { return cmp.Compare(y.Predictor, x.Predictor) })
	} else {
		slices.SortStableFunc(moves, func(x, y uct.MoveInfo) int { return cmp.Compare(y.Value, x.Value) })
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "move\tvalue\tcount\tpredictor")
	for _, mi := range moves[:min(*show, len(moves))] {
		fmt.Fprintf(tw, "%s\t%.4f\t%.2f\t%.4f\n", b.PointString(mi.Move), mi.Value, mi.Count, mi.Predictor)
	}
	tw.Flush()

	if *explain != "" {
		return explainMove(w, b, *explain)
	}
	return nil
}

// replayTo returns the position after n moves of the game, or after all of
// them when n is negative.
func replayTo(g *sgf.Game, n int) (*board.Board, error) {
	var pos *board.Board
	final, err := g.Replay(func(b *board.Board, _ sgf.Move) error {
		if b.MoveNumber() == n {
			pos = b
			return errStop
		}
		return nil
	})
	if errors.Is(err, errStop) {
		return pos, nil
	}
	if err != nil {
		return nil, err
	}
	return final, nil
}

func explainMove(w *engine.Worker, b *board.Board, move string) error {
	p, err := b.ParsePoint(move)
	if err != nil {
		return err
	}
	set, detail := w.Explain(p)
	if detail == nil {
		return fmt.Errorf("%s is not a legal move", move)
	}

	fmt.Printf("\nfeatures of %s: %v\n", b.PointString(p), &set)
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "index\tfeature\tweight\tinteraction\ttotal")
	score := 0.0
	for _, c := range detail {
		fmt.Fprintf(tw, "%d\t%s\t%.4f\t%.4f\t%.4f\n", c.Index, features.Name(c.Index), c.Weight, c.Interaction, c.Total())
		score += c.Total()
	}
	fmt.Fprintf(tw, "\t\t\t\t%.4f\n", score)
	return tw.Flush()
}
