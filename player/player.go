package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"draughts/experiments/metrics"
	"draughts/game"
	"draughts/gamemaster"

	"github.com/samber/lo"
)

// Human is an agent driven by a person at a terminal. Each turn it prints the
// board and the numbered legal moves, then reads either a number or a move in
// notation. End of input resigns.
type Human struct {
	rules game.Rules
	in    *bufio.Scanner
	out   io.Writer
}

func NewHuman(rules game.Rules, in io.Reader, out io.Writer) *Human {
	return &Human{rules: rules, in: bufio.NewScanner(in), out: out}
}

func (h *Human) FindMove(ctx context.Context, pos game.Position, color game.Color) (game.Move, metrics.SearchMetric) {
	metric := metrics.SearchMetric{Searcher: "human"}
	g := gamemaster.NewGameFrom(pos, color, h.rules, 0)
	moves := g.LegalMoves()
	if len(moves) == 0 {
		return nil, metric
	}

	fmt.Fprintf(h.out, "\n%s\n", pos)
	for i, m := range moves {
		fmt.Fprintf(h.out, "%3d) %s\n", i+1, m)
	}
	for ctx.Err() == nil {
		fmt.Fprintf(h.out, "%s to move> ", color)
		if !h.in.Scan() {
			fmt.Fprintln(h.out)
			return nil, metric
		}
		m, err := h.choose(g, moves, h.in.Text())
		if err != nil {
			fmt.Fprintf(h.out, "%v\n", err)
			continue
		}
		return m, metric
	}
	return nil, metric
}

func (h *Human) choose(g *gamemaster.Game, moves []game.Move, line string) (game.Move, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.New("enter a move number or notation such as 32-28 or 28x10")
	}
	if n, err := strconv.Atoi(line); err == nil {
		if n < 1 || n > len(moves) {
			return nil, fmt.Errorf("choose a number from 1 to %d", len(moves))
		}
		return moves[n-1], nil
	}
	m, err := g.ParseMove(line)
	if err != nil {
		return nil, err
	}
	// Hand back the listed value so callers can compare by identity.
	listed, _ := lo.Find(moves, func(candidate game.Move) bool { return game.SameMove(candidate, m) })
	return listed, nil
}
