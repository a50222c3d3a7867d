package game

import (
	"errors"
	"fmt"
	"math/bits"

	"draughts/utils"

	"github.com/samber/lo"
)

var ErrUnknownScorer = errors.New("unknown scorer")

// Scorer statically evaluates a position for one side; higher is better for c.
// Scorers are plain values and safe to share.
type Scorer interface {
	Score(p Position, c Color) int
}

type ScorerFunc func(p Position, c Color) int

func (f ScorerFunc) Score(p Position, c Color) int {
	return f(p, c)
}

// MaterialScorer counts c's pieces.
type MaterialScorer struct {
	ManValue  int
	KingValue int
}

func NewMaterialScorer() MaterialScorer {
	return MaterialScorer{ManValue: 10, KingValue: 30}
}

func (s MaterialScorer) Score(p Position, c Color) int {
	return s.ManValue*bits.OnesCount64(p.Men(c)) + s.KingValue*bits.OnesCount64(p.Kings(c))
}

// RowWeights favors the edge rows: 5 on rows 1 and 10 down to 1 in the center.
var RowWeights = [NumRows]int{5, 4, 3, 2, 1, 1, 2, 3, 4, 5}

// PlacementScorer weighs c's pieces by the row they stand on and adds the
// score of Base.
type PlacementScorer struct {
	Base    Scorer
	Weights [NumRows]int
}

func NewPlacementScorer(base Scorer) PlacementScorer {
	return PlacementScorer{Base: base, Weights: RowWeights}
}

func (s PlacementScorer) Score(p Position, c Color) int {
	pieces := p.Pieces(c)
	score := 0
	for row := 1; row <= NumRows; row++ {
		score += bits.OnesCount64(pieces&utils.RowMask(row)) * s.Weights[row-1]
	}
	if s.Base != nil {
		score += s.Base.Score(p, c)
	}
	return score
}

// CompositeScorer sums its parts.
type CompositeScorer []Scorer

func (s CompositeScorer) Score(p Position, c Color) int {
	return lo.SumBy(s, func(part Scorer) int {
		return part.Score(p, c)
	})
}

// NewScorer builds a scorer by name: "material" or "placement" (row weights
// layered over material).
func NewScorer(name string) (Scorer, error) {
	switch name {
	case "material":
		return NewMaterialScorer(), nil
	case "placement", "":
		return NewPlacementScorer(NewMaterialScorer()), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
}
