package searcher

import (
	"context"
	"fmt"
	"testing"

	"draughts/game"

	"github.com/stretchr/testify/require"
)

func mustPosition(t *testing.T, whiteMen, blackMen, whiteKings, blackKings []game.Square) game.Position {
	t.Helper()
	p, err := game.PositionOf(whiteMen, blackMen, whiteKings, blackKings)
	require.NoError(t, err)
	return p
}

func testPositions(t *testing.T) map[string]game.Position {
	return map[string]game.Position{
		"initial":  game.InitialPosition(),
		"tactical": mustPosition(t, []game.Square{16, 22, 27}, []game.Square{28, 31, 36, 39}, nil, nil),
		"kings":    mustPosition(t, nil, []game.Square{29, 38}, []game.Square{1}, []game.Square{50}),
		"runaway":  mustPosition(t, []game.Square{37, 12}, []game.Square{14, 41}, nil, nil),
	}
}

func TestMTDFMatchesAlphaBeta(t *testing.T) {
	for name, pos := range testPositions(t) {
		for _, color := range []game.Color{game.White, game.Black} {
			for depth := 1; depth <= 4; depth++ {
				t.Run(fmt.Sprintf("%s/%s/depth %d", name, color, depth), func(t *testing.T) {
					reference := NewAlphaBeta().Search(context.Background(), pos, color, depth)
					iterative := NewMTDF(WithTableBits(12)).Search(context.Background(), pos, color, depth)
					direct := NewMTDF(WithTableBits(12), WithoutIterativeDeepening()).Search(context.Background(), pos, color, depth)

					require.Equal(t, reference.Score, iterative.Score, "Iterative MTD(f) should find the minimax value")
					require.Equal(t, reference.Score, direct.Score, "Direct MTD(f) should find the minimax value")
					require.Equal(t, depth, iterative.Depth)
					require.Equal(t, depth, direct.Depth)
					requireAchieves(t, pos, color, depth, iterative)
					requireAchieves(t, pos, color, depth, direct)
				})
			}
		}
	}
}

// requireAchieves checks that the returned move is legal and that its child is
// worth the returned score.
func requireAchieves(t *testing.T, pos game.Position, color game.Color, depth int, result Result) {
	t.Helper()
	require.NotNil(t, result.Move)
	child, err := pos.Play(result.Move)
	require.NoError(t, err)

	reference := NewAlphaBeta()
	var value int
	if depth == 1 {
		value = -evaluate(&reference.options, child, color.Opponent())
	} else {
		value = -reference.Search(context.Background(), child, color.Opponent(), depth-1).Score
	}
	require.Equal(t, result.Score, value, "Best move %s should achieve the score", result.Move)
}

func TestMTDFSearch(t *testing.T) {
	t.Run("takes the only capture", func(t *testing.T) {
		p := mustPosition(t, []game.Square{5, 22}, []game.Square{28}, nil, nil)

		move := NewMTDF().BestMove(p, game.White, 4)

		require.Equal(t, "22x33", move.String())
	})

	t.Run("capturing the last piece wins", func(t *testing.T) {
		p := mustPosition(t, []game.Square{22}, []game.Square{28}, nil, nil)

		result := NewMTDF().Search(context.Background(), p, game.White, 1)

		require.Equal(t, WinScore, result.Score)
	})

	t.Run("no legal move returns nil", func(t *testing.T) {
		p := mustPosition(t, []game.Square{22}, nil, nil, nil)

		result := NewMTDF().Search(context.Background(), p, game.Black, 3)

		require.Nil(t, result.Move)
		require.Equal(t, -WinScore, result.Score)
		require.Nil(t, NewAlphaBeta().BestMove(p, game.Black, 3))
	})

	t.Run("depth below one searches one ply", func(t *testing.T) {
		result := NewMTDF().Search(context.Background(), game.InitialPosition(), game.White, 0)

		require.Equal(t, 1, result.Depth)
		require.NotNil(t, result.Move)
	})

	t.Run("cancelled search still completes the first iteration", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result := NewMTDF().Search(ctx, game.InitialPosition(), game.White, 6)

		require.Equal(t, 1, result.Depth)
		require.NotNil(t, result.Move)
	})

	t.Run("is deterministic", func(t *testing.T) {
		p := testPositions(t)["tactical"]
		a := NewMTDF().Search(context.Background(), p, game.White, 5)
		b := NewMTDF().Search(context.Background(), p, game.White, 5)

		require.Equal(t, a.Score, b.Score)
		require.True(t, game.SameMove(a.Move, b.Move))
	})

	t.Run("reuses the table across searches", func(t *testing.T) {
		m := NewMTDF(WithMetrics())
		m.Search(context.Background(), game.InitialPosition(), game.White, 4)
		second := m.Search(context.Background(), game.InitialPosition(), game.White, 4)

		require.Positive(t, second.Metrics.TableHits)
	})
}

func TestMTDFMetrics(t *testing.T) {
	result := NewMTDF(WithMetrics()).Search(context.Background(), game.InitialPosition(), game.White, 3)

	require.Equal(t, "mtdf", result.Metrics.Searcher)
	require.Equal(t, 3, result.Metrics.Depth)
	require.Equal(t, 3, result.Metrics.Reached)
	require.Equal(t, 3, result.Metrics.Iterations)
	require.GreaterOrEqual(t, result.Metrics.Passes, 3, "Each iteration needs at least one pass")
	require.Positive(t, result.Metrics.Nodes)
	require.Positive(t, result.Metrics.TableLookups)
	require.Equal(t, result.Score, result.Metrics.Score)
}

func TestPromote(t *testing.T) {
	children := game.InitialPosition().LegalMoves(game.White)
	want := []game.Position{children[3], children[0], children[1], children[2], children[4]}

	promote(children, 3)

	require.Equal(t, want, children[:5])
}
