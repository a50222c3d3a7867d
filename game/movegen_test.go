package game

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func moveStrings(children []Position) []string {
	out := make([]string, len(children))
	for i, child := range children {
		out[i] = child.LastMove().String()
	}
	return out
}

func TestLegalMovesInitial(t *testing.T) {
	p := InitialPosition()

	t.Run("white has nine simple moves from row 4 to row 5", func(t *testing.T) {
		children := p.LegalMoves(White)

		require.Equal(t, []string{
			"16-21", "17-21", "17-22", "18-22", "18-23", "19-23", "19-24", "20-24", "20-25",
		}, moveStrings(children))
		for _, child := range children {
			m := child.LastMove()
			require.IsType(t, SimpleMove{}, m)
			require.Equal(t, 4, m.Origin().Row())
			require.Equal(t, 5, m.Destination().Row())
		}
	})

	t.Run("black mirrors white", func(t *testing.T) {
		children := p.LegalMoves(Black)

		require.Len(t, children, 9)
		for _, child := range children {
			require.Equal(t, 7, child.LastMove().Origin().Row())
			require.Equal(t, 6, child.LastMove().Destination().Row())
		}
	})

	t.Run("generation is deterministic", func(t *testing.T) {
		require.Equal(t, moveStrings(p.LegalMoves(White)), moveStrings(p.LegalMoves(White)))
	})
}

func TestForcedCapture(t *testing.T) {
	t.Run("single jump excludes simple moves", func(t *testing.T) {
		// 5 could slide to 10, but 22 must take 28.
		p := mustPosition(t, []Square{5, 22}, []Square{28}, nil, nil)

		children := p.LegalMoves(White)

		require.Len(t, children, 1)
		m, ok := children[0].LastMove().(MultiJumpMove)
		require.True(t, ok, "Captures are always chains")
		require.Equal(t, 1, m.Len())
		require.Equal(t, Square(22), m.Origin())
		require.Equal(t, Square(33), m.Destination())
		require.Equal(t, []Square{28}, m.Captured())
		require.True(t, m.Takes(28))
		require.Zero(t, children[0].Count(Black))
	})

	t.Run("black captures toward row 1", func(t *testing.T) {
		p := mustPosition(t, []Square{22}, []Square{28}, nil, nil)

		children := p.LegalMoves(Black)

		require.Equal(t, []string{"28x17"}, moveStrings(children))
	})

	t.Run("chains continue while captures remain", func(t *testing.T) {
		p := mustPosition(t, []Square{22}, []Square{28, 39}, nil, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"22x33x44"}, moveStrings(children))
		require.Equal(t, []Square{28, 39}, children[0].LastMove().Captured())
	})

	t.Run("every maximal branch is a separate move", func(t *testing.T) {
		p := mustPosition(t, []Square{22}, []Square{28, 38, 39}, nil, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"22x33x42", "22x33x44"}, moveStrings(children))
		for _, child := range children {
			require.Equal(t, 1, child.Count(Black))
		}
	})

	t.Run("shorter chains stay legal without the majority rule", func(t *testing.T) {
		p := mustPosition(t, []Square{16, 22}, []Square{21, 28, 39}, nil, nil)

		require.Equal(t, []string{"16x27", "22x33x44"}, moveStrings(p.LegalMoves(White)))

		rules := NewStandardRules()
		rules.MaximumCapture = true
		require.Equal(t, []string{"22x33x44"}, moveStrings(rules.LegalMoves(p, White)))
	})

	t.Run("men capture backward under standard rules", func(t *testing.T) {
		p := mustPosition(t, []Square{28}, []Square{22}, nil, nil)

		require.Equal(t, []string{"28x17"}, moveStrings(p.LegalMoves(White)))

		rules := NewStandardRules()
		rules.MenCaptureBackward = false
		require.Equal(t, []string{"28-32", "28-33"}, moveStrings(rules.LegalMoves(p, White)))
	})
}

func TestPromotion(t *testing.T) {
	t.Run("simple move onto the last row crowns", func(t *testing.T) {
		p := mustPosition(t, []Square{44}, []Square{1}, nil, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"44-49", "44-50"}, moveStrings(children))
		for _, child := range children {
			_, king, ok := child.PieceAt(child.LastMove().Destination())
			require.True(t, ok)
			require.True(t, king)
		}
	})

	t.Run("capture ending on the last row crowns", func(t *testing.T) {
		p := mustPosition(t, []Square{38}, []Square{43}, nil, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"38x49"}, moveStrings(children))
		require.Equal(t, uint64(1)<<49, children[0].Kings(White))
	})

	t.Run("passing the last row mid-chain does not crown", func(t *testing.T) {
		p := mustPosition(t, []Square{37}, []Square{42, 43}, nil, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"37x48x39"}, moveStrings(children))
		_, king, _ := children[0].PieceAt(39)
		require.False(t, king)
	})

	t.Run("black crowns on row 1", func(t *testing.T) {
		p := mustPosition(t, []Square{50}, []Square{7}, nil, nil)

		for _, child := range p.LegalMoves(Black) {
			require.Equal(t, 1, child.LastMove().Destination().Row())
			require.NotZero(t, child.Kings(Black))
		}
	})
}

func TestKings(t *testing.T) {
	t.Run("flying king slides along empty diagonals", func(t *testing.T) {
		p := mustPosition(t, nil, []Square{50}, []Square{1}, nil)

		require.Equal(t, []string{
			"1-6", "1-7", "1-12", "1-18", "1-23", "1-29", "1-34", "1-40", "1-45",
		}, moveStrings(p.LegalMoves(White)))
	})

	t.Run("flying king captures from a distance and picks its landing", func(t *testing.T) {
		p := mustPosition(t, nil, []Square{29}, []Square{1}, nil)

		children := p.LegalMoves(White)

		require.Equal(t, []string{"1x34", "1x40", "1x45"}, moveStrings(children))
		for _, child := range children {
			require.NotZero(t, child.Kings(White), "A king stays a king")
		}
	})

	t.Run("two pieces in a row cannot be jumped", func(t *testing.T) {
		p := mustPosition(t, nil, []Square{12, 18}, []Square{1}, nil)

		require.Equal(t, []string{"1-6", "1-7"}, moveStrings(p.LegalMoves(White)))
	})

	t.Run("short king moves one square", func(t *testing.T) {
		p := mustPosition(t, nil, []Square{29}, []Square{1}, nil)
		rules := NewStandardRules()
		rules.FlyingKings = false

		require.Equal(t, []string{"1-6", "1-7"}, moveStrings(rules.LegalMoves(p, White)))
	})

	t.Run("short king captures an adjacent piece", func(t *testing.T) {
		p := mustPosition(t, nil, []Square{33}, []Square{28}, nil)
		rules := NewStandardRules()
		rules.FlyingKings = false

		require.Equal(t, []string{"28x39"}, moveStrings(rules.LegalMoves(p, White)))
	})
}

func TestNoLegalMoves(t *testing.T) {
	t.Run("side without pieces", func(t *testing.T) {
		p := mustPosition(t, []Square{22}, nil, nil, nil)

		require.Empty(t, p.LegalMoves(Black))
		require.False(t, NewStandardRules().HasLegalMove(p, Black))
	})

	t.Run("blocked man", func(t *testing.T) {
		// Black 6 can only step onto 1, and cannot jump it over the edge.
		p := mustPosition(t, []Square{1}, []Square{6}, nil, nil)

		require.Empty(t, p.LegalMoves(Black))
		require.False(t, NewStandardRules().HasLegalMove(p, Black))
	})

	t.Run("agrees with LegalMoves", func(t *testing.T) {
		rules := NewStandardRules()
		p := InitialPosition()
		require.True(t, rules.HasLegalMove(p, White))
		require.True(t, rules.HasLegalMove(p, Black))
	})
}

// TestRandomPlayouts walks deterministic pseudo-random games and checks the
// board invariants on every child.
func TestRandomPlayouts(t *testing.T) {
	rules := NewStandardRules()
	for game := 0; game < 20; game++ {
		p := InitialPosition()
		c := White
		for ply := 0; ply < 200; ply++ {
			children := rules.LegalMoves(p, c)
			require.Equal(t, len(children) > 0, rules.HasLegalMove(p, c))
			if len(children) == 0 {
				break
			}

			capturing := len(children[0].LastMove().Captured()) > 0
			for _, child := range children {
				m := child.LastMove()
				require.NoError(t, child.Board().validate())
				require.Equal(t, capturing, len(m.Captured()) > 0, "Captures are forced for every move")

				before := bits.OnesCount64(p.Board().Occupied())
				after := bits.OnesCount64(child.Board().Occupied())
				require.Equal(t, before-len(m.Captured()), after, "Each jump removes exactly one piece")

				_, wasKing, _ := p.PieceAt(m.Origin())
				_, isKing, ok := child.PieceAt(m.Destination())
				require.True(t, ok)
				if wasKing {
					require.True(t, isKing, "Kings never lose their rank")
				}

				replayed, err := rules.Apply(p, m)
				require.NoError(t, err)
				require.True(t, replayed.Equal(child))
			}

			p = children[(game*31+ply*17+7)%len(children)]
			c = c.Opponent()
		}
	}
}
