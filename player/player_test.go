package player

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"draughts/game"

	"github.com/stretchr/testify/require"
)

func TestHuman(t *testing.T) {
	rules := game.NewStandardRules()

	t.Run("picks a move by number", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman(rules, strings.NewReader("3\n"), &out)

		move, metric := h.FindMove(context.Background(), game.InitialPosition(), game.White)

		require.Equal(t, "17-22", move.String())
		require.Equal(t, "human", metric.Searcher)
		require.Contains(t, out.String(), "  1) 16-21")
		require.Contains(t, out.String(), "white to move> ")
	})

	t.Run("picks a move by notation after bad input", func(t *testing.T) {
		var out bytes.Buffer
		h := NewHuman(rules, strings.NewReader("\n99\n18-27\n18-23\n"), &out)

		move, _ := h.FindMove(context.Background(), game.InitialPosition(), game.White)

		require.Equal(t, "18-23", move.String())
		require.Contains(t, out.String(), "choose a number from 1 to 9")
		require.Contains(t, out.String(), "illegal move")
	})

	t.Run("end of input resigns", func(t *testing.T) {
		h := NewHuman(rules, strings.NewReader(""), &bytes.Buffer{})

		move, _ := h.FindMove(context.Background(), game.InitialPosition(), game.Black)

		require.Nil(t, move)
	})

	t.Run("no legal moves", func(t *testing.T) {
		p, err := game.PositionOf([]game.Square{22}, nil, nil, nil)
		require.NoError(t, err)
		h := NewHuman(rules, strings.NewReader("1\n"), &bytes.Buffer{})

		move, _ := h.FindMove(context.Background(), p, game.Black)

		require.Nil(t, move)
	})
}
