package ranktable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/handrank/poker"
)

func TestLadderShape(t *testing.T) {
	t.Parallel()

	ladder, err := NewLadder()
	require.NoError(t, err)
	require.Equal(t, 7462, ladder.Len())

	rungs := ladder.Rungs()
	assert.Equal(t, Score(TotalHands), rungs[0].Score)
	assert.Equal(t, poker.Strength{Type: poker.StraightFlush, Key: poker.NewStrengthKey(poker.Ace)}, rungs[0].Strength)

	last := rungs[len(rungs)-1]
	assert.Equal(t, Score(1020), last.Score)
	assert.Equal(t, poker.HighCard, last.Strength.Type)

	total := 0
	for i, r := range rungs {
		total += r.Hands
		if i > 0 {
			require.Equal(t, rungs[i-1].Score-Score(rungs[i-1].Hands), r.Score)
		}
	}
	assert.Equal(t, TotalHands, total)
}

func TestLadderScores(t *testing.T) {
	t.Parallel()

	ladder, err := NewLadder()
	require.NoError(t, err)

	tests := []struct {
		hand  string
		score Score
	}{
		{"As Ks Qs Js Ts", TotalHands},
		{"5d 4d 3d 2d Ad", TotalHands - 36},
		{"Ac Ad Ah As Kc", 2598920},
		{"Ac Kd Qh Js Ts", 2589444},
		{"Ac Kc Qc Jc 9c", 2594552},
		{"7c 5d 4h 3s 2c", 1020},
	}
	for _, tc := range tests {
		h, err := poker.ParseHand(tc.hand)
		require.NoError(t, err)
		got, err := ladder.Score(h)
		require.NoError(t, err)
		assert.Equal(t, tc.score, got, tc.hand)
	}

	_, err = ladder.Score(poker.Hand(0))
	require.ErrorIs(t, err, poker.ErrInvalidHand)

	_, ok := ladder.Rung(poker.Strength{Type: poker.Straight, Key: poker.NewStrengthKey(poker.Four)})
	assert.False(t, ok)
}

func TestLadderMatchesTable(t *testing.T) {
	t.Parallel()
	table := builtTable(t)

	ladder, err := NewLadder()
	require.NoError(t, err)

	var scorer Scorer = ladder
	for i := 0; i < table.Len(); i += 331 {
		r := table.At(i)
		got, err := scorer.Score(r.Hand)
		require.NoError(t, err)
		require.Equal(t, r.Score, got, "record %d: %s", i, r.Hand)
	}
}

func TestLadderRejectsBrokenCategory(t *testing.T) {
	t.Parallel()

	cats := Categories()
	cats[2].ClassSize = 23
	_, err := newLadder(cats)
	require.ErrorIs(t, err, ErrInvalidRankPattern)

	cats = Categories()
	cats[5], cats[6] = cats[6], cats[5]
	_, err = newLadder(cats)
	require.ErrorIs(t, err, ErrInvalidRankPattern)
}
