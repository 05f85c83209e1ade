package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapturesPerDirection(t *testing.T) {
	cases := []struct {
		name   string
		rows   []string
		origin Point
		want   []Point
	}{
		{"right", []string{"..BBW."}, Point{1, 0}, []Point{{2, 0}, {3, 0}}},
		{"left", []string{"WBB..."}, Point{3, 0}, []Point{{2, 0}, {1, 0}}},
		{"down", []string{".", "B", "W"}, Point{0, 0}, []Point{{0, 1}}},
		{"up", []string{"W", "B", "B", "B", "."}, Point{0, 4}, []Point{{0, 3}, {0, 2}, {0, 1}}},
		{"down and right", []string{"....", ".B..", "..B.", "...W"}, Point{0, 0}, []Point{{1, 1}, {2, 2}}},
		{"up and left", []string{"W...", ".B..", "..B.", "...."}, Point{3, 3}, []Point{{2, 2}, {1, 1}}},
		{"up and right", []string{"...W", "..B.", ".B..", "...."}, Point{0, 3}, []Point{{1, 2}, {2, 1}}},
		{"down and left", []string{"....", "..B.", ".B..", "W..."}, Point{3, 0}, []Point{{2, 1}, {1, 2}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := parseBoard(t, tc.rows...)
			got := b.Captures(tc.origin.X, tc.origin.Y, White)
			require.ElementsMatch(t, tc.want, got)
			require.Equal(t, len(tc.want), b.CaptureCount(tc.origin.X, tc.origin.Y, White))
			require.True(t, b.IsLegal(tc.origin.X, tc.origin.Y, White))
		})
	}
}

func TestCapturesAllEightDirections(t *testing.T) {
	b := parseBoard(t,
		"W.W.W",
		".BBB.",
		"WB.BW",
		".BBB.",
		"W.W.W",
	)
	got := b.Captures(2, 2, White)
	require.ElementsMatch(t, []Point{
		{1, 1}, {2, 1}, {3, 1},
		{1, 2}, {3, 2},
		{1, 3}, {2, 3}, {3, 3},
	}, got)
	// Black has no discs of its own beyond the ring, so nothing is bracketed.
	require.Zero(t, b.CaptureCount(2, 2, Black))
}

func TestCapturesNoBracket(t *testing.T) {
	cases := []struct {
		name   string
		row    string
		origin int
	}{
		{"run ends on empty", "..BB..", 1},
		{"run reaches edge", "..BBB", 1},
		{"own disc adjacent", ".W..", 0},
		{"empty adjacent", ".B.W", 0},
		{"run interrupted by gap", ".BB.W", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := parseBoard(t, tc.row)
			require.Empty(t, b.Captures(tc.origin, 0, White))
			require.False(t, b.IsLegal(tc.origin, 0, White))
		})
	}
}

func TestCapturesIgnoreTargetCell(t *testing.T) {
	b := parseBoard(t, "BBW")
	require.Equal(t, []Point{{1, 0}}, b.Captures(0, 0, White))
	require.False(t, b.IsLegal(0, 0, White), "occupied target is never legal")
}

func TestCapturesOutOfBounds(t *testing.T) {
	b := NewBoard(6, 6)
	require.Nil(t, b.Captures(-1, 2, White))
	require.Zero(t, b.CaptureCount(6, 6, White))
	require.False(t, b.IsLegal(9, 0, White))
}

func TestOpeningLegalMoves(t *testing.T) {
	b := NewBoard(6, 6)
	require.Equal(t, []Move{
		{X: 3, Y: 1, Captures: 1},
		{X: 4, Y: 2, Captures: 1},
		{X: 1, Y: 3, Captures: 1},
		{X: 2, Y: 4, Captures: 1},
	}, b.LegalMoves(White))
	require.Equal(t, []Move{
		{X: 2, Y: 1, Captures: 1},
		{X: 1, Y: 2, Captures: 1},
		{X: 4, Y: 3, Captures: 1},
		{X: 3, Y: 4, Captures: 1},
	}, b.LegalMoves(Black))
}

func TestBestMoveTieGoesToFirstInRowMajorOrder(t *testing.T) {
	m, ok := NewBoard(6, 6).BestMove(White)
	require.True(t, ok)
	require.Equal(t, Move{X: 3, Y: 1, Captures: 1}, m)
}

func TestBestMovePrefersMostCaptures(t *testing.T) {
	b := parseBoard(t,
		"......",
		"......",
		".WBBB.",
		".B....",
		"......",
		"......",
	)
	require.Equal(t, []Move{
		{X: 5, Y: 2, Captures: 3},
		{X: 1, Y: 4, Captures: 1},
	}, b.LegalMoves(White))
	m, ok := b.BestMove(White)
	require.True(t, ok)
	require.Equal(t, Move{X: 5, Y: 2, Captures: 3}, m)
}

func TestBestMoveStableAmongEqualCounts(t *testing.T) {
	b := parseBoard(t,
		"B.BW",
		"W...",
		"B...",
		"....",
	)
	// (1,0) flips (2,0); (0,3) flips (0,2). Both count 1, row-major first wins.
	moves := b.LegalMoves(White)
	require.Equal(t, []Move{{X: 1, Y: 0, Captures: 1}, {X: 0, Y: 3, Captures: 1}}, moves)
	m, ok := b.BestMove(White)
	require.True(t, ok)
	require.Equal(t, Point{1, 0}, Point{m.X, m.Y})
}

func TestBestMoveNone(t *testing.T) {
	b := parseBoard(t, "WW", "WW")
	_, ok := b.BestMove(Black)
	require.False(t, ok)
	require.Empty(t, b.LegalMoves(Black))
}
