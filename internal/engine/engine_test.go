package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jaminalder/codex-reversi/internal/domain"
)

func rows(cells ...string) domain.Board {
	out := make([][]domain.Cell, len(cells))
	for y, row := range cells {
		out[y] = make([]domain.Cell, len(row))
		for x, ch := range row {
			switch ch {
			case 'W':
				out[y][x] = domain.White
			case 'B':
				out[y][x] = domain.Black
			}
		}
	}
	return domain.BoardFromRows(out)
}

func TestResetYieldsOpening(t *testing.T) {
	e := New(6, 6)
	require.True(t, e.AttemptMove(3, 1))
	g := e.Reset()

	require.Equal(t, domain.White, g.Turn)
	require.Equal(t, domain.White, e.Turn())
	require.Zero(t, g.Moves)
	require.True(t, e.Board().Equal(domain.NewBoard(6, 6)))
	require.Equal(t, 2, e.Score(domain.White))
	require.Equal(t, 2, e.Score(domain.Black))
}

func TestAttemptMove(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		e := New(6, 6)
		require.True(t, e.AttemptMove(4, 2))
		require.Equal(t, domain.Black, e.Turn())
		require.Equal(t, 4, e.Score(domain.White))
		require.Equal(t, 1, e.Score(domain.Black))
	})

	t.Run("rejected leaves state", func(t *testing.T) {
		e := New(6, 6)
		before := e.Snapshot()
		for _, p := range []domain.Point{{X: 2, Y: 2}, {X: 0, Y: 0}, {X: 5, Y: 5}, {X: -1, Y: 3}, {X: 6, Y: 0}} {
			require.False(t, e.AttemptMove(p.X, p.Y), "move %v", p)
		}
		after := e.Snapshot()
		require.True(t, before.Board.Equal(after.Board))
		require.Equal(t, before.Turn, after.Turn)
		require.Equal(t, before.Moves, after.Moves)
	})
}

func TestPlayReportsReason(t *testing.T) {
	e := New(6, 6)
	_, err := e.Play(2, 2)
	require.ErrorIs(t, err, domain.ErrOccupied)
	_, err = e.Play(0, 0)
	require.ErrorIs(t, err, domain.ErrIllegalMove)
	_, err = e.Play(10, 0)
	require.ErrorIs(t, err, domain.ErrOutOfBounds)
	g, err := e.Play(1, 3)
	require.NoError(t, err)
	require.Equal(t, 1, g.Moves)
}

func TestLegalMoveCount(t *testing.T) {
	e := NewFromGame(domain.Game{Board: rows(
		"......",
		"......",
		".WBBB.",
		".B....",
		"......",
		"......",
	), Turn: domain.White})

	require.Equal(t, 3, e.LegalMoveCount(5, 2, domain.White))
	require.Equal(t, 1, e.LegalMoveCount(1, 4, domain.White))
	require.Zero(t, e.LegalMoveCount(2, 2, domain.White), "occupied")
	require.Zero(t, e.LegalMoveCount(0, 0, domain.White))
	require.Zero(t, e.LegalMoveCount(-1, 0, domain.White))
	require.Equal(t, 1, e.LegalMoveCount(0, 2, domain.Black))
}

func TestQueriesAreIdempotent(t *testing.T) {
	e := New(6, 6)
	require.True(t, e.AttemptMove(3, 1))
	before := e.Snapshot()
	for i := 0; i < 10; i++ {
		_ = e.IsGameOver()
		_ = e.Winner()
		_ = e.LegalMoves()
		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				_ = e.LegalMoveCount(x, y, domain.White)
				_ = e.LegalMoveCount(x, y, domain.Black)
			}
		}
	}
	after := e.Snapshot()
	require.True(t, before.Board.Equal(after.Board))
	require.Equal(t, before.Turn, after.Turn)
}

func TestAutomatedMoveMatchesManualBest(t *testing.T) {
	start := domain.Game{Board: rows(
		"......",
		"......",
		".WBBB.",
		".B....",
		"......",
		"......",
	), Turn: domain.White}

	manual := NewFromGame(start)
	require.True(t, manual.AttemptMove(5, 2))

	auto := NewFromGame(start)
	m, g, err := auto.AutoPlay(domain.White)
	require.NoError(t, err)
	require.Equal(t, domain.Move{X: 5, Y: 2, Captures: 3}, m)
	require.True(t, manual.Board().Equal(g.Board))
	require.Equal(t, 5, auto.Score(domain.White))
	require.Equal(t, 1, auto.Score(domain.Black))
	require.Equal(t, domain.Black, auto.Turn())
}

func TestRequestAutomatedMoveNoOps(t *testing.T) {
	t.Run("wrong player", func(t *testing.T) {
		e := New(6, 6)
		require.False(t, e.RequestAutomatedMove(domain.Black))
		require.Equal(t, domain.White, e.Turn())
		_, _, err := e.AutoPlay(domain.Black)
		require.ErrorIs(t, err, ErrWrongPlayer)
	})

	t.Run("no legal move", func(t *testing.T) {
		e := NewFromGame(domain.Game{Board: rows("WB", "BW"), Turn: domain.White})
		require.False(t, e.RequestAutomatedMove(domain.White))
		_, _, err := e.AutoPlay(domain.White)
		require.ErrorIs(t, err, domain.ErrGameOver)
		require.True(t, e.IsGameOver())
		require.Equal(t, domain.Draw, e.Winner())
	})
}

func TestAutomatedGameRunsToCompletion(t *testing.T) {
	e := New(6, 6)
	for !e.IsGameOver() {
		require.True(t, e.RequestAutomatedMove(e.Turn()))
		total := e.Score(domain.White) + e.Score(domain.Black) + e.Score(domain.Empty)
		require.Equal(t, 36, total)
	}
	require.NotEqual(t, domain.Undecided, e.Winner())
}

func TestConcurrentMovesApplyOnce(t *testing.T) {
	e := New(6, 6)
	var wg sync.WaitGroup
	results := make([]bool, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.AttemptMove(3, 1)
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, ok := range results {
		if ok {
			accepted++
		}
	}
	require.Equal(t, 1, accepted)
	require.Equal(t, 1, e.Snapshot().Moves)
}
