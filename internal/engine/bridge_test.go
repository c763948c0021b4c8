package engine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/config"
	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

var turnTime = time.Date(2026, 3, 4, 12, 0, 0, 0, time.UTC)

// newBotMatch returns a vsBot match where seat A already took the apex and the engine is to move.
func newBotMatch(t *testing.T, size int) *entity.Match {
	t.Helper()

	m := entity.NewMatch("m-1", "alice", size, entity.SeatAssignment{GameMode: entity.ModeVsBot, BotMode: "random_bot"}, turnTime)
	_, err := m.ApplyMove(entity.SeatA, entity.MoveFromIndex(0), turnTime)
	require.NoError(t, err)
	require.True(t, m.IsEngineTurn())

	return m
}

func newTestBridge(url string) *Bridge {
	return New(zap.NewNop(), config.Engine{URL: url, Timeout: time.Second})
}

func engineServer(t *testing.T, status int, body string) (*httptest.Server, *[]Notation) {
	t.Helper()

	var received []Notation
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/ybot/choose/random_bot", r.URL.Path)

		var n Notation
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&n))
		received = append(received, n)

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv, &received
}

func TestEncodeBoard(t *testing.T) {
	// Given: seat A on the apex and seat B on the right cell of row 1
	m := entity.NewMatch("m-1", "alice", 3, entity.SeatAssignment{GameMode: entity.ModeMultiplayer}, turnTime)
	_, err := m.ApplyMove(entity.SeatA, entity.MoveFromIndex(0), turnTime)
	require.NoError(t, err)
	_, err = m.ApplyMove(entity.SeatB, entity.MoveFromIndex(2), turnTime)
	require.NoError(t, err)

	// When
	n := EncodeBoard(m)

	// Then
	assert.Equal(t, Notation{Size: 3, Turn: 0, Players: []string{"B", "R"}, Layout: "B/.R/..."}, n)
}

func TestEncodeBoard_Empty(t *testing.T) {
	m := entity.NewMatch("m-1", "alice", 4, entity.SeatAssignment{GameMode: entity.ModeVsBot}, turnTime)

	n := EncodeBoard(m)

	assert.Equal(t, "./../.../....", n.Layout)
	assert.Equal(t, 0, n.Turn)
}

func TestBridge_PlayTurn(t *testing.T) {
	ctx := context.Background()

	t.Run("Applies the coordinate chosen by the engine", func(t *testing.T) {
		// Given
		srv, received := engineServer(t, http.StatusOK, `{"coords":{"x":0,"y":1,"z":1}}`)
		m := newBotMatch(t, 3)

		// When
		record, err := newTestBridge(srv.URL+"/v1/ybot").PlayTurn(ctx, m, turnTime)

		// Then
		require.NoError(t, err)
		assert.Equal(t, entity.Coord{X: 0, Y: 1, Z: 1}, record.Coord)
		assert.Equal(t, entity.SeatB, record.Seat)
		assert.Equal(t, entity.SeatA, m.CurrentTurn)
		assert.Len(t, m.Moves, 2)

		require.Len(t, *received, 1)
		assert.Equal(t, Notation{Size: 3, Turn: 1, Players: []string{"B", "R"}, Layout: "B/../..."}, (*received)[0])
	})

	t.Run("Takes the new cell from a board delta", func(t *testing.T) {
		// Given: the reply repeats seat A's cell, claims it for the engine, and adds one new cell
		srv, _ := engineServer(t, http.StatusOK, `{
			"board": [
				{"x":2,"y":0,"z":0,"player":0},
				{"x":2,"y":0,"z":0,"player":1},
				{"x":0,"y":0,"z":2,"player":1}
			],
			"turn": 0,
			"status": "active"
		}`)
		m := newBotMatch(t, 3)

		// When
		record, err := newTestBridge(srv.URL+"/v1/ybot/").PlayTurn(ctx, m, turnTime)

		// Then: only the new cell changed hands
		require.NoError(t, err)
		assert.Equal(t, entity.Coord{X: 0, Y: 0, Z: 2}, record.Coord)

		apex, ok := m.Board.FindByCoord(entity.Coord{X: 2})
		require.True(t, ok)
		assert.Equal(t, entity.SeatA, apex.Owner)
		assert.Len(t, m.Board.EmptyCells(), 4)
	})

	fallbacks := []struct {
		name   string
		status int
		body   string
	}{
		{"malformed body", http.StatusOK, `not json`},
		{"empty object", http.StatusOK, `{}`},
		{"occupied coordinate", http.StatusOK, `{"coords":{"x":2,"y":0,"z":0}}`},
		{"off board coordinate", http.StatusOK, `{"coords":{"x":5,"y":0,"z":0}}`},
		{"server error", http.StatusInternalServerError, `{"coords":{"x":0,"y":1,"z":1}}`},
	}

	for _, tc := range fallbacks {
		t.Run("Falls back to a random cell on "+tc.name, func(t *testing.T) {
			// Given
			srv, _ := engineServer(t, tc.status, tc.body)
			m := newBotMatch(t, 3)

			// When
			record, err := newTestBridge(srv.URL+"/v1/ybot").PlayTurn(ctx, m, turnTime)

			// Then: the engine seat still moved onto a previously empty cell
			require.NoError(t, err)
			assert.Equal(t, entity.SeatB, record.Seat)
			assert.NotEqual(t, entity.Coord{X: 2}, record.Coord)
			assert.Len(t, m.Moves, 2)
			assert.Len(t, m.Board.EmptyCells(), 4)
			assert.Equal(t, entity.SeatA, m.CurrentTurn)
		})
	}

	t.Run("Falls back when the engine is unreachable", func(t *testing.T) {
		// Given: a side 2 board with one move played
		m := newBotMatch(t, 2)

		// When
		record, err := newTestBridge("http://127.0.0.1:1/v1/ybot").PlayTurn(ctx, m, turnTime)

		// Then: exactly one cell remains empty and the turn is back to seat A
		require.NoError(t, err)
		assert.Contains(t, []entity.Coord{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 1}}, record.Coord)
		assert.Len(t, m.Board.EmptyCells(), 1)
		assert.Len(t, m.Moves, 2)
		assert.Equal(t, entity.SeatA, m.CurrentTurn)
	})

	t.Run("Refuses to move on a finished match", func(t *testing.T) {
		srv, _ := engineServer(t, http.StatusOK, `{"coords":{"x":0,"y":1,"z":1}}`)
		m := newBotMatch(t, 3)
		m.Finalize(turnTime)

		_, err := newTestBridge(srv.URL+"/v1/ybot").PlayTurn(ctx, m, turnTime)

		require.Error(t, err)
		assert.Len(t, m.Moves, 1)
	})
}

func TestRandomEmptyCell(t *testing.T) {
	t.Run("Picks an empty cell", func(t *testing.T) {
		board := entity.NewBoard(2)
		require.NoError(t, board.SetOwner(entity.Coord{X: 1}, entity.SeatA))
		require.NoError(t, board.SetOwner(entity.Coord{Z: 1}, entity.SeatB))

		c, err := randomEmptyCell(board)

		require.NoError(t, err)
		assert.Equal(t, entity.Coord{Y: 1}, c)
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board := entity.NewBoard(1)
		require.NoError(t, board.SetOwner(entity.Coord{}, entity.SeatA))

		_, err := randomEmptyCell(board)

		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})
}
