package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
	"github.com/rocketscienceinc/ygame-backend/internal/config"
	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

const (
	defaultTimeout  = 3 * time.Second
	maxResponseSize = 1 << 20
)

type Bridge struct {
	logger *zap.Logger
	client *http.Client

	baseURL    string
	timeout    time.Duration
	thinkDelay time.Duration
}

func New(logger *zap.Logger, conf config.Engine) *Bridge {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Bridge{
		logger: logger.With(zap.String("component", "engine")),
		client: &http.Client{},

		baseURL:    strings.TrimRight(conf.URL, "/"),
		timeout:    timeout,
		thinkDelay: conf.ThinkDelay,
	}
}

// PlayTurn - asks the engine for the move of the seat to play and applies it to the match.
// An unreachable or confused engine is replaced by a random empty cell.
func (that *Bridge) PlayTurn(ctx context.Context, m *entity.Match, now time.Time) (entity.MoveRecord, error) {
	log := that.logger.With(zap.String("method", "PlayTurn"), zap.String("match_id", m.ID))

	seat := m.CurrentTurn

	if that.thinkDelay > 0 {
		time.Sleep(that.thinkDelay)
	}

	c, err := that.requestMove(ctx, m, seat)
	if err != nil {
		log.Warn("engine degraded, falling back to a random move", zap.Error(err))

		c, err = randomEmptyCell(m.Board)
		if err != nil {
			return entity.MoveRecord{}, err
		}
	}

	record, err := m.ApplyMove(seat, entity.MoveFromCoord(c), now)
	if err != nil {
		return entity.MoveRecord{}, fmt.Errorf("failed to apply engine move: %w", err)
	}

	log.Debug("engine move applied", zap.String("position", record.Position))

	return record, nil
}

func (that *Bridge) requestMove(ctx context.Context, m *entity.Match, seat entity.Seat) (entity.Coord, error) {
	body, err := json.Marshal(EncodeBoard(m))
	if err != nil {
		return entity.Coord{}, fmt.Errorf("%w: could not marshal board: %w", apperror.ErrEngineUnavailable, err)
	}

	// the call runs to completion even if the client went away
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), that.timeout)
	defer cancel()

	endpoint := that.baseURL + "/choose/" + url.PathEscape(m.BotMode)

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return entity.Coord{}, fmt.Errorf("%w: %w", apperror.ErrEngineUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := that.client.Do(req)
	if err != nil {
		return entity.Coord{}, fmt.Errorf("%w: %w", apperror.ErrEngineUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return entity.Coord{}, fmt.Errorf("%w: unexpected status %d", apperror.ErrEngineUnavailable, resp.StatusCode)
	}

	var reply Response
	if err = json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&reply); err != nil {
		return entity.Coord{}, fmt.Errorf("%w: %w: %w", apperror.ErrEngineUnavailable, errMalformedResponse, err)
	}

	c, err := reply.pickMove(m, seat)
	if err != nil {
		return entity.Coord{}, fmt.Errorf("%w: %w", apperror.ErrEngineUnavailable, err)
	}

	return c, nil
}

func randomEmptyCell(board *entity.Board) (entity.Coord, error) {
	available := board.EmptyCells()
	if len(available) == 0 {
		return entity.Coord{}, ErrNoAvailableMoves
	}

	return available[rand.Intn(len(available))], nil //nolint: gosec // it's ok
}
