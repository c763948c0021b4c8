package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/apperror"
	"github.com/rocketscienceinc/ygame-backend/internal/config"
	"github.com/rocketscienceinc/ygame-backend/internal/entity"
)

const statusGameSaved = "Game saved"

type snapshotRepo interface {
	Save(ctx context.Context, snapshot *entity.Snapshot) error
	GetByID(ctx context.Context, id string) (*entity.Snapshot, error)
}

type archiveRepo interface {
	Save(ctx context.Context, record *entity.MatchRecord) error
}

type engineBridge interface {
	PlayTurn(ctx context.Context, m *entity.Match, now time.Time) (entity.MoveRecord, error)
}

type matchRegistry interface {
	Insert(m *entity.Match) error
	With(id string, fn func(m *entity.Match) error) error
	Len() int
}

type StartRequest struct {
	UserID     string `json:"userId"`
	GameMode   string `json:"gameMode"`
	BotMode    string `json:"botMode"`
	BoardSize  int    `json:"boardSize"`
	OpponentID string `json:"opponentId"`
}

type EndResult struct {
	GameID string        `json:"gameId"`
	Status string        `json:"status"`
	Result entity.Result `json:"result"`
}

type BotModes struct {
	BotModes []string `json:"botModes"`
	Default  string   `json:"default"`
}

type MatchManager struct {
	logger *zap.Logger
	conf   *config.Config

	registry  matchRegistry
	snapshots snapshotRepo
	archive   archiveRepo
	engine    engineBridge

	now   func() time.Time
	newID func() string
}

func NewMatchManager(
	logger *zap.Logger,
	conf *config.Config,
	registry matchRegistry,
	snapshots snapshotRepo,
	archive archiveRepo,
	engine engineBridge,
) *MatchManager {
	return &MatchManager{
		logger: logger.With(zap.String("component", "match_manager")),
		conf:   conf,

		registry:  registry,
		snapshots: snapshots,
		archive:   archive,
		engine:    engine,

		now:   func() time.Time { return time.Now().UTC() },
		newID: func() string { return uuid.New().String() },
	}
}

// Start - creates and registers a match. Nothing is created when the request is invalid.
func (that *MatchManager) Start(ctx context.Context, req StartRequest) (*entity.Snapshot, error) {
	log := that.logger.With(zap.String("method", "Start"), zap.String("user_id", req.UserID))

	seats, boardSize, err := that.resolveStart(req)
	if err != nil {
		return nil, err
	}

	m := entity.NewMatch(that.newID(), req.UserID, boardSize, seats, that.now())
	snapshot := m.Snapshot()

	if err = that.registry.Insert(m); err != nil {
		return nil, fmt.Errorf("failed to register match: %w", err)
	}

	that.saveSnapshot(ctx, snapshot)

	log.Info("match started",
		zap.String("match_id", m.ID),
		zap.String("game_mode", m.GameMode),
		zap.String("bot_mode", m.BotMode),
		zap.Int("board_size", m.BoardSize),
		zap.Int("live_matches", that.registry.Len()),
	)

	return snapshot, nil
}

func (that *MatchManager) resolveStart(req StartRequest) (entity.SeatAssignment, int, error) {
	seats := entity.SeatAssignment{
		GameMode:   req.GameMode,
		BotMode:    req.BotMode,
		OpponentID: req.OpponentID,
	}

	switch seats.GameMode {
	case "":
		seats.GameMode = entity.ModeVsBot
	case entity.ModeVsBot, entity.ModeMultiplayer:
	default:
		return seats, 0, fmt.Errorf("%w: %q", apperror.ErrGameModeUnknown, req.GameMode)
	}

	if seats.GameMode == entity.ModeVsBot {
		if seats.BotMode == "" {
			seats.BotMode = that.conf.Engine.DefaultBotMode
		}

		if !that.conf.Engine.HasBotMode(seats.BotMode) {
			return seats, 0, fmt.Errorf("%w: %q", apperror.ErrBotModeUnknown, seats.BotMode)
		}
	}

	boardSize := req.BoardSize
	if boardSize == 0 {
		boardSize = that.conf.DefaultBoardSize
	}

	if boardSize < 1 || boardSize > that.conf.MaxBoardSize {
		return seats, 0, fmt.Errorf("%w: %d not in [1, %d]", apperror.ErrInvalidBoardSize, boardSize, that.conf.MaxBoardSize)
	}

	return seats, boardSize, nil
}

// MakeMove - plays the user's move and, when the engine holds the next turn, the engine reply.
func (that *MatchManager) MakeMove(ctx context.Context, matchID, userID string, move entity.MoveInput) (*entity.Snapshot, error) {
	log := that.logger.With(zap.String("method", "MakeMove"), zap.String("match_id", matchID))

	var snapshot *entity.Snapshot
	err := that.registry.With(matchID, func(m *entity.Match) error {
		seat, ok := m.SeatOf(userID)
		if !ok {
			return fmt.Errorf("%w: %s", apperror.ErrNotInMatch, userID)
		}

		wasActive := !m.IsFinished()

		record, err := m.ApplyMove(seat, move, that.now())
		if err != nil {
			return err
		}

		log.Debug("move applied", zap.String("seat", string(seat)), zap.String("position", record.Position))

		if m.IsEngineTurn() {
			if _, err = that.engine.PlayTurn(ctx, m, that.now()); err != nil {
				log.Error("engine turn failed", zap.Error(err))
			}
		}

		snapshot = m.Snapshot()
		that.publish(ctx, m, wasActive)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	return snapshot, nil
}

// ValidateMove - runs every move check without changing the match and returns the resolved cell.
func (that *MatchManager) ValidateMove(_ context.Context, matchID, userID string, move entity.MoveInput) (entity.Coord, error) {
	var c entity.Coord
	err := that.registry.With(matchID, func(m *entity.Match) error {
		seat, ok := m.SeatOf(userID)
		if !ok {
			return fmt.Errorf("%w: %s", apperror.ErrNotInMatch, userID)
		}

		var err error
		c, err = m.ValidateMove(seat, move)

		return err
	})
	if err != nil {
		return entity.Coord{}, fmt.Errorf("invalid move: %w", err)
	}

	return c, nil
}

// GetState - returns the live snapshot, or the last published one for matches this process does not hold.
func (that *MatchManager) GetState(ctx context.Context, matchID string) (*entity.Snapshot, error) {
	var snapshot *entity.Snapshot
	err := that.registry.With(matchID, func(m *entity.Match) error {
		snapshot = m.Snapshot()
		return nil
	})
	if err == nil {
		return snapshot, nil
	}

	snapshot, err = that.snapshots.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to get match state: %w", err)
	}

	return snapshot, nil
}

// End - finalizes the match. Ending an already finished match reports the same result again.
func (that *MatchManager) End(ctx context.Context, matchID, userID string) (*EndResult, error) {
	log := that.logger.With(zap.String("method", "End"), zap.String("match_id", matchID))

	var result entity.Result
	err := that.registry.With(matchID, func(m *entity.Match) error {
		if _, ok := m.SeatOf(userID); !ok {
			return fmt.Errorf("%w: %s", apperror.ErrNotInMatch, userID)
		}

		var sealedNow bool
		result, sealedNow = m.Finalize(that.now())

		if sealedNow {
			log.Info("match ended", zap.String("winner", result.Winner), zap.Int("moves", result.Moves))
		}

		that.publish(ctx, m, sealedNow)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to end match: %w", err)
	}

	return &EndResult{
		GameID: matchID,
		Status: statusGameSaved,
		Result: result,
	}, nil
}

func (that *MatchManager) BotModes() BotModes {
	modes := make([]string, len(that.conf.Engine.BotModes))
	copy(modes, that.conf.Engine.BotModes)

	return BotModes{
		BotModes: modes,
		Default:  that.conf.Engine.DefaultBotMode,
	}
}

// publish - stores the snapshot and archives the record on the transition to finished.
// Storage failures never fail the move.
func (that *MatchManager) publish(ctx context.Context, m *entity.Match, wasActive bool) {
	ctx = context.WithoutCancel(ctx)

	that.saveSnapshot(ctx, m.Snapshot())

	if !wasActive || !m.IsFinished() {
		return
	}

	if err := that.archive.Save(ctx, m.Record()); err != nil {
		that.logger.Error("failed to archive match", zap.String("match_id", m.ID), zap.Error(err))
	}
}

func (that *MatchManager) saveSnapshot(ctx context.Context, snapshot *entity.Snapshot) {
	if err := that.snapshots.Save(ctx, snapshot); err != nil {
		that.logger.Error("failed to save snapshot", zap.String("match_id", snapshot.GameID), zap.Error(err))
	}
}
