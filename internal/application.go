package application

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/config"
	"github.com/rocketscienceinc/ygame-backend/internal/engine"
	"github.com/rocketscienceinc/ygame-backend/internal/registry"
	"github.com/rocketscienceinc/ygame-backend/internal/repository"
	"github.com/rocketscienceinc/ygame-backend/internal/repository/storage"
	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
	"github.com/rocketscienceinc/ygame-backend/transport/rest"
	"github.com/rocketscienceinc/ygame-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

const closeTimeout = 5 * time.Second

// RunApp - runs the application.
func RunApp(logger *zap.Logger, conf *config.Config) error {
	log := logger.With(zap.String("component", "app"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", zap.String("signal", sig.String()))
		cancel()
	}()

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", zap.Error(err))
		}
	}()

	mongoStorage, err := storage.NewMongoStorage(ctx, conf.Mongo.URI, conf.Mongo.Database)
	if err != nil {
		return fmt.Errorf("could not connect to mongo storage: %w", err)
	}

	defer func() {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), closeTimeout)
		defer closeCancel()

		if err = mongoStorage.Close(closeCtx); err != nil {
			log.Error("could not close mongo storage", zap.Error(err))
		}
	}()

	snapshotRepo := repository.NewSnapshotRepository(redisStorage.Connection, conf.Redis.SnapshotTTL)
	archiveRepo := repository.NewArchiveRepository(mongoStorage.Database, conf.Mongo.Collection)
	bridge := engine.New(logger, conf.Engine)
	matchUseCase := usecase.NewMatchManager(logger, conf, registry.New(), snapshotRepo, archiveRepo, bridge)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", zap.String("port", conf.HTTPPort))
		if httpErr := rest.New(logger, matchUseCase).Start(ctx, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", zap.Error(httpErr))
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", zap.String("port", conf.SocketPort))
		wsServer := websocket.New(logger, matchUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", zap.Error(wsErr))
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}
