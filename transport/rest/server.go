package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/rocketscienceinc/ygame-backend/internal/entity"
	"github.com/rocketscienceinc/ygame-backend/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type matchUseCase interface {
	Start(ctx context.Context, req usecase.StartRequest) (*entity.Snapshot, error)
	MakeMove(ctx context.Context, matchID, userID string, move entity.MoveInput) (*entity.Snapshot, error)
	ValidateMove(ctx context.Context, matchID, userID string, move entity.MoveInput) (entity.Coord, error)
	GetState(ctx context.Context, matchID string) (*entity.Snapshot, error)
	End(ctx context.Context, matchID, userID string) (*usecase.EndResult, error)
	BotModes() usecase.BotModes
}

type Server struct {
	logger *zap.Logger
	router chi.Router
}

func New(logger *zap.Logger, uMatch matchUseCase) *Server {
	log := logger.With(zap.String("component", "rest"))

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(requestLogger(log))
	router.Use(chimw.Recoverer)

	router.Get("/ping", pingHandler)
	router.Get("/health", healthHandler)

	h := &matchHandler{logger: log, uMatch: uMatch}

	router.Route("/api/game", func(r chi.Router) {
		r.Get("/bot-modes", h.botModes)
		r.Post("/start", h.start)
		r.Post("/end", h.end)
		r.Get("/{gameID}", h.state)
		r.Post("/{gameID}/move", h.move)
		r.Post("/{gameID}/validateMove", h.validateMove)
	})

	return &Server{
		logger: log,
		router: router,
	}
}

func (that *Server) Handler() http.Handler {
	return that.router
}

// Start - serves the API on port until ctx is canceled.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown HTTP server", zap.Error(err))
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			defer func() {
				logger.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", chimw.GetReqID(r.Context())),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
