package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	auth2 "gitlab.com/bugfix-arena.net/internal/core/services/auth"
	"gitlab.com/bugfix-arena.net/internal/core/services/execution"
	leaderboard2 "gitlab.com/bugfix-arena.net/internal/core/services/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/core/services/question"
	"gitlab.com/bugfix-arena.net/internal/core/services/round"
	"gitlab.com/bugfix-arena.net/internal/core/services/submission"
	"gitlab.com/bugfix-arena.net/internal/domain"
	"gitlab.com/bugfix-arena.net/internal/handlers"
	"gitlab.com/bugfix-arena.net/internal/handlers/auth"
	"gitlab.com/bugfix-arena.net/internal/handlers/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/handlers/questions"
	"gitlab.com/bugfix-arena.net/internal/handlers/rounds"
	"gitlab.com/bugfix-arena.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	authService        auth2.IAuthService
	roundService       round.IRoundService
	questionService    question.IQuestionService
	submissionService  submission.ISubmissionService
	executionService   execution.IExecutionService
	leaderboardService leaderboard2.ILeaderboardService
}

func NewServiceProvider(
	authService auth2.IAuthService,
	roundService round.IRoundService,
	questionService question.IQuestionService,
	submissionService submission.ISubmissionService,
	executionService execution.IExecutionService,
	leaderboardService leaderboard2.ILeaderboardService,
) *ServiceProvider {
	return &ServiceProvider{
		authService:        authService,
		roundService:       roundService,
		questionService:    questionService,
		submissionService:  submissionService,
		executionService:   executionService,
		leaderboardService: leaderboardService,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	sockets         http.Handler
	rateLimit       *config.RateLimitConfig
	boardLimit      int
	logger          primary.Logger
}

func NewServer(
	httpCfg *config.HttpConfig,
	serviceProvider ServiceProvider,
	sockets http.Handler,
	rateLimit *config.RateLimitConfig,
	boardLimit int,
	logger primary.Logger,
) *Server {
	return &Server{
		Port:            httpCfg.Port,
		ServiceName:     httpCfg.Name,
		ServiceProvider: serviceProvider,
		sockets:         sockets,
		rateLimit:       rateLimit,
		boardLimit:      boardLimit,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	sp := s.ServiceProvider
	mw := handlers.New(sp.authService)
	limiter := handlers.NewKeyedRateLimiter(s.rateLimit.PerMinute, s.rateLimit.Burst)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		handlers.ResponseWithJson(w, http.StatusOK, map[string]string{"status": "ok", "service": s.ServiceName})
	}).Methods(http.MethodGet)
	if s.sockets != nil {
		r.PathPrefix("/socket.io/").Handler(s.sockets)
	}

	auth.NewHandler(sp.authService, s.logger).RegisterRoutes(r)

	admin := r.PathPrefix("/api/admin").Subrouter()
	admin.Use(mw.JWTMiddleware, mw.RequireRole(domain.RoleAdmin))

	participant := r.PathPrefix("/api").Subrouter()
	participant.Use(mw.JWTMiddleware)

	rounds.NewHandler(sp.roundService, s.logger).Register(participant, admin)
	questions.NewHandler(sp.questionService, s.logger).Register(participant, admin)
	submissions.
		NewSubmissionHandler(sp.submissionService, sp.executionService, s.logger).
		RegisterRoutes(participant, admin, mw.RateLimit(limiter))
	leaderboard.NewHandler(sp.leaderboardService, s.boardLimit, s.logger).Register(participant)

	s.router = r
	return nil
}

// Handler returns the router built by Init
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start(ctx context.Context) {
	// Set up server
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
		BaseContext:  func(_ net.Listener) context.Context { return ctx },
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}
