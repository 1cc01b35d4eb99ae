package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"gitlab.com/bugfix-arena.net/internal/adapter/crypto"
	"gitlab.com/bugfix-arena.net/internal/adapter/memory"
	"gitlab.com/bugfix-arena.net/internal/adapter/piston"
	"gitlab.com/bugfix-arena.net/internal/adapter/postgres/contestrepository"
	"gitlab.com/bugfix-arena.net/internal/adapter/postgres/userrepository"
	"gitlab.com/bugfix-arena.net/internal/adapter/redis/relay"
	"gitlab.com/bugfix-arena.net/internal/adapter/redis/runtimecache"
	"gitlab.com/bugfix-arena.net/internal/adapter/socketio"
	"gitlab.com/bugfix-arena.net/internal/config"
	"gitlab.com/bugfix-arena.net/internal/core/ports/primary"
	"gitlab.com/bugfix-arena.net/internal/core/ports/secondary"
	"gitlab.com/bugfix-arena.net/internal/core/services/attempt"
	auth2 "gitlab.com/bugfix-arena.net/internal/core/services/auth"
	"gitlab.com/bugfix-arena.net/internal/core/services/evaluator"
	"gitlab.com/bugfix-arena.net/internal/core/services/execution"
	"gitlab.com/bugfix-arena.net/internal/core/services/leaderboard"
	"gitlab.com/bugfix-arena.net/internal/core/services/publisher"
	"gitlab.com/bugfix-arena.net/internal/core/services/question"
	"gitlab.com/bugfix-arena.net/internal/core/services/round"
	"gitlab.com/bugfix-arena.net/internal/core/services/submission"
	"gitlab.com/bugfix-arena.net/internal/domain"
	logger2 "gitlab.com/bugfix-arena.net/internal/global/logger"
	http2 "gitlab.com/bugfix-arena.net/internal/http"
	"gitlab.com/bugfix-arena.net/internal/schedulerengine"
)

// storePorts are the secondary ports backed by the configured store driver
type storePorts struct {
	users       secondary.UserPort
	rounds      secondary.RoundRepository
	questions   secondary.QuestionRepository
	submissions secondary.SubmissionRepository
	boards      secondary.LeaderboardRepository
	unitOfWork  secondary.UnitOfWork
	close       func()
}

func main() {
	InitReader()
	sysCfg := config.NewSystemConfig()
	level := sysCfg.LogLevel
	if sysCfg.DebugMode {
		level = "debug"
	}
	logger2.Init(level)
	logger := logger2.Logger
	defer logger.Sync()

	// Set up graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("Starting contest service", "store", sysCfg.StoreDriver)

	ctxBg, cancel := context.WithCancel(context.Background())
	defer cancel()

	//primary ports
	jwtProvider := crypto.NewJWTService(sysCfg.JwtConfig)

	// SECONDARY PORTS
	stores, err := setupStore(ctxBg, sysCfg, jwtProvider, logger)
	if err != nil {
		logger.Error("Failed to set up store", "error", err)
		os.Exit(1)
	}
	defer stores.close()

	hub := socketio.NewHub(sysCfg.HttpConfig.AllowedOrigins, logger)
	hub.Serve()

	var broadcaster secondary.Broadcaster = hub
	var runtimeCache secondary.RuntimeCache
	redisClient, err := setupRedis(ctxBg, sysCfg.RedisConfig)
	if err != nil {
		logger.Warn("Redis unavailable, running single instance without runtime cache", "error", err)
	} else {
		defer redisClient.Close()
		rel := relay.NewRelay(redisClient, sysCfg.RedisConfig.RelayChannel, hub, logger)
		if err := rel.Start(ctxBg); err != nil {
			logger.Warn("Broadcast relay disabled", "error", err)
		} else {
			broadcaster = rel
		}
		runtimeCache = runtimecache.NewRuntimeCache(
			redisClient,
			sysCfg.RedisConfig.RuntimeCacheKey,
			sysCfg.RedisConfig.RuntimeCacheTTL,
			logger,
		)
	}

	sandbox := piston.NewClient(sysCfg.PistonConfig, logger)

	//services
	executionSvc := execution.NewExecutionService(sandbox, runtimeCache, logger)
	leaderboardSvc := leaderboard.NewLeaderboardService(stores.rounds, stores.boards, logger)
	livePublisher := publisher.NewLivePublisher(
		leaderboardSvc,
		broadcaster,
		sysCfg.ContestConfig.CompetitionBroadcastLimit,
		logger,
	)
	roundSvc := round.NewRoundService(stores.rounds, livePublisher, logger)
	questionSvc := question.NewQuestionService(stores.rounds, stores.questions, logger)
	submissionSvc := submission.NewSubmissionService(submission.Dependencies{
		Users:       stores.users,
		Rounds:      stores.rounds,
		Questions:   stores.questions,
		Submissions: stores.submissions,
		UnitOfWork:  stores.unitOfWork,
		Attempts:    attempt.NewAttemptTracker(stores.submissions, logger),
		Execution:   executionSvc,
		Evaluator:   evaluator.NewTestEvaluator(sandbox, logger),
		Aggregator:  leaderboard.NewAggregator(logger),
		Publisher:   livePublisher,
		Logger:      logger,
	}, sysCfg.ContestConfig.SubmissionGrace)
	localAuth := auth2.NewLocalAuthService(stores.users, jwtProvider, logger)

	roundScheduler := schedulerengine.NewRoundScheduler(sysCfg.ScheduleSvcCfg, logger)
	roundSvc.SetTimer(roundScheduler)
	roundScheduler.Start(ctxBg, roundSvc)

	serviceProvider := http2.NewServiceProvider(
		localAuth,
		roundSvc,
		questionSvc,
		submissionSvc,
		executionSvc,
		leaderboardSvc,
	)

	//server
	httpServer := http2.NewServer(
		sysCfg.HttpConfig,
		*serviceProvider,
		hub,
		sysCfg.RateLimitConfig,
		sysCfg.ContestConfig.CompetitionBroadcastLimit,
		logger,
	)
	if err := httpServer.Init(); err != nil {
		panic(err)
	}
	httpServer.Start(ctxBg)

	<-quit
	logger.Info("Shutting down server...")

	ctx, cacel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cacel()
	httpServer.Stop(ctx)
	cancel()
	if err := hub.Close(); err != nil {
		logger.Warn("Failed to close socket server", "error", err)
	}

	logger.Info("successfully shutdown server")
}

func setupStore(ctx context.Context, sysCfg *config.AppConfig, jwtProvider primary.JWTService, logger primary.Logger) (*storePorts, error) {
	switch sysCfg.StoreDriver {
	case "memory":
		store := memory.New()
		if err := seedAdmin(ctx, store, sysCfg.SeedAdmin, jwtProvider, logger); err != nil {
			return nil, err
		}
		return &storePorts{
			users:       store,
			rounds:      store,
			questions:   store,
			submissions: store,
			boards:      store,
			unitOfWork:  store,
			close:       func() {},
		}, nil
	case "postgres":
		db, err := setupDatabase(sysCfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		repo := contestrepository.New(db, logger)
		return &storePorts{
			users:       userrepository.New(db, logger),
			rounds:      repo,
			questions:   repo,
			submissions: repo,
			boards:      repo,
			unitOfWork:  repo,
			close:       func() { _ = db.Close() },
		}, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", sysCfg.StoreDriver)
	}
}

// seedAdmin creates the admin account of a fresh in-memory store
func seedAdmin(ctx context.Context, store *memory.Store, cfg *config.SeedAdminConfig, jwtProvider primary.JWTService, logger primary.Logger) error {
	if cfg.Password == "" {
		logger.Warn("ADMIN_PASSWORD not set, no admin account created")
		return nil
	}
	hash, err := jwtProvider.EncryptPassword(ctx, cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	admin := store.AddUser(domain.User{
		Username:     cfg.Username,
		FullName:     "Administrator",
		PasswordHash: &hash,
		Role:         domain.RoleAdmin,
	})
	logger.Info("Admin account created", "userId", admin.ID, "username", admin.Username)
	return nil
}

// setupDatabase sets up the PostgreSQL connection
func setupDatabase(cfg *config.PostgresConfig) (*sqlx.DB, error) {
	connStr := cfg.Url
	if cfg.Schema != "" && !strings.Contains(connStr, "search_path") {
		sep := "?"
		if strings.Contains(connStr, "?") {
			sep = "&"
		}
		connStr += sep + "search_path=" + cfg.Schema
	}
	db, err := sqlx.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// setupRedis sets up the Redis connection
func setupRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Url,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}

func InitReader() {
	environment := ""
	if len(os.Args) < 2 {
		log.Fatalf("Env not supplied in argument")
	} else {
		environment = os.Args[1]
	}

	err := godotenv.Load(environment + ".env")
	if err != nil {
		log.Fatalf("Error loading %s.env file", environment)
	}
}
