package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blog-api/internal/config"
	"blog-api/internal/db"
	apihttp "blog-api/internal/http"
	"blog-api/internal/repository"
	"blog-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// stores agrupa los repositorios del backend elegido y su ciclo de vida.
type stores struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	ping     func(ctx context.Context) error
	close    func()
}

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := newLogger(cfg)
	defer logger.Sync()

	st, err := openStores(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer st.close()

	throttle := service.NewMemoryLoginThrottle(cfg.SigninWindow, cfg.SigninMax)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using in-memory signin throttle", zap.Error(err))
		} else {
			throttle = service.NewRedisLoginThrottle(redisClient, cfg.SigninWindow, cfg.SigninMax)
		}
		cancel()
	}

	jwtSvc := service.NewJWTService(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTGoogleTTL)
	authSvc := service.NewAuthService(logger, st.users, jwtSvc, throttle)
	userSvc := service.NewUserService(logger, st.users)
	postSvc := service.NewPostService(logger, st.posts)
	commentSvc := service.NewCommentService(logger, st.comments, st.posts)

	secure := cfg.IsProduction()
	router := apihttp.NewRouter(logger,
		apihttp.RouterConfig{
			StaticDir:   cfg.StaticDir,
			Session:     apihttp.SessionMiddleware(jwtSvc, userSvc),
			HealthCheck: st.ping,
		},
		apihttp.NewAuthHandler(logger, authSvc, secure),
		apihttp.NewUserHandler(logger, userSvc),
		apihttp.NewPostHandler(logger, postSvc),
		apihttp.NewCommentHandler(logger, commentSvc),
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("starting server", zap.String("port", cfg.HTTPPort), zap.String("env", cfg.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.IsProduction() {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}

func openStores(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*stores, error) {
	driver, err := cfg.DatabaseDriver()
	if err != nil {
		return nil, err
	}

	switch driver {
	case config.DriverPostgres:
		if err := db.Migrate(ctx, cfg.DatabaseURL); err != nil {
			return nil, err
		}
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		logger.Info("using postgres store")
		return &stores{
			users:    repository.NewPgUserRepository(pool),
			posts:    repository.NewPgPostRepository(pool),
			comments: repository.NewPgCommentRepository(pool),
			ping:     func(ctx context.Context) error { return db.Ping(ctx, pool) },
			close:    pool.Close,
		}, nil
	default:
		client, err := db.NewMongoClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		database := client.Database(cfg.MongoDatabase)
		if err := db.EnsureIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info("using mongo store", zap.String("database", cfg.MongoDatabase))
		return &stores{
			users:    repository.NewMongoUserRepository(database),
			posts:    repository.NewMongoPostRepository(database),
			comments: repository.NewMongoCommentRepository(database),
			ping:     func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) },
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(closeCtx); err != nil {
					logger.Warn("mongo disconnect", zap.Error(err))
				}
			},
		}, nil
	}
}
