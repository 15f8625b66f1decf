package main

import (
	"context"
	"time"

	"github.com/brianmahove/recruiting-ai/internal/cache"
	"github.com/brianmahove/recruiting-ai/internal/config"
	"github.com/brianmahove/recruiting-ai/internal/database"
	"github.com/brianmahove/recruiting-ai/internal/groq"
	"github.com/brianmahove/recruiting-ai/internal/handler"
	"github.com/brianmahove/recruiting-ai/internal/ingest"
	"github.com/brianmahove/recruiting-ai/internal/logger"
	"github.com/brianmahove/recruiting-ai/internal/mailer"
	"github.com/brianmahove/recruiting-ai/internal/repository"
	"github.com/brianmahove/recruiting-ai/internal/screening"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// sessionLockTTL bounds how long an abandoned screening session holds its
// redis lock before a new session for the same pair may start.
const sessionLockTTL = 30 * time.Minute

type application struct {
	DB         *pgxpool.Pool
	Redis      *redis.Client
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	pool, err := database.Connect(ctx, cfg.DB.DSN, cfg.DB.MaxConns, cfg.DB.MaxLifetime)
	if err != nil {
		sugar.Fatal(err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool); err != nil {
		sugar.Fatal(err)
	}

	repo := repository.NewRepository(pool)
	if err := repo.SeedDefaultStages(ctx); err != nil {
		sugar.Fatal(err)
	}

	rdb := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err := cache.Ping(ctx, rdb); err != nil {
		sugar.Fatal(err)
	}

	resumeStore := ingest.NewStore(cfg.Uploads.Dir)
	videoStore := ingest.NewStore(cfg.Uploads.VideoDir)
	if err := resumeStore.EnsureDir(); err != nil {
		sugar.Fatal(err)
	}
	if err := videoStore.EnsureDir(); err != nil {
		sugar.Fatal(err)
	}

	groqClient := groq.NewClient(cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Timeout)
	if !groqClient.Enabled() {
		sugar.Info("GROQ_API_KEY not set, falling back to template question generation")
	}

	mail := mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	if !mail.Enabled() {
		sugar.Info("SMTP_SERVER not set, outbound email disabled")
	}

	h := &handler.Handler{
		Logger:      log,
		Repo:        repo,
		ResumeStore: resumeStore,
		VideoStore:  videoStore,
		Locks:       cache.NewSessionLocks(rdb, sessionLockTTL),
		Guard:       screening.NewGuard(),
		Groq:        groqClient,
		Mailer:      mail,
		JwtSecret:   cfg.JWT.Secret,
		JwtTTL:      cfg.JWT.AccessTokenTTL,
		MaxUpload:   cfg.Uploads.MaxSizeMB * 1024 * 1024,
		MaxVideo:    cfg.Uploads.MaxVideoMB * 1024 * 1024,
	}

	app := &application{
		DB:         pool,
		Redis:      rdb,
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler:    h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
