package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/EgorLis/garden-log/internal/config"
	memcache "github.com/EgorLis/garden-log/internal/infra/cache/memory"
	"github.com/EgorLis/garden-log/internal/infra/database/postgres"
	s3storage "github.com/EgorLis/garden-log/internal/infra/storage/s3"
	"github.com/EgorLis/garden-log/internal/transport/web"
)

type App struct {
	config  *config.Config
	server  *web.Server
	log     *log.Logger
	repo    *postgres.PGRepo
	sweeper *memcache.Sweeper
}

func Build(ctx context.Context) (*App, error) {
	base := log.New(os.Stdout, "[app] ", log.LstdFlags)

	serverLog := log.New(base.Writer(), base.Prefix()+"[server] ", base.Flags())
	pgLog := log.New(base.Writer(), base.Prefix()+"[postgres] ", base.Flags())
	s3Log := log.New(base.Writer(), base.Prefix()+"[s3] ", base.Flags())
	cacheLog := log.New(base.Writer(), base.Prefix()+"[cache] ", base.Flags())

	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed load config: %w", err)
	}
	base.Printf("\n  configuration: %s-------------------", cfg)

	base.Println("init PostgreSQL")
	pgRepo, err := postgres.NewPGRepo(ctx, pgLog, cfg.GetDSN(), cfg.DBScheme)
	if err != nil {
		return nil, fmt.Errorf("failed init postgres: %w", err)
	}
	base.Println("PostgreSQL is initialized")

	base.Println("init S3 storage")
	s3cfg := s3storage.Config{
		Endpoint:      cfg.S3Endpoint,
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		UseSSL:        cfg.S3UseSSL,
		PathStyle:     cfg.S3PathStyle,
		PublicBaseURL: cfg.S3PublicBaseURL,
	}
	s3, err := s3storage.New(ctx, s3Log, s3cfg)
	if err != nil {
		return nil, fmt.Errorf("failed init s3: %w", err)
	}
	base.Println("S3 storage is initialized")

	base.Println("init in-process cache")
	cache := memcache.New(cfg.CacheMaxSize, time.Duration(cfg.CacheDefaultTTLSecs)*time.Second, cacheLog)
	manager := memcache.NewManager(cache)
	sweeper := memcache.NewSweeper(cache, time.Duration(cfg.CacheCleanupSecs)*time.Second, cacheLog)

	base.Println("init Server")
	deps := web.Deps{
		DB:       pgRepo,
		Harvests: pgRepo,
		Events:   pgRepo,
		Plants:   pgRepo,
		Images:   pgRepo,
		Storage:  s3,
		Cache:    manager,
	}
	server := web.New(serverLog, cfg, deps)
	base.Println("Server is initialized")

	base.Println("build ended")
	return &App{
		config:  cfg,
		server:  server,
		log:     base,
		repo:    pgRepo,
		sweeper: sweeper,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Println("start application...")
	a.sweeper.Start(ctx)
	go a.server.Run()
	<-ctx.Done()
	a.log.Println("stop application...")

	stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.server.Close(stopCtx)
	a.sweeper.Stop()
	a.repo.Close()

	return nil
}
