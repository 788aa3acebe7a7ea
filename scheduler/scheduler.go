package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gametrack/fetcher/data"
	"gametrack/fetcher/repositories"
	"gametrack/fetcher/requests"
	syncservice "gametrack/fetcher/services/sync"
	"gametrack/pkg/config"
	"gametrack/pkg/database"
	"gametrack/pkg/logger"
	"gametrack/pkg/redis"
	"gametrack/scheduler/jobs"

	"github.com/go-co-op/gocron/v2"
)

const serviceName = "scheduler"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Couldn't initialize the configuration: %v", err)
	}

	appLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("Couldn't initialize the logger: %v", err)
	}
	defer appLogger.Close()
	zlog := appLogger.With().Str("service", serviceName).Logger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewConnection(cfg.Database.DSN)
	if err != nil {
		zlog.Fatal().Err(err).Msg("couldn't connect to the database")
	}
	defer database.Close(db)

	// Runs the migrations.
	if err := database.RunMigrations(ctx, db); err != nil {
		zlog.Fatal().Err(err).Msg("couldn't run the migrations")
	}

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		zlog.Fatal().Err(err).Msg("couldn't connect to redis")
	}
	defer redisClient.Close()

	// Same lock as the api, a player is never synced by both at once.
	syncLock := redis.NewKeyLock(redisClient, redis.SyncLockPrefix, cfg.Sync.LockDuration)

	client, err := requests.NewClientFromConfig(cfg, zlog.With().Str("component", "riot").Logger())
	if err != nil {
		zlog.Fatal().Err(err).Msg("couldn't create the riot client")
	}

	playerRepo := repositories.NewPlayerRepository(db)
	fetcher := data.NewMainFetcher(client, cfg.Sync.Workers, zlog)
	syncService := syncservice.NewSyncService(&syncservice.SyncServiceDeps{
		MatchFetcher:     fetcher.Match,
		MatchRepository:  repositories.NewMatchRepository(db),
		PlayerRepository: playerRepo,
		Logger:           zlog.With().Str("component", "sync").Logger(),
		Timeout:          cfg.Sync.Timeout,
	})

	zlog.Info().Msg("starting scheduler")

	// Create a new scheduler with options.
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
	)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create scheduler")
	}

	// Resync every stored player on the configured interval.
	_, err = s.NewJob(
		gocron.DurationJob(cfg.Sync.ResyncInterval),
		gocron.NewTask(func() {
			_, err := jobs.ResyncPlayers(ctx, &jobs.ResyncDeps{
				Players: playerRepo,
				Syncer:  syncService,
				Lock:    syncLock,
				Limit:   cfg.Sync.DefaultMatches,
				Logger:  zlog.With().Str("job", "player-resync").Logger(),
			})
			if err != nil {
				zlog.Error().Err(err).Msg("player resync aborted")
			}
		}),
		gocron.WithName("player-resync"),
		gocron.WithTags("sync"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create player resync job")
	}

	// Ship the log file once per day at 4:00 AM, dated with the day that just ended.
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(4, 0, 0),
			),
		),
		gocron.NewTask(func() {
			day := time.Now().UTC().AddDate(0, 0, -1)
			if err := jobs.UploadLogs(ctx, appLogger, serviceName, day, zlog.With().Str("job", "log-upload").Logger()); err != nil {
				zlog.Error().Err(err).Msg("log upload failed")
			}
		}),
		gocron.WithName("log-upload"),
		gocron.WithTags("logs"),
	)
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create log upload job")
	}

	list, err := net.Listen("tcp", fmt.Sprintf(":%s", cfg.Server.HealthPort))
	if err != nil {
		zlog.Fatal().Err(err).Msg("couldn't start the tcp server")
	}
	grpcServer, healthServer := startHealthServer(list, zlog)

	// Start the scheduler.
	s.Start()

	// Wait for termination signal.
	<-ctx.Done()
	zlog.Info().Msg("shutting down scheduler")

	stopHealthServer(grpcServer, healthServer)
	if err := s.Shutdown(); err != nil {
		zlog.Error().Err(err).Msg("error shutting down scheduler")
	}
}
