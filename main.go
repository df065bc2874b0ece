package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creatorpulse/domain/repository"
	"creatorpulse/infrastructure/cache"
	youtubeclient "creatorpulse/infrastructure/clients/youtube"
	"creatorpulse/infrastructure/configuration"
	"creatorpulse/infrastructure/logger"
	"creatorpulse/infrastructure/notifier"
	"creatorpulse/infrastructure/persistence"
	httpHandler "creatorpulse/interfaces/http"
	"creatorpulse/server"
	"creatorpulse/usecase"

	"golang.org/x/sync/errgroup"
)

var httpServer *http.Server

func recoverPanic() {
	if err := recover(); err != nil {
		logger.GetLogger().WithField("error", err).Error("Application panic recovered")
	}
}

func main() {
	defer recoverPanic()
	ctx := context.Background()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	// Load env from files (non-destructive; OS env still has precedence)
	configuration.LoadEnvFromFile("config.env", ".env")

	app := configuration.C.App

	psqlDb, mssqlDb, err := InitiateDatabase()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Database initialization failed")
		os.Exit(1)
	}

	if psqlDb != nil {
		if err := persistence.EnsureUserSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring user schema")
		}
		if err := persistence.EnsureChallengeSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring challenge schema")
		}
		if err := persistence.EnsureUploadRecordSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring upload record schema")
		}
		if err := persistence.EnsureOAuthTokenSchema(psqlDb); err != nil {
			logger.GetLogger().WithField("error", err).Error("failed ensuring oauth token schema")
		}
	}

	mongoDb, err := persistence.NewMongoDb(
		configuration.C.Database.Mongo.Host,
		configuration.C.Database.Mongo.Port,
		configuration.C.Database.Mongo.User,
		configuration.C.Database.Mongo.Password,
		configuration.C.Database.Mongo.Name,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("MongoDB not available - tracker run audit disabled")
		mongoDb = nil
	}

	redisClient, err := cache.NewCache(
		ctx,
		fmt.Sprintf("%s:%s", configuration.C.RedisClient.Host, configuration.C.RedisClient.Port),
		configuration.C.RedisClient.Username,
		configuration.C.RedisClient.Password,
	)
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("Redis not available - tracker lock disabled")
		redisClient = nil
	}

	// Repository wiring: MSSQL user store in production, otherwise PostgreSQL.
	var userRepository repository.IUser
	if mssqlDb != nil {
		userRepository = persistence.NewUserRepositoryMSSQL(mssqlDb)
	} else {
		userRepository = persistence.NewUserRepository(psqlDb)
	}
	challengeRepository := persistence.NewChallengeRepository(psqlDb)
	uploadRepository := persistence.NewUploadRecordRepository(psqlDb)

	userUsecase := usecase.NewUserUsecase(userRepository)
	challengeUsecase := usecase.NewChallengeUsecase(challengeRepository, uploadRepository)

	// YouTube poller. The tracker cannot run without it; the HTTP surface can.
	var youtubeClient repository.IYouTube
	youtubeConfig, err := configuration.GetYouTubeConfig()
	if err != nil {
		logger.GetLogger().WithField("error", err).Warn("YouTube configuration not found - tracking disabled")
	} else {
		youtubeClient, err = youtubeclient.NewYouTubeClient(ctx, &youtubeclient.Config{
			ClientID:     youtubeConfig.ClientID,
			ClientSecret: youtubeConfig.ClientSecret,
			RedirectURL:  youtubeConfig.RedirectURL,
			APIKey:       youtubeConfig.APIKey,
		})
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Failed to initialize YouTube client - tracking disabled")
			youtubeClient = nil
		}
	}

	uploadNotifier := InitiateNotifier(ctx)

	trackerUsecase := usecase.NewTrackerUsecase(
		challengeRepository,
		uploadRepository,
		userRepository,
		youtubeClient,
		uploadNotifier,
	).
		WithPollTimeout(time.Duration(configuration.C.Tracker.PollTimeoutSeconds) * time.Second).
		WithWorkers(configuration.C.Tracker.WorkerCount).
		WithMaxResults(configuration.C.Tracker.MaxResults)
	if redisClient != nil {
		trackerUsecase = trackerUsecase.WithLock(cache.NewTrackerLock(redisClient))
	}
	if mongoDb != nil {
		trackerUsecase = trackerUsecase.WithRunAudit(persistence.NewTrackerRunRepository(mongoDb))
	}

	userHandler := httpHandler.NewUserHandler(userUsecase)
	healthHandler := httpHandler.NewHealthHandler()
	challengeHandler := httpHandler.NewChallengeHandler(challengeUsecase)
	trackerHandler := httpHandler.NewTrackerHandler(trackerUsecase)
	var youtubeHandler httpHandler.IYouTubeHandler
	if youtubeClient != nil {
		youtubeHandler = httpHandler.NewYouTubeHandler(youtubeClient)
	}
	youtubeAuthHandler := httpHandler.NewYouTubeAuthHandler(persistence.NewOAuthTokenRepository(psqlDb))

	router := server.InitiateRouter(
		userHandler,
		healthHandler,
		challengeHandler,
		trackerHandler,
		youtubeHandler,
		youtubeAuthHandler,
		userRepository,
		app.CronSecret,
	)

	// Background tracking loop. The /jobs endpoint covers external schedulers;
	// this ticker keeps tracking alive when no scheduler is configured.
	if youtubeClient != nil {
		interval := time.Duration(configuration.C.Tracker.IntervalMinutes) * time.Minute
		g.Go(func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					cycleCtx, cancelCycle := context.WithTimeout(ctx, interval/2)
					stats, err := trackerUsecase.RunCycle(cycleCtx, time.Now().UTC())
					cancelCycle()
					if err != nil {
						logger.GetLogger().WithField("error", err).Error("Scheduled tracker cycle failed")
						continue
					}
					logger.GetLogger().WithFields(map[string]interface{}{
						"challengesChecked": stats.ChallengesChecked,
						"videosDetected":    stats.VideosDetected,
						"uploadsRecorded":   stats.UploadsRecorded,
						"missedUploads":     stats.MissedUploads,
					}).Info("Scheduled tracker cycle completed")
				}
			}
		})
	} else {
		logger.GetLogger().Info("YouTube client not configured - background tracking loop not started")
	}

	port := app.Port
	logger.GetLogger().WithField("port", port).Info("Starting application")
	g.Go(func() error {
		httpServer = &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: router,
		}
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	select {
	case <-interrupt:
		logger.GetLogger().Info("Application shutdown requested")
	case <-ctx.Done():
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpServer != nil {
		_ = httpServer.Shutdown(shutdownCtx)
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.GetLogger().WithField("error", err).Error("Server returned an error")
		os.Exit(2)
	}
}

// InitiateDatabase returns (psqlDB, mssqlDB). PostgreSQL holds challenges and
// upload records and is always required; MSSQL replaces it as the user store
// in production or when DB_VENDOR=mssql.
func InitiateDatabase() (*sql.DB, *sql.DB, error) {
	psql, err := persistence.NewPostgreSQLDB()
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("Cannot connect to PostgreSQL")
		return nil, nil, err
	}

	env := os.Getenv("ENV")
	if os.Getenv("DB_VENDOR") == "mssql" || env == "production" || env == "prod" {
		mssql, err := persistence.NewMSSQLDB()
		if err != nil {
			logger.GetLogger().WithField("error", err).Error("Cannot connect to MSSQL user store")
			return nil, nil, err
		}
		return psql, mssql, nil
	}
	return psql, nil, nil
}

// InitiateNotifier selects the outbound transport. Anything unavailable
// degrades to the log notifier so scoring is never blocked on notifications.
func InitiateNotifier(ctx context.Context) repository.INotifier {
	switch configuration.C.Notifier.Transport {
	case "pubsub":
		client, err := notifier.NewPubSub(ctx, configuration.C.Pubsub.ProjectID)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("PubSub not available - falling back to log notifier")
			break
		}
		return notifier.NewPubSubNotifier(client, configuration.C.Pubsub.Topic)
	case "servicebus":
		client, err := notifier.NewServiceBus(configuration.C.ServiceBus.Namespace)
		if err != nil {
			logger.GetLogger().WithField("error", err).Warn("Service Bus not available - falling back to log notifier")
			break
		}
		return notifier.NewServiceBusNotifier(client, configuration.C.ServiceBus.Queue)
	case "webhook":
		if url := configuration.C.Notifier.WebhookURL; url != "" {
			return notifier.NewWebhookNotifier(url)
		}
		logger.GetLogger().Warn("Webhook transport selected but no URL configured - falling back to log notifier")
	}
	return notifier.NewLogNotifier()
}
